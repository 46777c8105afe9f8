package session

import (
	"strings"
	"unicode/utf8"

	apperr "github.com/matzehuels/boxdeform/pkg/errors"
)

// Key names understood by Handle. Other names pass through unchanged.
const (
	KeyEnter     = "enter"
	KeySpace     = "space"
	KeyTab       = "tab"
	KeyDelete    = "delete"
	KeyBackspace = "backspace"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyUp        = "up"
	KeyDown      = "down"
)

// Event is one key event of the session's input stream.
type Event struct {
	// Key is the lowercase key name, e.g. "3", "m", "enter", "right".
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	// Release marks a key release; sessions only act on presses.
	Release bool
}

// String formats e the way ParseEvent reads it.
func (e Event) String() string {
	var b strings.Builder
	if e.Ctrl {
		b.WriteString("ctrl+")
	}
	if e.Alt {
		b.WriteString("alt+")
	}
	if e.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(e.Key)
	return b.String()
}

var keyAliases = map[string]string{
	" ":      KeySpace,
	"return": KeyEnter,
	"ret":    KeyEnter,
	"del":    KeyDelete,
	"back":   KeyBackspace,
	"bs":     KeyBackspace,
}

// ParseEvent parses a key press such as "3", "ctrl+right", "M" or "space".
// A single uppercase letter is the shifted lowercase key.
func ParseEvent(s string) (Event, error) {
	if s == "" {
		return Event{}, apperr.New(apperr.ErrCodeInvalidKey, "empty key")
	}
	if alias, ok := keyAliases[s]; ok {
		s = alias
	}

	var ev Event
	mods, key := "", s
	switch {
	case s == "+":
	case strings.HasSuffix(s, "++"):
		mods, key = s[:len(s)-2], "+"
	default:
		if i := strings.LastIndex(s, "+"); i >= 0 {
			mods, key = s[:i], s[i+1:]
		}
	}
	if mods != "" {
		for _, mod := range strings.Split(mods, "+") {
			switch strings.ToLower(mod) {
			case "ctrl":
				ev.Ctrl = true
			case "alt":
				ev.Alt = true
			case "shift":
				ev.Shift = true
			default:
				return Event{}, apperr.New(apperr.ErrCodeInvalidKey, "unknown modifier %q in %q", mod, s)
			}
		}
	}
	if key == "" {
		return Event{}, apperr.New(apperr.ErrCodeInvalidKey, "missing key in %q", s)
	}

	if r, size := utf8.DecodeRuneInString(key); size == len(key) && r >= 'A' && r <= 'Z' {
		ev.Shift = true
	}
	ev.Key = strings.ToLower(key)
	if alias, ok := keyAliases[ev.Key]; ok {
		ev.Key = alias
	}
	return ev, nil
}

// ParseEvents parses a comma-separated key sequence such as
// "3,ctrl+right,m,enter".
func ParseEvents(seq string) ([]Event, error) {
	var out []Event
	for _, tok := range strings.Split(seq, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		ev, err := ParseEvent(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

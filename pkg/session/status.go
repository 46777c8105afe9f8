package session

import "fmt"

// Status returns the header line shown while the session is active.
func (s *Session) Status() string {
	c := s.entry.Cage
	return fmt.Sprintf(
		"Deform cage size: %s (1-9 or ctrl+arrows) | mode (M): %s | confirm: space/enter, cancel: del/backspace/tab twice",
		c.Resolution, c.Interpolation.Label())
}

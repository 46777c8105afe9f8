// Package config loads the box deform addon settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, by default $XDG_CONFIG_HOME/boxdeform/config.toml
//  3. BOXDEFORM_* environment variables
//
// A session copies its configuration when it starts; changing the
// configuration never affects a session that is already running.
//
// Example file:
//
//	start_interpolation = "linear"   # or "smooth"
//	auto_interpolation = true
//	use_click_drag = true
//
//	[session]
//	drag_immediately = true
//	drag_threshold_mouse = 1
//	drag_threshold_tablet = 3
//	show_overlays = true
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/matzehuels/boxdeform/pkg/cage"
	apperr "github.com/matzehuels/boxdeform/pkg/errors"
	"github.com/matzehuels/boxdeform/pkg/prefs"
)

const appName = "boxdeform"

// Config holds the addon-level switches.
type Config struct {
	// StartInterpolation is the interpolation of freshly built cages.
	StartInterpolation cage.Interpolation `toml:"start_interpolation" env:"BOXDEFORM_START_INTERPOLATION"`
	// AutoInterpolation lets resolution keys pick the interpolation until the
	// user toggles it by hand.
	AutoInterpolation bool `toml:"auto_interpolation" env:"BOXDEFORM_AUTO_INTERPOLATION"`
	// UseClickDrag switches to the direct select tool during sessions so cage
	// points can be click-dragged.
	UseClickDrag bool `toml:"use_click_drag" env:"BOXDEFORM_USE_CLICK_DRAG"`
	// Session holds the interaction settings applied while a session runs.
	Session prefs.Settings `toml:"session"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StartInterpolation: cage.Linear,
		AutoInterpolation:  true,
		UseClickDrag:       true,
		Session:            prefs.SessionDefaults,
	}
}

// SessionSettings returns the settings a session applies on entry.
func (c Config) SessionSettings() prefs.Settings {
	s := c.Session
	if c.UseClickDrag {
		s.Tool = prefs.SelectTool
	} else {
		s.Tool = ""
	}
	return s
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/boxdeform/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration. With an empty path the default location is
// used and a missing file is not an error; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case errors.Is(err, fs.ErrNotExist):
			return Config{}, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "config %s", path)
		default:
			return Config{}, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return Config{}, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "environment")
	}
	return cfg, nil
}

// ParseEnv overlays environment variables onto target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// config.go - Sphinx library configuration.
// Copyright (C) 2019  David Stainton.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config holds the configuration an application embedding this
// library hands to the logging backend and the delay generation helper.
// The header geometry itself is fixed at compile time and is deliberately
// absent from here.
package config

import (
	"errors"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
)

const defaultAverageDelay = 100 * time.Millisecond

var defaultLogging = Logging{
	Disable: false,
	File:    "",
	Level:   "NOTICE",
}

// Logging is the logging backend configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File is the log file, or empty for stderr.
	File string

	// Level is the logging level: ERROR, WARNING, NOTICE, INFO or DEBUG.
	Level string
}

func (l *Logging) validate() error {
	switch strings.ToUpper(l.Level) {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
		return nil
	default:
		return fmt.Errorf("config: invalid logging level '%v'", l.Level)
	}
}

// Delays tunes the exponential delay sampling helper.
type Delays struct {
	// Average is the mean per-hop delay, as a duration string.
	Average string
}

// AverageDuration returns the parsed mean delay.
func (d *Delays) AverageDuration() time.Duration {
	t, err := time.ParseDuration(d.Average)
	if err != nil {
		return defaultAverageDelay
	}
	return t
}

func (d *Delays) validate() error {
	if d.Average == "" {
		return nil
	}
	t, err := time.ParseDuration(d.Average)
	if err != nil {
		return fmt.Errorf("config: invalid delay average '%v': %v", d.Average, err)
	}
	if t <= 0 {
		return errors.New("config: delay average must be positive")
	}
	return nil
}

// Config is the top level configuration.
type Config struct {
	Logging *Logging
	Delays  *Delays
}

// FixupAndValidate applies defaults and validates the configuration.
func (c *Config) FixupAndValidate() error {
	if c.Logging == nil {
		l := defaultLogging
		c.Logging = &l
	}
	if c.Delays == nil {
		c.Delays = &Delays{}
	}
	if err := c.Logging.validate(); err != nil {
		return err
	}
	return c.Delays.validate()
}

// Load parses and validates the TOML serialized configuration.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromFile loads and validates the configuration from a file.
func FromFile(f string) (*Config, error) {
	b, err := ioutil.ReadFile(f)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

// log.go - Logging backend.
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

// Package log provides the leveled logging backend shared by consumers of
// this library.  The header processing paths never log; this exists so
// applications embedding the library configure its module loggers the same
// way they configure their own.
package log

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"gopkg.in/op/go-logging.v1"
)

const format = "%{time:15:04:05.000} %{level:.4s} %{module}: %{message}"

// Backend wraps a go-logging backend tied to an output destination.
type Backend struct {
	w io.Writer
}

// New initializes a logging backend writing to the given file, or stderr
// when the path is empty.  A disabled backend swallows everything.
func New(f string, level string, disable bool) (*Backend, error) {
	lvl, err := logLevelFromString(level)
	if err != nil {
		return nil, err
	}

	b := new(Backend)
	switch {
	case disable:
		b.w = ioutil.Discard
	case f == "":
		b.w = os.Stderr
	default:
		flags := os.O_CREATE | os.O_APPEND | os.O_WRONLY
		w, err := os.OpenFile(f, flags, 0600)
		if err != nil {
			return nil, fmt.Errorf("log: failed to open log file: %v", err)
		}
		b.w = w
	}

	base := logging.NewLogBackend(b.w, "", 0)
	formatted := logging.NewBackendFormatter(base, logging.MustStringFormatter(format))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
	return b, nil
}

// GetLogger returns a per-module logger attached to the backend.
func (b *Backend) GetLogger(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}

func logLevelFromString(level string) (logging.Level, error) {
	if level == "" {
		return logging.NOTICE, nil
	}
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		return logging.NOTICE, fmt.Errorf("log: invalid log level '%v'", level)
	}
	return lvl, nil
}

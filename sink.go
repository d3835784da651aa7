// go-railpower
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-railpower.
//
// go-railpower is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-railpower is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-railpower; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package railpower

import (
	"io"
)

// ControlPath is the attribute exposed by the power-management driver.
const ControlPath = "/sys/class/pigpig/pogo_vcc_sel/value"

// Sink delivers a power command to whatever owns the rail state.
// FileSink is the production implementation; MemorySink is for tests.
type Sink interface {
	// Apply delivers cmd. It returns a *PowerError on failure.
	Apply(cmd Command) error
}

// controlFile is the handle FileSink writes through
type controlFile interface {
	io.Writer
	io.Closer
}

// FileSink writes commands into a driver control file.
//
// Every Apply opens the file fresh with truncation, writes the decimal code
// and closes it, so no bytes from an earlier command survive.
type FileSink struct {
	open func(path string) (controlFile, error)
	path string
}

// NewFileSink creates a sink writing to path. Production code uses
// ControlPath; other paths are useful in tests.
func NewFileSink(path string) *FileSink {
	return &FileSink{
		path: path,
		open: openControlFile,
	}
}

// Path returns the control file this sink writes to
func (s *FileSink) Path() string {
	return s.path
}

// Apply writes cmd as decimal ASCII text. The file is never created: a
// missing path is reported as an open failure.
func (s *FileSink) Apply(cmd Command) (err error) {
	f, err := s.open(s.path)
	if err != nil {
		return NewOpenError(s.path, cmd, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = NewWriteError("close", s.path, cmd, closeErr)
		}
	}()

	payload := []byte(cmd.Code())
	n, err := f.Write(payload)
	if err != nil {
		return NewWriteError("write", s.path, cmd, err)
	}
	if n != len(payload) {
		return NewWriteError("write", s.path, cmd, io.ErrShortWrite)
	}
	return nil
}

// Ensure FileSink implements Sink
var _ Sink = (*FileSink)(nil)

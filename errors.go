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
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrOpenFailed       = errors.New("control path open failed")
	ErrWriteFailed      = errors.New("control path write failed")
	ErrUnknownCommand   = errors.New("unknown power command")
	ErrUnknownRail      = errors.New("unknown rail")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ErrorKind classifies a PowerError by the step that failed
type ErrorKind int

const (
	// ErrorKindOpen means the control path could not be opened: missing
	// path, permission denied, or no matching driver on this hardware.
	ErrorKindOpen ErrorKind = iota + 1
	// ErrorKindWrite means the open succeeded but delivering the code did
	// not: device busy, value rejected by the driver, or an I/O error.
	ErrorKindWrite
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindOpen:
		return "open"
	case ErrorKindWrite:
		return "write"
	default:
		return "unknown"
	}
}

// PowerError reports a failed power command
type PowerError struct {
	Err     error
	Op      string
	Path    string
	Command Command
	Kind    ErrorKind
}

func (e *PowerError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("power %s (%s): %v", e.Op, e.Command, e.Err)
	}
	return fmt.Sprintf("power %s %s (%s): %v", e.Op, e.Path, e.Command, e.Err)
}

func (e *PowerError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrOpenFailed and ErrWriteFailed by kind.
func (e *PowerError) Is(target error) bool {
	switch target {
	case ErrOpenFailed:
		return e.Kind == ErrorKindOpen
	case ErrWriteFailed:
		return e.Kind == ErrorKindWrite
	default:
		return false
	}
}

// NewOpenError creates an open failure for path
func NewOpenError(path string, cmd Command, err error) *PowerError {
	return &PowerError{
		Op:      "open",
		Path:    path,
		Command: cmd,
		Err:     err,
		Kind:    ErrorKindOpen,
	}
}

// NewWriteError creates a write failure for path. op is "write" or "close".
func NewWriteError(op, path string, cmd Command, err error) *PowerError {
	return &PowerError{
		Op:      op,
		Path:    path,
		Command: cmd,
		Err:     err,
		Kind:    ErrorKindWrite,
	}
}

// IsOpenFailure reports whether err is, or wraps, an open failure
func IsOpenFailure(err error) bool {
	return errors.Is(err, ErrOpenFailed)
}

// IsWriteFailure reports whether err is, or wraps, a write failure
func IsWriteFailure(err error) bool {
	return errors.Is(err, ErrWriteFailed)
}

// asPowerError returns err unchanged if it already carries a PowerError,
// otherwise wraps it as a write failure raised by the sink.
func asPowerError(cmd Command, err error) error {
	var pe *PowerError
	if errors.As(err, &pe) {
		return err
	}
	return NewWriteError("apply", "", cmd, err)
}

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
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Option is a functional option for configuring a Controller
type Option func(*Controller) error

// WithSink sets where commands are delivered. Defaults to a FileSink on
// ControlPath.
func WithSink(sink Sink) Option {
	return func(c *Controller) error {
		if sink == nil {
			return fmt.Errorf("%w: nil sink", ErrInvalidParameter)
		}
		c.sink = sink
		return nil
	}
}

// WithLogger sets the logger for diagnostic records
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Controller) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", ErrInvalidParameter)
		}
		c.log = logger
		return nil
	}
}

// WithStrictCommands rejects codes outside the named command set instead of
// passing them through
func WithStrictCommands() Option {
	return func(c *Controller) error {
		c.strict = true
		return nil
	}
}

// WithSettleDelay makes SetPower wait d after a successful up command so the
// powered peripheral can come up before the caller talks to it.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Controller) error {
		if d < 0 {
			return fmt.Errorf("%w: negative settle delay %s", ErrInvalidParameter, d)
		}
		c.settle = d
		return nil
	}
}

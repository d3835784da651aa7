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
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Controller switches rails by sending commands to a Sink.
//
// Thread Safety: Controller serializes all writes with an internal mutex, so
// a single Controller can be shared. The rail state itself lives in the
// kernel driver and is never cached here.
type Controller struct {
	sink   Sink
	log    logrus.FieldLogger
	sleep  func(time.Duration)
	settle time.Duration
	mu     sync.Mutex
	strict bool
}

// pathReporter is implemented by sinks backed by a file path
type pathReporter interface {
	Path() string
}

// New creates a Controller writing to ControlPath unless WithSink is given
func New(opts ...Option) (*Controller, error) {
	c := &Controller{
		sink:  NewFileSink(ControlPath),
		log:   logrus.StandardLogger(),
		sleep: time.Sleep,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Sink returns the sink commands are delivered to
func (c *Controller) Sink() Sink {
	return c.sink
}

// SetPower delivers cmd to the rail driver.
//
// Every call is logged with its code. Unnamed codes are passed through with
// a warning, or rejected with ErrUnknownCommand when the controller was
// built WithStrictCommands. Driver failures come back as *PowerError.
func (c *Controller) SetPower(cmd Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPowerLocked(cmd)
}

// Enable switches rail on
func (c *Controller) Enable(rail Rail) error {
	if !rail.IsKnown() {
		return fmt.Errorf("%w: %s", ErrUnknownRail, rail)
	}
	return c.SetPower(rail.Up())
}

// Disable switches rail off
func (c *Controller) Disable(rail Rail) error {
	if !rail.IsKnown() {
		return fmt.Errorf("%w: %s", ErrUnknownRail, rail)
	}
	return c.SetPower(rail.Down())
}

// Sequence applies cmds in order without letting other callers interleave,
// and stops at the first failure. Commands after the failing one are not sent.
func (c *Controller) Sequence(cmds ...Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, cmd := range cmds {
		if err := c.setPowerLocked(cmd); err != nil {
			return fmt.Errorf("sequence step %d of %d: %w", i+1, len(cmds), err)
		}
	}
	return nil
}

func (c *Controller) setPowerLocked(cmd Command) error {
	entry := c.log.WithFields(logrus.Fields{
		"code":    int(cmd),
		"command": cmd.String(),
	})
	if pr, ok := c.sink.(pathReporter); ok {
		entry = entry.WithField("path", pr.Path())
	}

	if !cmd.IsKnown() {
		if c.strict {
			entry.Warn("rejected unknown power command")
			return fmt.Errorf("%w: code %d", ErrUnknownCommand, int(cmd))
		}
		entry.Warn("power command code is not a named command, passing through")
	}

	if err := c.sink.Apply(cmd); err != nil {
		err = asPowerError(cmd, err)
		entry.WithError(err).Error("power control failed")
		return err
	}

	entry.Debug("power control applied")

	if c.settle > 0 && cmd.IsUp() {
		c.sleep(c.settle)
	}
	return nil
}

var (
	defaultOnce       sync.Once
	defaultController *Controller
)

// Default returns the shared Controller for ControlPath
func Default() *Controller {
	defaultOnce.Do(func() {
		// New cannot fail without options
		defaultController, _ = New()
	})
	return defaultController
}

// SetPower delivers cmd through the shared default Controller
func SetPower(cmd Command) error {
	return Default().SetPower(cmd)
}

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
	"sync"
)

// MemorySink is an in-memory Sink that records applied commands.
// It is meant for testing code that drives a Controller.
type MemorySink struct {
	err     error
	applied []Command
	mu      sync.Mutex
}

// NewMemorySink creates an empty memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Apply records cmd, or returns the configured error without recording
func (m *MemorySink) Apply(cmd Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.applied = append(m.applied, cmd)
	return nil
}

// SetError makes subsequent Apply calls fail with err. nil clears it.
func (m *MemorySink) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Applied returns a copy of the commands applied so far
func (m *MemorySink) Applied() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Command(nil), m.applied...)
}

// Last returns the most recent command, if any
func (m *MemorySink) Last() (Command, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.applied) == 0 {
		return 0, false
	}
	return m.applied[len(m.applied)-1], true
}

// Reset clears recorded commands and any configured error
func (m *MemorySink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied = nil
	m.err = nil
}

// Ensure MemorySink implements Sink
var _ Sink = (*MemorySink)(nil)

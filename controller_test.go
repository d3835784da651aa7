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
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestController(t *testing.T, opts ...Option) (*Controller, *MemorySink, *logtest.Hook) {
	t.Helper()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	sink := NewMemorySink()

	opts = append([]Option{WithSink(sink), WithLogger(logger)}, opts...)
	ctrl, err := New(opts...)
	require.NoError(t, err)
	return ctrl, sink, hook
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "Defaults"},
		{name: "Memory_Sink", opts: []Option{WithSink(NewMemorySink())}},
		{name: "Nil_Sink", opts: []Option{WithSink(nil)}, wantErr: true},
		{name: "Nil_Logger", opts: []Option{WithLogger(nil)}, wantErr: true},
		{name: "Negative_Settle", opts: []Option{WithSettleDelay(-time.Second)}, wantErr: true},
		{name: "Strict", opts: []Option{WithStrictCommands(), WithSettleDelay(0)}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl, err := New(tt.opts...)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidParameter)
				assert.Nil(t, ctrl)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, ctrl.Sink())
		})
	}
}

func TestNew_DefaultSinkTargetsControlPath(t *testing.T) {
	t.Parallel()

	ctrl, err := New()
	require.NoError(t, err)

	sink, ok := ctrl.Sink().(*FileSink)
	require.True(t, ok)
	assert.Equal(t, ControlPath, sink.Path())
}

func TestController_SetPower(t *testing.T) {
	t.Parallel()

	for _, cmd := range Commands() {
		cmd := cmd
		t.Run(cmd.String(), func(t *testing.T) {
			t.Parallel()

			ctrl, sink, hook := newTestController(t)
			require.NoError(t, ctrl.SetPower(cmd))

			assert.Equal(t, []Command{cmd}, sink.Applied())

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, logrus.DebugLevel, entry.Level)
			assert.Equal(t, int(cmd), entry.Data["code"])
			assert.Equal(t, cmd.String(), entry.Data["command"])
		})
	}
}

func TestController_SetPowerFailureIsLoggedAndReturned(t *testing.T) {
	t.Parallel()

	ctrl, sink, hook := newTestController(t)
	sinkErr := NewOpenError(ControlPath, PSAMUp, fs.ErrNotExist)
	sink.SetError(sinkErr)

	err := ctrl.SetPower(PSAMUp)

	require.Error(t, err)
	assert.Same(t, sinkErr, err)
	assert.True(t, IsOpenFailure(err))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, int(PSAMUp), entry.Data["code"])
	assert.Equal(t, err, entry.Data[logrus.ErrorKey])
}

func TestController_SetPowerWrapsForeignSinkErrors(t *testing.T) {
	t.Parallel()

	ctrl, sink, _ := newTestController(t)
	sinkErr := errors.New("bus fault")
	sink.SetError(sinkErr)

	err := ctrl.SetPower(OTGUp)

	assert.True(t, IsWriteFailure(err))
	assert.ErrorIs(t, err, sinkErr)
}

func TestController_UnknownCodePassesThrough(t *testing.T) {
	t.Parallel()

	ctrl, sink, hook := newTestController(t)

	require.NoError(t, ctrl.SetPower(Command(17)))
	assert.Equal(t, []Command{17}, sink.Applied())

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, 17, entries[0].Data["code"])
	assert.Equal(t, logrus.DebugLevel, entries[1].Level)
}

func TestController_StrictRejectsUnknownCode(t *testing.T) {
	t.Parallel()

	ctrl, sink, hook := newTestController(t, WithStrictCommands())

	err := ctrl.SetPower(Command(3))

	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.Empty(t, sink.Applied())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	require.NoError(t, ctrl.SetPower(RFIDUp))
	assert.Equal(t, []Command{RFIDUp}, sink.Applied())
}

func TestController_LogsSinkPath(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	path := filepath.Join(t.TempDir(), "value")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	ctrl, err := New(WithSink(NewFileSink(path)), WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, ctrl.SetPower(RFIDUp))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, path, hook.LastEntry().Data["path"])

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "5", string(got))
}

func TestController_MissingControlPath(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()
	path := filepath.Join(t.TempDir(), "missing", "value")

	ctrl, err := New(WithSink(NewFileSink(path)), WithLogger(logger))
	require.NoError(t, err)

	err = ctrl.SetPower(DownForce)
	require.Error(t, err)
	assert.True(t, IsOpenFailure(err))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestController_EnableDisable(t *testing.T) {
	t.Parallel()

	ctrl, sink, _ := newTestController(t)

	for _, rail := range Rails() {
		require.NoError(t, ctrl.Enable(rail))
		require.NoError(t, ctrl.Disable(rail))
	}

	assert.Equal(t, []Command{
		RFIDUp, RFIDDown,
		PSAMUp, PSAMDown,
		IDUp, IDDown,
		MiscUp, MiscDown,
		OTGUp, OTGDown,
	}, sink.Applied())

	require.ErrorIs(t, ctrl.Enable(Rail(0)), ErrUnknownRail)
	require.ErrorIs(t, ctrl.Disable(Rail(9)), ErrUnknownRail)
	assert.Len(t, sink.Applied(), 10)
}

func TestController_SettleDelay(t *testing.T) {
	t.Parallel()

	ctrl, sink, _ := newTestController(t, WithSettleDelay(500*time.Millisecond))
	var slept []time.Duration
	ctrl.sleep = func(d time.Duration) { slept = append(slept, d) }

	require.NoError(t, ctrl.SetPower(PSAMUp))
	require.NoError(t, ctrl.SetPower(PSAMDown))
	require.NoError(t, ctrl.SetPower(UpForce))
	require.NoError(t, ctrl.SetPower(GPDown))

	sink.SetError(errors.New("busy"))
	require.Error(t, ctrl.SetPower(RFIDUp))

	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, slept)
}

func TestController_NoSettleByDefault(t *testing.T) {
	t.Parallel()

	ctrl, _, _ := newTestController(t)
	ctrl.sleep = func(time.Duration) { t.Error("unexpected settle wait") }

	require.NoError(t, ctrl.SetPower(UpForce))
}

func TestController_Sequence(t *testing.T) {
	t.Parallel()

	ctrl, sink, _ := newTestController(t)

	require.NoError(t, ctrl.Sequence(DownForce, PSAMUp, RFIDUp))
	assert.Equal(t, []Command{DownForce, PSAMUp, RFIDUp}, sink.Applied())
}

func TestController_SequenceStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	ctrl, sink, _ := newTestController(t, WithStrictCommands())

	err := ctrl.Sequence(PSAMUp, Command(2), RFIDUp)

	require.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), "step 2 of 3")
	assert.Equal(t, []Command{PSAMUp}, sink.Applied())
}

// serializingSink fails the test if two Apply calls overlap
type serializingSink struct {
	t      *testing.T
	mu     sync.Mutex
	active int
	count  int
}

func (s *serializingSink) Apply(Command) error {
	s.mu.Lock()
	s.active++
	if s.active > 1 {
		s.t.Error("concurrent Apply calls")
	}
	s.count++
	s.mu.Unlock()

	time.Sleep(time.Millisecond)

	s.mu.Lock()
	s.active--
	s.mu.Unlock()
	return nil
}

func TestController_SerializesConcurrentCalls(t *testing.T) {
	t.Parallel()

	sink := &serializingSink{t: t}
	logger, _ := logtest.NewNullLogger()
	ctrl, err := New(WithSink(sink), WithLogger(logger))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(cmd Command) {
			defer wg.Done()
			assert.NoError(t, ctrl.SetPower(cmd))
		}(Commands()[i%len(Commands())])
	}
	wg.Wait()

	assert.Equal(t, 16, sink.count)
}

func TestController_ConcurrentWritesNeverInterleave(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "value")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	logger, _ := logtest.NewNullLogger()
	ctrl, err := New(WithSink(NewFileSink(path)), WithLogger(logger))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(cmd Command) {
			defer wg.Done()
			assert.NoError(t, ctrl.SetPower(cmd))
		}([]Command{UpForce, DownForce, MiscUp, RFIDUp}[i%4])
	}
	wg.Wait()

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, []string{"25", "24", "11", "5"}, string(got))
}

func TestDefault_IsShared(t *testing.T) {
	t.Parallel()

	first := Default()
	require.NotNil(t, first)
	assert.Same(t, first, Default())

	sink, ok := first.Sink().(*FileSink)
	require.True(t, ok)
	assert.Equal(t, ControlPath, sink.Path())
}

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

/*
Package railpower switches the peripheral voltage rails of a handheld
scanner terminal by writing power-state codes into the kernel control file
exposed by the platform's power-management driver.

Each rail (RFID reader, PSAM smartcard slot, ID module, OTG port and misc
peripherals) has an up and a down command. Two force commands switch every
rail at once. A command is delivered as its decimal code, written as ASCII
text with no trailing newline, into ControlPath.

Basic Usage:

	import "github.com/ZaparooProject/go-railpower"

	// Power the RFID reader using the shared default controller
	if err := railpower.SetPower(railpower.RFIDUp); err != nil {
	    log.Printf("rfid rail: %v", err)
	}

	// Or build a controller with options
	ctrl, err := railpower.New(
	    railpower.WithLogger(logger),
	    railpower.WithSettleDelay(500*time.Millisecond),
	)
	if err != nil {
	    return err
	}
	if err := ctrl.Enable(railpower.RailPSAM); err != nil {
	    return err
	}

Error Handling:

Failures are returned, never swallowed. The error can be classified:

	if railpower.IsOpenFailure(err) {
	    // control path missing or not writable, likely wrong hardware
	}
	if errors.Is(err, railpower.ErrWriteFailed) {
	    // driver rejected the value or the device was busy
	}

Testing:

The file is only touched through the Sink interface. Use MemorySink, or any
Sink implementation, with WithSink to run without real hardware.

Thread Safety:

A Controller serializes its writes, so one Controller may be shared between
goroutines. Separate Controllers writing to the same path are not
coordinated with each other; share one instead.
*/
package railpower

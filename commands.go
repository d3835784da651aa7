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
	"strconv"
	"strings"
)

// Command is a power-state code understood by the rail driver.
//
// Any int converts to a Command. Codes outside the named set are passed
// through to the driver unchanged; see Controller for how they are handled.
type Command int

// Power commands. Codes are fixed by the driver and are not contiguous.
const (
	GPDown    Command = 0
	RFIDDown  Command = 4
	RFIDUp    Command = 5
	PSAMDown  Command = 6
	PSAMUp    Command = 7
	IDDown    Command = 8
	IDUp      Command = 9
	MiscDown  Command = 10
	MiscUp    Command = 11
	OTGDown   Command = 12
	OTGUp     Command = 13
	DownForce Command = 24
	UpForce   Command = 25
)

var commandNames = map[Command]string{
	GPDown:    "GP_DOWN",
	RFIDDown:  "RFID_DOWN",
	RFIDUp:    "RFID_UP",
	PSAMDown:  "PSAM_DOWN",
	PSAMUp:    "PSAM_UP",
	IDDown:    "ID_DOWN",
	IDUp:      "ID_UP",
	MiscDown:  "MISC_DOWN",
	MiscUp:    "MISC_UP",
	OTGDown:   "OTG_DOWN",
	OTGUp:     "OTG_UP",
	DownForce: "DOWN_FORCE",
	UpForce:   "UP_FORCE",
}

// Commands returns every named command in ascending code order.
func Commands() []Command {
	return []Command{
		GPDown,
		RFIDDown, RFIDUp,
		PSAMDown, PSAMUp,
		IDDown, IDUp,
		MiscDown, MiscUp,
		OTGDown, OTGUp,
		DownForce, UpForce,
	}
}

// String returns the symbolic name, or Command(n) for unnamed codes.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// IsKnown reports whether c is one of the named commands.
func (c Command) IsKnown() bool {
	_, ok := commandNames[c]
	return ok
}

// Code returns the payload written to the control file.
func (c Command) Code() string {
	return strconv.Itoa(int(c))
}

// IsUp reports whether c switches a rail, or all rails, on.
func (c Command) IsUp() bool {
	if c == UpForce {
		return true
	}
	_, ok := c.Rail()
	return ok && c%2 == 1
}

// Rail returns the rail addressed by c. GPDown, the force commands and
// unnamed codes address no single rail.
func (c Command) Rail() (Rail, bool) {
	for _, r := range rails {
		if r.Up() == c || r.Down() == c {
			return r, true
		}
	}
	return 0, false
}

// ParseCommand resolves a command from its symbolic name or decimal code.
// Names are case-insensitive and may carry a VCC_ prefix ("vcc_rfid_up").
// Decimal codes are accepted even when they are not in the named set.
func ParseCommand(s string) (Command, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty command", ErrInvalidParameter)
	}

	if n, err := strconv.Atoi(s); err == nil {
		return Command(n), nil
	}

	name := strings.TrimPrefix(strings.ToUpper(s), "VCC_")
	for c, known := range commandNames {
		if known == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Rail identifies an independently switchable supply line.
type Rail int

// Switchable rails.
const (
	RailRFID Rail = iota + 1
	RailPSAM
	RailID
	RailMisc
	RailOTG
)

var rails = []Rail{RailRFID, RailPSAM, RailID, RailMisc, RailOTG}

// railDownCodes holds the down command of each rail; up is always down+1.
var railDownCodes = map[Rail]Command{
	RailRFID: RFIDDown,
	RailPSAM: PSAMDown,
	RailID:   IDDown,
	RailMisc: MiscDown,
	RailOTG:  OTGDown,
}

var railNames = map[Rail]string{
	RailRFID: "RFID",
	RailPSAM: "PSAM",
	RailID:   "ID",
	RailMisc: "MISC",
	RailOTG:  "OTG",
}

// Rails returns every switchable rail.
func Rails() []Rail {
	return append([]Rail(nil), rails...)
}

// String returns the rail name.
func (r Rail) String() string {
	if name, ok := railNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rail(%d)", int(r))
}

// IsKnown reports whether r is a defined rail.
func (r Rail) IsKnown() bool {
	_, ok := railDownCodes[r]
	return ok
}

// Down returns the command switching r off, or -1 for an unknown rail.
func (r Rail) Down() Command {
	if c, ok := railDownCodes[r]; ok {
		return c
	}
	return -1
}

// Up returns the command switching r on, or -1 for an unknown rail.
func (r Rail) Up() Command {
	if c, ok := railDownCodes[r]; ok {
		return c + 1
	}
	return -1
}

/*
 * Copyright (C) 2019-Present Pivotal Software, Inc. All rights reserved.
 *
 * This program and the accompanying materials are made available under the terms
 * of the Apache License, Version 2.0 (the "License”); you may not use this file
 * except in compliance with the License. You may obtain a copy of the License at:
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed
 * under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR
 * CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 */

package sim

import (
	"strconv"
	"strings"
)

// Advance applies one turn to the aggregate: an empty action is an idle
// tick, anything else is a player command. It returns the turn's event log
// and whether the player asked to quit. Commands are validated in full
// before any mutation, so a malformed command never leaves the aggregate
// half-changed.
func Advance(s *State, action string) (events []string, quit bool) {
	s.Events = make([]string, 0)

	fields := strings.Fields(action)
	if len(fields) == 0 {
		Tick(s)
		return s.Events, false
	}

	verb := fields[0]
	args := fields[1:]

	if verb == "quit" || verb == "exit" {
		return s.Events, true
	}

	if s.Failed {
		s.eventf(GlyphFail, "the run is already over, final score %d", s.Score)
		return s.Events, false
	}

	switch verb {
	case "go":
		goCommand(s, args)
	case "dump":
		dumpCommand(s, args)
	case "close":
		closeCommand(s, args)
	default:
		s.eventf(GlyphWarn, "unrecognized action %q, try go, dump, close, quit or an empty line to wait", action)
	}

	return s.Events, false
}

// goCommand queues a destination floor on a car.
func goCommand(s *State, args []string) {
	if len(args) != 2 {
		s.eventf(GlyphWarn, "go needs a car index and a floor index")
		return
	}

	car, ok := parseIndex(s, "go", args[0], len(s.Elevators))
	if !ok {
		return
	}
	floor, ok := parseIndex(s, "go", args[1], len(s.Floors))
	if !ok {
		return
	}

	e := s.Elevators[car]
	e.GoingTo = append(e.GoingTo, floor)
	s.eventf(GlyphInfo, "car %d will visit floor %d", car, floor)
}

// dumpCommand discards every rider in a car, unscored. Only allowed at the
// top floor.
func dumpCommand(s *State, args []string) {
	if len(args) != 1 {
		s.eventf(GlyphWarn, "dump needs a car index")
		return
	}

	car, ok := parseIndex(s, "dump", args[0], len(s.Elevators))
	if !ok {
		return
	}

	e := s.Elevators[car]
	if e.Floor != s.TopFloor() {
		s.eventf(GlyphWarn, "car %d can only be dumped at the top floor, it is at floor %d", car, e.Floor)
		return
	}

	count := len(e.Passengers)
	e.Passengers = make([]Passenger, 0)
	s.eventf(GlyphInfo, "car %d dumps %d passengers off the roof", car, count)
}

// closeCommand forces a car's doors shut, interrupting any boarding.
func closeCommand(s *State, args []string) {
	if len(args) != 1 {
		s.eventf(GlyphWarn, "close needs a car index")
		return
	}

	car, ok := parseIndex(s, "close", args[0], len(s.Elevators))
	if !ok {
		return
	}

	s.Elevators[car].closeDoors()
	s.eventf(GlyphInfo, "car %d forces its doors shut", car)
}

// parseIndex validates one non-negative in-range integer argument and logs
// a warning event on failure.
func parseIndex(s *State, verb string, arg string, limit int) (int, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		s.eventf(GlyphWarn, "%s: %q is not a number", verb, arg)
		return 0, false
	}
	if n < 0 || n >= limit {
		s.eventf(GlyphWarn, "%s: index %d is out of range, valid indexes are 0 to %d", verb, n, limit-1)
		return 0, false
	}

	return n, true
}

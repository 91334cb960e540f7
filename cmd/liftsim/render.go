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

package main

import (
	"fmt"
	"io"
	"strings"

	"liftsim/pkg/sim"
)

var kindMarks = map[sim.Kind]string{
	sim.Ordinary: "o",
	sim.Brick:    "#",
	sim.VIP:      "V",
	sim.Mechanic: "M",
}

// Render draws the building top-down: each floor's waiting line on the
// left, every car that is level with the floor on the right.
func (sn *Session) Render(w io.Writer) {
	s := sn.state.Snapshot()

	fmt.Fprintf(w, "\n t %-6d %s %-6d %s %-6d\n",
		s.Time,
		au.Cyan("score"),
		s.Score,
		au.Cyan("power"),
		s.Power,
	)

	for floor := len(s.Floors) - 1; floor >= 0; floor-- {
		cars := ""
		for i, e := range s.Elevators {
			if e.Floor != floor {
				continue
			}
			cars += " " + renderCar(i, e)
		}

		fmt.Fprintf(w, " %2d %-12s |%s\n", floor, waitingMarks(s.Floors[floor]), cars)
	}
}

func renderCar(i int, e *sim.Elevator) string {
	riders := ""
	for _, p := range e.Passengers {
		riders += kindMarks[p.Kind]
	}

	doors := "]%s["
	if e.DoorsOpen {
		doors = "[%s]"
	}

	car := fmt.Sprintf(doors, riders)
	if len(e.GoingTo) > 0 {
		going := make([]string, 0, len(e.GoingTo))
		for _, f := range e.GoingTo {
			going = append(going, fmt.Sprintf("%d", f))
		}
		car += "→" + strings.Join(going, ",")
	}

	return fmt.Sprintf("%d:%s", i, car)
}

func waitingMarks(f *sim.Floor) string {
	marks := ""
	for _, p := range f.Passengers {
		marks += kindMarks[p.Kind]
	}
	return marks
}

// PrintEvents colorizes each event line of the turn just played on its
// leading severity glyph.
func (sn *Session) PrintEvents(w io.Writer) {
	for _, line := range sn.state.Events {
		switch {
		case strings.HasPrefix(line, sim.GlyphFail):
			fmt.Fprintln(w, au.Red(line))
		case strings.HasPrefix(line, sim.GlyphWarn):
			fmt.Fprintln(w, au.Brown(line))
		case strings.HasPrefix(line, sim.GlyphGood):
			fmt.Fprintln(w, au.Green(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
}

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

// Tick advances the simulation by one discrete time step: each car steps
// once in index order, then the spawner runs once, then the termination
// condition is checked. A failed run never ticks again.
func Tick(s *State) {
	if s.Failed {
		s.eventf(GlyphFail, "the run is already over, final score %d", s.Score)
		return
	}

	s.Time++

	for i, e := range s.Elevators {
		if e.DoorsOpen {
			stepDoorsOpen(s, i, e)
		} else {
			stepDoorsClosed(s, i, e)
		}
	}

	s.spawner.Spawn(s)

	if s.Power <= 0 {
		s.fail("the power is exhausted")
	}
}

// stepDoorsOpen handles the exchange at the door. Only the rider at the
// door may exit. At most one thing happens per tick: an exit, a step-aside,
// a boarding, or the doors closing.
func stepDoorsOpen(s *State, i int, e *Elevator) {
	floor := s.Floors[e.Floor]

	if anyWantsOut(e) {
		front := e.unboard()
		if front.WantsOut(e.Floor) {
			disembark(s, i, front)
		} else {
			// The rider at the door is in the way of whoever wants this
			// floor; they step out ahead of the waiting line and must
			// re-board later.
			floor.requeue(front)
			s.eventf(GlyphInfo, "a %s passenger steps out of car %d's way at floor %d", front.Kind, i, e.Floor)
		}
		return
	}

	if len(floor.Passengers) > 0 && !e.Full() {
		p := floor.dequeue()
		e.board(p)
		s.eventf(GlyphInfo, "a %s passenger boards car %d at floor %d", p.Kind, i, e.Floor)
		if e.Full() {
			s.eventf(GlyphWarn, "car %d is full", i)
		}
		return
	}

	e.closeDoors()
	if len(e.GoingTo) == 0 {
		s.eventf(GlyphInfo, "car %d is ready to move", i)
	}
}

// stepDoorsClosed works through the destination queue: pop and reopen on
// arrival, otherwise move one floor toward the head destination. Moving
// away from the top floor burns one unit of power.
func stepDoorsClosed(s *State, i int, e *Elevator) {
	if len(e.GoingTo) == 0 {
		return
	}

	head := e.GoingTo[0]
	switch {
	case head == e.Floor:
		e.GoingTo = e.GoingTo[1:]
		e.openDoors()
		s.eventf(GlyphInfo, "car %d opens its doors at floor %d", i, e.Floor)
	case head < e.Floor:
		e.Floor--
		s.Power--
	default:
		e.Floor++
	}
}

func anyWantsOut(e *Elevator) bool {
	for _, p := range e.Passengers {
		if p.WantsOut(e.Floor) {
			return true
		}
	}
	return false
}

// disembark applies the kind's effect table entry and logs it.
func disembark(s *State, i int, p Passenger) {
	eff := s.effects[p.Kind]
	s.Score += eff.scoreDelta
	s.Power += eff.powerDelta
	s.eventf(eff.glyph, "%s at floor %d after %d ticks", eff.note, s.Elevators[i].Floor, s.Time-p.CreatedAt)
}

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
	"github.com/looplab/fsm"
)

type Kind int

const (
	Ordinary Kind = iota
	Brick
	VIP
	Mechanic

	numKinds = 4
)

var kindNames = [numKinds]string{"ordinary", "brick", "VIP", "mechanic"}

func (k Kind) String() string {
	if k < Ordinary || k >= numKinds {
		return kindNames[Ordinary]
	}
	return kindNames[k]
}

// Passenger is a rider waiting on a floor or riding in a car. Kind is fixed
// at creation.
type Passenger struct {
	TargetFloor int
	Kind        Kind
	CreatedAt   int
}

// NewPassenger falls back to Ordinary when the kind is outside the closed set.
func NewPassenger(targetFloor int, kind Kind, createdAt int) Passenger {
	if kind < Ordinary || kind >= numKinds {
		kind = Ordinary
	}

	return Passenger{
		TargetFloor: targetFloor,
		Kind:        kind,
		CreatedAt:   createdAt,
	}
}

func (p Passenger) WantsOut(floor int) bool {
	return p.TargetFloor == floor
}

const (
	StateDoorsOpen   = "DoorsOpen"
	StateDoorsClosed = "DoorsClosed"

	closeDoors = "close_doors"
	openDoors  = "open_doors"
)

var (
	evtCloseDoors = fsm.EventDesc{Name: closeDoors, Src: []string{StateDoorsOpen}, Dst: StateDoorsClosed}
	evtOpenDoors  = fsm.EventDesc{Name: openDoors, Src: []string{StateDoorsClosed}, Dst: StateDoorsOpen}
)

// Elevator is a car shuttling passengers between floors. Passengers is used
// front-first on both sides: the rider at index 0 stands at the door, and
// only that rider may exit. GoingTo is a FIFO queue of pending destinations.
//
// The door lifecycle is driven through an FSM; DoorsOpen mirrors its current
// state so that snapshots stay plain data.
type Elevator struct {
	Floor      int
	DoorsOpen  bool
	Capacity   int // 0 means unbounded
	GoingTo    []int
	Passengers []Passenger

	// excluded from deep copies: snapshots are passive views and carry
	// only the DoorsOpen mirror
	doors *fsm.FSM `copy:"-"`
}

func NewElevator(floor int, capacity int) *Elevator {
	e := &Elevator{
		Floor:      floor,
		DoorsOpen:  true,
		Capacity:   capacity,
		GoingTo:    make([]int, 0),
		Passengers: make([]Passenger, 0),
	}

	e.doors = fsm.NewFSM(
		StateDoorsOpen,
		fsm.Events{
			evtCloseDoors,
			evtOpenDoors,
		},
		fsm.Callbacks{
			"enter_state": func(ev *fsm.Event) {
				e.DoorsOpen = ev.Dst == StateDoorsOpen
			},
		},
	)

	return e
}

func (e *Elevator) Full() bool {
	return e.Capacity > 0 && len(e.Passengers) >= e.Capacity
}

// board moves a passenger in at the door side of the car.
func (e *Elevator) board(p Passenger) {
	e.Passengers = append([]Passenger{p}, e.Passengers...)
}

// unboard removes the rider standing at the door.
func (e *Elevator) unboard() Passenger {
	p := e.Passengers[0]
	e.Passengers = e.Passengers[1:]
	return p
}

func (e *Elevator) openDoors() {
	e.fireDoorEvent(openDoors)
}

func (e *Elevator) closeDoors() {
	e.fireDoorEvent(closeDoors)
}

func (e *Elevator) fireDoorEvent(name string) {
	err := e.doors.Event(name)
	if err != nil {
		switch err.(type) {
		case fsm.InvalidEventError:
			// doors already in the requested state
		default:
			panic(err.Error())
		}
	}
}

// Floor is a waiting area holding a FIFO queue of passengers.
type Floor struct {
	Passengers []Passenger
}

func NewFloor() *Floor {
	return &Floor{Passengers: make([]Passenger, 0)}
}

// enqueue adds a passenger at the back of the waiting line.
func (f *Floor) enqueue(p Passenger) {
	f.Passengers = append(f.Passengers, p)
}

// requeue puts a passenger back at the head of the waiting line, ahead of
// everyone already waiting. Used for riders stepped out of the way of the
// door; this queue-jumping is deliberate.
func (f *Floor) requeue(p Passenger) {
	f.Passengers = append([]Passenger{p}, f.Passengers...)
}

// dequeue removes the passenger at the head of the waiting line.
func (f *Floor) dequeue() Passenger {
	p := f.Passengers[0]
	f.Passengers = f.Passengers[1:]
	return p
}

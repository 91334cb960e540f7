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
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Event log severity glyphs. The log is plain UTF-8; renderers may colorize
// on the leading glyph.
const (
	GlyphInfo = "·"
	GlyphGood = "✔"
	GlyphWarn = "⚠"
	GlyphFail = "✘"
)

// Config carries the simulation parameters. It is supplied once at
// construction and never changes afterwards.
type Config struct {
	FloorCount    int
	ElevatorCount int
	ArrivalRate   float64 // probability per tick of a new arrival
	Capacity      int     // per car; 0 means unbounded
	InitialPower  int
	VIPBonus      int
	MechanicBonus int
	KindWeights   [numKinds]int
	Seed          int64
}

const (
	DefaultVIPBonus      = 10
	DefaultMechanicBonus = 5
)

// DefaultKindWeights skews arrivals heavily towards ordinary riders.
var DefaultKindWeights = [numKinds]int{70, 10, 10, 10}

func (c Config) validate() error {
	if c.FloorCount < 2 {
		return fmt.Errorf("need at least 2 floors, got %d", c.FloorCount)
	}
	if c.ElevatorCount < 1 {
		return fmt.Errorf("need at least 1 elevator, got %d", c.ElevatorCount)
	}
	if c.ArrivalRate < 0.0 || c.ArrivalRate > 1.0 {
		return fmt.Errorf("arrival rate must be in [0, 1], got %f", c.ArrivalRate)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must not be negative, got %d", c.Capacity)
	}
	if c.InitialPower < 1 {
		return fmt.Errorf("initial power must be positive, got %d", c.InitialPower)
	}

	total := 0
	for k, w := range c.KindWeights {
		if w < 0 {
			return fmt.Errorf("weight for %s passengers must not be negative, got %d", Kind(k), w)
		}
		total += w
	}
	if total == 0 {
		return fmt.Errorf("passenger kind weights must not all be zero")
	}

	return nil
}

// effect describes what disembarking does for one passenger kind.
type effect struct {
	scoreDelta int
	powerDelta int
	glyph      string
	note       string
}

// State is the aggregate root. It is owned by the driving loop and mutated
// exclusively through Advance; Events holds the log of the turn just
// computed and is replaced on the next turn.
type State struct {
	Config    Config
	Time      int
	Score     int
	Power     int
	Failed    bool
	Floors    []*Floor
	Elevators []*Elevator
	Events    []string

	spawner *Spawner
	effects [numKinds]effect
}

// NewState validates the configuration and builds the initial aggregate:
// empty floors, all cars parked at floor 0 with doors open. Configuration
// errors surface here, before any turn can execute.
func NewState(cfg Config) (*State, error) {
	if cfg.VIPBonus == 0 {
		cfg.VIPBonus = DefaultVIPBonus
	}
	if cfg.MechanicBonus == 0 {
		cfg.MechanicBonus = DefaultMechanicBonus
	}
	zeroWeights := [numKinds]int{}
	if cfg.KindWeights == zeroWeights {
		cfg.KindWeights = DefaultKindWeights
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	s := &State{
		Config:  cfg,
		Power:   cfg.InitialPower,
		Events:  make([]string, 0),
		spawner: NewSpawner(cfg.Seed, cfg.ArrivalRate, cfg.KindWeights),
		effects: [numKinds]effect{
			Ordinary: {scoreDelta: 1, glyph: GlyphGood, note: "an ordinary passenger steps out"},
			Brick:    {scoreDelta: -5, glyph: GlyphWarn, note: "a brick is hauled out, dead weight all the way"},
			VIP:      {scoreDelta: cfg.VIPBonus, glyph: GlyphGood, note: "a VIP steps out, bonus earned"},
			Mechanic: {powerDelta: cfg.MechanicBonus, glyph: GlyphGood, note: "a mechanic steps out and tops up the power"},
		},
	}

	for i := 0; i < cfg.FloorCount; i++ {
		s.Floors = append(s.Floors, NewFloor())
	}
	for i := 0; i < cfg.ElevatorCount; i++ {
		s.Elevators = append(s.Elevators, NewElevator(0, cfg.Capacity))
	}

	return s, nil
}

// TopFloor is the only floor where cars may be dumped.
func (s *State) TopFloor() int {
	return len(s.Floors) - 1
}

func (s *State) validFloor(f int) bool {
	return f >= 0 && f < len(s.Floors)
}

func (s *State) validElevator(e int) bool {
	return e >= 0 && e < len(s.Elevators)
}

// Snapshot returns a deep copy of the aggregate for rendering or
// serialization. Snapshots are passive views: they carry the full data model
// but cannot be advanced.
func (s *State) Snapshot() *State {
	snap := new(State)
	if err := deepcopy.Copy(snap, s); err != nil {
		panic(err.Error())
	}
	return snap
}

func (s *State) eventf(glyph string, format string, a ...interface{}) {
	s.Events = append(s.Events, fmt.Sprintf(glyph+" "+format, a...))
}

// fail trips the terminal flag. Failure is monotone: after this, no turn
// mutates floors, elevators, score or power again.
func (s *State) fail(reason string) {
	s.Failed = true
	s.eventf(GlyphFail, "%s, the run is over with a final score of %d", reason, s.Score)
}

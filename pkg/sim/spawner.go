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
	"math/rand"
)

// Spawner generates passenger arrivals. It owns its own generator so runs
// are reproducible from a seed.
type Spawner struct {
	rng         *rand.Rand
	arrivalRate float64
	weights     [numKinds]int
	totalWeight int
}

func NewSpawner(seed int64, arrivalRate float64, weights [numKinds]int) *Spawner {
	total := 0
	for _, w := range weights {
		total += w
	}

	return &Spawner{
		rng:         rand.New(rand.NewSource(seed)),
		arrivalRate: arrivalRate,
		weights:     weights,
		totalWeight: total,
	}
}

// Spawn produces zero or one new passenger. On a spawn it picks an origin
// uniformly, a destination uniformly among all other floors, and a kind by
// weighted draw, then joins the origin floor's waiting line and logs the
// arrival.
func (sp *Spawner) Spawn(s *State) {
	if sp.rng.Float64() >= sp.arrivalRate {
		return
	}

	origin := sp.rng.Intn(len(s.Floors))
	target := sp.rng.Intn(len(s.Floors) - 1)
	if target >= origin {
		target++
	}

	p := NewPassenger(target, sp.drawKind(), s.Time)
	s.Floors[origin].enqueue(p)
	s.eventf(GlyphInfo, "a %s passenger arrives at floor %d, heading for floor %d", p.Kind, origin, p.TargetFloor)
}

// drawKind subtracts each kind's weight from a uniform draw in
// [0, totalWeight) in enumeration order. Exhausting the table means the
// weights and the total disagree, which is an internal defect.
func (sp *Spawner) drawKind() Kind {
	draw := sp.rng.Intn(sp.totalWeight)
	for k := Ordinary; k < numKinds; k++ {
		draw -= sp.weights[k]
		if draw < 0 {
			return k
		}
	}

	panic(fmt.Sprintf("weighted kind draw exhausted its table, weights %v", sp.weights))
}

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

package data

import (
	"path/filepath"
	"testing"

	"github.com/bvinc/go-sqlite-lite/sqlite3"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftsim/pkg/sim"
)

func TestStorer(t *testing.T) {
	spec.Run(t, "RunStore", testRunStore, spec.Report(report.Terminal{}))
}

func testRunStore(t *testing.T, describe spec.G, it spec.S) {
	var dbFile string
	var runId int64
	var subject Storer

	it.Before(func() {
		dbFile = filepath.Join(t.TempDir(), "liftsim.db")
		subject = NewRunStore()

		state, err := sim.NewState(sim.Config{
			FloorCount:    3,
			ElevatorCount: 1,
			InitialPower:  20,
		})
		require.NoError(t, err)

		_, _ = sim.Advance(state, "go 0 2")
		events, _ := sim.Advance(state, "")

		turns := []TurnRecord{
			{Turn: 0, Action: "go 0 2", Score: 0, Power: 20, Events: []string{"· car 0 will visit floor 2"}},
			{Turn: 1, Action: "", Score: state.Score, Power: state.Power, Events: events},
		}

		runId, err = subject.Store(dbFile, state.Config, state, turns, "liftsim_test")
		require.NoError(t, err)
	})

	describe("Store", func() {
		it("returns a usable run id", func() {
			assert.True(t, runId > 0)
		})

		it("records one row per turn, queryable as a score curve", func() {
			conn, err := sqlite3.Open(dbFile)
			require.NoError(t, err)
			defer conn.Close()

			stmt, err := conn.Prepare(ScoreCurveQuery, runId)
			require.NoError(t, err)
			defer stmt.Close()

			var turn, score, power int
			var action string
			rows := 0
			for {
				hasRow, err := stmt.Step()
				require.NoError(t, err)
				if !hasRow {
					break
				}

				err = stmt.Scan(&turn, &action, &score, &power)
				require.NoError(t, err)
				assert.Equal(t, rows, turn)
				rows++
			}

			assert.Equal(t, 2, rows)
		})

		it("records the event trace in order", func() {
			conn, err := sqlite3.Open(dbFile)
			require.NoError(t, err)
			defer conn.Close()

			stmt, err := conn.Prepare(EventTraceQuery, runId)
			require.NoError(t, err)
			defer stmt.Close()

			lines := make([]string, 0)
			for {
				hasRow, err := stmt.Step()
				require.NoError(t, err)
				if !hasRow {
					break
				}

				var turn int
				var line string
				err = stmt.Scan(&turn, &line)
				require.NoError(t, err)
				lines = append(lines, line)
			}

			require.True(t, len(lines) >= 1)
			assert.Contains(t, lines[0], "will visit floor 2")
		})

		it("appends further runs to the same file", func() {
			state, err := sim.NewState(sim.Config{
				FloorCount:    3,
				ElevatorCount: 1,
				InitialPower:  20,
			})
			require.NoError(t, err)

			secondId, err := NewRunStore().Store(dbFile, state.Config, state, nil, "liftsim_test")
			require.NoError(t, err)

			assert.Equal(t, runId+1, secondId)
		})
	})
}

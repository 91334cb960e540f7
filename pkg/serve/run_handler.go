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
 *
 */

package serve

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"liftsim/pkg/data"
	"liftsim/pkg/sim"
)

// maxIdleTurns bounds the free-running tail of a scripted run so a request
// cannot spin forever on a scenario that never fails.
const maxIdleTurns = 10000

type runRequest struct {
	FloorCount    int      `json:"floor_count"`
	ElevatorCount int      `json:"elevator_count"`
	ArrivalRate   float64  `json:"arrival_rate"`
	Capacity      int      `json:"capacity"`
	InitialPower  int      `json:"initial_power"`
	Seed          int64    `json:"seed"`
	Actions       []string `json:"actions"`
	IdleTurns     int      `json:"idle_turns"`
}

type turnLine struct {
	Turn   int      `json:"turn"`
	Action string   `json:"action"`
	Score  int      `json:"score"`
	Power  int      `json:"power"`
	Events []string `json:"events"`
}

type runResponse struct {
	RunId      int64      `json:"run_id"`
	FinalScore int        `json:"final_score"`
	FinalPower int        `json:"final_power"`
	Ticks      int        `json:"ticks"`
	Failed     bool       `json:"failed"`
	Turns      []turnLine `json:"turns"`
}

// NewRunHandler builds the /run handler: decode a scenario, execute its
// scripted actions plus any trailing idle turns, store the telemetry, and
// answer with the full turn-by-turn trace.
func NewRunHandler(dbFile string, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		req := runRequest{
			FloorCount:    4,
			ElevatorCount: 1,
			ArrivalRate:   0.1,
			InitialPower:  100,
			IdleTurns:     100,
		}
		if r.Body != nil {
			err := json.NewDecoder(r.Body).Decode(&req)
			if err != nil && err != io.EOF {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		if req.IdleTurns < 0 || req.IdleTurns > maxIdleTurns {
			req.IdleTurns = maxIdleTurns
		}

		cfg := sim.Config{
			FloorCount:    req.FloorCount,
			ElevatorCount: req.ElevatorCount,
			ArrivalRate:   req.ArrivalRate,
			Capacity:      req.Capacity,
			InitialPower:  req.InitialPower,
			Seed:          req.Seed,
		}

		state, err := sim.NewState(cfg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		turns := make([]data.TurnRecord, 0)
		lines := make([]turnLine, 0)

		record := func(turn int, action string, events []string) {
			turns = append(turns, data.TurnRecord{
				Turn:   turn,
				Action: action,
				Score:  state.Score,
				Power:  state.Power,
				Events: events,
			})
			lines = append(lines, turnLine{
				Turn:   turn,
				Action: action,
				Score:  state.Score,
				Power:  state.Power,
				Events: events,
			})
		}

		turn := 0
		for _, action := range req.Actions {
			events, quit := sim.Advance(state, action)
			record(turn, action, events)
			turn++
			if quit || state.Failed {
				break
			}
		}
		for i := 0; i < req.IdleTurns && !state.Failed; i++ {
			events, _ := sim.Advance(state, "")
			record(turn, "", events)
			turn++
		}

		runId, err := data.NewRunStore().Store(dbFile, state.Config, state, turns, "liftsim_web")
		if err != nil {
			logger.Errorf("there was an error saving data: %s", err.Error())
			runId = -1
		}

		resp := runResponse{
			RunId:      runId,
			FinalScore: state.Score,
			FinalPower: state.Power,
			Ticks:      state.Time,
			Failed:     state.Failed,
			Turns:      lines,
		}

		err = json.NewEncoder(w).Encode(resp)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
}

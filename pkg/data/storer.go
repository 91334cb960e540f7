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
	"time"

	"github.com/bvinc/go-sqlite-lite/sqlite3"

	"liftsim/pkg/sim"
)

// TurnRecord is one turn of a completed run as collected by a driver: the
// action taken (empty for an idle tick), the score and power after the turn,
// and the turn's event log.
type TurnRecord struct {
	Turn   int
	Action string
	Score  int
	Power  int
	Events []string
}

type Storer interface {
	Store(
		dbFileName string,
		cfg sim.Config,
		final *sim.State,
		turns []TurnRecord,
		origin string,
	) (runId int64, err error)
}

type storer struct {
	conn   *sqlite3.Conn
	cfg    sim.Config
	final  *sim.State
	turns  []TurnRecord
	origin string
}

func NewRunStore() Storer {
	return &storer{}
}

func (s *storer) Store(
	dbFileName string,
	cfg sim.Config,
	final *sim.State,
	turns []TurnRecord,
	origin string,
) (runId int64, err error) {
	s.cfg = cfg
	s.final = final
	s.turns = turns
	s.origin = origin

	conn, err := sqlite3.Open(dbFileName)
	if err != nil {
		return -1, err
	}
	s.conn = conn
	defer s.conn.Close()

	err = s.conn.Exec(Schema)
	if err != nil {
		return -1, err
	}

	runId, err = s.runRow()
	if err != nil {
		return -1, err
	}

	err = s.turnRows(runId)
	if err != nil {
		return -1, err
	}

	return runId, nil
}

func (s *storer) runRow() (runId int64, err error) {
	runStmt, err := s.conn.Prepare(`insert into runs(
									  recorded
									, origin
									, floor_count
									, elevator_count
									, arrival_rate
									, capacity
									, initial_power
									, seed
									, ticks
									, final_score
									, final_power
									, failed)
								   values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return -1, err
	}
	defer runStmt.Close()

	failed := 0
	if s.final.Failed {
		failed = 1
	}

	err = runStmt.Exec(
		time.Now().Format(time.RFC3339),
		s.origin,
		s.cfg.FloorCount,
		s.cfg.ElevatorCount,
		s.cfg.ArrivalRate,
		s.cfg.Capacity,
		s.cfg.InitialPower,
		s.cfg.Seed,
		s.final.Time,
		s.final.Score,
		s.final.Power,
		failed,
	)
	if err != nil {
		return -1, err
	}

	return s.conn.LastInsertRowID(), nil
}

func (s *storer) turnRows(runId int64) error {
	turnStmt, err := s.conn.Prepare(`insert into turns(run_id, turn, action, score, power) values (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer turnStmt.Close()

	eventStmt, err := s.conn.Prepare(`insert into events(run_id, turn, seq, line) values (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer eventStmt.Close()

	for _, turn := range s.turns {
		err = turnStmt.Exec(runId, turn.Turn, turn.Action, turn.Score, turn.Power)
		if err != nil {
			return err
		}

		for seq, line := range turn.Events {
			err = eventStmt.Exec(runId, turn.Turn, seq, line)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

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
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/logrusorgru/aurora"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"liftsim/pkg/data"
	"liftsim/pkg/sim"
)

var (
	startRunning = time.Now()
	au           = aurora.NewAurora(true)

	floorCount    = flag.Int("floors", 4, "Number of floors in the building")
	elevatorCount = flag.Int("elevators", 1, "Number of elevator cars")
	arrivalRate   = flag.Float64("arrivalRate", 0.1, "Probability per tick of a new passenger arriving")
	capacity      = flag.Int("capacity", 4, "Passengers per car; 0 means unbounded")
	initialPower  = flag.Int("power", 100, "Power budget; downward moves spend it, mechanics restore it")
	seed          = flag.Int64("seed", 0, "Random seed; 0 seeds from the clock")
	storeRun      = flag.Bool("storeRun", true, "Store run results in the run database")
	dbFile        = flag.String("dbFile", "liftsim.db", "Path of the run database")
)

func main() {
	flag.Parse()

	unsugaredLogger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Printf("logger config error: %s", err.Error())
		os.Exit(1)
	}
	logger := unsugaredLogger.Sugar()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	session, err := NewSession(sim.Config{
		FloorCount:    *floorCount,
		ElevatorCount: *elevatorCount,
		ArrivalRate:   *arrivalRate,
		Capacity:      *capacity,
		InitialPower:  *initialPower,
		Seed:          *seed,
	})
	if err != nil {
		logger.Fatalf("could not start a run: %s", err.Error())
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		session.Render(os.Stdout)
		fmt.Print("> ")

		if !scanner.Scan() {
			break
		}

		quit := session.Turn(scanner.Text())
		session.PrintEvents(os.Stdout)

		if quit || session.Over() {
			break
		}
	}

	if *storeRun {
		runId, err := session.Store(*dbFile)
		if err != nil {
			logger.Errorf("there was an error saving data: %s", err.Error())
		} else {
			fmt.Printf("run #%d stored in %s\n", au.Bold(runId), *dbFile)
		}
	}

	err = session.Report(os.Stdout)
	if err != nil {
		logger.Errorf("there was an error reporting the run: %s", err.Error())
	}
}

// Session owns one run: the aggregate, the turn telemetry, and the views
// over both.
type Session struct {
	state *sim.State
	turns []data.TurnRecord
}

func NewSession(cfg sim.Config) (*Session, error) {
	state, err := sim.NewState(cfg)
	if err != nil {
		return nil, err
	}

	return &Session{
		state: state,
		turns: make([]data.TurnRecord, 0),
	}, nil
}

// Turn applies one player action (or an idle tick) and records its
// telemetry. It reports whether the player asked to quit.
func (sn *Session) Turn(action string) (quit bool) {
	events, quit := sim.Advance(sn.state, action)

	sn.turns = append(sn.turns, data.TurnRecord{
		Turn:   len(sn.turns),
		Action: action,
		Score:  sn.state.Score,
		Power:  sn.state.Power,
		Events: events,
	})

	return quit
}

func (sn *Session) Over() bool {
	return sn.state.Failed
}

func (sn *Session) Store(dbFileName string) (int64, error) {
	return data.NewRunStore().Store(dbFileName, sn.state.Config, sn.state, sn.turns, "liftsim_cli")
}

// Report prints the completed-run summary.
func (sn *Session) Report(w io.Writer) error {
	s := sn.state

	verdict := au.BgGreen(" survived ")
	if s.Failed {
		verdict = au.BgRed(" powered down ")
	}

	printer := message.NewPrinter(language.AmericanEnglish)
	_, err := fmt.Fprintf(w,
		"\n%5s %s  %15s %-8s  %15s %-8s  %15s %-8s  %15s %-10s\n",
		au.Bold("Done."),
		verdict,
		au.Cyan("Final score:"),
		au.Bold(printer.Sprintf("%d", s.Score)),
		au.Cyan("Power left:"),
		au.Bold(printer.Sprintf("%d", s.Power)),
		au.Cyan("Ticks:"),
		au.Bold(printer.Sprintf("%d", s.Time)),
		au.Cyan("Running time:"),
		time.Now().Sub(startRunning).String(),
	)

	return err
}

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
	"net/http"
	"strconv"

	"github.com/bvinc/go-sqlite-lite/sqlite3"
	"go.uber.org/zap"

	"liftsim/pkg/data"
)

const defaultHighScoreLimit = 10

type highScoreLine struct {
	RunId      int64  `json:"run_id"`
	Recorded   string `json:"recorded"`
	FinalScore int    `json:"final_score"`
	Ticks      int    `json:"ticks"`
}

// NewRunsHandler builds the /runs handler: answer with the best stored runs,
// highest score first. The optional ?limit= parameter caps the list.
func NewRunsHandler(dbFile string, logger *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		limit := defaultHighScoreLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		conn, err := sqlite3.Open(dbFile)
		if err != nil {
			logger.Errorf("could not open the run database: %s", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		defer conn.Close()

		// an untouched database has no tables yet
		err = conn.Exec(data.Schema)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		stmt, err := conn.Prepare(data.HighScoresQuery, limit)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		defer stmt.Close()

		scores := make([]highScoreLine, 0)
		for {
			hasRow, err := stmt.Step()
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if !hasRow {
				break
			}

			var line highScoreLine
			err = stmt.Scan(&line.RunId, &line.Recorded, &line.FinalScore, &line.Ticks)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			scores = append(scores, line)
		}

		err = json.NewEncoder(w).Encode(scores)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
}

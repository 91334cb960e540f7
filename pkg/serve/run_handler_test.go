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
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunHandler(t *testing.T) {
	spec.Run(t, "RunHandler", testRunHandler, spec.Report(report.Terminal{}))
}

func testRunHandler(t *testing.T, describe spec.G, it spec.S) {
	var recorder *httptest.ResponseRecorder
	var mux *http.ServeMux

	post := func(body string) {
		recorder = httptest.NewRecorder()
		mux = http.NewServeMux()
		mux.HandleFunc("/run", NewRunHandler(filepath.Join(t.TempDir(), "liftsim.db"), zap.NewNop().Sugar()))

		req, err := http.NewRequest("POST", "/run", strings.NewReader(body))
		require.NoError(t, err)

		mux.ServeHTTP(recorder, req)
	}

	describe("a deterministic scripted scenario", func() {
		it.Before(func() {
			post(`{
				"floor_count": 3,
				"elevator_count": 1,
				"arrival_rate": 0,
				"initial_power": 5,
				"actions": ["go 0 1", "go 0 0"],
				"idle_turns": 20
			}`)
		})

		it("has status 200 OK and a JSON body", func() {
			assert.Equal(t, http.StatusOK, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
		})

		it("contains the full turn trace and the run id", func() {
			var resp runResponse
			err := json.NewDecoder(recorder.Body).Decode(&resp)
			require.NoError(t, err)

			assert.True(t, resp.RunId > 0)
			require.True(t, len(resp.Turns) > 2)
			assert.Equal(t, "go 0 1", resp.Turns[0].Action)
			assert.Equal(t, "", resp.Turns[2].Action)
			assert.Contains(t, resp.Turns[0].Events[0], "will visit floor 1")
		})

		it("spends one unit of power on the round trip", func() {
			var resp runResponse
			err := json.NewDecoder(recorder.Body).Decode(&resp)
			require.NoError(t, err)

			assert.Equal(t, 4, resp.FinalPower)
			assert.False(t, resp.Failed)
		})
	})

	describe("a malformed scenario", func() {
		it("rejects a bad configuration with 400", func() {
			post(`{"floor_count": 1, "elevator_count": 1, "initial_power": 5}`)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})

		it("rejects unparseable JSON with 400", func() {
			post(`{"floor_count": `)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	})
}

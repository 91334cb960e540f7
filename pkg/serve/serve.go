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

package serve

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

// LiftsimServer exposes scripted simulation runs over HTTP. Each request to
// /run executes one complete run and returns its trace; the server holds no
// live simulation state between requests.
type LiftsimServer struct {
	Addr   string
	DbFile string
	Logger *zap.SugaredLogger

	srv *http.Server
}

func (ls *LiftsimServer) Serve() {
	router := chi.NewRouter()
	router.Use(middleware.NoCache)
	router.Use(middleware.DefaultCompress)
	router.Use(middleware.Logger)

	router.Mount("/debug", middleware.Profiler())
	router.HandleFunc("/run", NewRunHandler(ls.DbFile, ls.Logger))
	router.HandleFunc("/runs", NewRunsHandler(ls.DbFile, ls.Logger))

	ls.srv = &http.Server{
		Addr:    ls.Addr,
		Handler: router,
	}

	go func() {
		ls.Logger.Infof("Listening on %s ...", ls.Addr)
		ls.Logger.Fatal(ls.srv.ListenAndServe())
	}()
}

func (ls *LiftsimServer) Shutdown() {
	ls.Logger.Info("Shutting down ...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := ls.srv.Shutdown(ctx)
	if err != nil {
		ls.Logger.Fatalf("shutdown error: %s", err.Error())
	}

	ls.Logger.Info("Done.")
}

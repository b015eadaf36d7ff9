// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/handler"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/push"
	"github.com/MKhiriev/go-note-keeper/internal/server"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/workers"
	"github.com/MKhiriev/go-note-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const bootstrapTokenName = "bootstrap"

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("go-note-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = build.BuildVersion()
	}
	if err := logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().Str("driver", cfg.Storage.DB.Driver).Str("address", cfg.Server.HTTPAddress).Msg("received configs")

	ctx := log.WithContext(context.Background())

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}

	hub := push.NewHub(log)
	defer hub.Close()

	session := crypto.NewSession()
	graph := becca.New(db,
		becca.WithProtectedSession(session),
		becca.WithHiddenRootID(cfg.App.HiddenRootID),
		becca.WithWeakBranchParents(cfg.App.WeakBranchParents...),
		becca.WithChangeListener(hub),
	)
	if err := graph.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("error loading note graph")
	}
	if err := graph.InitRoot(ctx); err != nil {
		log.Fatal().Err(err).Msg("error creating root notes")
	}

	services, err := service.NewServices(graph, db, session, *cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	if len(graph.EtapiTokens()) == 0 {
		authToken, err := services.TokenService.CreateToken(ctx, bootstrapTokenName)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating bootstrap ETAPI token")
		}
		fmt.Printf("Bootstrap ETAPI token: %s\n", authToken)
	}

	handlers, err := handler.NewHandlers(services, graph, hub, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	bg := workers.NewWorkers(graph, services.ProtectedSessionService, cfg.Workers, log)
	bg.Start(ctx)
	defer bg.Stop()

	srv.RunServer()
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.BuildVersion())
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command skiptrace starts the skip trace orchestration API server.
//
// The server fans a single search request out to the OSINT tool
// backend's lookups concurrently, tracks per-tool status on a live
// board, and renders the settled results as a plain-text report.
//
// Usage:
//
//	go run ./cmd/skiptrace
//	go run ./cmd/skiptrace -port 9090
//
// Environment:
//
//	OSINT_BACKEND_URL  Tool backend base URL (default http://localhost:8000)
//	OSINT_API_KEY      Optional API key forwarded to the backend
//	HISTORY_DB_DIR     BadgerDB directory for search history
//	                   (default ~/.skiptrace/history)
//	EXPORT_DIR         Directory for exported report files (default ./reports)
//
// Example requests:
//
//	# Health check
//	curl http://localhost:8080/v1/osint/health
//
//	# Start a search
//	curl -X POST http://localhost:8080/v1/osint/search \
//	  -H "Content-Type: application/json" \
//	  -d '{"name": "Smith, John", "state": "LA"}'
//
//	# Watch it settle
//	curl http://localhost:8080/v1/osint/search/status | jq
//
//	# Render the report
//	curl http://localhost:8080/v1/osint/report
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/recoveryops/skiptrace/services/osint"
	"github.com/recoveryops/skiptrace/services/osint/history"
	badgerstore "github.com/recoveryops/skiptrace/services/osint/storage/badger"
	"github.com/recoveryops/skiptrace/services/osint/toolclient"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	port := flag.Int("port", 8080, "Port to listen on")
	debug := flag.Bool("debug", false, "Enable debug mode")
	flag.Parse()

	if *debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// W3C TraceContext propagation so tool backend spans join the
	// caller's distributed trace.
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// Open the history store. Graceful degradation: if the database
	// cannot be opened, search still works without persistence.
	historyDir := os.Getenv("HISTORY_DB_DIR")
	if historyDir == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			historyDir = filepath.Join(home, ".skiptrace", "history")
		}
	}
	hist := history.Disabled()
	var historyDB *badgerstore.DB
	if historyDir != "" {
		cfg := badgerstore.DefaultConfig()
		cfg.Path = historyDir
		db, err := badgerstore.OpenDB(cfg)
		if err != nil {
			slog.Warn("History BadgerDB unavailable, search history disabled",
				slog.String("path", historyDir),
				slog.String("error", err.Error()),
			)
		} else {
			historyDB = db
			hist = history.NewBadgerStore(db)
			slog.Info("History BadgerDB opened", slog.String("path", historyDir))
		}
	}

	svcCfg := osint.DefaultServiceConfig()
	if dir := os.Getenv("EXPORT_DIR"); dir != "" {
		svcCfg.ExportDir = dir
	}

	client := toolclient.NewClient()
	svc := osint.NewService(svcCfg, client, hist, slog.Default())
	handlers := osint.NewHandlers(svc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("skiptrace-osint"))
	if *debug {
		router.Use(gin.Logger())
	}

	v1 := router.Group("/v1")
	osint.RegisterRoutes(v1, handlers)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	printBanner(*port)

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		slog.Info("Shutting down skip trace server")
		if historyDB != nil {
			if err := historyDB.Close(); err != nil {
				slog.Warn("Failed to close history BadgerDB", slog.String("error", err.Error()))
			}
		}
		os.Exit(0)
	}()

	addr := fmt.Sprintf(":%d", *port)
	slog.Info("Starting skip trace server", slog.String("address", addr))
	if err := router.Run(addr); err != nil {
		slog.Error("Failed to start server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func printBanner(port int) {
	banner := `
╔═══════════════════════════════════════════════════════════════════╗
║                      SKIP TRACE SERVER                            ║
╠═══════════════════════════════════════════════════════════════════╣
║                                                                   ║
║  Concurrent OSINT search orchestration for skip tracing.          ║
║                                                                   ║
║  Quick Start:                                                     ║
║  ┌─────────────────────────────────────────────────────────────┐  ║
║  │ # Health check                                              │  ║
║  │ curl http://localhost:%d/v1/osint/health              │  ║
║  │                                                             │  ║
║  │ # Start a search                                            │  ║
║  │ curl -X POST http://localhost:%d/v1/osint/search \    │  ║
║  │   -H "Content-Type: application/json" \                     │  ║
║  │   -d '{"name": "Smith, John", "state": "LA"}'               │  ║
║  │                                                             │  ║
║  │ # Watch it settle, then read the report                     │  ║
║  │ curl http://localhost:%d/v1/osint/search/status | jq  │  ║
║  │ curl http://localhost:%d/v1/osint/report              │  ║
║  └─────────────────────────────────────────────────────────────┘  ║
║                                                                   ║
║  Endpoints:                                                       ║
║  ├── Search: /search, /search/status, /search/stream             ║
║  ├── Report: /report, /report/export                             ║
║  ├── History: GET/DELETE /history                                ║
║  └── Links: /links/state-courts, /links/reference, /vehicle      ║
║                                                                   ║
║  Press Ctrl+C to stop                                             ║
╚═══════════════════════════════════════════════════════════════════╝
`
	fmt.Printf(banner, port, port, port, port)
}

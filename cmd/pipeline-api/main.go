package main

import (
	"flag"

	"relay-core/internal/api"
	"relay-core/internal/log"
	"relay-core/internal/store"
	"relay-core/pkg/router"
)

// @title Relay Spec Registry API
// @version 1.0
// @description Validate and register declarative pipeline specification documents.
// @BasePath /api/v1
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "relay.db", "sqlite database path")
	logLevel := flag.String("log-level", "info", "log level (debug|info|warn|error)")
	flag.Parse()

	log.Init(*logLevel, nil)

	// Init DB
	if err := store.InitDB(*dbPath); err != nil {
		panic(err)
	}

	// Create router
	r := router.New()

	// Register API routes
	api.RegisterRoutes(r)

	// Start server
	r.Start(*addr)
}

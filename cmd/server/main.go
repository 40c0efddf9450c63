package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/franckalain/foodfacts/internal/config"
	"github.com/franckalain/foodfacts/internal/database"
	"github.com/franckalain/foodfacts/internal/lookup"
	"github.com/franckalain/foodfacts/internal/server"
	"github.com/franckalain/foodfacts/internal/vision"
)

func main() {
	configPath := flag.String("config", config.GetConfigPath(), "path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database
	db, err := database.NewSQLiteDB(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	// Build the lookup chain: Open Food Facts first, the commercial
	// fallbacks after it.
	timeout := time.Duration(cfg.Lookup.TimeoutSeconds) * time.Second
	chain := lookup.NewChain(
		lookup.NewOpenFoodFacts(cfg.Lookup.UserAgent, timeout),
		lookup.NewBarcodeLookup(cfg.Lookup.BarcodeLookupAPIKey, timeout),
		lookup.NewUPCDatabase(cfg.Lookup.UserAgent, timeout),
	)

	// Initialize the barcode image decoder
	decoder, err := vision.NewDecoder(cfg.Vision.Type, cfg.Vision.ConfigPath)
	if err != nil {
		log.Fatal("Failed to create vision decoder:", err)
	}

	if err := decoder.Load(context.Background()); err != nil {
		log.Fatal("Failed to load vision decoder:", err)
	}

	// Initialize and start server
	srv := server.New(db, decoder, chain, cfg.Server.Debug)
	if err := srv.Start(cfg.Server.Port, cfg.Server.StaticDir); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

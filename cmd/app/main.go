package main

import (
	"flag"
	"log"
	"os"

	"GridSense/internal/di"
	"GridSense/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Printf("failed to load config: %v", err)
		os.Exit(1)
	}

	log.Printf("starting gridsense backend (env=%s)", cfg.Environment)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Printf("failed to initialize application: %v", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		log.Printf("application error: %v", err)
		os.Exit(1)
	}
}

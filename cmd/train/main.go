package main

import (
	"flag"
	"log"
	"os"

	"FraudScope/internal/trainer"
	"FraudScope/pkg/config"
	"FraudScope/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	lg, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}

	if err := trainer.Run(cfg, lg); err != nil {
		lg.Error("training failed", logger.Error(err))
		os.Exit(1)
	}
}

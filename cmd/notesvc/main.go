package main

import (
	"log"

	"github.com/abhinay-x/note-maker/internal/app"
	"github.com/abhinay-x/note-maker/internal/config"
	"github.com/abhinay-x/note-maker/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := app.Run(cfg, logger); err != nil {
		logger.Error("app stopped", "error", err)
		log.Fatalf("app: %v", err)
	}
}

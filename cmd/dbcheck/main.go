package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abhinay-x/note-maker/internal/app"
	"github.com/abhinay-x/note-maker/internal/clock"
	"github.com/abhinay-x/note-maker/internal/config"
	"github.com/abhinay-x/note-maker/internal/infrastructure/database"
	"github.com/abhinay-x/note-maker/internal/infrastructure/repositories"
	"github.com/abhinay-x/note-maker/internal/logging"
)

// Connects to the configured database, migrates the schema and reports row
// counts. With -sweep it also deletes expired codes and sessions once.
func main() {
	sweep := flag.Bool("sweep", false, "delete expired one-time codes and refresh sessions")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if envDSN := os.Getenv("TEST_DATABASE_DSN"); envDSN != "" {
		cfg.DSN = envDSN
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DSN, cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	fmt.Println("Database connection successful")

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}
	fmt.Println("AutoMigrate completed successfully")

	for _, model := range repositories.Models() {
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			log.Fatalf("Failed to count %T: %v", model, err)
		}
		fmt.Printf("%T: %d rows\n", model, count)
	}

	if *sweep {
		janitor := app.NewJanitor(
			repositories.NewOTPRepository(db),
			repositories.NewSessionRepository(db),
			clock.Real(),
			cfg.JanitorInterval,
			logger,
		)
		janitor.Sweep(context.Background())
		fmt.Println("Expired rows removed")
	}
}

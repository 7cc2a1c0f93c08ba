package main

import (
	"os"

	"speedballhub/cmd/migration/initialize"
	"speedballhub/cmd/migration/seed"
	"speedballhub/config"
	"speedballhub/internal/database"
	"speedballhub/internal/logger"
)

func main() {
	log := logger.New("migrate")

	config, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(config)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Er("failed to close database", err)
		}
	}()

	if err := initialize.InitializeTables(db, config, log); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if config.Environment != "production" {
		if err := seed.Seed(db.SQL, config, log); err != nil {
			log.Er("failed to seed database", err)
			os.Exit(1)
		}
	} else {
		log.Info("Seeding skipped in production environment")
	}
}

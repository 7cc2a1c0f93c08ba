package initialize

import (
	"speedballhub/config"
	"speedballhub/internal/database"
	"speedballhub/internal/logger"
)

func InitializeTables(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Applying schema migrations")

	applied, err := db.Migrate()
	if err != nil {
		return log.Err("failed to apply migrations", err)
	}

	log.Info("Table initialization complete", "migrationsApplied", applied)
	return nil
}

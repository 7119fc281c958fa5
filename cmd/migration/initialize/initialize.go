package initialize

import (
	"context"

	"gameshelf/config"
	"gameshelf/internal/database"
	"gameshelf/internal/models"
	"gameshelf/internal/persistence"
	"gameshelf/internal/repositories"
	"gameshelf/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// InitializeTables makes sure the configured slot row exists so the API
// starts from an empty shelf rather than a missing one. Existing rows are
// left untouched.
func InitializeTables(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing state slot", "key", config.PersistenceSlotKey)

	ctx := context.Background()
	repos := repositories.New()

	_, found, err := repos.StateSlot.GetByKey(ctx, db.SQLWithContext(ctx), config.PersistenceSlotKey)
	if err != nil {
		return log.Err("failed to look up state slot", err, "key", config.PersistenceSlotKey)
	}

	if found {
		log.Debug("State slot already exists", "key", config.PersistenceSlotKey)
		return nil
	}

	slot := persistence.NewSQLSlot(db, services.NewTransactionService(db), repos.StateSlot)
	adapter := persistence.New(slot, config.PersistenceSlotKey)
	if err := adapter.Save(ctx, models.EmptyState()); err != nil {
		return log.Err("failed to create state slot", err, "key", config.PersistenceSlotKey)
	}

	log.Info("Table initialization complete")
	return nil
}

package persistence

import (
	"gameshelf/config"
	"gameshelf/internal/database"
	"gameshelf/internal/repositories"
	"gameshelf/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// NewSlot picks the backend named by PERSISTENCE_DRIVER.
func NewSlot(
	cfg config.Config,
	db database.DB,
	transaction *services.TransactionService,
	repos repositories.Repository,
) (Slot, error) {
	log := logger.New("persistence").Function("NewSlot")

	switch cfg.PersistenceDriver {
	case "", config.PersistenceMemory:
		log.Warn("Using in-memory persistence, state is lost on restart")
		return NewMemorySlot(), nil

	case config.PersistenceValkey:
		if !db.HasCache() {
			return nil, log.ErrMsg("valkey persistence selected but no cache connection")
		}
		return NewValkeySlot(db.Cache.State), nil

	case config.PersistencePostgres:
		if !db.HasSQL() {
			return nil, log.ErrMsg("postgres persistence selected but no database connection")
		}
		return NewSQLSlot(db, transaction, repos.StateSlot), nil
	}

	return nil, log.Error("unknown persistence driver", "driver", cfg.PersistenceDriver)
}

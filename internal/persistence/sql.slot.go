package persistence

import (
	"context"

	"gameshelf/internal/database"
	"gameshelf/internal/models"
	"gameshelf/internal/repositories"
	"gameshelf/internal/services"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SQLSlot stores the document as one jsonb row in state_slots, upserted
// inside a transaction.
type SQLSlot struct {
	db          database.DB
	transaction *services.TransactionService
	repo        repositories.StateSlotRepository
}

func NewSQLSlot(
	db database.DB,
	transaction *services.TransactionService,
	repo repositories.StateSlotRepository,
) *SQLSlot {
	return &SQLSlot{
		db:          db,
		transaction: transaction,
		repo:        repo,
	}
}

func (s *SQLSlot) Read(ctx context.Context, key string) ([]byte, bool, error) {
	slot, found, err := s.repo.GetByKey(ctx, s.db.SQLWithContext(ctx), key)
	if err != nil || !found {
		return nil, found, err
	}
	return []byte(slot.Value), true, nil
}

func (s *SQLSlot) Write(ctx context.Context, key string, data []byte) error {
	return s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return s.repo.Upsert(ctx, tx, &models.StateSlot{
			Key:   key,
			Value: datatypes.JSON(data),
		})
	})
}

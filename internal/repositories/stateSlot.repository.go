package repositories

import (
	"context"
	"errors"

	. "gameshelf/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StateSlotRepository interface {
	GetByKey(ctx context.Context, tx *gorm.DB, key string) (*StateSlot, bool, error)
	Upsert(ctx context.Context, tx *gorm.DB, slot *StateSlot) error
}

type stateSlotRepository struct {
	log logger.Logger
}

func NewStateSlotRepository() StateSlotRepository {
	return &stateSlotRepository{
		log: logger.New("stateSlotRepository"),
	}
}

func (r *stateSlotRepository) GetByKey(
	ctx context.Context,
	tx *gorm.DB,
	key string,
) (*StateSlot, bool, error) {
	log := r.log.Function("GetByKey")

	slot, err := gorm.G[StateSlot](tx).Where("key = ?", key).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, log.Err("failed to get state slot", err, "key", key)
	}

	return &slot, true, nil
}

func (r *stateSlotRepository) Upsert(ctx context.Context, tx *gorm.DB, slot *StateSlot) error {
	log := r.log.Function("Upsert")

	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(slot).Error
	if err != nil {
		return log.Err("failed to upsert state slot", err, "key", slot.Key)
	}

	return nil
}

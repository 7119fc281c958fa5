package seed

import (
	"context"

	"gameshelf/config"
	"gameshelf/internal/database"
	"gameshelf/internal/persistence"
	"gameshelf/internal/repositories"
	"gameshelf/internal/services"

	. "gameshelf/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func hours(value string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(value))
}

// Seed replaces the configured slot with a small demo shelf.
func Seed(db database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data", "key", config.PersistenceSlotKey)

	state := State{
		WantToPlay: []WantToPlay{
			{
				ID:             uuid.NewString(),
				Name:           "Hollow Knight: Silksong",
				Category:       "Metroidvania",
				Subcategory:    "Action",
				ReleaseDate:    "2025-09-04",
				InterestLevel:  InterestHigh,
				Platforms:      "PC, Switch",
				Status:         StatusAlreadyReleased,
				EstimatedHours: hours("40"),
			},
			{
				ID:            uuid.NewString(),
				Name:          "Slay the Spire 2",
				Category:      "Roguelike",
				Subcategory:   "Deckbuilder",
				InterestLevel: InterestMedium,
				Platforms:     "PC",
				Status:        StatusEarlyAccess,
				Notes:         "Wait for the full release",
			},
		},
		Finished: []Finished{
			{
				ID:           uuid.NewString(),
				Name:         "Celeste",
				Category:     "Platformer",
				Score:        5,
				DateFinished: "2024-02-11",
				Platform:     "Switch",
				HoursSpent:   hours("22.5"),
				Review:       "Tight controls, great soundtrack",
			},
			{
				ID:           uuid.NewString(),
				Name:         "Outer Wilds",
				Category:     "Adventure",
				Score:        4,
				DateFinished: "2024-06-30",
				Platform:     "PC",
				HoursSpent:   hours("18"),
			},
		},
		Abandoned: []Abandoned{
			{
				ID:          uuid.NewString(),
				Name:        "Dark Souls",
				Category:    "Action RPG",
				Reason:      ReasonTooHard,
				HoursPlayed: hours("6"),
				Notes:       "Stuck on the Taurus Demon",
			},
		},
	}

	slot := persistence.NewSQLSlot(db, services.NewTransactionService(db), repositories.New().StateSlot)
	adapter := persistence.New(slot, config.PersistenceSlotKey)
	if err := adapter.Save(context.Background(), state); err != nil {
		return log.Err("failed to seed state slot", err)
	}

	log.Info(
		"Seeded state slot",
		"wantToPlay", len(state.WantToPlay),
		"finished", len(state.Finished),
		"abandoned", len(state.Abandoned),
	)
	return nil
}

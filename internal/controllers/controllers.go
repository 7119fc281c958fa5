package controllers

import (
	"gameshelf/internal/confirm"
	"gameshelf/internal/events"
	"gameshelf/internal/notify"
	"gameshelf/internal/persistence"

	gamesController "gameshelf/internal/controllers/games"
)

type Controllers struct {
	Games gamesController.GameControllerInterface
}

func New(
	store *persistence.Adapter,
	notifier *notify.Notifier,
	confirmer *confirm.Confirmer,
	eventBus *events.EventBus,
) Controllers {
	return Controllers{
		Games: gamesController.New(
			store,
			notifier,
			confirmer,
			gamesController.NewBroadcastSink(eventBus),
		),
	}
}

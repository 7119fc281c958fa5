package middleware

import (
	"gameshelf/config"
	"gameshelf/internal/events"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	Config   config.Config
	log      logger.Logger
	eventBus *events.EventBus
}

func New(eventBus *events.EventBus, config config.Config) Middleware {
	log := logger.New("middleware")

	return Middleware{
		Config:   config,
		log:      log,
		eventBus: eventBus,
	}
}

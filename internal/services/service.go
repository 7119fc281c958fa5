package services

import (
	"gameshelf/config"
	"gameshelf/internal/database"
)

type Service struct {
	Transaction *TransactionService
	Scheduler   *SchedulerService
	GameSearch  *GameSearchService
}

func New(db database.DB, config config.Config) Service {
	return Service{
		Transaction: NewTransactionService(db),
		Scheduler:   NewSchedulerService(),
		GameSearch:  NewGameSearchService(config, db.Cache.ClientAPI),
	}
}

package database

import (
	"fmt"

	"gameshelf/config"

	"github.com/valkey-io/valkey-go"
)

// Valkey database indexes, one per cache concern.
const (
	// GENERAL_CACHE_INDEX (DB 0) - miscellaneous short lived values
	GENERAL_CACHE_INDEX = iota

	// STATE_CACHE_INDEX (DB 1) - the persisted game collections slot
	STATE_CACHE_INDEX

	// EVENTS_CACHE_INDEX (DB 2) - event bus pub/sub
	EVENTS_CACHE_INDEX

	// CLIENT_API_CACHE_INDEX (DB 3) - external API responses (RAWG search)
	CLIENT_API_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Errorf("failed to initialize cache database", "address or port is empty")
	}

	clients := []struct {
		target *CacheClient
		index  int
		name   string
	}{
		{&s.Cache.General, GENERAL_CACHE_INDEX, "general"},
		{&s.Cache.State, STATE_CACHE_INDEX, "state"},
		{&s.Cache.Events, EVENTS_CACHE_INDEX, "events"},
		{&s.Cache.ClientAPI, CLIENT_API_CACHE_INDEX, "client api"},
	}

	for _, c := range clients {
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    c.index,
		})
		if err != nil {
			s.Close()
			return log.Err("failed to create valkey client", err, "cache", c.name)
		}
		*c.target = client
	}

	return nil
}

package services

import "time"

// Cache hash patterns
const (
	SEARCH_HASH = "rawg_search"
)

// API configuration
const (
	SearchCacheTTL       = time.Hour
	SearchRequestTimeout = 10 * time.Second
	MinSearchQueryLength = 3
	MaxSearchResults     = 5
)

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"gameshelf/config"
	"gameshelf/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/valkey-io/valkey-go"
)

type rawgGame struct {
	Name string `json:"name"`
}

type rawgSearchResponse struct {
	Count   int        `json:"count"`
	Results []rawgGame `json:"results"`
}

// GameSearchService looks up game names on RAWG. Results are cached in the
// client API cache when one is available.
type GameSearchService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	cache   valkey.Client
	log     logger.Logger
}

// NewGameSearchService builds the service. cache may be nil.
func NewGameSearchService(config config.Config, cache valkey.Client) *GameSearchService {
	return &GameSearchService{
		client: &http.Client{
			Timeout: SearchRequestTimeout,
		},
		baseURL: config.RawgBaseURL,
		apiKey:  config.RawgAPIKey,
		cache:   cache,
		log:     logger.New("GameSearchService"),
	}
}

func (s *GameSearchService) Configured() bool {
	return s.apiKey != ""
}

// Search returns up to MaxSearchResults game names in provider order.
// Queries shorter than MinSearchQueryLength return nothing without a request.
func (s *GameSearchService) Search(ctx context.Context, query string) ([]string, error) {
	log := s.log.TraceFromContext(ctx).Function("Search")

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinSearchQueryLength {
		return []string{}, nil
	}

	if !s.Configured() {
		return nil, log.Err("RAWG_API_KEY is not set", ErrSearchNotConfigured)
	}

	cacheKey := strings.ToLower(query)
	if names, found := s.cached(ctx, cacheKey); found {
		log.Debug("Search served from cache", "query", query)
		return names, nil
	}

	names, err := s.fetch(ctx, query)
	if err != nil {
		return nil, log.Err("search failed", errors.Join(ErrSearchUnavailable, err), "query", query)
	}

	if s.cache != nil {
		err := database.NewCacheBuilder(s.cache, cacheKey).
			WithHash(SEARCH_HASH).
			WithStruct(names).
			WithTTL(SearchCacheTTL).
			WithContext(ctx).
			Set()
		if err != nil {
			log.Warn("Failed to cache search results", "query", query, "error", err)
		}
	}

	log.Debug("Search completed", "query", query, "results", len(names))
	return names, nil
}

func (s *GameSearchService) cached(ctx context.Context, key string) ([]string, bool) {
	if s.cache == nil {
		return nil, false
	}

	log := s.log.Function("cached")

	var names []string
	found, err := database.NewCacheBuilder(s.cache, key).
		WithHash(SEARCH_HASH).
		WithContext(ctx).
		Get(&names)
	if errors.Is(err, database.ErrUndecodable) {
		s.evict(ctx, key)
		return nil, false
	}
	if err != nil {
		log.Warn("Failed to read search cache", "key", key, "error", err)
		return nil, false
	}

	return names, found
}

// evict drops a cached result that no longer decodes so the next search
// refetches it.
func (s *GameSearchService) evict(ctx context.Context, key string) {
	log := s.log.Function("evict")

	err := database.NewCacheBuilder(s.cache, key).
		WithHash(SEARCH_HASH).
		WithContext(ctx).
		Delete()
	if err != nil {
		log.Warn("Failed to evict search cache entry", "key", key, "error", err)
		return
	}

	log.Info("Evicted undecodable search cache entry", "key", key)
}

func (s *GameSearchService) fetch(ctx context.Context, query string) ([]string, error) {
	log := s.log.Function("fetch")

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("search", query)
	params.Set("page_size", strconv.Itoa(MaxSearchResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, log.Err("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Gameshelf/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, log.Err("failed to make request", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn("Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rawg API error: %d", resp.StatusCode)
	}

	var body rawgSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, log.Err("failed to decode response", err)
	}

	names := make([]string, 0, MaxSearchResults)
	for _, game := range body.Results {
		if game.Name == "" {
			continue
		}
		names = append(names, game.Name)
		if len(names) == MaxSearchResults {
			break
		}
	}

	return names, nil
}

// SearchMessage is the inline text shown under a search input.
func SearchMessage(names []string, err error) string {
	switch {
	case errors.Is(err, ErrSearchNotConfigured):
		return "Game search is not configured"
	case err != nil:
		return "No results available right now"
	case len(names) == 0:
		return "No games found"
	}
	return ""
}

// Package search debounces type-ahead lookups so that only the result for
// the latest keystroke of an input is delivered.
package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"gameshelf/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	DefaultDelay  = 500 * time.Millisecond
	lookupTimeout = 10 * time.Second
)

type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

type Result struct {
	InputID string   `json:"inputId"`
	Query   string   `json:"query"`
	Names   []string `json:"names"`
	Message string   `json:"message,omitempty"`
}

type Deliver func(result Result)

type input struct {
	timer      *time.Timer
	generation uint64
}

// Debouncer keeps one timer per input. Each keystroke restarts the quiet
// period and bumps the input's generation; a lookup whose generation is no
// longer current is discarded.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	searcher Searcher
	inputs   map[string]*input
	log      logger.Logger
}

func New(searcher Searcher, delay time.Duration) *Debouncer {
	if delay < 0 {
		delay = DefaultDelay
	}

	return &Debouncer{
		delay:    delay,
		searcher: searcher,
		inputs:   make(map[string]*input),
		log:      logger.New("search"),
	}
}

// Input records a keystroke. deliver is called at most once, after the quiet
// period, and only if no newer keystroke arrived for inputID meanwhile.
func (d *Debouncer) Input(inputID, query string, deliver Deliver) {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.inputs[inputID]
	if !ok {
		entry = &input{}
		d.inputs[inputID] = entry
	}

	if entry.timer != nil {
		entry.timer.Stop()
	}
	entry.generation++
	generation := entry.generation

	entry.timer = time.AfterFunc(d.delay, func() {
		d.run(inputID, generation, query, deliver)
	})
}

// Cancel drops the pending lookup for inputID and any result in flight.
func (d *Debouncer) Cancel(inputID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if entry, ok := d.inputs[inputID]; ok {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(d.inputs, inputID)
	}
}

// Pending reports how many inputs have a timer or lookup outstanding.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.inputs)
}

func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for inputID, entry := range d.inputs {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(d.inputs, inputID)
	}
}

func (d *Debouncer) run(inputID string, generation uint64, query string, deliver Deliver) {
	log := d.log.Function("run")

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	names, err := d.searcher.Search(ctx, query)
	if names == nil {
		names = []string{}
	}

	if !d.finish(inputID, generation) {
		log.Debug("Discarding stale search result", "inputID", inputID, "query", query)
		return
	}

	result := Result{InputID: inputID, Query: query, Names: names}
	if utf8.RuneCountInString(strings.TrimSpace(query)) >= services.MinSearchQueryLength {
		result.Message = services.SearchMessage(names, err)
	}

	deliver(result)
}

// finish reports whether generation is still current and, if so, forgets
// the input.
func (d *Debouncer) finish(inputID string, generation uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	entry, ok := d.inputs[inputID]
	if !ok || entry.generation != generation {
		return false
	}

	delete(d.inputs, inputID)
	return true
}

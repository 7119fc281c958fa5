package search

import (
	"context"
	"sync"
	"testing"
	"time"

	"gameshelf/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
	release map[string]chan struct{}
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, query string) ([]string, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	gate := f.release[query]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if f.err != nil {
		return nil, f.err
	}
	return []string{query + " result"}, nil
}

func (f *fakeSearcher) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func collect() (Deliver, <-chan Result) {
	results := make(chan Result, 10)
	return func(result Result) { results <- result }, results
}

func TestDebouncer_OnlyLastKeystrokeSearched(t *testing.T) {
	searcher := &fakeSearcher{}
	debouncer := New(searcher, 20*time.Millisecond)
	defer debouncer.Close()

	deliver, results := collect()
	for _, query := range []string{"c", "ce", "cel", "cele"} {
		debouncer.Input("name", query, deliver)
	}

	select {
	case result := <-results:
		assert.Equal(t, "name", result.InputID)
		assert.Equal(t, "cele", result.Query)
		assert.Equal(t, []string{"cele result"}, result.Names)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}

	assert.Equal(t, []string{"cele"}, searcher.seen())
	assert.Equal(t, 0, debouncer.Pending())
}

func TestDebouncer_StaleResultDiscarded(t *testing.T) {
	gate := make(chan struct{})
	searcher := &fakeSearcher{release: map[string]chan struct{}{"hollow": gate}}
	debouncer := New(searcher, 5*time.Millisecond)
	defer debouncer.Close()

	deliver, results := collect()
	debouncer.Input("name", "hollow", deliver)

	require.Eventually(t, func() bool {
		return len(searcher.seen()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	// A newer keystroke while the first lookup is still in flight.
	debouncer.Input("name", "hollow knight", deliver)
	close(gate)

	select {
	case result := <-results:
		assert.Equal(t, "hollow knight", result.Query)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}

	select {
	case result := <-results:
		t.Fatalf("stale result delivered: %+v", result)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncer_InputsAreIndependent(t *testing.T) {
	debouncer := New(&fakeSearcher{}, 5*time.Millisecond)
	defer debouncer.Close()

	deliver, results := collect()
	debouncer.Input("finished", "celeste", deliver)
	debouncer.Input("abandoned", "dark souls", deliver)

	got := map[string]string{}
	for range 2 {
		select {
		case result := <-results:
			got[result.InputID] = result.Query
		case <-time.After(2 * time.Second):
			t.Fatal("missing result")
		}
	}
	assert.Equal(t, map[string]string{"finished": "celeste", "abandoned": "dark souls"}, got)
}

func TestDebouncer_CancelDropsPending(t *testing.T) {
	searcher := &fakeSearcher{}
	debouncer := New(searcher, 20*time.Millisecond)
	defer debouncer.Close()

	deliver, results := collect()
	debouncer.Input("name", "celeste", deliver)
	debouncer.Cancel("name")
	assert.Equal(t, 0, debouncer.Pending())

	select {
	case result := <-results:
		t.Fatalf("cancelled input delivered: %+v", result)
	case <-time.After(80 * time.Millisecond):
	}
	assert.Empty(t, searcher.seen())
}

func TestDebouncer_Messages(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		err      error
		expected string
	}{
		{name: "results", query: "celeste", expected: ""},
		{name: "short query stays quiet", query: "ce", expected: ""},
		{name: "not configured", query: "celeste", err: services.ErrSearchNotConfigured, expected: "Game search is not configured"},
		{name: "unavailable", query: "celeste", err: services.ErrSearchUnavailable, expected: "No results available right now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debouncer := New(&fakeSearcher{err: tt.err}, time.Millisecond)
			defer debouncer.Close()

			deliver, results := collect()
			debouncer.Input("name", tt.query, deliver)

			select {
			case result := <-results:
				assert.Equal(t, tt.expected, result.Message)
				assert.NotNil(t, result.Names)
			case <-time.After(2 * time.Second):
				t.Fatal("no result delivered")
			}
		})
	}
}

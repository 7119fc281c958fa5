package notify

import (
	"sync"
	"testing"
	"time"

	"gameshelf/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ events.Channel, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []events.MessageType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]events.MessageType, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.Type)
	}
	return types
}

func TestNotifier_NotifyPublishesAndLists(t *testing.T) {
	publisher := &recordingPublisher{}
	notifier := New(publisher, time.Minute)
	defer notifier.Close()

	toast := notifier.Success(`"Celeste" was saved!`)

	assert.Equal(t, Success, toast.Severity)
	assert.Equal(t, []Toast{toast}, notifier.Active())
	assert.Equal(t, []events.MessageType{events.NOTIFICATION}, publisher.types())
	assert.Equal(t, 1, notifier.PendingTimers())
}

func TestNotifier_AutoDismiss(t *testing.T) {
	publisher := &recordingPublisher{}
	notifier := New(publisher, 20*time.Millisecond)
	defer notifier.Close()

	notifier.Error(`"Anthem" was deleted.`)

	assert.Eventually(t, func() bool {
		return len(notifier.Active()) == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, notifier.PendingTimers())
	assert.Eventually(t, func() bool {
		types := publisher.types()
		return len(types) == 2 && types[1] == events.NOTIFICATION_DISMISSED
	}, time.Second, 5*time.Millisecond)
}

func TestNotifier_DismissReleasesTimer(t *testing.T) {
	notifier := New(nil, time.Hour)
	defer notifier.Close()

	first := notifier.Success("first")
	second := notifier.Error("second")
	require.Equal(t, 2, notifier.PendingTimers())

	assert.True(t, notifier.Dismiss(first.ID))
	assert.False(t, notifier.Dismiss(first.ID))
	assert.Equal(t, 1, notifier.PendingTimers())
	assert.Equal(t, []Toast{second}, notifier.Active())
}

func TestNotifier_CloseStopsEverything(t *testing.T) {
	notifier := New(nil, time.Hour)
	notifier.Success("one")
	notifier.Success("two")

	notifier.Close()

	assert.Equal(t, 0, notifier.PendingTimers())
	assert.Empty(t, notifier.Active())
}

func TestNew_DefaultDuration(t *testing.T) {
	notifier := New(nil, 0)
	defer notifier.Close()

	toast := notifier.Success("x")
	assert.Equal(t, DefaultDuration, toast.ExpiresAt.Sub(toast.CreatedAt))
}

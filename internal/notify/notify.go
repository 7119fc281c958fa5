// Package notify shows transient toasts that dismiss themselves after a
// fixed duration.
package notify

import (
	"slices"
	"sync"
	"time"

	"gameshelf/internal/events"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
)

const DefaultDuration = 3 * time.Second

type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Publisher interface {
	Publish(channel events.Channel, event events.Event) error
}

type Notifier struct {
	mu        sync.Mutex
	active    []Toast
	timers    map[string]*time.Timer
	duration  time.Duration
	publisher Publisher
	log       logger.Logger
}

// New builds a notifier. publisher may be nil.
func New(publisher Publisher, duration time.Duration) *Notifier {
	if duration <= 0 {
		duration = DefaultDuration
	}

	return &Notifier{
		timers:    make(map[string]*time.Timer),
		duration:  duration,
		publisher: publisher,
		log:       logger.New("notify"),
	}
}

// Notify shows a toast and schedules its dismissal. It never blocks on the
// receivers of the toast.
func (n *Notifier) Notify(message string, severity Severity) Toast {
	now := time.Now()
	toast := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(n.duration),
	}

	n.mu.Lock()
	n.active = append(n.active, toast)
	n.timers[toast.ID] = time.AfterFunc(n.duration, func() {
		n.Dismiss(toast.ID)
	})
	n.mu.Unlock()

	n.publish(events.NOTIFICATION, map[string]any{"toast": toast})
	return toast
}

func (n *Notifier) Success(message string) Toast {
	return n.Notify(message, Success)
}

func (n *Notifier) Error(message string) Toast {
	return n.Notify(message, Error)
}

// Dismiss removes a toast and releases its timer. It reports whether the
// toast was still showing.
func (n *Notifier) Dismiss(id string) bool {
	n.mu.Lock()
	index := slices.IndexFunc(n.active, func(t Toast) bool { return t.ID == id })
	if index < 0 {
		n.mu.Unlock()
		return false
	}

	dismissed := n.active[index].ID
	n.active = slices.Delete(n.active, index, index+1)
	if timer, ok := n.timers[dismissed]; ok {
		timer.Stop()
		delete(n.timers, dismissed)
	}
	n.mu.Unlock()

	n.publish(events.NOTIFICATION_DISMISSED, map[string]any{"id": dismissed})
	return true
}

// Active lists the toasts currently showing, oldest first.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.active)
}

func (n *Notifier) PendingTimers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.timers)
}

// Close stops every pending timer and clears the toasts.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, timer := range n.timers {
		timer.Stop()
		delete(n.timers, id)
	}
	n.active = nil
}

func (n *Notifier) publish(messageType events.MessageType, data map[string]any) {
	if n.publisher == nil {
		return
	}

	err := n.publisher.Publish(events.BROADCAST_CHANNEL, events.Event{Type: messageType, Data: data})
	if err != nil {
		n.log.Function("publish").Warn("failed to publish notification", "type", messageType, "error", err)
	}
}

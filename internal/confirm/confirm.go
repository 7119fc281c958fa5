// Package confirm holds yes/no prompts whose callback runs only after an
// affirmative answer.
package confirm

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"gameshelf/internal/events"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

const DefaultTTL = 5 * time.Minute

var ErrPromptNotFound = errors.New("confirmation prompt not found")

type Prompt struct {
	Token     string    `json:"token"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Callback func(ctx context.Context) error

type Publisher interface {
	Publish(channel events.Channel, event events.Event) error
}

type pending struct {
	prompt    Prompt
	onConfirm Callback
	timer     *time.Timer
}

type Confirmer struct {
	mu        sync.Mutex
	prompts   map[string]*pending
	ttl       time.Duration
	publisher Publisher
	log       logger.Logger
}

// New builds a confirmer whose unanswered prompts expire after ttl.
// publisher may be nil.
func New(publisher Publisher, ttl time.Duration) *Confirmer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Confirmer{
		prompts:   make(map[string]*pending),
		ttl:       ttl,
		publisher: publisher,
		log:       logger.New("confirm"),
	}
}

// Ask opens a prompt. onConfirm runs at most once, and only on yes.
func (c *Confirmer) Ask(message string, onConfirm Callback) Prompt {
	now := time.Now()
	prompt := Prompt{
		Token:     uuid.NewString(),
		Message:   message,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	c.mu.Lock()
	c.prompts[prompt.Token] = &pending{
		prompt:    prompt,
		onConfirm: onConfirm,
		timer: time.AfterFunc(c.ttl, func() {
			c.expire(prompt.Token)
		}),
	}
	c.mu.Unlock()

	c.publish(events.CONFIRM_REQUEST, map[string]any{"prompt": prompt})
	return prompt
}

// Resolve answers a prompt and dismisses it. On yes the callback runs and
// its error is returned. The first return reports whether the callback ran.
func (c *Confirmer) Resolve(ctx context.Context, token string, yes bool) (bool, error) {
	log := c.log.Function("Resolve")

	entry, ok := c.take(token)
	if !ok {
		return false, log.Err("unknown or already answered prompt", ErrPromptNotFound, "token", token)
	}

	c.publish(events.CONFIRM_CLOSED, map[string]any{"token": entry.prompt.Token, "confirmed": yes})

	if !yes {
		log.Debug("Prompt declined", "token", entry.prompt.Token)
		return false, nil
	}

	return true, entry.onConfirm(ctx)
}

// Pending lists open prompts, oldest first.
func (c *Confirmer) Pending() []Prompt {
	c.mu.Lock()
	defer c.mu.Unlock()

	prompts := make([]Prompt, 0, len(c.prompts))
	for _, entry := range c.prompts {
		prompts = append(prompts, entry.prompt)
	}
	slices.SortFunc(prompts, func(a, b Prompt) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return prompts
}

// Close drops every open prompt without running callbacks.
func (c *Confirmer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for token, entry := range c.prompts {
		entry.timer.Stop()
		delete(c.prompts, token)
	}
}

func (c *Confirmer) take(token string) (*pending, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.prompts[token]
	if !ok {
		return nil, false
	}
	entry.timer.Stop()
	delete(c.prompts, token)
	return entry, true
}

func (c *Confirmer) expire(token string) {
	if _, ok := c.take(token); ok {
		c.log.Function("expire").Info("Prompt expired unanswered", "token", token)
		c.publish(events.CONFIRM_CLOSED, map[string]any{"token": token, "confirmed": false})
	}
}

func (c *Confirmer) publish(messageType events.MessageType, data map[string]any) {
	if c.publisher == nil {
		return
	}

	err := c.publisher.Publish(events.BROADCAST_CHANNEL, events.Event{Type: messageType, Data: data})
	if err != nil {
		c.log.Function("publish").Warn("failed to publish prompt event", "type", messageType, "error", err)
	}
}

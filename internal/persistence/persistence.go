// Package persistence saves and restores the three game collections as one
// JSON document kept under a fixed key in a storage slot.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gameshelf/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// Slot is a named key/value store holding raw documents.
type Slot interface {
	Read(ctx context.Context, key string) ([]byte, bool, error)
	Write(ctx context.Context, key string, data []byte) error
}

var (
	ErrUnreadable      = errors.New("slot could not be read")
	ErrUnparseable     = errors.New("slot document is not valid JSON")
	ErrInvalidDocument = errors.New("slot document does not match the state schema")
)

// PersistError reports a failed Save. The in-memory state is unaffected.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist state to slot %q: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// LoadError reports a slot whose content had to be discarded. Load still
// returns the empty state alongside it.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load state from slot %q: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type Adapter struct {
	slot Slot
	key  string
	log  logger.Logger
}

func New(slot Slot, key string) *Adapter {
	return &Adapter{
		slot: slot,
		key:  key,
		log:  logger.New("persistence"),
	}
}

func (a *Adapter) Key() string {
	return a.key
}

// Save writes the whole state under the adapter's key.
func (a *Adapter) Save(ctx context.Context, state models.State) error {
	log := a.log.Function("Save")

	state = state.Clone()
	data, err := json.Marshal(state)
	if err != nil {
		log.Er("failed to marshal state", err, "key", a.key)
		return &PersistError{Key: a.key, Err: err}
	}

	if err := a.slot.Write(ctx, a.key, data); err != nil {
		log.Er("failed to write slot", err, "key", a.key)
		return &PersistError{Key: a.key, Err: err}
	}

	log.Debug("State saved", "key", a.key, "bytes", len(data))
	return nil
}

// Load restores the state. An absent slot yields the empty state and no
// error. Unreadable, malformed or schema-violating content yields the empty
// state together with a *LoadError.
func (a *Adapter) Load(ctx context.Context) (models.State, error) {
	log := a.log.Function("Load")

	data, found, err := a.slot.Read(ctx, a.key)
	if err != nil {
		log.Er("failed to read slot", err, "key", a.key)
		return models.EmptyState(), &LoadError{Key: a.key, Err: errors.Join(ErrUnreadable, err)}
	}

	if !found {
		log.Info("No saved state, starting empty", "key", a.key)
		return models.EmptyState(), nil
	}

	if !json.Valid(data) {
		log.Warn("Discarding unparseable state", "key", a.key)
		return models.EmptyState(), &LoadError{Key: a.key, Err: ErrUnparseable}
	}

	if err := validateDocument(data); err != nil {
		log.Warn("Discarding state that fails the schema", "key", a.key, "error", err)
		return models.EmptyState(), &LoadError{Key: a.key, Err: errors.Join(ErrInvalidDocument, err)}
	}

	var state models.State
	if err := json.Unmarshal(data, &state); err != nil {
		log.Warn("Discarding state that could not be decoded", "key", a.key, "error", err)
		return models.EmptyState(), &LoadError{Key: a.key, Err: errors.Join(ErrUnparseable, err)}
	}
	state.Normalize()

	log.Info(
		"State loaded",
		"key", a.key,
		"wantToPlay", len(state.WantToPlay),
		"finished", len(state.Finished),
		"abandoned", len(state.Abandoned),
	)
	return state, nil
}

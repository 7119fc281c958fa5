package gamesController

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gameshelf/internal/charts"
	"gameshelf/internal/confirm"
	"gameshelf/internal/export"
	"gameshelf/internal/models"
	"gameshelf/internal/notify"
	"gameshelf/internal/persistence"
	"gameshelf/internal/schema"
	"gameshelf/internal/validation"
	"gameshelf/internal/view"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrUnknownCollection = errors.New("unknown collection")
)

const (
	invalidFormMessage  = "Please fix the errors in the form"
	saveFailedMessage   = "Your changes could not be saved"
	nothingToExportText = "There is nothing to export yet"
)

// LookupError names the record an operation could not find.
type LookupError struct {
	Collection models.CollectionKey
	ID         string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no %s record with id %q", e.Collection, e.ID)
}

func (e *LookupError) Unwrap() error {
	return ErrRecordNotFound
}

type Store interface {
	Save(ctx context.Context, state models.State) error
	Load(ctx context.Context) (models.State, error)
}

type Notifier interface {
	Success(message string) notify.Toast
	Error(message string) notify.Toast
}

type Confirmer interface {
	Ask(message string, onConfirm confirm.Callback) confirm.Prompt
}

// Sink receives the projections rebuilt after every mutation.
type Sink interface {
	PushRender(render view.Render)
	charts.Sink
}

type GameControllerInterface interface {
	Load(ctx context.Context) error
	Create(ctx context.Context, key models.CollectionKey, form *validation.Form) (models.Record, error)
	Update(
		ctx context.Context,
		key models.CollectionKey,
		id string,
		form *validation.Form,
	) (models.Record, error)
	RequestDelete(ctx context.Context, key models.CollectionKey, id string) (confirm.Prompt, error)
	GetByID(key models.CollectionKey, id string) (models.Record, bool)
	Snapshot() models.State
	Save(ctx context.Context) error
	Render() view.Render
	Table(key models.CollectionKey) (view.Table, error)
	Detail(key models.CollectionKey, id string) (view.Detail, error)
	Form(key models.CollectionKey, id string) (view.FormView, error)
	Charts() charts.Charts
	Export(ctx context.Context, key models.CollectionKey) (export.File, error)
}

// GameController owns the three collections. Every mutation runs
// mutate, persist and render inside one critical section.
type GameController struct {
	mu        sync.RWMutex
	state     models.State
	store     Store
	notifier  Notifier
	confirmer Confirmer
	sink      Sink
	log       logger.Logger

	// reloadPending is set when the slot could not be read at startup. Saves
	// retry the load instead of overwriting the stored document until a load
	// succeeds or the state is mutated.
	reloadPending bool
}

func New(store Store, notifier Notifier, confirmer Confirmer, sink Sink) GameControllerInterface {
	return &GameController{
		state:     models.EmptyState(),
		store:     store,
		notifier:  notifier,
		confirmer: confirmer,
		sink:      sink,
		log:       logger.New("gamesController"),
	}
}

// Load restores the persisted state and renders it. A *persistence.LoadError
// is returned for logging; the controller is usable either way.
func (c *GameController) Load(ctx context.Context) error {
	log := c.log.Function("Load")

	state, err := c.store.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = state
	c.state.Normalize()
	c.reloadPending = errors.Is(err, persistence.ErrUnreadable)
	c.render()

	if err != nil {
		return log.Err("starting from the empty state", err)
	}

	return nil
}

func (c *GameController) Create(
	ctx context.Context,
	key models.CollectionKey,
	form *validation.Form,
) (models.Record, error) {
	log := c.log.TraceFromContext(ctx).Function("Create")

	collection, err := c.collection(key)
	if err != nil {
		return nil, log.Err("cannot create record", err, "collection", key)
	}

	if !validation.Validate(form, collection.Rules) {
		return nil, c.rejectForm(log, form)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	record, err := collection.Decode(c.mintID(key), form)
	if err != nil {
		return nil, c.rejectForm(log, form)
	}

	c.state.Append(record)
	c.persist(ctx, log)
	c.render()

	log.Info("Record created", "collection", key, "id", record.RecordID())
	c.notifier.Success(fmt.Sprintf(`"%s" was saved!`, record.RecordName()))
	return record, nil
}

func (c *GameController) Update(
	ctx context.Context,
	key models.CollectionKey,
	id string,
	form *validation.Form,
) (models.Record, error) {
	log := c.log.TraceFromContext(ctx).Function("Update")

	collection, err := c.collection(key)
	if err != nil {
		return nil, log.Err("cannot update record", err, "collection", key)
	}

	if !validation.Validate(form, collection.Rules) {
		return nil, c.rejectForm(log, form)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing, found := c.state.Find(key, id)
	if !found {
		return nil, log.Err("update ignored", &LookupError{Collection: key, ID: id})
	}

	// The stored id is reused so the record never holds the caller's string.
	record, err := collection.Decode(existing.RecordID(), form)
	if err != nil {
		return nil, c.rejectForm(log, form)
	}

	c.state.Replace(record)
	c.persist(ctx, log)
	c.render()

	log.Info("Record updated", "collection", key, "id", record.RecordID())
	c.notifier.Success(fmt.Sprintf(`"%s" was saved!`, record.RecordName()))
	return record, nil
}

// RequestDelete opens a confirmation prompt. The record is removed only
// when the prompt is answered yes.
func (c *GameController) RequestDelete(
	ctx context.Context,
	key models.CollectionKey,
	id string,
) (confirm.Prompt, error) {
	log := c.log.TraceFromContext(ctx).Function("RequestDelete")

	collection, err := c.collection(key)
	if err != nil {
		return confirm.Prompt{}, log.Err("cannot delete record", err, "collection", key)
	}

	record, found := c.GetByID(key, id)
	if !found {
		return confirm.Prompt{}, log.Err("delete ignored", &LookupError{Collection: key, ID: id})
	}

	// The callback runs in a later request, so it captures the schema key and
	// the stored id rather than the arguments.
	targetKey, targetID := collection.Key, record.RecordID()
	message := fmt.Sprintf(`Are you sure you want to delete "%s"?`, record.RecordName())
	return c.confirmer.Ask(message, func(ctx context.Context) error {
		return c.delete(ctx, targetKey, targetID)
	}), nil
}

func (c *GameController) delete(ctx context.Context, key models.CollectionKey, id string) error {
	log := c.log.TraceFromContext(ctx).Function("delete")

	c.mu.Lock()
	defer c.mu.Unlock()

	record, removed := c.state.Remove(key, id)
	if !removed {
		return log.Err("record disappeared before the delete was confirmed", &LookupError{Collection: key, ID: id})
	}

	c.persist(ctx, log)
	c.render()

	log.Info("Record deleted", "collection", key, "id", id)
	c.notifier.Error(fmt.Sprintf(`"%s" was deleted.`, record.RecordName()))
	return nil
}

func (c *GameController) GetByID(key models.CollectionKey, id string) (models.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state.Find(key, id)
}

func (c *GameController) Snapshot() models.State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state.Clone()
}

// Save persists the current state outside of a mutation, for the autosave
// job and shutdown. After an unreadable slot at startup it retries the load
// instead, so a passing read failure never overwrites the stored document.
func (c *GameController) Save(ctx context.Context) error {
	log := c.log.TraceFromContext(ctx).Function("Save")

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reloadPending {
		state, err := c.store.Load(ctx)
		if errors.Is(err, persistence.ErrUnreadable) {
			log.Warn("Slot still unreadable, save skipped", "error", err)
			return nil
		}

		c.reloadPending = false
		if err == nil {
			c.state = state
			c.state.Normalize()
			c.render()
			log.Info("Saved state restored after a failed startup load")
			return nil
		}
		log.Warn("Stored state is unusable, replacing it", "error", err)
	}

	if err := c.store.Save(ctx, c.state); err != nil {
		return log.Err("failed to save state", err)
	}

	return nil
}

func (c *GameController) Render() view.Render {
	return view.RenderAll(c.Snapshot())
}

func (c *GameController) Table(key models.CollectionKey) (view.Table, error) {
	collection, err := c.collection(key)
	if err != nil {
		return view.Table{}, err
	}

	return view.RenderTable(collection, c.Snapshot().Records(key)), nil
}

func (c *GameController) Detail(key models.CollectionKey, id string) (view.Detail, error) {
	collection, record, err := c.lookup(key, id)
	if err != nil {
		return view.Detail{}, err
	}

	return view.RenderDetail(collection, record), nil
}

// Form populates the edit form for id, or a blank form when id is empty.
func (c *GameController) Form(key models.CollectionKey, id string) (view.FormView, error) {
	if id == "" {
		collection, err := c.collection(key)
		if err != nil {
			return view.FormView{}, err
		}
		return view.RenderForm(collection, nil), nil
	}

	collection, record, err := c.lookup(key, id)
	if err != nil {
		return view.FormView{}, err
	}

	return view.RenderForm(collection, record), nil
}

func (c *GameController) Charts() charts.Charts {
	return charts.Compute(c.Snapshot())
}

func (c *GameController) Export(ctx context.Context, key models.CollectionKey) (export.File, error) {
	log := c.log.TraceFromContext(ctx).Function("Export")

	collection, err := c.collection(key)
	if err != nil {
		return export.File{}, log.Err("cannot export", err, "collection", key)
	}

	file, err := export.CSV(collection, c.Snapshot().Records(key))
	if errors.Is(err, export.ErrNothingToExport) {
		c.notifier.Error(nothingToExportText)
		log.Debug("Nothing to export", "collection", key)
		return export.File{}, err
	}
	if err != nil {
		return export.File{}, log.Err("failed to export", err, "collection", key)
	}

	return file, nil
}

func (c *GameController) collection(key models.CollectionKey) (schema.Collection, error) {
	collection, ok := schema.Get(key)
	if !ok {
		return schema.Collection{}, fmt.Errorf("%w: %q", ErrUnknownCollection, key)
	}
	return collection, nil
}

func (c *GameController) lookup(key models.CollectionKey, id string) (schema.Collection, models.Record, error) {
	collection, err := c.collection(key)
	if err != nil {
		return schema.Collection{}, nil, err
	}

	record, found := c.GetByID(key, id)
	if !found {
		return schema.Collection{}, nil, &LookupError{Collection: key, ID: id}
	}

	return collection, record, nil
}

func (c *GameController) rejectForm(log logger.Logger, form *validation.Form) error {
	err := validation.NewValidationError(form)
	log.Debug("Form rejected", "error", err)
	c.notifier.Error(invalidFormMessage)
	return err
}

// mintID returns a time ordered id unused in the collection. Caller holds mu.
func (c *GameController) mintID(key models.CollectionKey) string {
	for {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		if _, taken := c.state.Find(key, id.String()); !taken {
			return id.String()
		}
	}
}

// persist saves the state. A failure keeps the mutation and only raises a
// toast. Caller holds mu.
func (c *GameController) persist(ctx context.Context, log logger.Logger) {
	c.reloadPending = false
	if err := c.store.Save(ctx, c.state); err != nil {
		log.Er("state kept in memory only", err)
		c.notifier.Error(saveFailedMessage)
	}
}

// render pushes fresh projections to the sink. Caller holds mu.
func (c *GameController) render() {
	if c.sink == nil {
		return
	}

	snapshot := c.state.Clone()
	c.sink.PushRender(view.RenderAll(snapshot))
	c.sink.PushCharts(charts.Compute(snapshot))
}

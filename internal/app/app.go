package app

import (
	"context"
	"time"

	"gameshelf/config"
	"gameshelf/internal/confirm"
	"gameshelf/internal/controllers"
	"gameshelf/internal/database"
	"gameshelf/internal/events"
	"gameshelf/internal/handlers/middleware"
	"gameshelf/internal/jobs"
	"gameshelf/internal/navigation"
	"gameshelf/internal/notify"
	"gameshelf/internal/persistence"
	"gameshelf/internal/repositories"
	"gameshelf/internal/search"
	"gameshelf/internal/services"
	"gameshelf/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

const shutdownSaveTimeout = 10 * time.Second

// App is the single container holding the game state and everything wired
// around it.
type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Websocket   *websockets.Manager
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Store       *persistence.Adapter
	Notifier    *notify.Notifier
	Confirmer   *confirm.Confirmer
	Navigator   *navigation.Navigator
	Search      *search.Debouncer
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	app, err := Assemble(config, db)
	if err != nil {
		_ = db.Close()
		return &App{}, err
	}

	return app, nil
}

// Assemble wires the application around already opened connections.
func Assemble(config config.Config, db database.DB) (*App, error) {
	log := logger.New("app").Function("Assemble")

	eventBus := events.New(db.Cache.Events)
	services := services.New(db, config)
	repos := repositories.New()

	slot, err := persistence.NewSlot(config, db, services.Transaction, repos)
	if err != nil {
		_ = eventBus.Close()
		return &App{}, log.Err("failed to create persistence slot", err)
	}
	store := persistence.New(slot, config.PersistenceSlotKey)

	notifier := notify.New(eventBus, notify.DefaultDuration)
	confirmer := confirm.New(eventBus, confirm.DefaultTTL)
	controllers := controllers.New(store, notifier, confirmer, eventBus)

	debouncer := search.New(
		services.GameSearch,
		time.Duration(config.SearchDebounceMS)*time.Millisecond,
	)
	websocket := websockets.New(eventBus, debouncer, controllers.Games)

	if err := jobs.RegisterAllJobs(services.Scheduler, config, controllers.Games); err != nil {
		_ = eventBus.Close()
		return &App{}, log.Err("failed to register jobs", err)
	}

	app := &App{
		Database:    db,
		Middleware:  middleware.New(eventBus, config),
		Websocket:   websocket,
		EventBus:    eventBus,
		Config:      config,
		Services:    services,
		Repos:       repos,
		Store:       store,
		Notifier:    notifier,
		Confirmer:   confirmer,
		Navigator:   navigation.New(),
		Search:      debouncer,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		_ = app.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	if a.Config.PersistenceDriver == config.PersistencePostgres && !a.Database.HasSQL() {
		return log.ErrMsg("database is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Services.GameSearch,
		a.Store,
		a.Notifier,
		a.Confirmer,
		a.Navigator,
		a.Search,
		a.Controllers.Games,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

// Start restores the saved state, pushes the first render and starts the
// autosave schedule. A discarded slot is logged and the app starts empty.
func (a *App) Start(ctx context.Context) error {
	log := logger.New("app").Function("Start")

	if err := a.Controllers.Games.Load(ctx); err != nil {
		log.Warn("Saved state could not be restored", "error", err)
	}

	if err := a.Services.Scheduler.Start(ctx); err != nil {
		return log.Err("failed to start scheduler", err)
	}

	return nil
}

// Close saves the state one last time and releases every resource.
func (a *App) Close() (err error) {
	log := logger.New("app").Function("Close")

	if a.Controllers.Games != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownSaveTimeout)
		if saveErr := a.Controllers.Games.Save(ctx); saveErr != nil {
			log.Er("final save failed", saveErr)
			err = saveErr
		}
		cancel()
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if a.Websocket != nil {
		a.Websocket.Close()
	}

	if a.Search != nil {
		a.Search.Close()
	}

	if a.Confirmer != nil {
		a.Confirmer.Close()
	}

	if a.Notifier != nil {
		a.Notifier.Close()
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}

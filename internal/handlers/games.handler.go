package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"gameshelf/internal/app"
	"gameshelf/internal/events"
	"gameshelf/internal/export"
	"gameshelf/internal/models"
	"gameshelf/internal/navigation"
	"gameshelf/internal/schema"
	"gameshelf/internal/validation"
	"gameshelf/internal/view"

	gamesController "gameshelf/internal/controllers/games"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type GameHandler struct {
	Handler
	gameController gamesController.GameControllerInterface
	navigator      *navigation.Navigator
	eventBus       *events.EventBus
}

func NewGameHandler(app app.App, router fiber.Router) *GameHandler {
	log := logger.New("handlers").File("games_handler")
	return &GameHandler{
		gameController: app.Controllers.Games,
		navigator:      app.Navigator,
		eventBus:       app.EventBus,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *GameHandler) Register() {
	games := h.router.Group("/games/:collection")
	games.Get("", h.getTable)
	games.Post("", h.createGame)
	games.Get("/export", h.exportCollection)
	games.Get("/form", h.getForm)
	games.Post("/validate/:field", h.validateField)
	games.Get("/:id", h.getGame)
	games.Get("/:id/view", h.getDetail)
	games.Put("/:id", h.updateGame)
	games.Delete("/:id", h.deleteGame)
}

func collectionKey(c *fiber.Ctx) models.CollectionKey {
	return models.CollectionKey(c.Params("collection"))
}

// parseForm reads a JSON object of field values. Numbers are accepted for
// numeric fields and null clears a field.
func parseForm(c *fiber.Ctx) (*validation.Form, error) {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(body))
	for field, raw := range body {
		switch value := raw.(type) {
		case nil:
			values[field] = ""
		case string:
			values[field] = value
		case float64:
			values[field] = strconv.FormatFloat(value, 'f', -1, 64)
		case bool:
			values[field] = strconv.FormatBool(value)
		default:
			return nil, fmt.Errorf("field %q must be a string or a number", field)
		}
	}

	return validation.NewForm(values), nil
}

func (h *GameHandler) getTable(c *fiber.Ctx) error {
	table, err := h.gameController.Table(collectionKey(c))
	if err != nil {
		return respondError(c, err, "Failed to render table")
	}

	return c.JSON(fiber.Map{"table": table})
}

func (h *GameHandler) getGame(c *fiber.Ctx) error {
	key := collectionKey(c)
	if _, ok := schema.Get(key); !ok {
		return respondError(c, gamesController.ErrUnknownCollection, "")
	}

	record, found := h.gameController.GetByID(key, c.Params("id"))
	if !found {
		return respondError(c, gamesController.ErrRecordNotFound, "")
	}

	return c.JSON(fiber.Map{"record": record})
}

func (h *GameHandler) getDetail(c *fiber.Ctx) error {
	detail, err := h.gameController.Detail(collectionKey(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to render game")
	}

	return c.JSON(fiber.Map{"detail": detail})
}

func (h *GameHandler) getForm(c *fiber.Ctx) error {
	form, err := h.gameController.Form(collectionKey(c), c.Query("id"))
	if err != nil {
		return respondError(c, err, "Failed to render form")
	}

	return c.JSON(fiber.Map{"form": form})
}

// validateField checks one input as it loses focus. Empty values pass.
func (h *GameHandler) validateField(c *fiber.Ctx) error {
	collection, ok := schema.Get(collectionKey(c))
	if !ok {
		return respondError(c, gamesController.ErrUnknownCollection, "")
	}

	field := c.Params("field")
	if _, ok := collection.Field(field); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown field",
		})
	}

	var body struct {
		Value string `json:"value"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	form := validation.NewForm(map[string]string{field: body.Value})
	valid := validation.ValidateField(form, field, collection.Rules.For(field))
	message, _ := form.Error(field)

	return c.JSON(fiber.Map{
		"field": field,
		"valid": valid,
		"error": message,
	})
}

func (h *GameHandler) createGame(c *fiber.Ctx) error {
	return h.saveGame(c, "", fiber.StatusCreated)
}

func (h *GameHandler) updateGame(c *fiber.Ctx) error {
	return h.saveGame(c, c.Params("id"), fiber.StatusOK)
}

func (h *GameHandler) saveGame(c *fiber.Ctx, id string, status int) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("saveGame")
	key := collectionKey(c)

	form, err := parseForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	var record models.Record
	if id == "" {
		record, err = h.gameController.Create(c.UserContext(), key, form)
	} else {
		record, err = h.gameController.Update(c.UserContext(), key, id, form)
	}

	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		collection, _ := schema.Get(key)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Please fix the errors in the form",
			"fields": validationErr.Fields,
			"form":   view.RenderRejectedForm(collection, id, form),
		})
	}
	if err != nil {
		return respondError(c, err, "Failed to save game")
	}

	if _, closed := h.navigator.CloseModal(); closed {
		h.publishNavigation(log)
	}

	return c.Status(status).JSON(fiber.Map{"record": record})
}

func (h *GameHandler) deleteGame(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("deleteGame")

	prompt, err := h.gameController.RequestDelete(c.UserContext(), collectionKey(c), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Failed to delete game")
	}

	h.navigator.OpenConfirm(prompt.Token)
	h.publishNavigation(log)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"prompt": prompt})
}

func (h *GameHandler) exportCollection(c *fiber.Ctx) error {
	file, err := h.gameController.Export(c.UserContext(), collectionKey(c))
	if err != nil {
		return respondError(c, err, "Failed to export")
	}

	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, export.ContentType)
	return c.Send(file.Content)
}

func (h *GameHandler) publishNavigation(log logger.Logger) {
	publishNavigation(h.eventBus, h.navigator.State(), log)
}

func publishNavigation(eventBus *events.EventBus, state navigation.State, log logger.Logger) {
	err := eventBus.Publish(events.BROADCAST_CHANNEL, events.Event{
		Type: events.NAVIGATION,
		Data: map[string]any{"navigation": state},
	})
	if err != nil {
		log.Warn("Failed to publish navigation", "error", err)
	}
}

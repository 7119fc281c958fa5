package handlers

import (
	"gameshelf/internal/app"
	"gameshelf/internal/confirm"
	"gameshelf/internal/events"
	"gameshelf/internal/navigation"
	"gameshelf/internal/notify"

	gamesController "gameshelf/internal/controllers/games"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ConfirmationRequest struct {
	Confirm bool `json:"confirm"`
}

// StateHandler serves the read models and the presentation state: charts,
// toasts, confirmation prompts and tab/modal navigation.
type StateHandler struct {
	Handler
	gameController gamesController.GameControllerInterface
	navigator      *navigation.Navigator
	notifier       *notify.Notifier
	confirmer      *confirm.Confirmer
	eventBus       *events.EventBus
}

func NewStateHandler(app app.App, router fiber.Router) *StateHandler {
	log := logger.New("handlers").File("state_handler")
	return &StateHandler{
		gameController: app.Controllers.Games,
		navigator:      app.Navigator,
		notifier:       app.Notifier,
		confirmer:      app.Confirmer,
		eventBus:       app.EventBus,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *StateHandler) Register() {
	h.router.Get("/state", h.getState)
	h.router.Get("/charts", h.getCharts)

	notifications := h.router.Group("/notifications")
	notifications.Get("", h.getNotifications)
	notifications.Delete("/:id", h.dismissNotification)

	confirmations := h.router.Group("/confirmations")
	confirmations.Get("", h.getConfirmations)
	confirmations.Post("/:token", h.resolveConfirmation)

	nav := h.router.Group("/navigation")
	nav.Get("", h.getNavigation)
	nav.Put("", h.updateNavigation)
}

func (h *StateHandler) getState(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"state":      h.gameController.Snapshot(),
		"render":     h.gameController.Render(),
		"navigation": h.navigator.State(),
	})
}

func (h *StateHandler) getCharts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"charts": h.gameController.Charts()})
}

func (h *StateHandler) getNotifications(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"notifications": h.notifier.Active()})
}

func (h *StateHandler) dismissNotification(c *fiber.Ctx) error {
	if !h.notifier.Dismiss(c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "notification not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *StateHandler) getConfirmations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"prompts": h.confirmer.Pending()})
}

func (h *StateHandler) resolveConfirmation(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("resolveConfirmation")
	token := c.Params("token")

	var req ConfirmationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ran, err := h.confirmer.Resolve(c.UserContext(), token, req.Confirm)
	if err == nil || ran {
		h.navigator.CloseConfirm(token)
		publishNavigation(h.eventBus, h.navigator.State(), log)
	}
	if err != nil {
		return respondError(c, err, "Failed to resolve confirmation")
	}

	return c.JSON(fiber.Map{"confirmed": ran})
}

func (h *StateHandler) getNavigation(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"navigation": h.navigator.State()})
}

func (h *StateHandler) updateNavigation(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateNavigation")

	var action navigation.Action
	if err := c.BodyParser(&action); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.checkTarget(action); err != nil {
		return respondError(c, err, "Failed to update navigation")
	}

	state, err := h.navigator.Apply(action)
	if err != nil {
		return respondError(c, err, "Failed to update navigation")
	}

	publishNavigation(h.eventBus, state, log)
	return c.JSON(fiber.Map{"navigation": state})
}

// checkTarget rejects modals opened on a record that does not exist.
func (h *StateHandler) checkTarget(action navigation.Action) error {
	switch action.Type {
	case navigation.OpenFormAction:
		_, err := h.gameController.Form(action.Collection, action.ID)
		return err
	case navigation.OpenViewAction:
		_, err := h.gameController.Detail(action.Collection, action.ID)
		return err
	}
	return nil
}


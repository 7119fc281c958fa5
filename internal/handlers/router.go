package handlers

import (
	"gameshelf/internal/app"
	"gameshelf/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	WebSocketHandler(router, app.Websocket)

	api := router.Group("/api", app.Middleware.TraceID())
	HealthHandler(api, app)
	NewGameHandler(*app, api).Register()
	NewStateHandler(*app, api).Register()
	NewSearchHandler(*app, api).Register()

	return nil
}

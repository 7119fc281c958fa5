package handlers

import (
	"gameshelf/internal/app"

	"github.com/gofiber/fiber/v2"
)

func HealthHandler(router fiber.Router, app *app.App) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"version":     app.Config.GeneralVersion,
			"service":     "gameshelf_api",
			"persistence": app.Config.PersistenceDriver,
			"search":      app.Services.GameSearch.Configured(),
			"clients":     app.Websocket.ClientCount(),
			"autosave": fiber.Map{
				"running": app.Services.Scheduler.IsRunning(),
				"jobs":    app.Services.Scheduler.GetJobCount(),
			},
		})
	})
}

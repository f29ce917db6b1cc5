package handlers

import (
	"kintai/internal/app"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func Router(router fiber.Router, app *app.App) error {
	setupWebSocketRoute(router, app)

	api := router.Group("/api", app.Middleware.TraceID(), app.Middleware.AccessLog())
	HealthHandler(api, app.Config)
	NewAttendanceHandler(*app, api).Register()
	NewReportHandler(*app, api).Register()
	NewManagerHandler(*app, api).Register()

	return nil
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}

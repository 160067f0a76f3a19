package routes

import (
	"github.com/gofiber/fiber/v2"

	"titanstore/controllers"
	"titanstore/middleware"
)

func RegisterWebSocketRoutes(app *fiber.App) {
	app.Get("/ws/orders", middleware.DeserializeUser, controllers.WebSocketUpgrade, controllers.OrderEventsSocket)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"titanstore/controllers"
	"titanstore/middleware"
)

func RegisterOrderRoutes(api fiber.Router) {
	orders := api.Group("/orders", middleware.DeserializeUser)

	orders.Post("/create", controllers.CreateOrder)
	orders.Get("/", controllers.GetOrders)
	orders.Get("/details/:orderId", controllers.GetOrderDetails)
	orders.Put("/:orderId/status", controllers.UpdateOrderStatus)
	orders.Patch("/:orderId/status", controllers.UpdateOrderStatus)
	orders.Post("/:orderId/advance", controllers.AdvanceOrderStatus)
	orders.Get("/:orderNumber", controllers.GetOrderByNumber)
}

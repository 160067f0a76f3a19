package routes

import (
	"github.com/gofiber/fiber/v2"

	"titanstore/controllers"
	"titanstore/middleware"
)

func RegisterCartRoutes(api fiber.Router) {
	cart := api.Group("/cart", middleware.DeserializeUser)

	cart.Get("/", controllers.GetCart)
	cart.Post("/", controllers.AddCartItem)
	cart.Post("/clear", controllers.ClearCart)
	cart.Put("/:cartItemId", controllers.UpdateCartItem)
	cart.Delete("/:cartItemId", controllers.RemoveCartItem)
}

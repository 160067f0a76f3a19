package routes

import (
	"github.com/gofiber/fiber/v2"

	"titanstore/controllers"
)

func RegisterProductRoutes(api fiber.Router) {
	products := api.Group("/products")

	products.Get("/", controllers.GetProducts)
	products.Get("/:slug", controllers.GetProductBySlug)
}

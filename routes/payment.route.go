package routes

import (
	"github.com/gofiber/fiber/v2"

	"titanstore/controllers"
	"titanstore/middleware"
)

func RegisterPaymentRoutes(api fiber.Router) {
	payment := api.Group("/payment", middleware.DeserializeUser)

	payment.Post("/create-payment-intent", controllers.CreatePaymentIntent)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"titanstore/controllers"
	"titanstore/middleware"
)

func RegisterUserRoutes(api fiber.Router) {
	user := api.Group("/user", middleware.DeserializeUser)

	user.Get("/profile", controllers.GetProfile)
	user.Put("/profile", controllers.UpdateProfile)

	user.Get("/addresses", controllers.GetAddresses)
	user.Post("/addresses", controllers.CreateAddress)
	user.Put("/addresses/:addressId", controllers.UpdateAddress)
	user.Delete("/addresses/:addressId", controllers.DeleteAddress)
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"titanstore/controllers"
	"titanstore/middleware"
)

func RegisterAuthRoutes(api fiber.Router) {
	auth := api.Group("/auth")

	auth.Post("/signup", controllers.SignUpUser)
	auth.Post("/signin", controllers.SignInUser)
	auth.Post("/signout", controllers.SignOutUser)
	auth.Post("/forgot-password", controllers.ForgotPassword)
	auth.Post("/reset-password", controllers.ResetPassword)
	auth.Get("/me", middleware.DeserializeUser, controllers.GetMe)
}

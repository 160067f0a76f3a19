package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"titanstore/initializers"
	"titanstore/models"
	"titanstore/utils"
)

// DeserializeUser resolves the JWT from the auth_token cookie or the
// Authorization header and loads the account into c.Locals("user").
func DeserializeUser(c *fiber.Ctx) error {
	var tokenString string
	authorization := c.Get("Authorization")

	if strings.HasPrefix(authorization, "Bearer ") {
		tokenString = strings.TrimPrefix(authorization, "Bearer ")
	} else if c.Cookies("auth_token") != "" {
		tokenString = c.Cookies("auth_token")
	}

	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "No authentication token",
			"code":    "TOKEN_MISSING",
		})
	}

	config, _ := initializers.LoadConfig(".")
	sub, err := utils.ParseToken(tokenString, config.JwtSecret)
	if err != nil {
		code := "TOKEN_INVALID"
		message := "Invalid token"
		if errors.Is(err, utils.ErrTokenExpired) {
			code = "TOKEN_EXPIRED"
			message = "Token expired"
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": message,
			"code":    code,
		})
	}

	var user models.User
	if err := initializers.DB.First(&user, "id = ?", sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "The user belonging to this token no longer exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load user",
		})
	}

	c.Locals("user", models.FilterUserRecord(&user))

	return c.Next()
}

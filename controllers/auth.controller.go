package controllers

import (
	"context"
	crand "crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"titanstore/initializers"
	"titanstore/models"
	"titanstore/utils"
)

const resetOtpTTL = 10 * time.Minute

func resetOtpKey(email string) string {
	return "reset_otp:" + strings.ToLower(email)
}

func generateOtp() (string, error) {
	n, err := crand.Int(crand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

func setAuthCookie(c *fiber.Ctx, token string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   false,
		HTTPOnly: true,
		SameSite: "lax",
	})
}

func SignUpUser(c *fiber.Ctx) error {
	var payload models.SignUpInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if errs := models.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Missing required fields",
			"errors":  errs,
		})
	}

	var existing models.User
	err := initializers.DB.First(&existing, "email = ?", strings.ToLower(payload.Email)).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Email already registered",
		})
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Signup failed",
		})
	}

	if err := utils.EnsureStrongPassword(payload.Password); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Signup failed",
		})
	}

	user := models.User{
		Name:     payload.Name,
		Email:    strings.ToLower(payload.Email),
		Password: string(hashedPassword),
	}

	if err := initializers.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Signup failed",
		})
	}

	config, _ := initializers.LoadConfig(".")
	token, err := utils.GenerateToken(user.ID.String(), config.JwtSecret, config.JwtExpiresIn)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Signup failed",
		})
	}
	setAuthCookie(c, token, config.JwtMaxAge)

	return c.JSON(fiber.Map{
		"status": "success",
		"user":   models.FilterUserRecord(&user),
		"token":  token,
	})
}

func SignInUser(c *fiber.Ctx) error {
	var payload models.SignInInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if errs := models.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Email and password required",
			"errors":  errs,
		})
	}

	var user models.User
	if err := initializers.DB.First(&user, "email = ?", strings.ToLower(payload.Email)).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid email or password",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid email or password",
		})
	}

	config, _ := initializers.LoadConfig(".")
	token, err := utils.GenerateToken(user.ID.String(), config.JwtSecret, config.JwtExpiresIn)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Signin failed",
		})
	}
	setAuthCookie(c, token, config.JwtMaxAge)

	return c.JSON(fiber.Map{
		"status": "success",
		"user":   models.FilterUserRecord(&user),
		"token":  token,
	})
}

func SignOutUser(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "lax",
	})

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Signed out successfully",
	})
}

func GetMe(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	return c.JSON(fiber.Map{
		"status": "success",
		"user":   user,
	})
}

// ForgotPassword always answers the same way so the endpoint cannot be used
// to probe which emails have accounts.
func ForgotPassword(c *fiber.Ctx) error {
	var payload models.ForgotPasswordInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Email is required",
		})
	}

	if errs := models.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Email is required",
			"errors":  errs,
		})
	}

	var user models.User
	err := initializers.DB.First(&user, "email = ?", strings.ToLower(payload.Email)).Error
	if err == nil {
		otp, otpErr := generateOtp()
		if otpErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to send OTP",
			})
		}

		ctx := context.Background()
		if err := initializers.RedisClient.Set(ctx, resetOtpKey(user.Email), otp, resetOtpTTL).Err(); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to send OTP",
			})
		}

		config, _ := initializers.LoadConfig(".")
		if err := utils.SendResetOtpEmail(&config, user.Email, user.Name, otp); err != nil {
			message := "Failed to send OTP"
			if errors.Is(err, utils.ErrEmailNotConfigured) {
				message = "Email service is not configured. Please contact administrator."
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": message,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "If an account exists, an OTP was sent.",
	})
}

func ResetPassword(c *fiber.Ctx) error {
	var payload models.ResetPasswordInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Email, OTP, and new password are required",
		})
	}

	if errs := models.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Email, OTP, and new password are required",
			"errors":  errs,
		})
	}

	var user models.User
	if err := initializers.DB.First(&user, "email = ?", strings.ToLower(payload.Email)).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid OTP or email",
		})
	}

	ctx := context.Background()
	storedOtp, err := initializers.RedisClient.Get(ctx, resetOtpKey(user.Email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid OTP or email",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to reset password",
		})
	}

	if storedOtp != payload.Otp {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid OTP or email",
		})
	}

	if err := utils.EnsureStrongPassword(payload.NewPassword); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": err.Error(),
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to reset password",
		})
	}

	if err := initializers.DB.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to reset password",
		})
	}

	initializers.RedisClient.Del(ctx, resetOtpKey(user.Email))

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Password updated successfully",
	})
}

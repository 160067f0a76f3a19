package controllers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"titanstore/initializers"
	"titanstore/models"
)

func GetProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var record models.User
	err := initializers.DB.
		Preload("Addresses").
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Orders.Items").
		First(&record, "id = ?", user.ID).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch profile",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"user":      models.FilterUserRecord(&record),
			"addresses": record.Addresses,
			"orders":    record.Orders,
		},
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload models.UpdateProfileInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if errs := models.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid profile data",
			"errors":  errs,
		})
	}

	updates := map[string]interface{}{}
	if payload.Name != "" {
		updates["name"] = payload.Name
	}
	if payload.Email != "" {
		updates["email"] = strings.ToLower(payload.Email)
	}

	var record models.User
	if err := initializers.DB.First(&record, "id = ?", user.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update profile",
		})
	}

	if len(updates) > 0 {
		if err := initializers.DB.Model(&record).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to update profile",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"user":   models.FilterUserRecord(&record),
	})
}

func GetAddresses(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var addresses []models.Address
	err := initializers.DB.
		Where("user_id = ?", user.ID).
		Order("is_default DESC, created_at DESC").
		Find(&addresses).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch addresses",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   addresses,
	})
}

func CreateAddress(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload models.AddressInput
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

	country := payload.Country
	if country == "" {
		country = models.DefaultCountry
	}

	address := models.Address{
		ID:        uuid.NewV4(),
		UserID:    user.ID,
		FullName:  payload.FullName,
		Phone:     payload.Phone,
		Street:    payload.Street,
		City:      payload.City,
		State:     payload.State,
		ZipCode:   payload.ZipCode,
		Country:   country,
		IsDefault: payload.IsDefault,
	}

	if err := initializers.DB.Create(&address).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to create address",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   address,
	})
}

func UpdateAddress(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	// malformed ids get the same answer as rows that are not yours
	addressID, err := uuid.FromString(c.Params("addressId"))
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "Unauthorized",
		})
	}

	var payload models.AddressInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	var address models.Address
	if err := initializers.DB.First(&address, "id = ?", addressID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "Unauthorized",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update address",
		})
	}
	if address.UserID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "Unauthorized",
		})
	}

	updates := map[string]interface{}{"is_default": payload.IsDefault}
	if payload.FullName != "" {
		updates["full_name"] = payload.FullName
	}
	if payload.Phone != "" {
		updates["phone"] = payload.Phone
	}
	if payload.Street != "" {
		updates["street"] = payload.Street
	}
	if payload.City != "" {
		updates["city"] = payload.City
	}
	if payload.State != "" {
		updates["state"] = payload.State
	}
	if payload.ZipCode != "" {
		updates["zip_code"] = payload.ZipCode
	}
	if payload.Country != "" {
		updates["country"] = payload.Country
	}

	if err := initializers.DB.Model(&address).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update address",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   address,
	})
}

func DeleteAddress(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	addressID, err := uuid.FromString(c.Params("addressId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Address not found",
		})
	}

	result := initializers.DB.Where("id = ? AND user_id = ?", addressID, user.ID).Delete(&models.Address{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to delete address",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Address not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}

package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"titanstore/initializers"
	"titanstore/models"
)

func GetCart(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var items []models.CartItem
	err := initializers.DB.
		Preload("Product").
		Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch cart",
		})
	}

	responses := make([]models.CartItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, models.FilterCartItemRecord(&items[i]))
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   responses,
		"total":  models.CartSubtotal(items),
	})
}

// AddCartItem upserts on the (user, product, variant) key: an existing line
// gets its quantity bumped, a new line snapshots the current price. Stock
// flags are advisory at this stage and deliberately not enforced.
func AddCartItem(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	var payload models.AddCartItemInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	if errs := models.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Product ID and quantity required",
			"errors":  errs,
		})
	}

	productID, err := uuid.FromString(payload.ProductID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid product id",
		})
	}

	var product models.Product
	if err := initializers.DB.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to add to cart",
		})
	}

	price := product.BasePrice
	var variantID *uuid.UUID

	if payload.VariantID != "" {
		parsed, err := uuid.FromString(payload.VariantID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Invalid variant id",
			})
		}

		var variant models.ProductVariant
		if err := initializers.DB.First(&variant, "id = ?", parsed).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"status":  "error",
					"message": "Variant not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to add to cart",
			})
		}

		if variant.ProductID != product.ID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "Variant does not belong to this product",
			})
		}

		price = variant.Price
		variantID = &parsed
	}

	query := initializers.DB.Where("user_id = ? AND product_id = ?", user.ID, product.ID)
	if variantID != nil {
		query = query.Where("variant_id = ?", *variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	var item models.CartItem
	err = query.First(&item).Error
	switch {
	case err == nil:
		item.Quantity += payload.Quantity
		if err := initializers.DB.Save(&item).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to add to cart",
			})
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.CartItem{
			ID:        uuid.NewV4(),
			UserID:    user.ID,
			ProductID: product.ID,
			VariantID: variantID,
			Quantity:  payload.Quantity,
			Price:     price,
		}
		if err := initializers.DB.Create(&item).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to add to cart",
			})
		}
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to add to cart",
		})
	}

	item.Product = product

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   models.FilterCartItemRecord(&item),
	})
}

// UpdateCartItem sets the quantity; anything below one removes the line.
func UpdateCartItem(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	cartItemID, err := uuid.FromString(c.Params("cartItemId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Cart item not found",
		})
	}

	var payload models.UpdateCartItemInput
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Cannot parse JSON",
		})
	}

	var item models.CartItem
	if err := initializers.DB.First(&item, "id = ? AND user_id = ?", cartItemID, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Cart item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update cart item",
		})
	}

	if payload.Quantity < 1 {
		if err := initializers.DB.Delete(&item).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"status":  "error",
				"message": "Failed to update cart item",
			})
		}
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Cart item removed",
		})
	}

	item.Quantity = payload.Quantity
	if err := initializers.DB.Save(&item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update cart item",
		})
	}

	if err := initializers.DB.Preload("Product").First(&item, "id = ?", item.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to update cart item",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   models.FilterCartItemRecord(&item),
	})
}

func RemoveCartItem(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	cartItemID, err := uuid.FromString(c.Params("cartItemId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Cart item not found",
		})
	}

	result := initializers.DB.Where("id = ? AND user_id = ?", cartItemID, user.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to remove from cart",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Cart item not found",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}

func ClearCart(c *fiber.Ctx) error {
	user := c.Locals("user").(models.UserResponse)

	if err := initializers.DB.Where("user_id = ?", user.ID).Delete(&models.CartItem{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to clear cart",
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
	})
}

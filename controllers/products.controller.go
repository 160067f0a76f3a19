package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"titanstore/initializers"
	"titanstore/models"
	"titanstore/utils"
)

const productCacheTTL = 60 * time.Second

type productDetailResponse struct {
	Product  models.ProductResponse          `json:"product"`
	Variants []models.ProductVariantResponse `json:"variants"`
}

func GetProducts(c *fiber.Ctx) error {
	query := initializers.DB.Order("created_at DESC")

	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var products []models.Product
	if err := utils.Paginate(c, query, &products); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch products",
		})
	}

	responses := make([]models.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, models.FilterProductRecord(&products[i]))
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   responses,
	})
}

// GetProductBySlug serves the product page payload, read through a short
// Redis cache since this is the hottest read of the storefront.
func GetProductBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	cacheKey := "product:" + slug
	ctx := context.Background()

	// cache trouble is never a reason to fail the read
	if initializers.RedisClient != nil {
		cached, err := initializers.RedisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var detail productDetailResponse
			if json.Unmarshal([]byte(cached), &detail) == nil {
				return c.JSON(fiber.Map{
					"status": "success",
					"data":   detail,
				})
			}
		}
	}

	var product models.Product
	if err := initializers.DB.First(&product, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"status":  "error",
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch product",
		})
	}

	var variants []models.ProductVariant
	if err := initializers.DB.
		Where("product_id = ?", product.ID).
		Order("color ASC, size ASC").
		Find(&variants).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch product",
		})
	}

	detail := productDetailResponse{
		Product:  models.FilterProductRecord(&product),
		Variants: make([]models.ProductVariantResponse, 0, len(variants)),
	}
	for i := range variants {
		detail.Variants = append(detail.Variants, models.FilterVariantRecord(&variants[i]))
	}

	if initializers.RedisClient != nil {
		if encoded, err := json.Marshal(detail); err == nil {
			initializers.RedisClient.Set(ctx, cacheKey, encoded, productCacheTTL)
		}
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   detail,
	})
}

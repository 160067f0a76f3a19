package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Paginate applies page/limit query params to the prepared query and loads
// the page into out.
func Paginate(c *fiber.Ctx, db *gorm.DB, out interface{}) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit
	return db.Offset(offset).Limit(limit).Find(out).Error
}

package models

import (
	"time"

	"github.com/jackc/pgtype"
	uuid "github.com/satori/go.uuid"
)

type Product struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primary_key" json:"id"`
	Name        string           `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description string           `gorm:"type:text" json:"description"`
	BasePrice   float64          `gorm:"not null" json:"basePrice"`
	Category    string           `gorm:"type:varchar(100);index" json:"category"`
	Images      pgtype.TextArray `gorm:"type:text[]" json:"-"`
	Featured    bool             `gorm:"default:false" json:"featured"`
	InStock     bool             `gorm:"default:true" json:"inStock"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

type ProductVariant struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primary_key" json:"id"`
	ProductID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	SKU        string           `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Color      string           `gorm:"type:varchar(100)" json:"color"`
	ColorHex   string           `gorm:"type:varchar(20)" json:"colorHex"`
	Storage    string           `gorm:"type:varchar(50)" json:"storage"`
	Size       string           `gorm:"type:varchar(50)" json:"size"`
	Price      float64          `gorm:"not null" json:"price"`
	StockCount int              `gorm:"default:0" json:"stockCount"`
	InStock    bool             `gorm:"default:true" json:"inStock"`
	Images     pgtype.TextArray `gorm:"type:text[]" json:"-"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// StringArray builds a present pgtype.TextArray from plain strings for the
// text[] image columns.
func StringArray(values []string) pgtype.TextArray {
	var arr pgtype.TextArray
	if values == nil {
		values = []string{}
	}
	// Set on []string never fails
	_ = arr.Set(values)
	return arr
}

// StringsFromArray unwraps a pgtype.TextArray back into plain strings,
// dropping NULL elements.
func StringsFromArray(arr pgtype.TextArray) []string {
	out := []string{}
	if arr.Status != pgtype.Present {
		return out
	}
	for _, el := range arr.Elements {
		if el.Status == pgtype.Present {
			out = append(out, el.String)
		}
	}
	return out
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	BasePrice   float64   `json:"basePrice"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Featured    bool      `json:"featured"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductVariantResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	SKU        string    `json:"sku"`
	Color      string    `json:"color"`
	ColorHex   string    `json:"colorHex"`
	Storage    string    `json:"storage"`
	Size       string    `json:"size"`
	Price      float64   `json:"price"`
	StockCount int       `json:"stockCount"`
	InStock    bool      `json:"inStock"`
	Images     []string  `json:"images"`
}

func FilterProductRecord(product *Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Slug:        product.Slug,
		Description: product.Description,
		BasePrice:   product.BasePrice,
		Category:    product.Category,
		Images:      StringsFromArray(product.Images),
		Featured:    product.Featured,
		InStock:     product.InStock,
		CreatedAt:   product.CreatedAt,
	}
}

func FilterVariantRecord(variant *ProductVariant) ProductVariantResponse {
	return ProductVariantResponse{
		ID:         variant.ID,
		ProductID:  variant.ProductID,
		SKU:        variant.SKU,
		Color:      variant.Color,
		ColorHex:   variant.ColorHex,
		Storage:    variant.Storage,
		Size:       variant.Size,
		Price:      variant.Price,
		StockCount: variant.StockCount,
		InStock:    variant.InStock,
		Images:     StringsFromArray(variant.Images),
	}
}

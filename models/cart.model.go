package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

// CartItem is one line of a user's cart, keyed by (user, product, variant).
// Price is a snapshot taken when the line is first added.
type CartItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primary_key" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_key" json:"user_id"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_key" json:"product_id"`
	VariantID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_key" json:"variant_id,omitempty"`
	Quantity  int        `gorm:"not null;default:1" json:"quantity"`
	Price     float64    `gorm:"not null" json:"price"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	Product   Product    `gorm:"foreignKey:ProductID" json:"-"`
}

type AddCartItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" validate:"required"`
}

type CartItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Product   ProductResponse `json:"product"`
}

func FilterCartItemRecord(item *CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Product:   FilterProductRecord(&item.Product),
	}
}

// CartSubtotal sums price*quantity over the cart lines.
func CartSubtotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

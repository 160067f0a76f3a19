package models

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	uuid "github.com/satori/go.uuid"
)

const (
	OrderStatusPending    = "PENDING"
	OrderStatusConfirmed  = "CONFIRMED"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
	OrderStatusRefunded   = "REFUNDED"
)

// OrderStatuses is every status the generic update endpoint accepts.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusRefunded,
}

// FulfillmentSequence is the forward-only path walked by the advance
// operation. CANCELLED/REFUNDED/PENDING sit outside it and are reachable
// only through a direct status write.
var FulfillmentSequence = []string{
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// NextOrderStatus returns the status following current in the fulfillment
// sequence. ok is false when current is DELIVERED (nothing follows) or not
// part of the sequence at all.
func NextOrderStatus(current string) (next string, ok bool) {
	for i, s := range FulfillmentSequence {
		if s == current {
			if i == len(FulfillmentSequence)-1 {
				return current, false
			}
			return FulfillmentSequence[i+1], true
		}
	}
	return "", false
}

type Order struct {
	ID                uuid.UUID            `gorm:"type:uuid;default:uuid_generate_v4();primary_key" json:"id"`
	OrderNumber       string               `gorm:"type:varchar(50);uniqueIndex;not null" json:"orderNumber"`
	UserID            uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	Subtotal          float64              `gorm:"not null" json:"subtotal"`
	Tax               float64              `gorm:"not null;default:0" json:"tax"`
	Shipping          float64              `gorm:"not null;default:0" json:"shipping"`
	Total             float64              `gorm:"not null" json:"total"`
	Status            string               `gorm:"type:varchar(50);default:'PENDING'" json:"status"`
	PaymentStatus     string               `gorm:"type:varchar(50);default:'UNPAID'" json:"paymentStatus"`
	PaymentMethod     string               `gorm:"type:varchar(50)" json:"paymentMethod"`
	StripePaymentID   string               `gorm:"type:varchar(255)" json:"stripePaymentId,omitempty"`
	ShippingAddressID *uuid.UUID           `gorm:"type:uuid" json:"shipping_address_id,omitempty"`
	BillingAddressID  *uuid.UUID           `gorm:"type:uuid" json:"billing_address_id,omitempty"`
	ShippingAddress   *Address             `gorm:"foreignKey:ShippingAddressID" json:"shippingAddress,omitempty"`
	Items             []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	StatusHistory     []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"statusHistory"`
	CreatedAt         time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem is an immutable snapshot of what was bought. Name, image and
// price are copied from the catalog so later edits there never rewrite
// order history.
type OrderItem struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key" json:"id"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	ProductName  string    `gorm:"type:varchar(255);not null" json:"productName"`
	ProductImage string    `gorm:"type:varchar(500)" json:"productImage,omitempty"`
	Price        float64   `gorm:"not null" json:"price"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// OrderStatusHistory is append-only, one row per transition plus the
// initial CONFIRMED row written with the order.
type OrderStatusHistory struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Status    string    `gorm:"type:varchar(50);not null" json:"status"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type OrderItemInput struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
}

type ShippingInfoInput struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone"`
	Street   string `json:"street" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	ZipCode  string `json:"zipCode" validate:"required"`
	Country  string `json:"country"`
}

// CreateOrderInput is checked field by field in the handler so each problem
// gets its own message; only the nested shipping block goes through the
// struct validator.
type CreateOrderInput struct {
	Items           []OrderItemInput   `json:"items"`
	Total           float64            `json:"total"`
	ShippingInfo    *ShippingInfoInput `json:"shippingInfo"`
	PaymentIntentID string             `json:"paymentIntentId"`
	SaveAddress     bool               `json:"saveAddress"`
}

type UpdateOrderStatusInput struct {
	Status string `json:"status"`
}

// OrderSubtotal sums price*quantity over the snapshot lines.
func OrderSubtotal(items []OrderItemInput) float64 {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

// ReconcileOrderTotals trusts the caller-supplied total when it is a finite
// positive number and falls back to the computed subtotal otherwise. Tax is
// whatever sits between the two, never negative.
func ReconcileOrderTotals(items []OrderItemInput, suppliedTotal float64) (subtotal, tax, total float64) {
	subtotal = OrderSubtotal(items)
	total = subtotal
	if suppliedTotal > 0 && !math.IsInf(suppliedTotal, 0) && !math.IsNaN(suppliedTotal) {
		total = suppliedTotal
	}
	tax = math.Max(0, total-subtotal)
	return subtotal, tax, total
}

const orderNumberCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderNumber produces the human-facing identifier,
// ORD-<epoch millis>-<9 random base36 chars>.
func GenerateOrderNumber() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = orderNumberCharset[rand.Intn(len(orderNumberCharset))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

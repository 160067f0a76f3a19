package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
)

type Address struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"fullName"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Street    string    `gorm:"type:varchar(255);not null" json:"street"`
	City      string    `gorm:"type:varchar(100);not null" json:"city"`
	State     string    `gorm:"type:varchar(100);not null" json:"state"`
	ZipCode   string    `gorm:"type:varchar(20);not null" json:"zipCode"`
	Country   string    `gorm:"type:varchar(100);not null" json:"country"`
	IsDefault bool      `gorm:"default:false" json:"isDefault"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type AddressInput struct {
	FullName  string `json:"fullName" validate:"required"`
	Phone     string `json:"phone"`
	Street    string `json:"street" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	ZipCode   string `json:"zipCode" validate:"required"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

const DefaultCountry = "United States"

// MatchesShippingInfo reports whether the stored address equals the checkout
// payload field for field. Used to reuse an existing row instead of writing
// a duplicate when the user saves the address at checkout.
func (a *Address) MatchesShippingInfo(info *ShippingInfoInput) bool {
	country := info.Country
	if country == "" {
		country = DefaultCountry
	}
	return a.FullName == info.FullName &&
		a.Phone == info.Phone &&
		a.Street == info.Street &&
		a.City == info.City &&
		a.State == info.State &&
		a.ZipCode == info.ZipCode &&
		a.Country == country
}

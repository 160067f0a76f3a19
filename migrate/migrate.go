package main

import (
	"fmt"
	"log"

	"titanstore/initializers"
	"titanstore/models"
)

func init() {
	config, err := initializers.LoadConfig(".")
	if err != nil {
		log.Fatal("Could not load environment variables:", err)
	}

	initializers.ConnectDB(&config)
}

func main() {
	err := initializers.DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductVariant{},
		&models.CartItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		log.Fatal("Migration failed:", err)
	}
	fmt.Println("Migration complete")

	seedProducts()
}

// seedProducts fills an empty catalog with the two demo phones and their
// color/size variant grid.
func seedProducts() {
	var count int64
	initializers.DB.Model(&models.Product{}).Count(&count)
	if count > 0 {
		fmt.Println("Catalog already seeded, skipping")
		return
	}

	colors := []struct {
		Name  string
		Hex   string
		Image string
	}{
		{"Natural Titanium", "#d4c5b0", "/assets/images/natural.jpg"},
		{"Blue Titanium", "#5c7c99", "/assets/images/blue.jpg"},
		{"White Titanium", "#f5f5f0", "/assets/images/white.jpg"},
		{"Black Titanium", "#3f3f3f", "/assets/images/black.jpg"},
	}

	sizes := []struct {
		Size          string
		PriceIncrease float64
	}{
		{"6.1", 0},
		{"6.7", 50000},
	}

	products := []models.Product{
		{
			Name:        "Titan Phone 20 Pro",
			Slug:        "titan-phone-20-pro",
			Description: "The most advanced Titan phone ever. Titanium design and a breakthrough camera system.",
			BasePrice:   199999,
			Category:    "Phones",
			Images:      models.StringArray([]string{"/assets/images/natural.jpg", "/assets/images/explore1.jpg"}),
			Featured:    true,
			InStock:     true,
		},
		{
			Name:        "Titan Phone 20 Pro Max",
			Slug:        "titan-phone-20-pro-max",
			Description: "The ultimate Titan phone with the largest display and the best battery life.",
			BasePrice:   249999,
			Category:    "Phones",
			Images:      models.StringArray([]string{"/assets/images/blue.jpg", "/assets/images/explore2.jpg"}),
			Featured:    true,
			InStock:     true,
		},
	}

	for i := range products {
		product := &products[i]
		if err := initializers.DB.Create(product).Error; err != nil {
			log.Fatal("Seeding products failed:", err)
		}

		for _, color := range colors {
			for _, size := range sizes {
				variant := models.ProductVariant{
					ProductID:  product.ID,
					SKU:        fmt.Sprintf("%s-%s-%s", product.Slug, color.Name[:3], size.Size),
					Color:      color.Name,
					ColorHex:   color.Hex,
					Storage:    size.Size,
					Size:       size.Size,
					Price:      product.BasePrice + size.PriceIncrease,
					StockCount: 50,
					InStock:    true,
					Images:     models.StringArray([]string{color.Image}),
				}
				if err := initializers.DB.Create(&variant).Error; err != nil {
					log.Fatal("Seeding variants failed:", err)
				}
			}
		}
	}

	fmt.Println("Catalog seeded")
}

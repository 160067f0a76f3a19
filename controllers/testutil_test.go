package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"titanstore/initializers"
	"titanstore/models"
)

// Handlers run against sqlite here, so the schema is spelled out by hand:
// the production tags carry uuid_generate_v4() defaults sqlite cannot parse,
// and the handlers set ids themselves anyway.
var testSchema = []string{
	`CREATE TABLE products (
		id text PRIMARY KEY,
		name text NOT NULL,
		slug text NOT NULL UNIQUE,
		description text,
		base_price real NOT NULL,
		category text,
		images text,
		featured numeric NOT NULL DEFAULT 0,
		in_stock numeric NOT NULL DEFAULT 1,
		created_at datetime,
		updated_at datetime
	)`,
	`CREATE TABLE product_variants (
		id text PRIMARY KEY,
		product_id text NOT NULL,
		sku text NOT NULL UNIQUE,
		color text,
		color_hex text,
		storage text,
		size text,
		price real NOT NULL,
		stock_count integer NOT NULL DEFAULT 0,
		in_stock numeric NOT NULL DEFAULT 1,
		images text,
		created_at datetime,
		updated_at datetime
	)`,
	`CREATE TABLE cart_items (
		id text PRIMARY KEY,
		user_id text NOT NULL,
		product_id text NOT NULL,
		variant_id text,
		quantity integer NOT NULL DEFAULT 1,
		price real NOT NULL,
		created_at datetime,
		updated_at datetime,
		UNIQUE (user_id, product_id, variant_id)
	)`,
	`CREATE TABLE orders (
		id text PRIMARY KEY,
		order_number text NOT NULL UNIQUE,
		user_id text NOT NULL,
		subtotal real NOT NULL,
		tax real NOT NULL DEFAULT 0,
		shipping real NOT NULL DEFAULT 0,
		total real NOT NULL,
		status text NOT NULL DEFAULT 'PENDING',
		payment_status text NOT NULL DEFAULT 'UNPAID',
		payment_method text,
		stripe_payment_id text,
		shipping_address_id text,
		billing_address_id text,
		created_at datetime,
		updated_at datetime
	)`,
	`CREATE TABLE order_items (
		id text PRIMARY KEY,
		order_id text NOT NULL,
		product_id text NOT NULL,
		product_name text NOT NULL,
		product_image text,
		price real NOT NULL,
		quantity integer NOT NULL,
		created_at datetime
	)`,
	`CREATE TABLE order_status_histories (
		id text PRIMARY KEY,
		order_id text NOT NULL,
		status text NOT NULL,
		notes text,
		created_at datetime
	)`,
	`CREATE TABLE addresses (
		id text PRIMARY KEY,
		user_id text NOT NULL,
		full_name text NOT NULL,
		phone text,
		street text NOT NULL,
		city text NOT NULL,
		state text NOT NULL,
		zip_code text NOT NULL,
		country text NOT NULL,
		is_default numeric NOT NULL DEFAULT 0,
		created_at datetime,
		updated_at datetime
	)`,
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one in-memory database per test, one connection so it stays visible
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		require.NoError(t, db.Exec(stmt).Error)
	}

	initializers.DB = db
	return db
}

func testUser() models.UserResponse {
	return models.UserResponse{
		ID:    uuid.NewV4(),
		Name:  "Dana Test",
		Email: "dana@example.com",
	}
}

// newTestApp mounts the handlers behind a stand-in for DeserializeUser that
// plants the given user directly.
func newTestApp(user models.UserResponse) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return c.Next()
	})

	app.Post("/api/orders/create", CreateOrder)
	app.Get("/api/orders/details/:orderId", GetOrderDetails)
	app.Put("/api/orders/:orderId/status", UpdateOrderStatus)
	app.Post("/api/orders/:orderId/advance", AdvanceOrderStatus)

	app.Post("/api/cart", AddCartItem)
	app.Put("/api/cart/:cartItemId", UpdateCartItem)
	app.Delete("/api/cart/:cartItemId", RemoveCartItem)

	app.Delete("/api/user/addresses/:addressId", DeleteAddress)

	return app
}

func jsonRequest(method, target string, payload interface{}) *http.Request {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func seedProduct(t *testing.T, db *gorm.DB, name, slug string, price float64) models.Product {
	t.Helper()

	product := models.Product{
		ID:        uuid.NewV4(),
		Name:      name,
		Slug:      slug,
		BasePrice: price,
		Category:  "phones",
		Images:    models.StringArray([]string{"/assets/" + slug + ".jpg"}),
		InStock:   true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedVariant(t *testing.T, db *gorm.DB, productID uuid.UUID, sku string, price float64) models.ProductVariant {
	t.Helper()

	variant := models.ProductVariant{
		ID:        uuid.NewV4(),
		ProductID: productID,
		SKU:       sku,
		Color:     "Obsidian Black",
		ColorHex:  "#1a1a1a",
		Storage:   "256GB",
		Size:      "6.7",
		Price:     price,
		InStock:   true,
		Images:    models.StringArray([]string{"/assets/" + sku + ".jpg"}),
	}
	require.NoError(t, db.Create(&variant).Error)
	return variant
}

func seedOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, status string) models.Order {
	t.Helper()

	order := models.Order{
		ID:            uuid.NewV4(),
		OrderNumber:   models.GenerateOrderNumber(),
		UserID:        userID,
		Subtotal:      999,
		Total:         999,
		Status:        status,
		PaymentStatus: "PAID",
		PaymentMethod: "card",
	}
	require.NoError(t, db.Create(&order).Error)

	initial := models.OrderStatusHistory{
		ID:      uuid.NewV4(),
		OrderID: order.ID,
		Status:  models.OrderStatusConfirmed,
		Notes:   "Order confirmed and payment received",
	}
	require.NoError(t, db.Create(&initial).Error)

	return order
}

package controllers

import (
	"fmt"
	"net/http"
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titanstore/models"
)

func checkoutPayload(product models.Product, extra models.Product) models.CreateOrderInput {
	return models.CreateOrderInput{
		Items: []models.OrderItemInput{
			{ProductID: product.ID.String(), ProductName: product.Name, Price: 999, Quantity: 2},
			{ProductID: extra.ID.String(), ProductName: extra.Name, Price: 50, Quantity: 1},
		},
		Total: 2211.84,
		ShippingInfo: &models.ShippingInfoInput{
			FullName: "Dana Test",
			Phone:    "+15550100",
			Street:   "1 Infinite Loop",
			City:     "Cupertino",
			State:    "CA",
			ZipCode:  "95014",
		},
		PaymentIntentID: "pi_test_123",
		SaveAddress:     true,
	}
}

func TestCreateOrderSnapshotsCartAndWritesInitialHistory(t *testing.T) {
	db := setupTestDB(t)
	user := testUser()
	app := newTestApp(user)

	product := seedProduct(t, db, "Titan Phone X", "titan-phone-x", 999)
	extra := seedProduct(t, db, "Titan Case", "titan-case", 50)

	cartLine := models.CartItem{
		ID:        uuid.NewV4(),
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
		Price:     999,
	}
	require.NoError(t, db.Create(&cartLine).Error)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/orders/create", checkoutPayload(product, extra)), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Status string `json:"status"`
		Order  struct {
			ID          string  `json:"id"`
			OrderNumber string  `json:"orderNumber"`
			Status      string  `json:"status"`
			Total       float64 `json:"total"`
		} `json:"order"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, models.OrderStatusConfirmed, body.Order.Status)
	assert.Regexp(t, `^ORD-\d+-[0-9A-Z]{9}$`, body.Order.OrderNumber)

	var order models.Order
	require.NoError(t, db.Preload("Items").Preload("StatusHistory").First(&order, "user_id = ?", user.ID).Error)

	assert.InDelta(t, 2048, order.Subtotal, 1e-9)
	assert.InDelta(t, 163.84, order.Tax, 1e-9)
	assert.InDelta(t, 2211.84, order.Total, 1e-9)
	assert.Equal(t, "PAID", order.PaymentStatus)
	assert.Equal(t, "pi_test_123", order.StripePaymentID)
	require.Len(t, order.Items, 2)

	require.Len(t, order.StatusHistory, 1, "checkout writes exactly one history row")
	assert.Equal(t, models.OrderStatusConfirmed, order.StatusHistory[0].Status)
	assert.Equal(t, "Order confirmed and payment received", order.StatusHistory[0].Notes)

	var cartCount int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	assert.Zero(t, cartCount, "checkout clears the cart")

	require.NotNil(t, order.ShippingAddressID)
	var address models.Address
	require.NoError(t, db.First(&address, "id = ?", *order.ShippingAddressID).Error)
	assert.Equal(t, "1 Infinite Loop", address.Street)
	assert.Equal(t, models.DefaultCountry, address.Country)
}

func TestOrderItemsSurviveCatalogEdits(t *testing.T) {
	db := setupTestDB(t)
	user := testUser()
	app := newTestApp(user)

	product := seedProduct(t, db, "Titan Phone X", "titan-phone-x", 999)
	extra := seedProduct(t, db, "Titan Case", "titan-case", 50)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/orders/create", checkoutPayload(product, extra)), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{"name": "Titan Phone X Pro", "base_price": 1299.0}).Error)

	var item models.OrderItem
	require.NoError(t, db.First(&item, "product_id = ?", product.ID).Error)
	assert.Equal(t, "Titan Phone X", item.ProductName, "snapshot keeps the name at purchase time")
	assert.InDelta(t, 999, item.Price, 1e-9, "snapshot keeps the price at purchase time")
}

func TestCreateOrderRejectsBadPayloads(t *testing.T) {
	db := setupTestDB(t)
	user := testUser()
	app := newTestApp(user)

	product := seedProduct(t, db, "Titan Phone X", "titan-phone-x", 999)
	shipping := &models.ShippingInfoInput{
		FullName: "Dana Test",
		Street:   "1 Infinite Loop",
		City:     "Cupertino",
		State:    "CA",
		ZipCode:  "95014",
	}

	tests := []struct {
		name    string
		payload models.CreateOrderInput
		message string
	}{
		{
			name:    "no items",
			payload: models.CreateOrderInput{Total: 100, ShippingInfo: shipping},
			message: "Order must contain items",
		},
		{
			name: "zero total",
			payload: models.CreateOrderInput{
				Items:        []models.OrderItemInput{{ProductID: product.ID.String(), Price: 999, Quantity: 1}},
				ShippingInfo: shipping,
			},
			message: "Invalid total amount",
		},
		{
			name: "missing shipping info",
			payload: models.CreateOrderInput{
				Items: []models.OrderItemInput{{ProductID: product.ID.String(), Price: 999, Quantity: 1}},
				Total: 999,
			},
			message: "Shipping information required",
		},
		{
			name: "zero quantity line",
			payload: models.CreateOrderInput{
				Items:        []models.OrderItemInput{{ProductID: product.ID.String(), Price: 999, Quantity: 0}},
				Total:        999,
				ShippingInfo: shipping,
			},
			message: "Invalid order items",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(http.MethodPost, "/api/orders/create", tc.payload), -1)
			require.NoError(t, err)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body struct {
				Message string `json:"message"`
			}
			decodeBody(t, resp, &body)
			assert.Equal(t, tc.message, body.Message)

			var count int64
			require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
			assert.Zero(t, count, "a rejected checkout writes nothing")
		})
	}
}

func TestAdvanceAppendsOneHistoryRowPerTransition(t *testing.T) {
	db := setupTestDB(t)
	user := testUser()
	app := newTestApp(user)

	order := seedOrder(t, db, user.ID, models.OrderStatusConfirmed)
	target := fmt.Sprintf("/api/orders/%s/advance", order.ID)

	for i, want := range []string{
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		resp, err := app.Test(jsonRequest(http.MethodPost, target, nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		var current models.Order
		require.NoError(t, db.First(&current, "id = ?", order.ID).Error)
		assert.Equal(t, want, current.Status)

		var historyCount int64
		require.NoError(t, db.Model(&models.OrderStatusHistory{}).
			Where("order_id = ?", order.ID).Count(&historyCount).Error)
		assert.Equal(t, int64(i+2), historyCount, "one history row per effective transition plus the initial row")
	}

	var last models.OrderStatusHistory
	require.NoError(t, db.Where("order_id = ? AND status = ?", order.ID, models.OrderStatusDelivered).
		First(&last).Error)
	assert.Equal(t, "Order status updated to DELIVERED", last.Notes)

	// advancing a delivered order answers 200 and writes nothing
	resp, err := app.Test(jsonRequest(http.MethodPost, target, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var historyCount int64
	require.NoError(t, db.Model(&models.OrderStatusHistory{}).
		Where("order_id = ?", order.ID).Count(&historyCount).Error)
	assert.Equal(t, int64(4), historyCount)

	var final models.Order
	require.NoError(t, db.First(&final, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, final.Status)
}

func TestAdvanceRejectsStatusesOutsideTheSequence(t *testing.T) {
	db := setupTestDB(t)
	user := testUser()
	app := newTestApp(user)

	order := seedOrder(t, db, user.ID, models.OrderStatusCancelled)

	resp, err := app.Test(jsonRequest(http.MethodPost, fmt.Sprintf("/api/orders/%s/advance", order.ID), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	var historyCount int64
	require.NoError(t, db.Model(&models.OrderStatusHistory{}).
		Where("order_id = ?", order.ID).Count(&historyCount).Error)
	assert.Equal(t, int64(1), historyCount)
}

func TestOrderLookupMalformedIDIsNotFound(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(testUser())

	for _, tc := range []struct {
		method string
		target string
		body   interface{}
	}{
		{http.MethodGet, "/api/orders/details/not-a-uuid", nil},
		{http.MethodPost, "/api/orders/not-a-uuid/advance", nil},
		{http.MethodPut, "/api/orders/not-a-uuid/status", models.UpdateOrderStatusInput{Status: models.OrderStatusShipped}},
	} {
		resp, err := app.Test(jsonRequest(tc.method, tc.target, tc.body), -1)
		require.NoError(t, err)
		assert.Equalf(t, http.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.target)
		resp.Body.Close()
	}
}

func TestOrderAccessRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	owner := testUser()
	order := seedOrder(t, db, owner.ID, models.OrderStatusConfirmed)

	app := newTestApp(testUser()) // someone else

	resp, err := app.Test(jsonRequest(http.MethodGet, fmt.Sprintf("/api/orders/details/%s", order.ID), nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

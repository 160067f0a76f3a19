package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"titanstore/models"
)

func TestAddCartItemMergesRepeatedAdds(t *testing.T) {
	db := setupTestDB(t)
	user := testUser()
	app := newTestApp(user)

	product := seedProduct(t, db, "Titan Phone X", "titan-phone-x", 999)

	for _, quantity := range []int{2, 3} {
		resp, err := app.Test(jsonRequest(http.MethodPost, "/api/cart", models.AddCartItemInput{
			ProductID: product.ID.String(),
			Quantity:  quantity,
		}), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	var items []models.CartItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1, "repeated adds on one cart key must collapse into a single line")
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.InDelta(t, 999, items[0].Price, 1e-9)
}

func TestAddCartItemKeepsVariantLinesApart(t *testing.T) {
	db := setupTestDB(t)
	user := testUser()
	app := newTestApp(user)

	product := seedProduct(t, db, "Titan Phone X", "titan-phone-x", 999)
	variant := seedVariant(t, db, product.ID, "TPX-BLK-256", 1099)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/cart", models.AddCartItemInput{
		ProductID: product.ID.String(),
		Quantity:  1,
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/cart", models.AddCartItemInput{
		ProductID: product.ID.String(),
		VariantID: variant.ID.String(),
		Quantity:  1,
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var items []models.CartItem
	require.NoError(t, db.Order("created_at ASC").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Nil(t, items[0].VariantID)
	require.NotNil(t, items[1].VariantID)
	assert.Equal(t, variant.ID, *items[1].VariantID)
	assert.InDelta(t, 1099, items[1].Price, 1e-9)
}

func TestUpdateCartItemMalformedIDIsNotFound(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(testUser())

	resp, err := app.Test(jsonRequest(http.MethodPut, "/api/cart/not-a-uuid", models.UpdateCartItemInput{
		Quantity: 2,
	}), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRemoveCartItemMalformedIDIsNotFound(t *testing.T) {
	setupTestDB(t)
	app := newTestApp(testUser())

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/cart/not-a-uuid", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

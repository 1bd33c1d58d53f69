package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/aurelshop/aurel-api/initializers"
	"github.com/aurelshop/aurel-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartMergesMatchingLines(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	_, token := createTestUser(t, "shopper@example.com", "user")
	product := createTestProduct(t, "Linen Shirt", 40, 0)

	for _, qty := range []int{1, 2, 3} {
		recorder := performRequest(t, router, http.MethodPost, "/users/cart", token, map[string]any{
			"product":  product.ID,
			"quantity": qty,
			"size":     "M",
			"color":    "White",
		})
		requireStatus(t, recorder, http.StatusOK)
	}

	env := decodeEnvelope(t, performRequest(t, router, http.MethodPost, "/users/cart", token, map[string]any{
		"product":  product.ID,
		"quantity": 4,
		"size":     "M",
		"color":    "White",
	}))

	var cart []models.CartItem
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	require.Len(t, cart, 1)
	assert.Equal(t, 10, cart[0].Quantity)
}

func TestAddToCartDifferentSizeMakesNewLine(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	_, token := createTestUser(t, "shopper@example.com", "user")
	product := createTestProduct(t, "Linen Shirt", 40, 0)

	for _, size := range []string{"M", "L"} {
		recorder := performRequest(t, router, http.MethodPost, "/users/cart", token, map[string]any{
			"product":  product.ID,
			"quantity": 1,
			"size":     size,
			"color":    "White",
		})
		requireStatus(t, recorder, http.StatusOK)
	}

	var count int64
	initializers.DB.Model(&models.CartItem{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestUpdateCartItemRejectsZeroQuantity(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	user, token := createTestUser(t, "shopper@example.com", "user")
	product := createTestProduct(t, "Linen Shirt", 40, 0)

	item := models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2, Size: "M"}
	require.NoError(t, initializers.DB.Create(&item).Error)

	recorder := performRequest(t, router, http.MethodPut, fmt.Sprintf("/users/cart/%d", item.ID), token, map[string]any{
		"quantity": 0,
	})
	requireStatus(t, recorder, http.StatusBadRequest)

	var stored models.CartItem
	require.NoError(t, initializers.DB.First(&stored, item.ID).Error)
	assert.Equal(t, 2, stored.Quantity)
}

func TestRemoveMissingCartItemLeavesCartUnchanged(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	user, token := createTestUser(t, "shopper@example.com", "user")
	product := createTestProduct(t, "Linen Shirt", 40, 0)

	item := models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2, Size: "M"}
	require.NoError(t, initializers.DB.Create(&item).Error)

	recorder := performRequest(t, router, http.MethodDelete, "/users/cart/9999", token, nil)
	requireStatus(t, recorder, http.StatusNotFound)

	var count int64
	initializers.DB.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRemoveCartItemOwnedByAnotherUserIsNotFound(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	owner, _ := createTestUser(t, "owner@example.com", "user")
	_, intruderToken := createTestUser(t, "intruder@example.com", "user")
	product := createTestProduct(t, "Linen Shirt", 40, 0)

	item := models.CartItem{UserID: owner.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, initializers.DB.Create(&item).Error)

	recorder := performRequest(t, router, http.MethodDelete, fmt.Sprintf("/users/cart/%d", item.ID), intruderToken, nil)
	requireStatus(t, recorder, http.StatusNotFound)
}

func TestClearCart(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	user, token := createTestUser(t, "shopper@example.com", "user")
	product := createTestProduct(t, "Linen Shirt", 40, 0)

	require.NoError(t, initializers.DB.Create(&models.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 3}).Error)

	recorder := performRequest(t, router, http.MethodDelete, "/users/cart", token, nil)
	requireStatus(t, recorder, http.StatusOK)

	var count int64
	initializers.DB.Model(&models.CartItem{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/aurelshop/aurel-api/initializers"
	"github.com/aurelshop/aurel-api/models"
	"github.com/gin-gonic/gin"
)

const (
	msgCartItemNotFound = "Cart item not found"
	msgCartUpdateFailed = "Unable to update cart item quantity."
)

func loadCart(userID uint) ([]models.CartItem, error) {
	var cart []models.CartItem
	result := initializers.DB.Where("user_id = ?", userID).Preload("Product.Images").Order("id").Find(&cart)
	return cart, result.Error
}

// AddToCart appends a cart line, or increments the quantity when a
// line with the same (product, size, color) already exists. No stock
// check happens here; availability is resolved at order placement.
func AddToCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body struct {
		Product  uint   `json:"product" binding:"required"`
		Quantity int    `json:"quantity" binding:"required,min=1"`
		Size     string `json:"size"`
		Color    string `json:"color"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var product models.Product
	if result := initializers.DB.First(&product, body.Product); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	var existing models.CartItem
	result := initializers.DB.
		Where("user_id = ? AND product_id = ? AND size = ? AND color = ?", userID, body.Product, body.Size, body.Color).
		Find(&existing)
	if result.Error != nil {
		log.Println("Cart lookup error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if result.RowsAffected > 0 {
		existing.Quantity += body.Quantity
		if err := initializers.DB.Save(&existing).Error; err != nil {
			log.Println("Cart update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgCartUpdateFailed)
			return
		}
	} else {
		item := models.CartItem{
			UserID:    userID,
			ProductID: body.Product,
			Quantity:  body.Quantity,
			Size:      body.Size,
			Color:     body.Color,
		}
		if err := initializers.DB.Create(&item).Error; err != nil {
			log.Println("Cart create error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	}

	cart, err := loadCart(userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Added to cart", cart)
}

// UpdateCartItem sets the quantity of a cart line the caller owns.
// Quantity is validated server-side; anything below 1 is rejected.
func UpdateCartItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	itemID, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	var body struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var item models.CartItem
	if result := initializers.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&item); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgCartItemNotFound)
		return
	}

	item.Quantity = body.Quantity
	if err := initializers.DB.Save(&item).Error; err != nil {
		log.Println("Cart update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgCartUpdateFailed)
		return
	}

	cart, err := loadCart(userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Cart updated", cart)
}

// RemoveFromCart deletes a cart line the caller owns. A line that does
// not exist (or belongs to someone else) is a 404 and the cart is left
// untouched.
func RemoveFromCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	itemID, err := strconv.Atoi(ctx.Param("itemId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cart item ID")
		return
	}

	result := initializers.DB.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
	if result.Error != nil {
		log.Println("Cart delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgCartItemNotFound)
		return
	}

	cart, err := loadCart(userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Removed from cart", cart)
}

// ClearCart empties the caller's cart. Used by the checkout flow after
// an order is persisted.
func ClearCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	if result := initializers.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}); result.Error != nil {
		log.Println("Cart clear error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Cart cleared", nil)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Aurel API.

The following are the endpoints for this API:

AUTH
- POST "/auth/register" - Create user account
- POST "/auth/login" - Access user account
- POST "/auth/forgot-password" - Request password reset
- PUT "/auth/reset-password/:token" - Reset user password

USERS
- GET/PUT "/users/profile" - Read or update profile
- POST "/users/address" - Add address
- PUT/DELETE "/users/address/:addressId" - Update or delete address
- POST/DELETE "/users/wishlist/:productId" - Add or remove wishlist entry
- POST "/users/cart" - Add cart item
- DELETE "/users/cart" - Clear cart
- PUT/DELETE "/users/cart/:itemId" - Update or remove cart item

PRODUCTS
- GET "/products" - List products
- GET "/products/:id" - Get product by ID
- POST "/products" - Create product (admin)
- PUT/DELETE "/products/:id" - Update or delete product (admin)

REVIEWS
- GET "/reviews/product/:productId" - List a product's reviews
- POST "/reviews" - Create review
- PUT/DELETE "/reviews/:id" - Update or delete review

ORDERS
- POST "/orders" - Place an order
- GET "/orders/myorders" - List own orders
- GET "/orders/:id" - Get order by ID
- PUT "/orders/:id/pay" - Record payment confirmation
- GET "/orders" - List all orders (admin)
- PUT "/orders/:id/status" - Update order status (admin)

PAYMENTS
- POST "/payment/create-intent" - Create a payment intent
- GET "/payment/intent/:id" - Check payment intent status

UPLOAD
- POST "/upload" - Upload product images`

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/aurelshop/aurel-api/initializers"
	"github.com/aurelshop/aurel-api/middlewares"
	"github.com/aurelshop/aurel-api/models"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

// setupTestDB points the package-wide DB handle at a fresh in-memory
// database for the duration of one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.WishlistItem{},
		&models.CartItem{},
		&models.Product{},
		&models.ProductImage{},
		&models.Review{},
		&models.Order{},
		&models.OrderItem{},
	))

	initializers.DB = db
	return db
}

// newTestRouter mirrors the route table in routes/ closely enough for
// handler-level tests.
func newTestRouter() *gin.Engine {
	server := gin.New()

	auth := server.Group("/auth")
	auth.POST("/register", Register)
	auth.POST("/login", Login)
	auth.PUT("/reset-password/:token", ResetPassword)

	users := server.Group("/users", middlewares.RequireAuth())
	users.GET("/profile", GetProfile)
	users.PUT("/profile", UpdateProfile)
	users.POST("/address", AddAddress)
	users.PUT("/address/:addressId", UpdateAddress)
	users.DELETE("/address/:addressId", DeleteAddress)
	users.POST("/wishlist/:productId", AddToWishlist)
	users.DELETE("/wishlist/:productId", RemoveFromWishlist)
	users.POST("/cart", AddToCart)
	users.DELETE("/cart", ClearCart)
	users.PUT("/cart/:itemId", UpdateCartItem)
	users.DELETE("/cart/:itemId", RemoveFromCart)

	server.GET("/products", GetProducts)
	server.GET("/products/:id", GetProduct)

	server.GET("/reviews/product/:productId", GetProductReviews)
	reviews := server.Group("/reviews", middlewares.RequireAuth())
	reviews.POST("", CreateReview)
	reviews.PUT("/:id", UpdateReview)
	reviews.DELETE("/:id", DeleteReview)

	orders := server.Group("/orders", middlewares.RequireAuth())
	orders.POST("", CreateOrder)
	orders.GET("/myorders", GetMyOrders)
	orders.GET("/:id", GetOrderByID)
	orders.PUT("/:id/pay", UpdateOrderToPaid)
	orders.GET("", middlewares.RequireAdmin(), GetOrders)
	orders.PUT("/:id/status", middlewares.RequireAdmin(), UpdateOrderStatus)

	payment := server.Group("/payment", middlewares.RequireAuth())
	payment.POST("/create-intent", CreatePaymentIntent)
	payment.GET("/intent/:id", GetPaymentIntent)

	return server
}

func createTestUser(t *testing.T, email, role string) (models.User, string) {
	t.Helper()

	hashed, err := hashPassword("secret123")
	require.NoError(t, err)

	user := models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  hashed,
		Role:      role,
	}
	require.NoError(t, initializers.DB.Create(&user).Error)

	token, err := generateJWT(user)
	require.NoError(t, err)
	return user, token
}

func createTestProduct(t *testing.T, name string, price, discount float64) models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Description: "test product",
		Price:       price,
		Discount:    discount,
		Category:    "Men",
		Stock:       50,
	}
	require.NoError(t, initializers.DB.Create(&product).Error)
	return product
}

func performRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return env
}

func requireStatus(t *testing.T, recorder *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, recorder.Code, "unexpected status, body: %s", recorder.Body.String())
}

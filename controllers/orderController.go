package controllers

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/aurelshop/aurel-api/initializers"
	"github.com/aurelshop/aurel-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgOrderNotFound = "Order not found"
)

type orderItemData struct {
	Product  uint   `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Size     string `json:"size"`
	Color    string `json:"color"`
}

type createOrderData struct {
	OrderItems      []orderItemData        `json:"orderItems" binding:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
	PaymentResult   models.PaymentResult   `json:"paymentResult"`
}

// CreateOrder persists a new order in Pending status. Line items are
// snapshotted and priced from the live catalog; any totals the client
// computed are display-only and ignored here. The caller's cart is
// cleared only after the order row has committed.
func CreateOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body createOrderData
	if err := ctx.ShouldBindJSON(&body); err != nil {
		log.Printf("JSON binding error: %v", err)
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !models.ValidPaymentMethod(body.PaymentMethod) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid payment method")
		return
	}

	// Snapshot each line from the catalog so later product edits never
	// rewrite this order.
	items := make([]models.OrderItem, 0, len(body.OrderItems))
	for _, line := range body.OrderItems {
		var product models.Product
		if result := initializers.DB.Preload("Images").First(&product, line.Product); result.Error != nil {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
			return
		}

		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0].Url
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.DiscountedPrice(),
			Size:      line.Size,
			Color:     line.Color,
			Image:     image,
			Quantity:  line.Quantity,
		})
	}

	itemsPrice, shippingPrice, taxPrice, totalPrice := models.ComputeOrderPrices(items)

	order := models.Order{
		UserID:          userID,
		ShippingAddress: body.ShippingAddress,
		PaymentMethod:   body.PaymentMethod,
		ItemsPrice:      itemsPrice,
		ShippingPrice:   shippingPrice,
		TaxPrice:        taxPrice,
		TotalPrice:      totalPrice,
		Status:          models.OrderStatusPending,
	}

	if body.PaymentResult.TransactionID != "" {
		now := time.Now()
		order.PaymentResult = body.PaymentResult
		order.IsPaid = true
		order.PaidAt = &now
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Println("Order create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		return
	}
	order.OrderItems = items

	// Separate write on purpose: a failure here strands the cart but
	// never the order.
	if result := initializers.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}); result.Error != nil {
		log.Printf("Order %d created, but cart for user %d was not cleared: %v", order.ID, userID, result.Error)
	}

	sendSuccessResponse(ctx, http.StatusCreated, "Order placed successfully", order)
}

// GetMyOrders lists the caller's orders, newest first.
func GetMyOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var orders []models.Order
	result := initializers.DB.
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println("Order fetch error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendListResponse(ctx, http.StatusOK, len(orders), orders)
}

// GetOrderByID returns one order. A caller who does not own the order
// (and is not an admin) gets a 404, not a 403, so order ids cannot be
// probed.
func GetOrderByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var order models.Order
	if result := initializers.DB.Preload("OrderItems").First(&order, orderID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		return
	}

	if order.UserID != userID && currentUserRole(ctx) != "admin" {
		sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "", order)
}

// GetOrders lists every order for the admin screens, paginated.
func GetOrders(ctx *gin.Context) {
	var orders []models.Order

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}
	offset := (page - 1) * limit

	sortOrder := ctx.DefaultQuery("sort", "desc")
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	query := initializers.DB.Preload("OrderItems")
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	result := query.Order("created_at " + sortOrder).Limit(limit).Offset(offset).Find(&orders)
	if result.Error != nil {
		log.Println("Order fetch error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	var count int64
	countQuery := initializers.DB.Model(&models.Order{})
	if status := ctx.Query("status"); status != "" {
		countQuery = countQuery.Where("status = ?", status)
	}
	countQuery.Count(&count)

	totalPages := math.Ceil(float64(count) / float64(limit))

	sendSuccessResponse(ctx, http.StatusOK, "", gin.H{
		"orders": orders,
		"metadata": gin.H{
			"total":       count,
			"currentPage": page,
			"limit":       limit,
			"hasNextPage": int(totalPages) > page,
		},
	})
}

// UpdateOrderStatus sets an order's lifecycle status. Admin only; the
// value must belong to the status enum.
func UpdateOrderStatus(ctx *gin.Context) {
	var orderStatusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	if !models.ValidOrderStatus(orderStatusData.Status) {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order status")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	result := initializers.DB.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", orderStatusData.Status)
	if result.Error != nil {
		log.Println("Order status update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Order status updated successfully.", nil)
}

// UpdateOrderToPaid records the processor-side payment confirmation on
// an order the caller owns. Non-card methods are recorded as-is; card
// confirmations carry the processor transaction id from the client's
// confirmation step.
func UpdateOrderToPaid(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var order models.Order
	if result := initializers.DB.Preload("OrderItems").First(&order, orderID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		return
	}
	if order.UserID != userID {
		sendErrorResponse(ctx, http.StatusNotFound, msgOrderNotFound)
		return
	}
	if order.IsPaid {
		sendErrorResponse(ctx, http.StatusConflict, "Order is already paid")
		return
	}

	var paymentResult models.PaymentResult
	if err := ctx.ShouldBindJSON(&paymentResult); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	now := time.Now()
	if result := initializers.DB.Model(&order).Updates(map[string]any{
		"payment_transaction_id": paymentResult.TransactionID,
		"payment_status":         paymentResult.Status,
		"payment_update_time":    paymentResult.UpdateTime,
		"is_paid":                true,
		"paid_at":                now,
	}); result.Error != nil {
		log.Println("Order payment update error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order")
		return
	}

	order.PaymentResult = paymentResult
	order.IsPaid = true
	order.PaidAt = &now

	sendSuccessResponse(ctx, http.StatusOK, "Order marked as paid", order)
}

package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/aurelshop/aurel-api/initializers"
	"github.com/aurelshop/aurel-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	msgReviewNotFound  = "Review not found"
	msgAlreadyReviewed = "You have already reviewed this product"
	msgReviewForbidden = "Not authorized to modify this review"
)

// recalcProductRating rewrites the product's denormalized rating and
// review count from the surviving reviews. Runs inside the same
// transaction as the triggering review write; a product with no
// reviews left goes back to zero.
func recalcProductRating(tx *gorm.DB, productID uint) error {
	var agg struct {
		Rating     float64
		NumReviews int64
	}
	err := tx.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0) AS rating, COUNT(*) AS num_reviews").
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]any{
			"rating":      agg.Rating,
			"num_reviews": agg.NumReviews,
		}).Error
}

// GetProductReviews lists a product's reviews, newest first.
func GetProductReviews(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var reviews []models.Review
	result := initializers.DB.
		Where("product_id = ?", productID).
		Preload("User").
		Order("created_at desc").
		Find(&reviews)
	if result.Error != nil {
		log.Println("Review fetch error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch reviews")
		return
	}

	sendListResponse(ctx, http.StatusOK, len(reviews), reviews)
}

// CreateReview adds a review and synchronously recomputes the
// product's rating. One review per (product, user); a duplicate is a
// conflict and leaves the product untouched.
func CreateReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body models.ReviewData
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var product models.Product
	if result := initializers.DB.First(&product, body.Product); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	var existing models.Review
	result := initializers.DB.Where("product_id = ? AND user_id = ?", body.Product, userID).Find(&existing)
	if result.Error != nil {
		log.Println("Review lookup error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusConflict, msgAlreadyReviewed)
		return
	}

	review := models.Review{
		ProductID: body.Product,
		UserID:    userID,
		Rating:    body.Rating,
		Comment:   body.Comment,
	}

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return recalcProductRating(tx, review.ProductID)
	})
	if err != nil {
		log.Println("Review create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create review")
		return
	}

	sendSuccessResponse(ctx, http.StatusCreated, "Review added successfully", review)
}

// UpdateReview lets the author change rating or comment; the product
// aggregate is recomputed in the same transaction.
func UpdateReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	reviewID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid review ID")
		return
	}

	var review models.Review
	if result := initializers.DB.First(&review, reviewID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgReviewNotFound)
		return
	}

	if review.UserID != userID {
		sendErrorResponse(ctx, http.StatusForbidden, msgReviewForbidden)
		return
	}

	var body struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&review).Updates(map[string]any{
			"rating":  body.Rating,
			"comment": body.Comment,
		}).Error; err != nil {
			return err
		}
		return recalcProductRating(tx, review.ProductID)
	})
	if err != nil {
		log.Println("Review update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update review")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Review updated successfully", review)
}

// DeleteReview removes a review (author or admin) and recomputes the
// product aggregate over whatever remains.
func DeleteReview(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	reviewID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid review ID")
		return
	}

	var review models.Review
	if result := initializers.DB.First(&review, reviewID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgReviewNotFound)
		return
	}

	if review.UserID != userID && currentUserRole(ctx) != "admin" {
		sendErrorResponse(ctx, http.StatusForbidden, msgReviewForbidden)
		return
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		// Hard delete so the (product, user) unique index does not
		// block this user from reviewing the product again later.
		if err := tx.Unscoped().Delete(&review).Error; err != nil {
			return err
		}
		return recalcProductRating(tx, review.ProductID)
	})
	if err != nil {
		log.Println("Review delete error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to delete review")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Review deleted successfully", nil)
}

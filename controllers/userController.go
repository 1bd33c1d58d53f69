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
	msgAddressNotFound   = "Address not found"
	msgAlreadyInWishlist = "Product already in wishlist"
)

func loadProfile(userID uint) (models.User, error) {
	var user models.User
	result := initializers.DB.
		Preload("Addresses").
		Preload("Wishlist.Product").
		Preload("Cart.Product").
		First(&user, userID)
	return user, result.Error
}

// GetProfile returns the authenticated user with addresses, wishlist
// and cart attached.
func GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	user, err := loadProfile(userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "User not found")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "", user)
}

func UpdateProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body struct {
		FirstName      string `json:"firstName"`
		LastName       string `json:"lastName"`
		Phone          string `json:"phone"`
		Country        string `json:"country"`
		ProfilePicture string `json:"profilePicture"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	updates := map[string]any{}
	if body.FirstName != "" {
		updates["first_name"] = body.FirstName
	}
	if body.LastName != "" {
		updates["last_name"] = body.LastName
	}
	if body.Phone != "" {
		updates["phone"] = body.Phone
	}
	if body.Country != "" {
		updates["country"] = body.Country
	}
	if body.ProfilePicture != "" {
		updates["profile_picture"] = body.ProfilePicture
	}

	if len(updates) > 0 {
		if result := initializers.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates); result.Error != nil {
			log.Println("Profile update error:", result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
	}

	user, err := loadProfile(userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Profile updated successfully", user)
}

func loadAddresses(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	result := initializers.DB.Where("user_id = ?", userID).Order("id").Find(&addresses)
	return addresses, result.Error
}

// unsetDefaultAddresses clears the default flag on every address the
// user owns. Runs before any write that sets a new default so at most
// one address is flagged at any time.
func unsetDefaultAddresses(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ?", userID).
		Update("is_default", false).Error
}

func AddAddress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var address models.Address
	if err := ctx.ShouldBindJSON(&address); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	address.UserID = userID

	err := initializers.DB.Transaction(func(tx *gorm.DB) error {
		if address.IsDefault {
			if err := unsetDefaultAddresses(tx, userID); err != nil {
				return err
			}
		}
		return tx.Create(&address).Error
	})
	if err != nil {
		log.Println("Address create error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	addresses, err := loadAddresses(userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusCreated, "Address added successfully", addresses)
}

func UpdateAddress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	addressID, err := strconv.Atoi(ctx.Param("addressId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid address ID")
		return
	}

	var address models.Address
	if result := initializers.DB.Where("id = ? AND user_id = ?", addressID, userID).First(&address); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgAddressNotFound)
		return
	}

	var body models.Address
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	err = initializers.DB.Transaction(func(tx *gorm.DB) error {
		if body.IsDefault {
			if err := unsetDefaultAddresses(tx, userID); err != nil {
				return err
			}
		}
		return tx.Model(&address).Updates(map[string]any{
			"label":         body.Label,
			"full_name":     body.FullName,
			"phone":         body.Phone,
			"address_line1": body.AddressLine1,
			"address_line2": body.AddressLine2,
			"city":          body.City,
			"state":         body.State,
			"postal_code":   body.PostalCode,
			"country":       body.Country,
			"is_default":    body.IsDefault,
		}).Error
	})
	if err != nil {
		log.Println("Address update error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	addresses, err := loadAddresses(userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Address updated successfully", addresses)
}

func DeleteAddress(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	addressID, err := strconv.Atoi(ctx.Param("addressId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid address ID")
		return
	}

	result := initializers.DB.Where("id = ? AND user_id = ?", addressID, userID).Delete(&models.Address{})
	if result.Error != nil {
		log.Println("Address delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgAddressNotFound)
		return
	}

	addresses, err := loadAddresses(userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Address deleted successfully", addresses)
}

func loadWishlist(userID uint) ([]models.WishlistItem, error) {
	var wishlist []models.WishlistItem
	result := initializers.DB.Where("user_id = ?", userID).Preload("Product").Find(&wishlist)
	return wishlist, result.Error
}

func AddToWishlist(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var product models.Product
	if result := initializers.DB.First(&product, productID); result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		return
	}

	var existing models.WishlistItem
	result := initializers.DB.Where("user_id = ? AND product_id = ?", userID, productID).Find(&existing)
	if result.Error != nil {
		log.Println("Wishlist lookup error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusConflict, msgAlreadyInWishlist)
		return
	}

	item := models.WishlistItem{UserID: userID, ProductID: uint(productID)}
	if result := initializers.DB.Create(&item); result.Error != nil {
		log.Println("Wishlist create error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	wishlist, err := loadWishlist(userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Added to wishlist", wishlist)
}

func RemoveFromWishlist(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
		return
	}

	// Hard delete so the (user, product) unique index does not block
	// re-adding the product later.
	if result := initializers.DB.Unscoped().
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}); result.Error != nil {
		log.Println("Wishlist delete error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	wishlist, err := loadWishlist(userID)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "Removed from wishlist", wishlist)
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName           string         `json:"firstName"`
	LastName            string         `json:"lastName"`
	Email               string         `json:"email" gorm:"uniqueIndex;size:191"`
	Password            string         `json:"-"`
	Phone               string         `json:"phone"`
	Country             string         `json:"country"`
	ProfilePicture      string         `json:"profilePicture"`
	Role                string         `json:"role"`
	Addresses           []Address      `json:"addresses" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Wishlist            []WishlistItem `json:"wishlist" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Cart                []CartItem     `json:"cart" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ResetPasswordToken  string         `json:"-"`
	ResetPasswordExpire *time.Time     `json:"-"`
}

type Address struct {
	gorm.Model
	UserID       uint   `json:"-" gorm:"index"`
	Label        string `json:"label"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	IsDefault    bool   `json:"isDefault"`
}

// WishlistItem links a user to a saved product. The composite unique
// index rejects duplicate wishlist entries at write time.
type WishlistItem struct {
	gorm.Model
	UserID    uint    `json:"-" gorm:"uniqueIndex:idx_wishlist_user_product"`
	ProductID uint    `json:"productId" gorm:"uniqueIndex:idx_wishlist_user_product"`
	Product   Product `json:"product"`
}

type SignupData struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

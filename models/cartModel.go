package models

import "gorm.io/gorm"

// CartItem is one cart line embedded in a user's record. Lines are
// keyed by (product, size, color): adding the same combination again
// increments the existing quantity instead of appending.
type CartItem struct {
	gorm.Model
	UserID    uint    `json:"-" gorm:"index"`
	ProductID uint    `json:"productId"`
	Product   Product `json:"product"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

// Matches reports whether a cart line and an incoming add request
// refer to the same (product, size, color) combination.
func (item *CartItem) Matches(productID uint, size, color string) bool {
	return item.ProductID == productID && item.Size == size && item.Color == color
}

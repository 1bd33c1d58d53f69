package models

import "gorm.io/gorm"

// Review holds one user's review of one product. The composite unique
// index serializes concurrent duplicate submissions: the second writer
// is rejected with a conflict rather than merged.
type Review struct {
	gorm.Model
	ProductID uint   `json:"productId" gorm:"uniqueIndex:idx_review_product_user"`
	UserID    uint   `json:"userId" gorm:"uniqueIndex:idx_review_product_user"`
	User      User   `json:"user"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Helpful   int    `json:"helpful"`
}

type ReviewData struct {
	Product uint   `json:"product" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

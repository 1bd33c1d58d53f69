package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductImage struct {
	gorm.Model
	Url       string `json:"url" binding:"required"`
	Key       string `json:"key"`
	ProductID uint   `json:"productId"`
}

type Product struct {
	gorm.Model
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description" binding:"required"`
	Brand       string         `json:"brand"`
	Price       float64        `json:"price" binding:"required,gte=0"`
	Discount    float64        `json:"discount" binding:"gte=0,lte=100"`
	Category    string         `json:"category" binding:"required,oneof=Men Women Accessories Kids Sale"`
	SubCategory string         `json:"subCategory" binding:"omitempty,oneof=T-Shirts Shirts Jeans Trousers Dresses Tops Skirts Jackets Sweaters Bags Shoes Watches Jewelry Sunglasses"`
	Sizes       datatypes.JSON `json:"sizes"`
	Colors      datatypes.JSON `json:"colors"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Stock       int            `json:"stock" binding:"gte=0"`
	Featured    bool           `json:"featured"`
	Trending    bool           `json:"trending"`
	Rating      float64        `json:"rating"`
	NumReviews  int            `json:"numReviews"`
}

// DiscountedPrice is the unit price after the percentage discount is
// applied. Cart totals and order snapshots are priced with this.
func (p *Product) DiscountedPrice() float64 {
	return p.Price - (p.Price*p.Discount)/100
}

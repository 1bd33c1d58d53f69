package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

const (
	PaymentMethodCard       = "card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetbanking = "netbanking"
	PaymentMethodCOD        = "cod"
)

// Orders above this subtotal ship free; everything else pays the
// flat fee. The comparison is strictly greater-than: a subtotal of
// exactly 100 still pays shipping.
const (
	FreeShippingThreshold = 100.0
	FlatShippingFee       = 10.0
	TaxRate               = 0.10
)

// ShippingAddress is copied onto the order at checkout, not
// referenced, so later address-book edits never alter the order.
type ShippingAddress struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

// PaymentResult records the processor-side confirmation. Empty until
// the order is paid.
type PaymentResult struct {
	TransactionID string `json:"id"`
	Status        string `json:"status"`
	UpdateTime    string `json:"update_time"`
}

type Order struct {
	gorm.Model
	UserID          uint            `json:"userId" gorm:"index"`
	OrderItems      []OrderItem     `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentResult   PaymentResult   `json:"paymentResult" gorm:"embedded;embeddedPrefix:payment_"`
	ItemsPrice      float64         `json:"itemsPrice"`
	ShippingPrice   float64         `json:"shippingPrice"`
	TaxPrice        float64         `json:"taxPrice"`
	TotalPrice      float64         `json:"totalPrice"`
	Status          string          `json:"status"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt"`
}

// OrderItem is a frozen snapshot of the purchased product at the time
// of purchase. It intentionally carries its own name/price/image so
// later catalog edits never rewrite order history.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"orderId"`
	ProductID uint    `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// ComputeOrderPrices derives the four price fields from the snapshot
// lines: subtotal, shipping (free above the threshold), 10% tax and
// their sum. Totals are fixed at order creation and never recomputed.
func ComputeOrderPrices(items []OrderItem) (itemsPrice, shippingPrice, taxPrice, totalPrice float64) {
	for _, item := range items {
		itemsPrice += item.Price * float64(item.Quantity)
	}
	if itemsPrice > FreeShippingThreshold {
		shippingPrice = 0
	} else {
		shippingPrice = FlatShippingFee
	}
	taxPrice = itemsPrice * TaxRate
	totalPrice = itemsPrice + shippingPrice + taxPrice
	return
}

// ValidOrderStatus reports whether a status value is part of the
// order lifecycle enum.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether a payment method is part of the
// closed enum. Only card payments carry a processor confirmation;
// the rest are recorded as-is.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCard, PaymentMethodUPI, PaymentMethodNetbanking, PaymentMethodCOD:
		return true
	}
	return false
}

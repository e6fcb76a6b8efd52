package Models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SaleItem is a line item with the product name and price frozen at sale
// time, so later product edits never change recorded history.
type SaleItem struct {
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// Sale is the authoritative record of a transaction. The owning customer
// additionally holds a SaleSummary copy of it.
type Sale struct {
	gorm.Model
	CustomerID     uint           `json:"customerId" gorm:"not null;index"`
	SaleType       string         `json:"saleType" gorm:"type:varchar(10);not null"`
	Items          datatypes.JSON `json:"products" gorm:"not null"`
	TotalPrice     float64        `json:"totalPrice" gorm:"not null"`
	PaymentMethod  string         `json:"paymentMethod" gorm:"type:varchar(10);not null"`
	AmountReceived float64        `json:"amountReceived" gorm:"not null"`
	Date           time.Time      `json:"date" gorm:"not null;index"`

	Customer Customer `json:"-" gorm:"foreignKey:CustomerID"`
}

// LineItems decodes the frozen line items of the sale.
func (s *Sale) LineItems() []SaleItem {
	if len(s.Items) == 0 {
		return nil
	}
	var items []SaleItem
	if err := json.Unmarshal(s.Items, &items); err != nil {
		return nil
	}
	return items
}

// Summary builds the denormalized copy appended to the owning customer.
func (s *Sale) Summary() SaleSummary {
	return SaleSummary{
		SaleID:         s.ID,
		SaleType:       s.SaleType,
		Products:       s.LineItems(),
		TotalPrice:     s.TotalPrice,
		PaymentMethod:  s.PaymentMethod,
		AmountReceived: s.AmountReceived,
		Date:           s.Date.Format(SummaryDateLayout),
	}
}

type RecordSaleRequest struct {
	CustomerID     uint              `json:"customerId" validate:"required"`
	SaleType       string            `json:"saleType" validate:"required,oneof=kg pack"`
	Products       []SaleLineRequest `json:"products" validate:"required,min=1,dive"`
	PaymentMethod  string            `json:"paymentMethod" validate:"required,oneof=cash online credit"`
	AmountReceived float64           `json:"amountReceived" validate:"gte=0"`
	Date           string            `json:"date"`

	// Accepted for wire compatibility with older clients, never trusted:
	// the server recomputes the total from the line items.
	TotalPrice    float64 `json:"totalPrice"`
	UpdatedCredit float64 `json:"updatedCredit"`
}

type SaleLineRequest struct {
	ProductID uint    `json:"productId" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"gte=0"`
}

type CreateCustomerRequest struct {
	Name     string   `json:"name" validate:"required"`
	Contact  string   `json:"contact" validate:"required"`
	Credit   *float64 `json:"credit" validate:"required"`
	JoinDate string   `json:"joinDate"`
}

type CreditAdjustmentRequest struct {
	CustomerID uint    `json:"customerId" validate:"required"`
	Amount     float64 `json:"amount"`
}

type ProductRequest struct {
	ProductName  string  `json:"productName" validate:"required"`
	PricePerPack float64 `json:"pricePerPack" validate:"gte=0"`
	KgsPerPack   float64 `json:"kgsPerPack"`
}

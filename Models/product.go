package Models

import (
	"errors"
	"math"

	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	ProductName  string  `json:"productName" gorm:"not null"`
	PricePerPack float64 `json:"pricePerPack" gorm:"not null"`
	KgsPerPack   float64 `json:"kgsPerPack" gorm:"not null"`
	PricePerKg   float64 `json:"pricePerKg" gorm:"not null"`
}

// ErrInvalidProduct is returned when the per-kg price cannot be derived.
var ErrInvalidProduct = errors.New("kgs per pack must be greater than zero")

// ComputePricePerKg derives the per-kg price from the pack price, rounded to
// two decimal places. The caller-supplied value is never trusted.
func ComputePricePerKg(pricePerPack, kgsPerPack float64) (float64, error) {
	if kgsPerPack <= 0 {
		return 0, ErrInvalidProduct
	}
	return math.Round(pricePerPack/kgsPerPack*100) / 100, nil
}

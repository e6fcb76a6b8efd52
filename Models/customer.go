package Models

import (
	"encoding/json"
	"sort"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Customer carries a running credit balance (positive = customer owes the
// business) and a denormalized copy of its sales for fast history display.
// Credit, LastPurchase and Sales are mutated only by the sale recording flow
// and the direct credit adjustment endpoint.
type Customer struct {
	gorm.Model
	Name         string         `json:"name" gorm:"not null;index"`
	Contact      string         `json:"contact" gorm:"not null"`
	Credit       float64        `json:"credit" gorm:"not null;default:0"`
	JoinDate     time.Time      `json:"joinDate"`
	LastPurchase *time.Time     `json:"lastPurchase"`
	Sales        datatypes.JSON `json:"sales"`
}

// SaleSummary is the embedded per-customer copy of a sale. The Sale table
// stays authoritative; this list exists purely for display and can be rebuilt
// from it (RebuildCustomerSales).
type SaleSummary struct {
	SaleID         uint       `json:"saleId"`
	SaleType       string     `json:"saleType"`
	Products       []SaleItem `json:"products"`
	TotalPrice     float64    `json:"totalPrice"`
	PaymentMethod  string     `json:"paymentMethod"`
	AmountReceived float64    `json:"amountReceived"`
	Date           string     `json:"date"`
}

const SummaryDateLayout = "2006-01-02 15:04:05"

// summaryDateLayouts are tried in order when reading embedded summary dates.
var summaryDateLayouts = []string{
	SummaryDateLayout,
	"2006-01-02",
	time.RFC3339,
}

// SaleSummaries decodes the embedded sales list. Malformed JSON yields an
// empty list rather than an error.
func (c *Customer) SaleSummaries() []SaleSummary {
	if len(c.Sales) == 0 {
		return nil
	}
	var summaries []SaleSummary
	if err := json.Unmarshal(c.Sales, &summaries); err != nil {
		return nil
	}
	return summaries
}

// LatestPurchaseDate returns LastPurchase when set, otherwise the newest date
// found among the embedded sale summaries, otherwise nil. Malformed dates are
// skipped, so the function never fails.
func LatestPurchaseDate(c *Customer) *time.Time {
	if c == nil {
		return nil
	}
	if c.LastPurchase != nil {
		return c.LastPurchase
	}
	var latest *time.Time
	for _, summary := range c.SaleSummaries() {
		for _, layout := range summaryDateLayouts {
			parsed, err := time.Parse(layout, summary.Date)
			if err != nil {
				continue
			}
			if latest == nil || parsed.After(*latest) {
				date := parsed
				latest = &date
			}
			break
		}
	}
	return latest
}

// SortCustomers orders customers for listing. "recent" puts the newest
// purchase first with never-purchased customers last, "oldest" is the reverse,
// "credit" is a plain descending sort on the balance. Unknown modes leave the
// slice untouched.
func SortCustomers(customers []Customer, mode string) []Customer {
	switch mode {
	case "recent":
		sort.SliceStable(customers, func(i, j int) bool {
			di := LatestPurchaseDate(&customers[i])
			dj := LatestPurchaseDate(&customers[j])
			if di == nil {
				return false
			}
			if dj == nil {
				return true
			}
			return di.After(*dj)
		})
	case "oldest":
		sort.SliceStable(customers, func(i, j int) bool {
			di := LatestPurchaseDate(&customers[i])
			dj := LatestPurchaseDate(&customers[j])
			if di == nil {
				return dj != nil
			}
			if dj == nil {
				return false
			}
			return di.Before(*dj)
		})
	case "credit":
		sort.SliceStable(customers, func(i, j int) bool {
			return customers[i].Credit > customers[j].Credit
		})
	}
	return customers
}

package Models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func summariesJSON(t *testing.T, summaries []SaleSummary) datatypes.JSON {
	t.Helper()
	data, err := json.Marshal(summaries)
	require.NoError(t, err)
	return datatypes.JSON(data)
}

func TestLatestPurchaseDatePrefersLastPurchase(t *testing.T) {
	last := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	customer := &Customer{
		LastPurchase: &last,
		Sales: summariesJSON(t, []SaleSummary{
			{Date: "2024-01-01 10:00:00"},
		}),
	}

	got := LatestPurchaseDate(customer)
	require.NotNil(t, got)
	assert.True(t, got.Equal(last))
}

func TestLatestPurchaseDateFallsBackToSummaries(t *testing.T) {
	customer := &Customer{
		Sales: summariesJSON(t, []SaleSummary{
			{Date: "2024-01-01 10:00:00"},
			{Date: "2024-04-15 09:30:00"},
			{Date: "2024-02-20 18:00:00"},
		}),
	}

	got := LatestPurchaseDate(customer)
	require.NotNil(t, got)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.April, got.Month())
	assert.Equal(t, 15, got.Day())
}

func TestLatestPurchaseDateSkipsMalformedDates(t *testing.T) {
	customer := &Customer{
		Sales: summariesJSON(t, []SaleSummary{
			{Date: "not-a-date"},
			{Date: "2024-02-20"},
			{Date: ""},
		}),
	}

	got := LatestPurchaseDate(customer)
	require.NotNil(t, got)
	assert.Equal(t, 20, got.Day())
}

func TestLatestPurchaseDateNilCases(t *testing.T) {
	assert.Nil(t, LatestPurchaseDate(nil))
	assert.Nil(t, LatestPurchaseDate(&Customer{}))
	// Only malformed dates behaves like no purchase at all.
	assert.Nil(t, LatestPurchaseDate(&Customer{
		Sales: summariesJSON(t, []SaleSummary{{Date: "garbage"}}),
	}))
}

func sortFixture(t *testing.T) []Customer {
	t.Helper()
	older := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)
	return []Customer{
		{Name: "Never", Credit: 300},
		{Name: "Old", Credit: 100, LastPurchase: &older},
		{Name: "New", Credit: 200, LastPurchase: &newer},
	}
}

func TestSortCustomersRecent(t *testing.T) {
	customers := SortCustomers(sortFixture(t), "recent")
	assert.Equal(t, "New", customers[0].Name)
	assert.Equal(t, "Old", customers[1].Name)
	// Never-purchased customers go last.
	assert.Equal(t, "Never", customers[2].Name)
}

func TestSortCustomersOldest(t *testing.T) {
	customers := SortCustomers(sortFixture(t), "oldest")
	// Never-purchased customers go first.
	assert.Equal(t, "Never", customers[0].Name)
	assert.Equal(t, "Old", customers[1].Name)
	assert.Equal(t, "New", customers[2].Name)
}

func TestSortCustomersCredit(t *testing.T) {
	customers := SortCustomers(sortFixture(t), "credit")
	assert.Equal(t, "Never", customers[0].Name)
	assert.Equal(t, "New", customers[1].Name)
	assert.Equal(t, "Old", customers[2].Name)
}

func TestSortCustomersUnknownModeKeepsOrder(t *testing.T) {
	customers := SortCustomers(sortFixture(t), "")
	assert.Equal(t, "Never", customers[0].Name)
	assert.Equal(t, "Old", customers[1].Name)
	assert.Equal(t, "New", customers[2].Name)
}

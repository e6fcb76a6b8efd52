package Controllers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"PAM/Models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Models.Admin{},
		&Models.Product{},
		&Models.Customer{},
		&Models.Sale{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, name string, credit float64) Models.Customer {
	t.Helper()
	customer := Models.Customer{
		Name:     name,
		Contact:  "0123456789",
		Credit:   credit,
		JoinDate: time.Now(),
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedProduct(t *testing.T, db *gorm.DB, name string, pricePerPack, kgsPerPack float64) Models.Product {
	t.Helper()
	pricePerKg, err := Models.ComputePricePerKg(pricePerPack, kgsPerPack)
	require.NoError(t, err)
	product := Models.Product{
		ProductName:  name,
		PricePerPack: pricePerPack,
		KgsPerPack:   kgsPerPack,
		PricePerKg:   pricePerKg,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func saleCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&Models.Sale{}).Count(&count).Error)
	return count
}

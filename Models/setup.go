package Models

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "database.db"
	}
	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = connection

	DB.AutoMigrate(
		&Admin{},
		&Product{},
		&Customer{},
		&Sale{},
	)

	if err := SeedDefaultAdmin(DB); err != nil {
		log.Println("Error creating default admin:", err)
	}
}

// SeedDefaultAdmin creates the bootstrap admin from environment variables if
// no admin with that mobile exists yet. A missing configuration is not an
// error, it just means nothing is seeded.
func SeedDefaultAdmin(db *gorm.DB) error {
	mobile := os.Getenv("DEFAULT_ADMIN_MOBILE")
	password := os.Getenv("DEFAULT_ADMIN_PASSWORD")
	if mobile == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&Admin{}).Where("mobile = ?", mobile).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{Mobile: mobile, Password: string(hash)}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Default admin created")
	return nil
}

// RebuildCustomerSales rebuilds a customer's embedded sales list and
// LastPurchase from the authoritative Sale table. Credit is left alone: the
// delta was applied when each sale was recorded. This is the repair operation
// for drift between the two collections.
func RebuildCustomerSales(db *gorm.DB, customerID uint) (*Customer, error) {
	var customer Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		return nil, err
	}

	var sales []Sale
	if err := db.Where("customer_id = ?", customerID).Order("date ASC").Find(&sales).Error; err != nil {
		return nil, err
	}

	summaries := make([]SaleSummary, 0, len(sales))
	var lastPurchase *time.Time
	for _, sale := range sales {
		summaries = append(summaries, sale.Summary())
		date := sale.Date
		lastPurchase = &date
	}

	salesJSON, err := json.Marshal(summaries)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"sales":         datatypes.JSON(salesJSON),
		"last_purchase": lastPurchase,
	}
	if err := db.Model(&Customer{}).Where("id = ?", customerID).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := db.First(&customer, customerID).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// RebuildAllCustomerSales repairs every customer whose embedded list has
// drifted from the Sale table. Returns the number of customers rebuilt.
func RebuildAllCustomerSales(db *gorm.DB) (int, error) {
	var customers []Customer
	if err := db.Find(&customers).Error; err != nil {
		return 0, err
	}

	rebuilt := 0
	for _, customer := range customers {
		var saleCount int64
		if err := db.Model(&Sale{}).Where("customer_id = ?", customer.ID).Count(&saleCount).Error; err != nil {
			return rebuilt, err
		}
		if int(saleCount) == len(customer.SaleSummaries()) {
			continue
		}
		if _, err := RebuildCustomerSales(db, customer.ID); err != nil {
			log.Printf("Failed to rebuild sales for customer %d: %v", customer.ID, err)
			continue
		}
		rebuilt++
	}
	return rebuilt, nil
}

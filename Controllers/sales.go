package Controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"PAM/Models"
)

// SaleController handles sale recording and reporting endpoints
type SaleController struct {
	DB *gorm.DB
}

// NewSaleController creates a new SaleController
func NewSaleController(db *gorm.DB) *SaleController {
	return &SaleController{DB: db}
}

// requestDateLayouts are the accepted formats for dates sent by the client.
var requestDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseRequestDate(dateStr string) (time.Time, error) {
	var parsed time.Time
	var err error
	for _, layout := range requestDateLayouts {
		parsed, err = time.Parse(layout, dateStr)
		if err == nil {
			return parsed, nil
		}
	}
	return parsed, err
}

// RecordSale records a sale and applies it to the owning customer as one
// unit of work.
// POST /api/sales
func (c *SaleController) RecordSale(ctx *fiber.Ctx) error {
	var req Models.RecordSaleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return respondError(ctx, validationError(err.Error()))
	}

	sale, customer, apiErr := recordSale(c.DB, &req)
	if apiErr != nil {
		if apiErr.Kind == KindPersistence {
			log.Println("Error saving sale or updating customer:", apiErr.Message)
		}
		return respondError(ctx, apiErr)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Sale recorded and customer updated successfully",
		"sale":     sale,
		"customer": customer,
	})
}

// recordSale validates the request, recomputes the total server-side, then
// inserts the sale and updates the customer inside a single transaction.
// The customer's credit moves by a relative SQL expression, so concurrent
// sales against the same customer cannot lose updates.
func recordSale(db *gorm.DB, req *Models.RecordSaleRequest) (*Models.Sale, *Models.Customer, *apiError) {
	if apiErr := validateStruct(req); apiErr != nil {
		return nil, nil, apiErr
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := parseRequestDate(req.Date)
		if err != nil {
			return nil, nil, validationError("Invalid date format. Use RFC3339 or YYYY-MM-DD")
		}
		date = parsed
	}

	// Everything below rejects before any write.
	var customer Models.Customer
	if err := db.First(&customer, req.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, notFoundError("Customer not found")
		}
		return nil, nil, persistenceError("failed to load customer: "+err.Error(), false)
	}

	// Freeze product names onto the line items and recompute the total.
	// The client-supplied totalPrice is ignored.
	items := make([]Models.SaleItem, 0, len(req.Products))
	var totalPrice float64
	for _, line := range req.Products {
		var product Models.Product
		if err := db.First(&product, line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, notFoundError(fmt.Sprintf("Product %d not found", line.ProductID))
			}
			return nil, nil, persistenceError("failed to load product: "+err.Error(), false)
		}
		items = append(items, Models.SaleItem{
			ProductID:   product.ID,
			ProductName: product.ProductName,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
		totalPrice += line.Quantity * line.Price
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, nil, persistenceError("failed to encode line items: "+err.Error(), false)
	}

	sale := Models.Sale{
		CustomerID:     customer.ID,
		SaleType:       req.SaleType,
		Items:          datatypes.JSON(itemsJSON),
		TotalPrice:     totalPrice,
		PaymentMethod:  req.PaymentMethod,
		AmountReceived: req.AmountReceived,
		Date:           date,
	}
	creditDelta := totalPrice - req.AmountReceived

	tx := db.Begin()
	if tx.Error != nil {
		return nil, nil, persistenceError("failed to start transaction: "+tx.Error.Error(), false)
	}

	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return nil, nil, persistenceError("failed to create sale: "+err.Error(), false)
	}

	// Re-read inside the transaction so the summary append works on the
	// freshest embedded list.
	var current Models.Customer
	if err := tx.First(&current, customer.ID).Error; err != nil {
		tx.Rollback()
		return nil, nil, persistenceError("failed to reload customer: "+err.Error(), false)
	}
	summaries := append(current.SaleSummaries(), sale.Summary())
	salesJSON, err := json.Marshal(summaries)
	if err != nil {
		tx.Rollback()
		return nil, nil, persistenceError("failed to encode sales summary: "+err.Error(), false)
	}

	// LastPurchase is the newest sale date on record, so a backdated sale
	// never moves it backwards.
	lastPurchase := sale.Date
	if current.LastPurchase != nil && current.LastPurchase.After(lastPurchase) {
		lastPurchase = *current.LastPurchase
	}

	if err := tx.Model(&Models.Customer{}).Where("id = ?", customer.ID).Updates(map[string]interface{}{
		"credit":        gorm.Expr("credit + ?", creditDelta),
		"last_purchase": lastPurchase,
		"sales":         datatypes.JSON(salesJSON),
	}).Error; err != nil {
		tx.Rollback()
		return nil, nil, persistenceError("failed to update customer: "+err.Error(), false)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, nil, persistenceError("failed to commit sale: "+err.Error(), false)
	}

	if err := db.First(&customer, customer.ID).Error; err != nil {
		// The sale is committed at this point; the caller must know that a
		// retry would double-count.
		return &sale, nil, persistenceError("sale committed but customer reload failed: "+err.Error(), true)
	}

	return &sale, &customer, nil
}

// GetSales retrieves sales ordered newest first, optionally filtered by
// customer.
// GET /api/sales?customerId=
func (c *SaleController) GetSales(ctx *fiber.Ctx) error {
	query := c.DB
	if customerID := ctx.Query("customerId"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var sales []Models.Sale
	if err := query.Order("date DESC").Find(&sales).Error; err != nil {
		log.Println(err.Error())
		return respondError(ctx, persistenceError("Failed to fetch sales", false))
	}

	return ctx.JSON(sales)
}

// GetSale retrieves a single sale by ID
func (c *SaleController) GetSale(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respondError(ctx, validationError("Invalid sale ID"))
	}

	var sale Models.Sale
	if result := c.DB.First(&sale, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return respondError(ctx, notFoundError("Sale not found"))
		}
		return respondError(ctx, persistenceError("Failed to fetch sale", false))
	}

	return ctx.JSON(sale)
}

// ExportSales writes the sales book as an Excel workbook.
// GET /api/sales/export
func (c *SaleController) ExportSales(ctx *fiber.Ctx) error {
	var sales []Models.Sale
	if err := c.DB.Preload("Customer").Order("date ASC").Find(&sales).Error; err != nil {
		log.Println(err.Error())
		return respondError(ctx, persistenceError("Failed to fetch sales", false))
	}

	buf, err := buildSalesWorkbook(sales)
	if err != nil {
		log.Println(err.Error())
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "server_error",
			"message": "Failed to build export",
		})
	}

	filename := fmt.Sprintf("sales_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", "attachment; filename="+filename)
	return ctx.Send(buf.Bytes())
}

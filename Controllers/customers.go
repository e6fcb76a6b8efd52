package Controllers

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"PAM/Models"
)

// CustomerController handles customer-related API endpoints
type CustomerController struct {
	DB *gorm.DB
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetCustomers retrieves customers with optional name search and sorting.
// sort is one of recent, oldest, credit (see Models.SortCustomers).
func (c *CustomerController) GetCustomers(ctx *fiber.Ctx) error {
	search := ctx.Query("search")
	sortMode := ctx.Query("sort")

	query := c.DB
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var customers []Models.Customer
	if err := query.Find(&customers).Error; err != nil {
		log.Println(err.Error())
		return respondError(ctx, persistenceError("Failed to fetch customers", false))
	}

	return ctx.JSON(Models.SortCustomers(customers, sortMode))
}

// CreateCustomer creates a customer with a caller-supplied initial credit.
// LastPurchase starts out null; it is only ever set by recorded sales.
func (c *CustomerController) CreateCustomer(ctx *fiber.Ctx) error {
	var req Models.CreateCustomerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return respondError(ctx, validationError(err.Error()))
	}
	if apiErr := validateStruct(&req); apiErr != nil {
		return respondError(ctx, apiErr)
	}

	joinDate := time.Now()
	if req.JoinDate != "" {
		parsed, err := parseRequestDate(req.JoinDate)
		if err != nil {
			return respondError(ctx, validationError("Invalid joinDate format. Use RFC3339 or YYYY-MM-DD"))
		}
		joinDate = parsed
	}

	customer := Models.Customer{
		Name:     req.Name,
		Contact:  req.Contact,
		Credit:   *req.Credit,
		JoinDate: joinDate,
	}
	if err := c.DB.Create(&customer).Error; err != nil {
		log.Println(err.Error())
		return respondError(ctx, persistenceError("Failed to add customer", false))
	}

	return ctx.Status(fiber.StatusCreated).JSON(customer)
}

// GetCustomer retrieves a single customer including the embedded sales list
func (c *CustomerController) GetCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respondError(ctx, validationError("Invalid customer ID"))
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return respondError(ctx, notFoundError("Customer not found"))
		}
		return respondError(ctx, persistenceError("Failed to fetch customer", false))
	}

	return ctx.JSON(customer)
}

// AdjustCredit applies a direct relative credit adjustment outside of a sale
// (e.g. a cash settlement). The adjustment happens in a single SQL expression
// so concurrent requests cannot lose updates. LastPurchase is untouched: it
// tracks sales, not settlements.
func (c *CustomerController) AdjustCredit(ctx *fiber.Ctx) error {
	var req Models.CreditAdjustmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return respondError(ctx, validationError(err.Error()))
	}
	if apiErr := validateStruct(&req); apiErr != nil {
		return respondError(ctx, apiErr)
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, req.CustomerID); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return respondError(ctx, notFoundError("Customer not found"))
		}
		return respondError(ctx, persistenceError("Failed to fetch customer", false))
	}

	if err := c.DB.Model(&Models.Customer{}).Where("id = ?", customer.ID).
		UpdateColumn("credit", gorm.Expr("credit + ?", req.Amount)).Error; err != nil {
		log.Println(err.Error())
		return respondError(ctx, persistenceError("Failed to update credit", false))
	}

	if err := c.DB.First(&customer, customer.ID).Error; err != nil {
		return respondError(ctx, persistenceError("Credit updated but reload failed", true))
	}

	return ctx.JSON(customer)
}

// RebuildSales is the administrative repair operation: it rebuilds the
// customer's embedded sales list from the authoritative Sale table.
func (c *CustomerController) RebuildSales(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respondError(ctx, validationError("Invalid customer ID"))
	}

	customer, err := Models.RebuildCustomerSales(c.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(ctx, notFoundError("Customer not found"))
		}
		log.Println(err.Error())
		return respondError(ctx, persistenceError("Failed to rebuild customer sales", false))
	}

	return ctx.JSON(fiber.Map{
		"message":  "Customer sales rebuilt successfully",
		"customer": customer,
	})
}

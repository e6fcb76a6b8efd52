package Controllers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"PAM/Models"
)

// ProductController handles product-related API endpoints
type ProductController struct {
	DB *gorm.DB
}

// NewProductController creates a new ProductController
func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetProducts retrieves all products
func (c *ProductController) GetProducts(ctx *fiber.Ctx) error {
	var products []Models.Product
	if err := c.DB.Find(&products).Error; err != nil {
		log.Println(err.Error())
		return respondError(ctx, persistenceError("Failed to fetch products", false))
	}

	return ctx.JSON(products)
}

// CreateProduct creates a product. The per-kg price is always derived
// server-side from pricePerPack / kgsPerPack.
func (c *ProductController) CreateProduct(ctx *fiber.Ctx) error {
	var req Models.ProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return respondError(ctx, validationError(err.Error()))
	}
	if apiErr := validateStruct(&req); apiErr != nil {
		return respondError(ctx, apiErr)
	}

	pricePerKg, err := Models.ComputePricePerKg(req.PricePerPack, req.KgsPerPack)
	if err != nil {
		return respondError(ctx, validationError(err.Error()))
	}

	product := Models.Product{
		ProductName:  req.ProductName,
		PricePerPack: req.PricePerPack,
		KgsPerPack:   req.KgsPerPack,
		PricePerKg:   pricePerKg,
	}
	if err := c.DB.Create(&product).Error; err != nil {
		log.Println(err.Error())
		return respondError(ctx, persistenceError("Failed to add product", false))
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product added successfully!",
		"product": product,
	})
}

// UpdateProduct updates a product and re-derives the per-kg price. Recorded
// sales keep their frozen copies, so history is unaffected.
func (c *ProductController) UpdateProduct(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respondError(ctx, validationError("Invalid product ID"))
	}

	var product Models.Product
	if result := c.DB.First(&product, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return respondError(ctx, notFoundError("Product not found"))
		}
		return respondError(ctx, persistenceError("Failed to fetch product", false))
	}

	var req Models.ProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return respondError(ctx, validationError(err.Error()))
	}
	if apiErr := validateStruct(&req); apiErr != nil {
		return respondError(ctx, apiErr)
	}

	pricePerKg, err := Models.ComputePricePerKg(req.PricePerPack, req.KgsPerPack)
	if err != nil {
		return respondError(ctx, validationError(err.Error()))
	}

	// Map update so zero values (e.g. a free product) are persisted too.
	if err := c.DB.Model(&product).Updates(map[string]interface{}{
		"product_name":   req.ProductName,
		"price_per_pack": req.PricePerPack,
		"kgs_per_pack":   req.KgsPerPack,
		"price_per_kg":   pricePerKg,
	}).Error; err != nil {
		log.Println(err.Error())
		return respondError(ctx, persistenceError("Failed to update product", false))
	}

	if err := c.DB.First(&product, product.ID).Error; err != nil {
		return respondError(ctx, persistenceError("Product updated but reload failed", true))
	}

	return ctx.JSON(product)
}

// DeleteProduct soft deletes a product
func (c *ProductController) DeleteProduct(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respondError(ctx, validationError("Invalid product ID"))
	}

	var product Models.Product
	if result := c.DB.First(&product, id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return respondError(ctx, notFoundError("Product not found"))
		}
		return respondError(ctx, persistenceError("Failed to fetch product", false))
	}

	c.DB.Delete(&product)

	return ctx.JSON(fiber.Map{"message": "Product deleted successfully"})
}

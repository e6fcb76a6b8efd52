package FiberConfig

import (
	"fmt"
	"log"
	"os"

	"PAM/Controllers"
	"PAM/Models"
	"PAM/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	customerController := Controllers.NewCustomerController(db)
	productController := Controllers.NewProductController(db)
	saleController := Controllers.NewSaleController(db)

	// Login is the only endpoint outside the auth boundary
	app.Post("/api/login", Controllers.Login)

	api := app.Group("/api", middleware.Verify())
	api.Get("/validate-token", Controllers.ValidateToken)

	// Customer routes - /sale must be registered before /:id to avoid conflicts
	customers := api.Group("/customers")
	customers.Get("/", customerController.GetCustomers)
	customers.Post("/", customerController.CreateCustomer)
	customers.Post("/sale", customerController.AdjustCredit)
	customers.Get("/:id", customerController.GetCustomer)
	customers.Post("/:id/rebuild-sales", customerController.RebuildSales)

	// Product routes
	products := api.Group("/products")
	products.Get("/", productController.GetProducts)
	products.Post("/", productController.CreateProduct)
	products.Put("/:id", productController.UpdateProduct)
	products.Delete("/:id", productController.DeleteProduct)

	// Sale routes - /export before /:id
	sales := api.Group("/sales")
	sales.Get("/", saleController.GetSales)
	sales.Get("/export", saleController.ExportSales)
	sales.Post("/", saleController.RecordSale)
	sales.Get("/:id", saleController.GetSale)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		MaxAge:       300,
	}))

	SetupRoutes(app, Models.DB)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is working")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	log.Fatal(app.Listen(":" + port))
}

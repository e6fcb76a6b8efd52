package Controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"PAM/Models"
)

func newProductTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	controller := NewProductController(db)
	app.Get("/api/products", controller.GetProducts)
	app.Post("/api/products", controller.CreateProduct)
	app.Put("/api/products/:id", controller.UpdateProduct)
	app.Delete("/api/products/:id", controller.DeleteProduct)
	return app
}

func TestCreateProductDerivesPricePerKg(t *testing.T) {
	db := setupTestDB(t)
	app := newProductTestApp(db)

	body, err := json.Marshal(fiber.Map{
		"productName":  "Rice 25kg",
		"pricePerPack": 1250,
		"kgsPerPack":   25,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var payload struct {
		Product Models.Product `json:"product"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.InDelta(t, 50.0, payload.Product.PricePerKg, 1e-9)
}

func TestCreateProductZeroKgsRejected(t *testing.T) {
	db := setupTestDB(t)
	app := newProductTestApp(db)

	body, err := json.Marshal(fiber.Map{
		"productName":  "Rice 25kg",
		"pricePerPack": 1250,
		"kgsPerPack":   0,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errBody map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, KindValidation, errBody["error"])
}

func TestUpdateProductToZeroPricePersists(t *testing.T) {
	db := setupTestDB(t)
	rice := seedProduct(t, db, "Rice 25kg", 1250, 25)
	app := newProductTestApp(db)

	body, err := json.Marshal(fiber.Map{
		"productName":  "Rice 25kg",
		"pricePerPack": 0,
		"kgsPerPack":   25,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/products/"+itoa(rice.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload Models.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.InDelta(t, 0.0, payload.PricePerPack, 1e-9)
	assert.InDelta(t, 0.0, payload.PricePerKg, 1e-9)

	// The zero price must reach storage, not just the response.
	var reloaded Models.Product
	require.NoError(t, db.First(&reloaded, rice.ID).Error)
	assert.InDelta(t, 0.0, reloaded.PricePerPack, 1e-9)
	assert.InDelta(t, 0.0, reloaded.PricePerKg, 1e-9)
}

func TestUpdateProductLeavesRecordedSalesAlone(t *testing.T) {
	db := setupTestDB(t)
	customer := seedCustomer(t, db, "Anand Stores", 0)
	rice := seedProduct(t, db, "Rice 25kg", 1250, 25)

	sale, _, apiErr := recordSale(db, &Models.RecordSaleRequest{
		CustomerID:    customer.ID,
		SaleType:      "pack",
		PaymentMethod: "cash",
		Products: []Models.SaleLineRequest{
			{ProductID: rice.ID, Quantity: 1, Price: 50},
		},
		AmountReceived: 50,
	})
	require.Nil(t, apiErr)

	app := newProductTestApp(db)
	body, err := json.Marshal(fiber.Map{
		"productName":  "Premium Rice 25kg",
		"pricePerPack": 1500,
		"kgsPerPack":   25,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/products/"+itoa(rice.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The sale keeps its frozen copy of the old name and price.
	var reloaded Models.Sale
	require.NoError(t, db.First(&reloaded, sale.ID).Error)
	items := reloaded.LineItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Rice 25kg", items[0].ProductName)
	assert.InDelta(t, 50.0, items[0].Price, 1e-9)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

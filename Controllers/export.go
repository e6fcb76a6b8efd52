package Controllers

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"PAM/Models"
)

// buildSalesWorkbook converts the sales book to an Excel workbook, one row
// per line item so quantities and frozen prices stay visible.
func buildSalesWorkbook(sales []Models.Sale) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	sheetName := "Sales"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Sale ID", "Date", "Customer", "Sale Type", "Product",
		"Quantity", "Price", "Line Total", "Sale Total",
		"Payment Method", "Amount Received",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	row := 2
	for _, sale := range sales {
		for _, item := range sale.LineItems() {
			values := []interface{}{
				sale.ID,
				sale.Date.Format("2006-01-02 15:04:05"),
				sale.Customer.Name,
				sale.SaleType,
				item.ProductName,
				item.Quantity,
				item.Price,
				item.Quantity * item.Price,
				sale.TotalPrice,
				sale.PaymentMethod,
				sale.AmountReceived,
			}
			for colIndex, value := range values {
				cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
				f.SetCellValue(sheetName, cell, value)
			}
			row++
		}
	}

	for i := 0; i < len(headers); i++ {
		col := string('A' + rune(i))
		f.SetColWidth(sheetName, col, col, 15)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %v", err)
	}
	return &buf, nil
}

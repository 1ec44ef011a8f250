package sheet

import (
	"strings"

	"github.com/tealeg/xlsx/v2"

	"github.com/pdmedical/crm-import/internal/model"
	"github.com/pdmedical/crm-import/internal/parse"
)

// Column positions in the products sheet (zero-based).
const (
	productNameCol       = 2
	productCategoryCol   = 3
	productMarketCol     = 4
	productBackgroundCol = 5
	productContactsCol   = 6
	productForecastCol   = 10
	productCodeCol       = 13
)

// Column positions in the sales sheet (zero-based).
const (
	salesPriorityCol     = 1
	salesNameCol         = 2
	salesCategoryCol     = 3
	salesInstructionsCol = 4
	salesTimingCol       = 5
	salesAdditionalCol   = 6
)

// Header text that sometimes echoes into the data region mid-sheet.
var (
	productHeaderEchoes = map[string]bool{
		"product code": true,
		"code":         true,
		"forecast":     true,
		"total qty":    true,
	}
	salesHeaderEchoes = map[string]bool{
		"product name": true,
		"product":      true,
		"name":         true,
	}
)

// ExtractProducts scans the products sheet starting at startRow and
// builds one Product per row that carries a product code. Rows with a
// blank code or a header echo are skipped; malformed cells degrade to
// absent fields, never errors.
func ExtractProducts(f *xlsx.File, name string, startRow int) ([]model.Product, error) {
	rows, err := Rows(f, name, startRow)
	if err != nil {
		return nil, err
	}

	var products []model.Product
	for _, row := range rows {
		code, ok := parse.Clean(cell(row, productCodeCol))
		if !ok {
			continue
		}
		if productHeaderEchoes[strings.ToLower(code)] {
			continue
		}

		products = append(products, model.Product{
			ProductCode:          code,
			ProductName:          parse.CleanPtr(cell(row, productNameCol)),
			CategoryName:         parse.CleanPtr(cell(row, productCategoryCol)),
			MarketPotential:      parse.CleanPtr(cell(row, productMarketCol)),
			BackgroundHistory:    parse.CleanPtr(cell(row, productBackgroundCol)),
			KeyContactsReference: parse.CleanPtr(cell(row, productContactsCol)),
			ForecastNotes:        parse.CleanPtr(cell(row, productForecastCol)),
			SalesStatus:          model.SalesStatusActive,
		})
	}
	return products, nil
}

// ExtractSales scans the sales sheet starting at startRow and builds one
// SalesRecord per row that carries a product name.
func ExtractSales(f *xlsx.File, name string, startRow int) ([]model.SalesRecord, error) {
	rows, err := Rows(f, name, startRow)
	if err != nil {
		return nil, err
	}

	var sales []model.SalesRecord
	for _, row := range rows {
		productName, ok := parse.Clean(cell(row, salesNameCol))
		if !ok {
			continue
		}
		if salesHeaderEchoes[strings.ToLower(productName)] {
			continue
		}

		sales = append(sales, model.SalesRecord{
			ProductName:     productName,
			PriorityLabel:   parse.CleanPtr(cell(row, salesPriorityCol)),
			CategoryName:    parse.CleanPtr(cell(row, salesCategoryCol)),
			Instructions:    parse.CleanPtr(cell(row, salesInstructionsCol)),
			TimingNotes:     parse.CleanPtr(cell(row, salesTimingCol)),
			AdditionalNotes: parse.CleanPtr(cell(row, salesAdditionalCol)),
		})
	}
	return sales, nil
}

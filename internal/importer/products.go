// Package importer reads product lists from spreadsheets.
package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/shop"
	"github.com/xuri/excelize/v2"
)

var headerAliases = map[string]string{
	"name":           "name",
	"product":        "name",
	"product name":   "name",
	"اسم المنتج":     "name",
	"المنتج":         "name",
	"buy price":      "buy_price",
	"buyprice":       "buy_price",
	"cost":           "buy_price",
	"purchase price": "buy_price",
	"سعر الشراء":     "buy_price",
	"sell price":     "sell_price",
	"sellprice":      "sell_price",
	"price":          "sell_price",
	"sale price":     "sell_price",
	"سعر البيع":      "sell_price",
	"stock":          "stock",
	"quantity":       "stock",
	"qty":            "stock",
	"الكمية":         "stock",
	"المخزون":        "stock",
	"unit":           "unit",
	"الوحدة":         "unit",
}

// ParseProducts reads the first sheet of an XLSX workbook. The header row
// must name at least the product, buy price and sell price columns; blank
// names are skipped.
func ParseProducts(reader io.Reader) ([]ledger.ProductRequest, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: open excel file: %v", shop.ErrInvalidInput, err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: excel file has no sheets", shop.ErrInvalidInput)
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet rows: %v", shop.ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: excel file is empty", shop.ErrInvalidInput)
	}

	colMap := mapColumns(rows[0])
	for _, required := range []string{"name", "buy_price", "sell_price"} {
		if _, ok := colMap[required]; !ok {
			return nil, fmt.Errorf("%w: missing required column: %s", shop.ErrInvalidInput, required)
		}
	}

	result := make([]ledger.ProductRequest, 0, len(rows)-1)
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		name := strings.TrimSpace(readCell(cells, colMap["name"]))
		if name == "" {
			continue
		}

		buy, err := parseMoney(readCell(cells, colMap["buy_price"]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d invalid buy price: %v", shop.ErrInvalidInput, index+1, err)
		}
		sell, err := parseMoney(readCell(cells, colMap["sell_price"]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d invalid sell price: %v", shop.ErrInvalidInput, index+1, err)
		}

		var stock int64
		if idx, ok := colMap["stock"]; ok {
			raw := strings.TrimSpace(readCell(cells, idx))
			if raw != "" {
				stock, err = parseInt(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: row %d invalid stock: %v", shop.ErrInvalidInput, index+1, err)
				}
			}
		}

		var unit string
		if idx, ok := colMap["unit"]; ok {
			unit = strings.TrimSpace(readCell(cells, idx))
		}

		result = append(result, ledger.ProductRequest{
			Name:      name,
			BuyPrice:  buy,
			SellPrice: sell,
			Stock:     stock,
			Unit:      unit,
		})
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%w: excel file has no valid data rows", shop.ErrInvalidInput)
	}
	return result, nil
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		normalized := normalizeHeader(col)
		if normalized == "" {
			continue
		}
		canonical, ok := headerAliases[normalized]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", " ")
	value = strings.Join(strings.Fields(value), " ")
	return value
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseInt(raw string) (int64, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("value is empty")
	}
	asFloat, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	if math.Mod(asFloat, 1) != 0 {
		return 0, fmt.Errorf("must be an integer")
	}
	return int64(asFloat), nil
}

// parseMoney treats an empty cell as zero.
func parseMoney(raw string) (shop.Money, error) {
	value := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if value == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("not a number")
	}
	return shop.MoneyFromDecimal(d), nil
}

package importer

import (
	"bytes"
	"testing"

	"github.com/simonvc/shopledger/internal/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestParseProducts(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Product Name", "Unit", "Buy_Price", "Sell Price", "Qty"},
		{"Rice", "kg", "10.5", "15", "1,200"},
		{"", "", "", "", ""},
		{"Tea", "", 2, 4.25, ""},
	})

	got, err := ParseProducts(buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Rice", got[0].Name)
	assert.Equal(t, "kg", got[0].Unit)
	assert.Equal(t, shop.MustMoney("10.50"), got[0].BuyPrice)
	assert.Equal(t, shop.MustMoney("15"), got[0].SellPrice)
	assert.Equal(t, int64(1200), got[0].Stock)

	assert.Equal(t, "Tea", got[1].Name)
	assert.Equal(t, shop.MustMoney("4.25"), got[1].SellPrice)
	assert.Zero(t, got[1].Stock)
	assert.Empty(t, got[1].Unit)
}

func TestParseProductsArabicHeaders(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"اسم المنتج", "سعر الشراء", "سعر البيع", "الكمية"},
		{"سكر", "12", "14", "30"},
	})
	got, err := ParseProducts(buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "سكر", got[0].Name)
	assert.Equal(t, int64(30), got[0].Stock)
}

func TestParseProductsErrors(t *testing.T) {
	_, err := ParseProducts(workbook(t, [][]interface{}{{"Name", "Stock"}, {"Rice", "3"}}))
	require.Error(t, err)
	assert.ErrorIs(t, err, shop.ErrInvalidInput)
	assert.Contains(t, err.Error(), "buy_price")

	_, err = ParseProducts(workbook(t, [][]interface{}{
		{"Name", "Cost", "Price", "Stock"},
		{"Rice", "10", "15", "2.5"},
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2 invalid stock")

	_, err = ParseProducts(workbook(t, [][]interface{}{{"Name", "Cost", "Price"}}))
	assert.ErrorIs(t, err, shop.ErrInvalidInput)

	_, err = ParseProducts(bytes.NewReader([]byte("not a zip")))
	assert.ErrorIs(t, err, shop.ErrInvalidInput)
}

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/report"
	"github.com/simonvc/shopledger/internal/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsUnwrapToKinds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/products/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"product not found: missing"}`))
		case "/api/v1/sales":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid input: quantity must be greater than zero"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}
	}))
	defer srv.Close()
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.GetProduct(ctx, "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shop.ErrNotFound))
	assert.Contains(t, err.Error(), "product not found")

	_, err = c.RecordSale(ctx, ledger.SaleRequest{ProductID: "p", Quantity: 0})
	assert.True(t, errors.Is(err, shop.ErrInvalidInput))

	_, err = c.Dashboard(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestQueryParameters(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.RequestURI())
		switch r.URL.Path {
		case "/api/v1/reports/export":
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="accounting-report-2024-05-01-2024-05-10.csv"`)
			w.Write([]byte("Item,Amount\n"))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.ListSales(ctx, ledger.Filter{From: "2024-05-01", PaymentType: shop.PaymentCredit, Limit: 5})
	require.NoError(t, err)
	_, err = c.ListExpenses(ctx, ledger.Filter{Category: shop.CategoryRent})
	require.NoError(t, err)
	f, err := c.ExportReport(ctx, "csv", report.PresetCustom, "2024-05-01", "2024-05-10")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/v1/sales?from=2024-05-01&limit=5&paymentType=credit",
		"/api/v1/expenses?category=Rent",
		"/api/v1/reports/export?end=2024-05-10&format=csv&preset=custom&start=2024-05-01",
	}, got)
	assert.Equal(t, "accounting-report-2024-05-01-2024-05-10.csv", f.Name)
	assert.Equal(t, "Item,Amount\n", string(f.Body))
}

package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/simonvc/shopledger/internal/backup"
	"github.com/simonvc/shopledger/internal/export"
	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/observability"
	"github.com/simonvc/shopledger/internal/report"
	"github.com/simonvc/shopledger/internal/shop"
	"github.com/simonvc/shopledger/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	st := store.New(store.NewMemory(), nil)
	clock := func() time.Time { return fixedNow }
	metrics := observability.NewMetrics()
	srv := New(Options{
		Ledger:   ledger.New(st, ledger.WithClock(clock), ledger.WithRecorder(metrics)),
		Reports:  report.NewService(st, nil).WithClock(clock),
		Backup:   backup.NewGateway(st, nil),
		Renderer: export.Renderer{},
		Metrics:  metrics,
		Currency: "EGP",
	}, ":0")
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func createProduct(t *testing.T, h http.Handler) shop.Product {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Rice", "buyPrice": 50, "sellPrice": 75, "stock": 100, "unit": "kg",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[shop.Product](t, rec)
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCashSaleOverHTTP(t *testing.T) {
	h := newTestServer(t)
	p := createProduct(t, h)

	rec := do(t, h, http.MethodPost, "/api/v1/sales", map[string]any{
		"productId": p.ID, "quantity": 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sale := decode[shop.Sale](t, rec)
	assert.Equal(t, shop.MustMoney("225"), sale.TotalPrice)
	assert.Equal(t, shop.MustMoney("75"), sale.Profit)
	assert.Equal(t, "2024-05-10", sale.Date)
	assert.Equal(t, shop.PaymentCash, sale.PaymentType)

	rec = do(t, h, http.MethodGet, "/api/v1/products/"+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(97), decode[shop.Product](t, rec).Stock)

	rec = do(t, h, http.MethodGet, "/api/v1/reports/daily?date=2024-05-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[report.Summary](t, rec)
	assert.Equal(t, shop.MustMoney("225"), sum.TotalSales)
	assert.Equal(t, 1, sum.SalesCount)

	rec = do(t, h, http.MethodDelete, "/api/v1/sales/"+sale.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/v1/products/"+p.ID, nil)
	assert.Equal(t, int64(100), decode[shop.Product](t, rec).Stock)
}

func TestErrorStatusCodes(t *testing.T) {
	h := newTestServer(t)
	p := createProduct(t, h)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"zero quantity", http.MethodPost, "/api/v1/sales", map[string]any{"productId": p.ID, "quantity": 0}, http.StatusBadRequest},
		{"unknown product", http.MethodPost, "/api/v1/sales", map[string]any{"productId": "missing", "quantity": 1}, http.StatusNotFound},
		{"credit without customer", http.MethodPost, "/api/v1/sales", map[string]any{"productId": p.ID, "quantity": 1, "paymentType": "credit"}, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/api/v1/sales", "{", http.StatusBadRequest},
		{"unknown sale", http.MethodDelete, "/api/v1/sales/nope", nil, http.StatusNotFound},
		{"bad category", http.MethodPost, "/api/v1/expenses", map[string]any{"description": "x", "amount": 5, "category": "Toys"}, http.StatusBadRequest},
		{"bad filter date", http.MethodGet, "/api/v1/sales?date=10-05-2024", nil, http.StatusBadRequest},
		{"bad preset", http.MethodGet, "/api/v1/reports/range?preset=yearly", nil, http.StatusBadRequest},
		{"pdf without gotenberg", http.MethodGet, "/api/v1/reports/export?format=pdf", nil, http.StatusBadRequest},
		{"unknown customer payment", http.MethodPost, "/api/v1/customers/nope/payments", map[string]any{"amount": 5}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[errorResponse](t, rec).Error)
		})
	}

	rec := do(t, h, http.MethodGet, "/api/v1/products/"+p.ID, nil)
	assert.Equal(t, int64(100), decode[shop.Product](t, rec).Stock)
}

func TestCreditSaleAndPayment(t *testing.T) {
	h := newTestServer(t)
	p := createProduct(t, h)

	rec := do(t, h, http.MethodPost, "/api/v1/customers", map[string]any{"name": "Ali", "phone": "0100"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	c := decode[shop.Customer](t, rec)

	rec = do(t, h, http.MethodPost, "/api/v1/sales", map[string]any{
		"productId": p.ID, "quantity": 2, "unitPrice": 60, "paymentType": "credit", "customerId": c.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/v1/customers/"+c.ID+"/payments", map[string]any{"amount": 50})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/customers/"+c.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stmt := decode[ledger.CustomerStatement](t, rec)
	assert.Equal(t, shop.MustMoney("70"), stmt.Customer.TotalDebt)
	assert.Len(t, stmt.CreditSales, 1)
	assert.Len(t, stmt.Payments, 1)

	rec = do(t, h, http.MethodGet, "/api/v1/reports/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	d := decode[report.Dashboard](t, rec)
	assert.Equal(t, shop.MustMoney("70"), d.CustomerDebt)
	assert.Equal(t, 1, d.SalesCountToday)
}

func TestListSalesFilters(t *testing.T) {
	h := newTestServer(t)
	p := createProduct(t, h)
	for _, date := range []string{"2024-05-01", "2024-05-05", "2024-05-09"} {
		rec := do(t, h, http.MethodPost, "/api/v1/sales", map[string]any{
			"productId": p.ID, "quantity": 1, "date": date,
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, h, http.MethodGet, "/api/v1/sales?from=2024-05-02&to=2024-05-09", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sales := decode[[]shop.Sale](t, rec)
	require.Len(t, sales, 2)
	assert.Equal(t, "2024-05-09", sales[0].Date)
	assert.Equal(t, "2024-05-05", sales[1].Date)

	rec = do(t, h, http.MethodGet, "/api/v1/sales?limit=1", nil)
	assert.Len(t, decode[[]shop.Sale](t, rec), 1)
}

func TestExpenseCategories(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/api/v1/expenses/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, shop.AllExpenseCategories, decode[[]shop.ExpenseCategory](t, rec))

	rec = do(t, h, http.MethodPost, "/api/v1/expenses", map[string]any{
		"description": "May rent", "amount": 1000, "category": "إيجار",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, shop.CategoryRent, decode[shop.Expense](t, rec).Category)
}

func TestReportExportAndInvoice(t *testing.T) {
	h := newTestServer(t)
	p := createProduct(t, h)
	rec := do(t, h, http.MethodPost, "/api/v1/sales", map[string]any{"productId": p.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, rec.Code)
	sale := decode[shop.Sale](t, rec)

	rec = do(t, h, http.MethodGet, "/api/v1/reports/export?format=csv&start=2024-05-01&end=2024-05-10", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "accounting-report-2024-05-01-2024-05-10.csv")
	assert.Contains(t, rec.Body.String(), "Rice")

	rec = do(t, h, http.MethodGet, "/api/v1/sales/"+sale.ID+"/invoice", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "invoice-"+sale.ID+".txt")
	assert.Contains(t, rec.Body.String(), "150.00 EGP")
}

func TestBackupRoundTrip(t *testing.T) {
	h := newTestServer(t)
	createProduct(t, h)

	rec := do(t, h, http.MethodGet, "/api/v1/backup", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := rec.Body.String()
	assert.Contains(t, doc, `"products"`)

	other := newTestServer(t)
	rec = do(t, other, http.MethodPost, "/api/v1/backup/restore", doc)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[restoreResponse](t, rec).Restored, len(store.AllCollections))

	rec = do(t, other, http.MethodGet, "/api/v1/products", nil)
	products := decode[[]shop.Product](t, rec)
	require.Len(t, products, 1)
	assert.Equal(t, "Rice", products[0].Name)

	rec = do(t, other, http.MethodPost, "/api/v1/backup/restore", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t)
	createProduct(t, h)
	rec := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `shopledger_ledger_operations_total{op="create_product",result="ok"} 1`)
}

// Package client talks to a running shopledger server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/report"
	"github.com/simonvc/shopledger/internal/shop"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response. It unwraps to the matching shop error kind
// so callers can use errors.Is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return shop.ErrNotFound
	case e.Status >= 400 && e.Status < 500:
		return shop.ErrInvalidInput
	default:
		return shop.ErrStorage
	}
}

// File is a downloaded export.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Products

func (c *Client) CreateProduct(ctx context.Context, req ledger.ProductRequest) (*shop.Product, error) {
	var result shop.Product
	if err := c.send(ctx, http.MethodPost, "/api/v1/products", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, req ledger.ProductRequest) (*shop.Product, error) {
	var result shop.Product
	if err := c.send(ctx, http.MethodPut, "/api/v1/products/"+url.PathEscape(id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListProducts(ctx context.Context, search string) ([]shop.Product, error) {
	params := url.Values{}
	if search != "" {
		params.Set("search", search)
	}
	var result []shop.Product
	if err := c.get(ctx, "/api/v1/products?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*shop.Product, error) {
	var result shop.Product
	if err := c.get(ctx, "/api/v1/products/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/v1/products/"+url.PathEscape(id), nil, nil)
}

// ImportProducts uploads an xlsx workbook.
func (c *Client) ImportProducts(ctx context.Context, workbook io.Reader) ([]shop.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/products/import", workbook)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	var result []shop.Product
	if err := c.doRequest(req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Sales and purchases

func (c *Client) RecordSale(ctx context.Context, req ledger.SaleRequest) (*shop.Sale, error) {
	var result shop.Sale
	if err := c.send(ctx, http.MethodPost, "/api/v1/sales", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListSales(ctx context.Context, f ledger.Filter) ([]shop.Sale, error) {
	var result []shop.Sale
	if err := c.get(ctx, "/api/v1/sales?"+filterParams(f).Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) GetSale(ctx context.Context, id string) (*shop.Sale, error) {
	var result shop.Sale
	if err := c.get(ctx, "/api/v1/sales/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteSale(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/v1/sales/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Invoice(ctx context.Context, saleID, format string) (*File, error) {
	params := url.Values{"format": {format}}
	return c.download(ctx, "/api/v1/sales/"+url.PathEscape(saleID)+"/invoice?"+params.Encode())
}

func (c *Client) RecordPurchase(ctx context.Context, req ledger.PurchaseRequest) (*shop.Purchase, error) {
	var result shop.Purchase
	if err := c.send(ctx, http.MethodPost, "/api/v1/purchases", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListPurchases(ctx context.Context, f ledger.Filter) ([]shop.Purchase, error) {
	var result []shop.Purchase
	if err := c.get(ctx, "/api/v1/purchases?"+filterParams(f).Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) DeletePurchase(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/v1/purchases/"+url.PathEscape(id), nil, nil)
}

// Expenses

func (c *Client) RecordExpense(ctx context.Context, req ledger.ExpenseRequest) (*shop.Expense, error) {
	var result shop.Expense
	if err := c.send(ctx, http.MethodPost, "/api/v1/expenses", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListExpenses(ctx context.Context, f ledger.Filter) ([]shop.Expense, error) {
	var result []shop.Expense
	if err := c.get(ctx, "/api/v1/expenses?"+filterParams(f).Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/v1/expenses/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ExpenseCategories(ctx context.Context) ([]shop.ExpenseCategory, error) {
	var result []shop.ExpenseCategory
	if err := c.get(ctx, "/api/v1/expenses/categories", &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Customers and suppliers

func (c *Client) CreateCustomer(ctx context.Context, req ledger.PartyRequest) (*shop.Customer, error) {
	var result shop.Customer
	if err := c.send(ctx, http.MethodPost, "/api/v1/customers", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListCustomers(ctx context.Context, search string) ([]shop.Customer, error) {
	params := url.Values{}
	if search != "" {
		params.Set("search", search)
	}
	var result []shop.Customer
	if err := c.get(ctx, "/api/v1/customers?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CustomerStatement(ctx context.Context, id string) (*ledger.CustomerStatement, error) {
	var result ledger.CustomerStatement
	if err := c.get(ctx, "/api/v1/customers/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/v1/customers/"+url.PathEscape(id), nil, nil)
}

func (c *Client) RecordCustomerPayment(ctx context.Context, id string, req ledger.PaymentRequest) (*shop.CustomerPayment, error) {
	var result shop.CustomerPayment
	if err := c.send(ctx, http.MethodPost, "/api/v1/customers/"+url.PathEscape(id)+"/payments", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) CreateSupplier(ctx context.Context, req ledger.PartyRequest) (*shop.Supplier, error) {
	var result shop.Supplier
	if err := c.send(ctx, http.MethodPost, "/api/v1/suppliers", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ListSuppliers(ctx context.Context, search string) ([]shop.Supplier, error) {
	params := url.Values{}
	if search != "" {
		params.Set("search", search)
	}
	var result []shop.Supplier
	if err := c.get(ctx, "/api/v1/suppliers?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) SupplierStatement(ctx context.Context, id string) (*ledger.SupplierStatement, error) {
	var result ledger.SupplierStatement
	if err := c.get(ctx, "/api/v1/suppliers/"+url.PathEscape(id), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) DeleteSupplier(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/api/v1/suppliers/"+url.PathEscape(id), nil, nil)
}

func (c *Client) RecordSupplierPayment(ctx context.Context, id string, req ledger.PaymentRequest) (*shop.SupplierPayment, error) {
	var result shop.SupplierPayment
	if err := c.send(ctx, http.MethodPost, "/api/v1/suppliers/"+url.PathEscape(id)+"/payments", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reports

func (c *Client) DailyReport(ctx context.Context, date string) (*report.Summary, error) {
	params := url.Values{}
	if date != "" {
		params.Set("date", date)
	}
	var result report.Summary
	if err := c.get(ctx, "/api/v1/reports/daily?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RangeReport runs a preset report, or a custom one when start and end are
// set.
func (c *Client) RangeReport(ctx context.Context, preset report.Preset, start, end string) (*report.RangeReport, error) {
	var result report.RangeReport
	if err := c.get(ctx, "/api/v1/reports/range?"+rangeParams(preset, start, end).Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Inventory(ctx context.Context) (*report.Inventory, error) {
	var result report.Inventory
	if err := c.get(ctx, "/api/v1/reports/inventory", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	var result report.Dashboard
	if err := c.get(ctx, "/api/v1/reports/dashboard", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ExportReport(ctx context.Context, format string, preset report.Preset, start, end string) (*File, error) {
	params := rangeParams(preset, start, end)
	params.Set("format", format)
	return c.download(ctx, "/api/v1/reports/export?"+params.Encode())
}

func rangeParams(preset report.Preset, start, end string) url.Values {
	params := url.Values{}
	if preset != "" {
		params.Set("preset", string(preset))
	}
	if start != "" {
		params.Set("start", start)
	}
	if end != "" {
		params.Set("end", end)
	}
	return params
}

// Backup returns the full JSON backup document.
func (c *Client) Backup(ctx context.Context) (*File, error) {
	return c.download(ctx, "/api/v1/backup")
}

// Restore uploads a backup document and returns the replaced collections.
func (c *Client) Restore(ctx context.Context, doc io.Reader) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/backup/restore", doc)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	var result struct {
		Restored []string `json:"restored"`
	}
	if err := c.doRequest(req, &result); err != nil {
		return nil, err
	}
	return result.Restored, nil
}

// Ping checks if the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.get(ctx, "/health", nil)
}

func filterParams(f ledger.Filter) url.Values {
	params := url.Values{}
	set := func(k, v string) {
		if v != "" {
			params.Set(k, v)
		}
	}
	set("date", f.Date)
	set("from", f.From)
	set("to", f.To)
	set("search", f.Search)
	set("category", string(f.Category))
	set("paymentType", string(f.PaymentType))
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.send(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) send(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.doRequest(req, result)
}

func (c *Client) download(ctx context.Context, path string) (*File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, body, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}
	f := &File{ContentType: resp.Header.Get("Content-Type"), Body: body}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil {
		f.Name = params["filename"]
	}
	return f, nil
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) roundTrip(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			return nil, nil, &APIError{Status: resp.StatusCode, Message: apiErr.Error}
		}
		return nil, nil, &APIError{Status: resp.StatusCode, Message: string(bodyBytes)}
	}
	return resp, bodyBytes, nil
}

func (c *Client) doRequest(req *http.Request, result any) error {
	_, body, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	if result != nil && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

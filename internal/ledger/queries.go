package ledger

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/simonvc/shopledger/internal/shop"
)

// Filter narrows transaction listings. Date matches one day exactly; From and
// To bound an inclusive range. Search matches names, descriptions and notes.
type Filter struct {
	Date        string
	From        string
	To          string
	Search      string
	Category    shop.ExpenseCategory
	PaymentType shop.PaymentType
	Limit       int
}

func (f Filter) matchDate(date string) bool {
	if f.Date != "" && date != f.Date {
		return false
	}
	if f.From != "" && date < f.From {
		return false
	}
	if f.To != "" && date > f.To {
		return false
	}
	return true
}

func matchText(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// newestFirst orders by date descending; records on the same date keep
// reverse insertion order.
func newestFirst[T any](records []T, date func(T) string, limit int) []T {
	slices.Reverse(records)
	sort.SliceStable(records, func(i, j int) bool {
		return date(records[i]) > date(records[j])
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

func (e *Engine) GetProduct(ctx context.Context, id string) (*shop.Product, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	i := st.FindProduct(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", shop.ErrProductNotFound, id)
	}
	p := st.Products[i]
	return &p, nil
}

// ListProducts returns products in insertion order, optionally filtered by a
// case-insensitive name search.
func (e *Engine) ListProducts(ctx context.Context, search string) ([]shop.Product, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]shop.Product, 0, len(st.Products))
	for _, p := range st.Products {
		if matchText(search, p.Name) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (e *Engine) GetSale(ctx context.Context, id string) (*shop.Sale, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	i := st.FindSale(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", shop.ErrSaleNotFound, id)
	}
	s := st.Sales[i]
	return &s, nil
}

func (e *Engine) ListSales(ctx context.Context, f Filter) ([]shop.Sale, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]shop.Sale, 0, len(st.Sales))
	for _, s := range st.Sales {
		if !f.matchDate(s.Date) || !matchText(f.Search, s.ProductName, s.CustomerName, s.Notes) {
			continue
		}
		if f.PaymentType != "" && s.PaymentType != f.PaymentType {
			continue
		}
		out = append(out, s)
	}
	return newestFirst(out, func(s shop.Sale) string { return s.Date }, f.Limit), nil
}

func (e *Engine) GetPurchase(ctx context.Context, id string) (*shop.Purchase, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	i := st.FindPurchase(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", shop.ErrPurchaseNotFound, id)
	}
	p := st.Purchases[i]
	return &p, nil
}

func (e *Engine) ListPurchases(ctx context.Context, f Filter) ([]shop.Purchase, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]shop.Purchase, 0, len(st.Purchases))
	for _, p := range st.Purchases {
		if !f.matchDate(p.Date) || !matchText(f.Search, p.ProductName, p.SupplierName, p.Notes) {
			continue
		}
		if f.PaymentType != "" && p.PaymentType != f.PaymentType {
			continue
		}
		out = append(out, p)
	}
	return newestFirst(out, func(p shop.Purchase) string { return p.Date }, f.Limit), nil
}

func (e *Engine) ListExpenses(ctx context.Context, f Filter) ([]shop.Expense, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]shop.Expense, 0, len(st.Expenses))
	for _, x := range st.Expenses {
		if !f.matchDate(x.Date) || !matchText(f.Search, x.Description, x.Notes) {
			continue
		}
		if f.Category != "" && x.Category != f.Category {
			continue
		}
		out = append(out, x)
	}
	return newestFirst(out, func(x shop.Expense) string { return x.Date }, f.Limit), nil
}

func (e *Engine) GetCustomer(ctx context.Context, id string) (*shop.Customer, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	i := st.FindCustomer(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", shop.ErrCustomerNotFound, id)
	}
	c := st.Customers[i]
	return &c, nil
}

// ListCustomers returns customers by debt, largest first, filtered by name or
// phone.
func (e *Engine) ListCustomers(ctx context.Context, search string) ([]shop.Customer, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]shop.Customer, 0, len(st.Customers))
	for _, c := range st.Customers {
		if matchText(search, c.Name, c.Phone) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalDebt > out[j].TotalDebt })
	return out, nil
}

func (e *Engine) GetSupplier(ctx context.Context, id string) (*shop.Supplier, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	i := st.FindSupplier(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", shop.ErrSupplierNotFound, id)
	}
	s := st.Suppliers[i]
	return &s, nil
}

func (e *Engine) ListSuppliers(ctx context.Context, search string) ([]shop.Supplier, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]shop.Supplier, 0, len(st.Suppliers))
	for _, s := range st.Suppliers {
		if matchText(search, s.Name, s.Phone) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalDebt > out[j].TotalDebt })
	return out, nil
}

// CustomerStatement lists what moved a customer's balance.
type CustomerStatement struct {
	Customer    shop.Customer          `json:"customer"`
	CreditSales []shop.Sale            `json:"creditSales"`
	Payments    []shop.CustomerPayment `json:"payments"`
	TotalCredit shop.Money             `json:"totalCredit"`
	TotalPaid   shop.Money             `json:"totalPaid"`
}

func (e *Engine) CustomerStatement(ctx context.Context, id string) (*CustomerStatement, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	i := st.FindCustomer(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", shop.ErrCustomerNotFound, id)
	}
	out := &CustomerStatement{
		Customer:    st.Customers[i],
		CreditSales: []shop.Sale{},
		Payments:    []shop.CustomerPayment{},
	}
	for _, s := range st.Sales {
		if s.CustomerID == id && s.IsCredit() {
			out.CreditSales = append(out.CreditSales, s)
			out.TotalCredit += s.TotalPrice
		}
	}
	for _, p := range st.CustomerPayments {
		if p.CustomerID == id {
			out.Payments = append(out.Payments, p)
			out.TotalPaid += p.Amount
		}
	}
	return out, nil
}

type SupplierStatement struct {
	Supplier        shop.Supplier          `json:"supplier"`
	CreditPurchases []shop.Purchase        `json:"creditPurchases"`
	Payments        []shop.SupplierPayment `json:"payments"`
	TotalCredit     shop.Money             `json:"totalCredit"`
	TotalPaid       shop.Money             `json:"totalPaid"`
}

func (e *Engine) SupplierStatement(ctx context.Context, id string) (*SupplierStatement, error) {
	st, err := e.view(ctx)
	if err != nil {
		return nil, err
	}
	i := st.FindSupplier(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", shop.ErrSupplierNotFound, id)
	}
	out := &SupplierStatement{
		Supplier:        st.Suppliers[i],
		CreditPurchases: []shop.Purchase{},
		Payments:        []shop.SupplierPayment{},
	}
	for _, p := range st.Purchases {
		if p.SupplierID == id && p.IsCredit() {
			out.CreditPurchases = append(out.CreditPurchases, p)
			out.TotalCredit += p.TotalPrice
		}
	}
	for _, p := range st.SupplierPayments {
		if p.SupplierID == id {
			out.Payments = append(out.Payments, p)
			out.TotalPaid += p.Amount
		}
	}
	return out, nil
}

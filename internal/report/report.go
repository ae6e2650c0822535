// Package report derives summaries from the transaction log. Every function
// here is read-only and total: empty input yields zero values.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/simonvc/shopledger/internal/shop"
	"github.com/simonvc/shopledger/internal/store"
)

// MaxRangeDays bounds the per-day breakdown of a range report.
const MaxRangeDays = 3660

// TopProductsLimit is the length of the top products ranking.
const TopProductsLimit = 10

// Summary aggregates one day or one period. TotalProfit is sales profit minus
// expenses.
type Summary struct {
	Date           string     `json:"date,omitempty"`
	TotalSales     shop.Money `json:"totalSales"`
	TotalPurchases shop.Money `json:"totalPurchases"`
	TotalExpenses  shop.Money `json:"totalExpenses"`
	TotalProfit    shop.Money `json:"totalProfit"`
	SalesCount     int        `json:"salesCount"`
	PurchasesCount int        `json:"purchasesCount"`
	ExpensesCount  int        `json:"expensesCount"`
}

type ProductRank struct {
	ProductID   string     `json:"productId"`
	ProductName string     `json:"productName"`
	Quantity    int64      `json:"quantity"`
	Total       shop.Money `json:"total"`
	Profit      shop.Money `json:"profit"`
}

type RangeReport struct {
	Start       string          `json:"start"`
	End         string          `json:"end"`
	Totals      Summary         `json:"totals"`
	GrossProfit shop.Money      `json:"grossProfit"`
	NetProfit   shop.Money      `json:"netProfit"`
	Daily       []Summary       `json:"daily"`
	TopProducts []ProductRank   `json:"topProducts"`
	Sales       []shop.Sale     `json:"sales"`
	Purchases   []shop.Purchase `json:"purchases"`
	Expenses    []shop.Expense  `json:"expenses"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

type InventoryItem struct {
	shop.Product
	Value    shop.Money `json:"value"`
	LowStock bool       `json:"lowStock"`
}

type Inventory struct {
	Items         []InventoryItem `json:"items"`
	TotalValue    shop.Money      `json:"totalValue"`
	LowStockCount int             `json:"lowStockCount"`
}

type Dashboard struct {
	Today           Summary     `json:"today"`
	AllTime         Summary     `json:"allTime"`
	Inventory       Inventory   `json:"inventory"`
	ProductsCount   int         `json:"productsCount"`
	LowStockCount   int         `json:"lowStockCount"`
	InventoryValue  shop.Money  `json:"inventoryValue"`
	SalesCountToday int         `json:"salesCountToday"`
	CustomerDebt    shop.Money  `json:"customerDebt"`
	SupplierDebt    shop.Money  `json:"supplierDebt"`
	RecentSales     []shop.Sale `json:"recentSales"`
	GeneratedAt     time.Time   `json:"generatedAt"`
}

// summarize folds the records accepted by keep into one Summary.
func summarize(st *store.State, keep func(date string) bool) Summary {
	var s Summary
	var gross shop.Money
	for _, x := range st.Sales {
		if keep(x.Date) {
			s.TotalSales += x.TotalPrice
			gross += x.Profit
			s.SalesCount++
		}
	}
	for _, x := range st.Purchases {
		if keep(x.Date) {
			s.TotalPurchases += x.TotalPrice
			s.PurchasesCount++
		}
	}
	for _, x := range st.Expenses {
		if keep(x.Date) {
			s.TotalExpenses += x.Amount
			s.ExpensesCount++
		}
	}
	s.TotalProfit = gross - s.TotalExpenses
	return s
}

// DailySummary matches records whose date equals date exactly.
func DailySummary(st *store.State, date string) Summary {
	s := summarize(st, func(d string) bool { return d == date })
	s.Date = date
	return s
}

// Range builds the report for start..end inclusive. Records are matched by
// string comparison, so dates must be canonical.
func Range(st *store.State, start, end string) (*RangeReport, error) {
	if _, err := shop.ParseDate(start); err != nil {
		return nil, err
	}
	if _, err := shop.ParseDate(end); err != nil {
		return nil, err
	}
	if days := spanDays(start, end); days > MaxRangeDays {
		return nil, fmt.Errorf("%w: %d days, max %d", shop.ErrRangeTooLong, days, MaxRangeDays)
	}

	in := func(d string) bool { return shop.InRange(d, start, end) }
	r := &RangeReport{
		Start:     start,
		End:       end,
		Totals:    summarize(st, in),
		Sales:     []shop.Sale{},
		Purchases: []shop.Purchase{},
		Expenses:  []shop.Expense{},
	}
	r.NetProfit = r.Totals.TotalProfit
	r.GrossProfit = r.NetProfit + r.Totals.TotalExpenses

	for _, x := range st.Sales {
		if in(x.Date) {
			r.Sales = append(r.Sales, x)
		}
	}
	for _, x := range st.Purchases {
		if in(x.Date) {
			r.Purchases = append(r.Purchases, x)
		}
	}
	for _, x := range st.Expenses {
		if in(x.Date) {
			r.Expenses = append(r.Expenses, x)
		}
	}

	dates, err := shop.DateRange(start, end)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]*Summary, len(dates))
	r.Daily = make([]Summary, len(dates))
	for i, d := range dates {
		r.Daily[i].Date = d
		byDate[d] = &r.Daily[i]
	}
	dayGross := make(map[string]shop.Money, len(dates))
	for _, x := range r.Sales {
		if s, ok := byDate[x.Date]; ok {
			s.TotalSales += x.TotalPrice
			s.SalesCount++
			dayGross[x.Date] += x.Profit
		}
	}
	for _, x := range r.Purchases {
		if s, ok := byDate[x.Date]; ok {
			s.TotalPurchases += x.TotalPrice
			s.PurchasesCount++
		}
	}
	for _, x := range r.Expenses {
		if s, ok := byDate[x.Date]; ok {
			s.TotalExpenses += x.Amount
			s.ExpensesCount++
		}
	}
	for i := range r.Daily {
		r.Daily[i].TotalProfit = dayGross[r.Daily[i].Date] - r.Daily[i].TotalExpenses
	}

	r.TopProducts = TopProducts(r.Sales, TopProductsLimit)
	return r, nil
}

// TopProducts groups sales by product and ranks the groups by revenue. A
// group is named after its first sale. Ties keep the order in which products
// were first seen.
func TopProducts(sales []shop.Sale, limit int) []ProductRank {
	index := make(map[string]int)
	ranks := []ProductRank{}
	for _, s := range sales {
		i, ok := index[s.ProductID]
		if !ok {
			i = len(ranks)
			index[s.ProductID] = i
			ranks = append(ranks, ProductRank{ProductID: s.ProductID, ProductName: s.ProductName})
		}
		ranks[i].Quantity += s.Quantity
		ranks[i].Total += s.TotalPrice
		ranks[i].Profit += s.Profit
	}
	sort.SliceStable(ranks, func(a, b int) bool { return ranks[a].Total > ranks[b].Total })
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// InventorySnapshot values every product at buy price.
func InventorySnapshot(st *store.State) Inventory {
	inv := Inventory{Items: make([]InventoryItem, 0, len(st.Products))}
	for _, p := range st.Products {
		item := InventoryItem{Product: p, Value: p.Value(), LowStock: p.LowStock()}
		inv.Items = append(inv.Items, item)
		inv.TotalValue += item.Value
		if item.LowStock {
			inv.LowStockCount++
		}
	}
	return inv
}

// DashboardStats combines today's summary with totals over the whole log.
func DashboardStats(st *store.State, today string) *Dashboard {
	inv := InventorySnapshot(st)
	d := &Dashboard{
		Today:          DailySummary(st, today),
		AllTime:        summarize(st, func(string) bool { return true }),
		Inventory:      inv,
		ProductsCount:  len(st.Products),
		LowStockCount:  inv.LowStockCount,
		InventoryValue: inv.TotalValue,
	}
	d.SalesCountToday = d.Today.SalesCount
	for _, c := range st.Customers {
		d.CustomerDebt += c.TotalDebt
	}
	for _, s := range st.Suppliers {
		d.SupplierDebt += s.TotalDebt
	}

	n := min(5, len(st.Sales))
	d.RecentSales = make([]shop.Sale, 0, n)
	for i := len(st.Sales) - 1; i >= len(st.Sales)-n; i-- {
		d.RecentSales = append(d.RecentSales, st.Sales[i])
	}
	return d
}

func spanDays(start, end string) int {
	from, _ := time.Parse(shop.DateLayout, start)
	to, _ := time.Parse(shop.DateLayout, end)
	return int(to.Sub(from).Hours()/24) + 1
}

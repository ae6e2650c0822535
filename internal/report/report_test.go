package report

import (
	"context"
	"testing"
	"time"

	"github.com/simonvc/shopledger/internal/shop"
	"github.com/simonvc/shopledger/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func m(s string) shop.Money { return shop.MustMoney(s) }

func sale(id, product, date string, qty int64, unit, buy string) shop.Sale {
	u := m(unit)
	return shop.Sale{
		ID: id, ProductID: product, ProductName: product, Quantity: qty,
		UnitPrice: u, TotalPrice: u.Times(qty), Profit: (u - m(buy)).Times(qty),
		Date: date, PaymentType: shop.PaymentCash,
	}
}

func fixture() *store.State {
	return &store.State{
		Products: []shop.Product{
			{ID: "rice", Name: "Rice", BuyPrice: m("10"), SellPrice: m("15"), Stock: 100},
			{ID: "tea", Name: "Tea", BuyPrice: m("2.5"), SellPrice: m("4"), Stock: 3},
			{ID: "salt", Name: "Salt", BuyPrice: m("1"), SellPrice: m("2"), Stock: -2},
		},
		Sales: []shop.Sale{
			sale("s1", "rice", "2024-05-01", 2, "15", "10"),
			sale("s2", "tea", "2024-05-02", 10, "4", "2.5"),
			sale("s3", "rice", "2024-05-02", 1, "15", "10"),
			sale("s4", "salt", "2024-05-09", 1, "2", "1"),
		},
		Purchases: []shop.Purchase{
			{ID: "p1", ProductID: "rice", Quantity: 10, UnitPrice: m("10"), TotalPrice: m("100"), Date: "2024-05-02"},
		},
		Expenses: []shop.Expense{
			{ID: "e1", Description: "power", Amount: m("7"), Category: shop.CategoryElectricity, Date: "2024-05-02"},
			{ID: "e2", Description: "rent", Amount: m("100"), Category: shop.CategoryRent, Date: "2024-04-30"},
		},
		Customers: []shop.Customer{{ID: "c1", TotalDebt: m("30")}, {ID: "c2", TotalDebt: m("-5")}},
		Suppliers: []shop.Supplier{{ID: "v1", TotalDebt: m("200")}},
	}
}

func TestDailySummary(t *testing.T) {
	s := DailySummary(fixture(), "2024-05-02")
	assert.Equal(t, m("55"), s.TotalSales)
	assert.Equal(t, m("100"), s.TotalPurchases)
	assert.Equal(t, m("7"), s.TotalExpenses)
	// 15 + 5 profit minus 7 expenses
	assert.Equal(t, m("13"), s.TotalProfit)
	assert.Equal(t, 2, s.SalesCount)
	assert.Equal(t, 1, s.PurchasesCount)

	empty := DailySummary(&store.State{}, "2024-05-02")
	assert.Zero(t, empty.TotalSales)
	assert.Zero(t, empty.TotalProfit)
}

func TestDailySummaryIgnoresOrder(t *testing.T) {
	st := fixture()
	want := DailySummary(st, "2024-05-02")

	for i, j := 0, len(st.Sales)-1; i < j; i, j = i+1, j-1 {
		st.Sales[i], st.Sales[j] = st.Sales[j], st.Sales[i]
	}
	assert.Equal(t, want, DailySummary(st, "2024-05-02"))
}

func TestSingleDayRangeMatchesDaily(t *testing.T) {
	st := fixture()
	r, err := Range(st, "2024-05-02", "2024-05-02")
	require.NoError(t, err)
	require.Len(t, r.Daily, 1)

	daily := DailySummary(st, "2024-05-02")
	totals := r.Totals
	totals.Date = daily.Date
	assert.Equal(t, daily, totals)
	assert.Equal(t, daily, r.Daily[0])
}

func TestRangeBreakdownIncludesIdleDays(t *testing.T) {
	st := &store.State{Sales: []shop.Sale{sale("s1", "rice", "2024-01-02", 1, "15", "10")}}
	r, err := Range(st, "2024-01-01", "2024-01-03")
	require.NoError(t, err)
	require.Len(t, r.Daily, 3)

	assert.Equal(t, Summary{Date: "2024-01-01"}, r.Daily[0])
	assert.Equal(t, m("15"), r.Daily[1].TotalSales)
	assert.Equal(t, Summary{Date: "2024-01-03"}, r.Daily[2])
}

func TestRangeTotalsAndRanking(t *testing.T) {
	r, err := Range(fixture(), "2024-05-01", "2024-05-09")
	require.NoError(t, err)

	assert.Equal(t, m("87"), r.Totals.TotalSales)
	assert.Equal(t, m("31"), r.GrossProfit)
	assert.Equal(t, m("24"), r.NetProfit)
	assert.Equal(t, r.NetProfit, r.Totals.TotalProfit)
	assert.Len(t, r.Daily, 9)
	assert.Len(t, r.Sales, 4)
	assert.Len(t, r.Expenses, 1)

	require.Len(t, r.TopProducts, 3)
	assert.Equal(t, "rice", r.TopProducts[0].ProductID)
	assert.Equal(t, int64(3), r.TopProducts[0].Quantity)
	assert.Equal(t, m("45"), r.TopProducts[0].Total)
	assert.Equal(t, m("15"), r.TopProducts[0].Profit)
	assert.Equal(t, "tea", r.TopProducts[1].ProductID)
}

func TestRangeRejects(t *testing.T) {
	_, err := Range(fixture(), "2024-5-1", "2024-05-09")
	assert.ErrorIs(t, err, shop.ErrInvalidDate)

	_, err = Range(fixture(), "1990-01-01", "2024-05-09")
	assert.ErrorIs(t, err, shop.ErrRangeTooLong)

	r, err := Range(fixture(), "2024-05-09", "2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, r.Daily)
	assert.Zero(t, r.Totals.TotalSales)
}

func TestTopProductsLimitAndTies(t *testing.T) {
	var sales []shop.Sale
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		sales = append(sales, sale(id, id, "2024-01-01", 1, "5", "1"))
	}
	sales = append(sales, sale("x", "k", "2024-01-01", 1, "5", "1"))

	ranks := TopProducts(sales, TopProductsLimit)
	require.Len(t, ranks, 10)
	assert.Equal(t, "k", ranks[0].ProductID)
	assert.Equal(t, "a", ranks[1].ProductID)
	assert.Equal(t, "b", ranks[2].ProductID)

	assert.Empty(t, TopProducts(nil, TopProductsLimit))
}

func TestTopProductsKeepsFirstName(t *testing.T) {
	first := sale("s1", "p1", "2024-01-01", 1, "5", "1")
	first.ProductName = "Tea"
	renamed := sale("s2", "p1", "2024-01-02", 2, "5", "1")
	renamed.ProductName = "Green Tea"

	ranks := TopProducts([]shop.Sale{first, renamed}, TopProductsLimit)
	require.Len(t, ranks, 1)
	assert.Equal(t, "Tea", ranks[0].ProductName)
	assert.Equal(t, int64(3), ranks[0].Quantity)
}

func TestInventoryAndDashboard(t *testing.T) {
	st := fixture()
	inv := InventorySnapshot(st)
	require.Len(t, inv.Items, 3)
	assert.Equal(t, m("1000"), inv.Items[0].Value)
	assert.False(t, inv.Items[0].LowStock)
	assert.True(t, inv.Items[1].LowStock)
	assert.Equal(t, m("-2"), inv.Items[2].Value)
	assert.Equal(t, m("1005.50"), inv.TotalValue)
	assert.Equal(t, 2, inv.LowStockCount)

	d := DashboardStats(st, "2024-05-09")
	assert.Equal(t, m("2"), d.Today.TotalSales)
	assert.Equal(t, 1, d.SalesCountToday)
	assert.Equal(t, m("87"), d.AllTime.TotalSales)
	// 31 gross minus 107 expenses over the whole log
	assert.Equal(t, m("-76"), d.AllTime.TotalProfit)
	assert.Equal(t, 3, d.ProductsCount)
	assert.Equal(t, m("25"), d.CustomerDebt)
	assert.Equal(t, m("200"), d.SupplierDebt)
	require.Len(t, d.RecentSales, 4)
	assert.Equal(t, "s4", d.RecentSales[0].ID)

	empty := DashboardStats(&store.State{}, "2024-05-09")
	assert.Zero(t, empty.InventoryValue)
	assert.Empty(t, empty.RecentSales)
}

func TestPresetRange(t *testing.T) {
	today := time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC)

	start, end, err := PresetRange(PresetDaily, today, "", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-31", start)
	assert.Equal(t, "2024-03-31", end)

	start, _, err = PresetRange(PresetWeekly, today, "", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-24", start)

	// AddDate normalises Feb 31 to Mar 2
	start, _, err = PresetRange(PresetMonthly, today, "", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", start)

	start, end, err = PresetRange(PresetCustom, today, "2024-01-01", "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", start)
	assert.Equal(t, "2024-01-05", end)

	_, _, err = PresetRange("yearly", today, "", "")
	assert.ErrorIs(t, err, shop.ErrInvalidInput)
}

func TestServiceUsesStore(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemory(), nil)
	require.NoError(t, s.Commit(ctx, fixture(), store.AllCollections...))

	svc := NewService(s, nil).WithClock(func() time.Time {
		return time.Date(2024, 5, 9, 12, 0, 0, 0, time.UTC)
	})

	daily, err := svc.Daily(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-09", daily.Date)
	assert.Equal(t, m("2"), daily.TotalSales)

	r, err := svc.Preset(ctx, PresetWeekly, "", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", r.Start)
	assert.Len(t, r.Daily, 8)
	assert.False(t, r.GeneratedAt.IsZero())

	_, err = svc.Daily(ctx, "yesterday")
	assert.ErrorIs(t, err, shop.ErrInvalidDate)
}

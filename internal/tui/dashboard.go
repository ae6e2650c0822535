package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/simonvc/shopledger/internal/client"
	"github.com/simonvc/shopledger/internal/report"
	"github.com/simonvc/shopledger/internal/shop"
)

type dashboardLoadedMsg struct {
	d   *report.Dashboard
	err error
}

type dashboardModel struct {
	d        *report.Dashboard
	currency string
	loading  bool
	err      error
	width    int
	height   int
}

func (m *dashboardModel) init(c *client.Client) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		d, err := c.Dashboard(context.Background())
		return dashboardLoadedMsg{d: d, err: err}
	}
}

func (m dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.d = msg.d
		m.err = msg.err
	}
	return m, nil
}

func (m *dashboardModel) amount(v shop.Money) string {
	return shop.FormatAmount(v, m.currency)
}

func (m *dashboardModel) signed(v shop.Money) string {
	if v < 0 {
		return lossStyle.Render(m.amount(v))
	}
	return profitStyle.Render(m.amount(v))
}

func (m *dashboardModel) summaryBox(title string, s report.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(labelStyle.Render("Sales") + fmt.Sprintf("%s (%d)\n", m.amount(s.TotalSales), s.SalesCount))
	b.WriteString(labelStyle.Render("Purchases") + fmt.Sprintf("%s (%d)\n", m.amount(s.TotalPurchases), s.PurchasesCount))
	b.WriteString(labelStyle.Render("Expenses") + fmt.Sprintf("%s (%d)\n", m.amount(s.TotalExpenses), s.ExpensesCount))
	b.WriteString(labelStyle.Render("Profit") + m.signed(s.TotalProfit))
	return boxStyle.Render(b.String())
}

func (m *dashboardModel) view() string {
	if m.loading && m.d == nil {
		return "Loading dashboard..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.d == nil {
		return dimStyle.Render("No data available.")
	}
	d := m.d

	var stock strings.Builder
	stock.WriteString(titleStyle.Render("Shop") + "\n")
	stock.WriteString(labelStyle.Render("Products") + fmt.Sprintf("%d\n", d.ProductsCount))
	low := fmt.Sprint(d.LowStockCount)
	if d.LowStockCount > 0 {
		low = warnStyle.Render(low)
	}
	stock.WriteString(labelStyle.Render("Low stock") + low + "\n")
	stock.WriteString(labelStyle.Render("Inventory value") + m.amount(d.InventoryValue) + "\n")
	stock.WriteString(labelStyle.Render("Customers owe") + m.amount(d.CustomerDebt) + "\n")
	stock.WriteString(labelStyle.Render("Owed suppliers") + m.amount(d.SupplierDebt))

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.summaryBox("Today "+d.Today.Date, d.Today), " ",
		m.summaryBox("All time", d.AllTime), " ",
		boxStyle.Render(stock.String()),
	)

	var recent strings.Builder
	recent.WriteString(headerStyle.Render(fmt.Sprintf("  %-10s %-22s %6s %12s", "DATE", "RECENT SALES", "QTY", "TOTAL")))
	recent.WriteString("\n")
	if len(d.RecentSales) == 0 {
		recent.WriteString(dimStyle.Render("  (no sales yet)"))
	}
	for _, s := range d.RecentSales {
		recent.WriteString(fmt.Sprintf("  %-10s %-22s %6d %12s\n", s.Date, truncate(s.ProductName, 22), s.Quantity, s.TotalPrice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, "", recent.String(),
		subtitleStyle.Render("Updated "+d.GeneratedAt.Local().Format("15:04:05")))
}

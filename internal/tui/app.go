// Package tui is the interactive terminal front end for a shopledger server.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/simonvc/shopledger/internal/client"
	"github.com/simonvc/shopledger/internal/shop"
)

type mode int

const (
	modeDashboard mode = iota
	modeProducts
	modeSales
	modeCustomers
	modeSuppliers
	modeSaleEntry
	modeForm
)

var tabModes = []mode{modeDashboard, modeProducts, modeSales, modeCustomers, modeSuppliers}

func tabLabel(m mode) string {
	switch m {
	case modeDashboard:
		return "Dashboard"
	case modeProducts:
		return "Products"
	case modeSales:
		return "Sales"
	case modeCustomers:
		return "Customers"
	case modeSuppliers:
		return "Suppliers"
	default:
		return ""
	}
}

type productFetchedMsg struct {
	product *shop.Product
	err     error
}

type App struct {
	client        *client.Client
	currency      string
	mode          mode
	tabIndex      int
	width, height int
	err           error
	statusMsg     string

	dashboard dashboardModel
	products  listModel
	sales     listModel
	customers listModel
	suppliers listModel
	saleEntry saleEntryModel
	form      formModel
}

func NewApp(c *client.Client, currency string) *App {
	return &App{
		client:    c,
		currency:  currency,
		mode:      modeDashboard,
		dashboard: dashboardModel{currency: currency},
		products:  newProductList(),
		sales:     newSaleList(),
		customers: newCustomerList(),
		suppliers: newSupplierList(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.init(a.client),
		a.load(kindProduct),
		a.load(kindSale),
		a.load(kindCustomer),
		a.load(kindSupplier),
	)
}

func (a *App) list(k kind) *listModel {
	switch k {
	case kindProduct:
		return &a.products
	case kindSale:
		return &a.sales
	case kindCustomer:
		return &a.customers
	case kindSupplier:
		return &a.suppliers
	}
	return nil
}

func (a *App) load(k kind) tea.Cmd {
	l := a.list(k)
	if l == nil {
		return nil
	}
	l.loading = true
	switch k {
	case kindProduct:
		return loadProducts(a.client)
	case kindSale:
		return loadSales(a.client)
	case kindCustomer:
		return loadCustomers(a.client)
	case kindSupplier:
		return loadSuppliers(a.client)
	}
	return nil
}

// afterChange reloads the views a mutation of k can affect. Sales move stock
// and customer debt, so they refresh everything.
func (a *App) afterChange(k kind) tea.Cmd {
	cmds := []tea.Cmd{a.dashboard.init(a.client), a.load(k)}
	switch k {
	case kindSale:
		cmds = append(cmds, a.load(kindProduct), a.load(kindCustomer))
	case kindCustomer:
		cmds = append(cmds, a.load(kindSale))
	}
	return tea.Batch(cmds...)
}

func (a *App) activeList() *listModel {
	switch a.mode {
	case modeProducts:
		return &a.products
	case modeSales:
		return &a.sales
	case modeCustomers:
		return &a.customers
	case modeSuppliers:
		return &a.suppliers
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, l := range []*listModel{&a.products, &a.sales, &a.customers, &a.suppliers} {
			l.width = msg.Width
			l.height = msg.Height - 6
		}
		a.dashboard.width = msg.Width
		a.dashboard.height = msg.Height - 6
		a.saleEntry.width = msg.Width
		a.form.width = msg.Width
		return a, nil
	}

	// Route data-loaded messages to their sub-model regardless of active mode.
	switch typedMsg := msg.(type) {
	case rowsLoadedMsg:
		l := a.list(typedMsg.kind)
		*l, _ = l.update(msg)
		return a, nil
	case dashboardLoadedMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.update(msg)
		return a, cmd
	case deleteConfirmedMsg:
		return a, deleteRecord(a.client, typedMsg.kind, typedMsg.id)
	case deletedMsg:
		l := a.list(typedMsg.kind)
		*l, _ = l.update(msg)
		if typedMsg.err != nil {
			return a, nil
		}
		a.statusMsg = string(typedMsg.kind) + " deleted"
		return a, a.afterChange(typedMsg.kind)
	case productFetchedMsg:
		if typedMsg.err != nil {
			a.err = typedMsg.err
			return a, nil
		}
		a.err = nil
		a.form = newProductForm(a.client, typedMsg.product)
		a.mode = modeForm
		return a, nil
	}

	// Modal modes: delegate ALL message types (not just keys)
	if a.mode == modeSaleEntry {
		var cmd tea.Cmd
		a.saleEntry, cmd = a.saleEntry.update(msg, a.client)
		if a.saleEntry.done {
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = a.saleEntry.statusMsg
			return a, a.afterChange(kindSale)
		}
		if a.saleEntry.cancelled {
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = "Sale cancelled"
		}
		return a, cmd
	}

	if a.mode == modeForm {
		var cmd tea.Cmd
		a.form, cmd = a.form.update(msg)
		if a.form.done {
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = a.form.statusMsg
			return a, a.afterChange(a.form.refresh)
		}
		if a.form.cancelled {
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = "Cancelled"
		}
		return a, cmd
	}

	// A list asking for delete confirmation gets every key.
	if l := a.activeList(); l != nil && l.confirmDelete {
		var cmd tea.Cmd
		*l, cmd = l.update(msg)
		return a, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.Tab):
			a.tabIndex = (a.tabIndex + 1) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, a.refreshTab()

		case key.Matches(msg, keys.ShiftTab):
			a.tabIndex = (a.tabIndex - 1 + len(tabModes)) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.statusMsg = ""
			return a, a.refreshTab()

		case key.Matches(msg, keys.Refresh):
			return a, a.refreshTab()

		case key.Matches(msg, keys.NewSale):
			return a, a.startSale()

		case key.Matches(msg, keys.New):
			switch a.mode {
			case modeProducts:
				a.form = newProductForm(a.client, nil)
				a.mode = modeForm
			case modeSales:
				return a, a.startSale()
			case modeCustomers:
				a.form = newPartyForm(a.client, kindCustomer)
				a.mode = modeForm
			case modeSuppliers:
				a.form = newPartyForm(a.client, kindSupplier)
				a.mode = modeForm
			}
			return a, nil

		case key.Matches(msg, keys.Edit):
			if a.mode == modeProducts {
				if id := a.products.selectedID(); id != "" {
					return a, func() tea.Msg {
						p, err := a.client.GetProduct(context.Background(), id)
						return productFetchedMsg{product: p, err: err}
					}
				}
			}
			return a, nil

		case key.Matches(msg, keys.Pay):
			var k kind
			switch a.mode {
			case modeCustomers:
				k = kindCustomer
			case modeSuppliers:
				k = kindSupplier
			default:
				return a, nil
			}
			l := a.list(k)
			if id := l.selectedID(); id != "" {
				a.form = newPaymentForm(a.client, k, id, l.selectedLabel())
				a.mode = modeForm
			}
			return a, nil
		}
	}

	// Delegate update to active sub-model
	var cmd tea.Cmd
	switch a.mode {
	case modeDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	default:
		if l := a.activeList(); l != nil {
			*l, cmd = l.update(msg)
		}
	}
	return a, cmd
}

func (a *App) startSale() tea.Cmd {
	a.saleEntry = newSaleEntry(a.currency)
	a.mode = modeSaleEntry
	return a.saleEntry.load(a.client)
}

func (a *App) refreshTab() tea.Cmd {
	switch a.mode {
	case modeDashboard:
		return a.dashboard.init(a.client)
	case modeProducts:
		return a.load(kindProduct)
	case modeSales:
		return a.load(kindSale)
	case modeCustomers:
		return a.load(kindCustomer)
	case modeSuppliers:
		return a.load(kindSupplier)
	}
	return nil
}

func (a *App) View() string {
	// Tab bar
	tabs := ""
	for i, m := range tabModes {
		label := tabLabel(m)
		if i == a.tabIndex && a.mode != modeSaleEntry && a.mode != modeForm {
			tabs += activeTabStyle.Render(label)
		} else {
			tabs += inactiveTabStyle.Render(label)
		}
		if i < len(tabModes)-1 {
			tabs += " "
		}
	}

	// Content
	var content string
	switch a.mode {
	case modeDashboard:
		content = a.dashboard.view()
	case modeSaleEntry:
		content = a.saleEntry.view()
	case modeForm:
		content = a.form.view()
	default:
		if l := a.activeList(); l != nil {
			content = l.view()
		}
	}

	// Status bar
	status := ""
	if a.statusMsg != "" {
		status = successStyle.Render(a.statusMsg)
	}
	if a.err != nil {
		status = errorStyle.Render(a.err.Error())
	}

	helpText := dimStyle.Render("tab:switch  s:sell  n:new  e:edit  p:payment  d:delete  r:refresh  q:quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		"",
		content,
		"",
		status,
		helpText,
	)
}

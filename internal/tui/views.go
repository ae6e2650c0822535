package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/shopledger/internal/client"
	"github.com/simonvc/shopledger/internal/ledger"
)

// recentSalesLimit bounds the Sales tab.
const recentSalesLimit = 200

func newProductList() listModel {
	return newList(kindProduct, "Products", "No products yet. Press 'n' to add one.",
		column{title: "NAME", width: 26},
		column{title: "BUY", width: 10, right: true},
		column{title: "SELL", width: 10, right: true},
		column{title: "STOCK", width: 8, right: true},
		column{title: "UNIT", width: 8},
		column{title: "VALUE", width: 12, right: true},
		column{title: "", width: 3},
	)
}

func loadProducts(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		products, err := c.ListProducts(context.Background(), "")
		msg := rowsLoadedMsg{kind: kindProduct, err: err}
		for _, p := range products {
			low := ""
			if p.LowStock() {
				low = "LOW"
			}
			msg.ids = append(msg.ids, p.ID)
			msg.rows = append(msg.rows, []string{
				p.Name, p.BuyPrice.String(), p.SellPrice.String(),
				fmt.Sprint(p.Stock), p.Unit, p.Value().String(), low,
			})
		}
		return msg
	}
}

func newSaleList() listModel {
	return newList(kindSale, "Sales", "No sales yet. Press 's' to record one.",
		column{title: "PRODUCT", width: 22},
		column{title: "DATE", width: 10},
		column{title: "QTY", width: 6, right: true},
		column{title: "TOTAL", width: 10, right: true},
		column{title: "PROFIT", width: 10, right: true},
		column{title: "PAY", width: 6},
		column{title: "CUSTOMER", width: 18},
	)
}

func loadSales(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		sales, err := c.ListSales(context.Background(), ledger.Filter{Limit: recentSalesLimit})
		msg := rowsLoadedMsg{kind: kindSale, err: err}
		for _, s := range sales {
			msg.ids = append(msg.ids, s.ID)
			msg.rows = append(msg.rows, []string{
				s.ProductName, s.Date, fmt.Sprint(s.Quantity), s.TotalPrice.String(),
				s.Profit.String(), string(s.PaymentType), s.CustomerName,
			})
		}
		return msg
	}
}

func partyColumns() []column {
	return []column{
		{title: "NAME", width: 26},
		{title: "PHONE", width: 14},
		{title: "DEBT", width: 12, right: true},
		{title: "SINCE", width: 10},
	}
}

func newCustomerList() listModel {
	return newList(kindCustomer, "Customers", "No customers yet. Press 'n' to add one.", partyColumns()...)
}

func newSupplierList() listModel {
	return newList(kindSupplier, "Suppliers", "No suppliers yet. Press 'n' to add one.", partyColumns()...)
}

func loadCustomers(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		customers, err := c.ListCustomers(context.Background(), "")
		msg := rowsLoadedMsg{kind: kindCustomer, err: err}
		for _, p := range customers {
			msg.ids = append(msg.ids, p.ID)
			msg.rows = append(msg.rows, []string{p.Name, p.Phone, p.TotalDebt.String(), p.CreatedAt})
		}
		return msg
	}
}

func loadSuppliers(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		suppliers, err := c.ListSuppliers(context.Background(), "")
		msg := rowsLoadedMsg{kind: kindSupplier, err: err}
		for _, p := range suppliers {
			msg.ids = append(msg.ids, p.ID)
			msg.rows = append(msg.rows, []string{p.Name, p.Phone, p.TotalDebt.String(), p.CreatedAt})
		}
		return msg
	}
}

func deleteRecord(c *client.Client, k kind, id string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch k {
		case kindProduct:
			err = c.DeleteProduct(ctx, id)
		case kindSale:
			err = c.DeleteSale(ctx, id)
		case kindCustomer:
			err = c.DeleteCustomer(ctx, id)
		case kindSupplier:
			err = c.DeleteSupplier(ctx, id)
		}
		return deletedMsg{kind: k, id: id, err: err}
	}
}

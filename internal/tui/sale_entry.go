package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/shopledger/internal/client"
	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/shop"
)

type saleStep int

const (
	saleStepProduct saleStep = iota
	saleStepQuantity
	saleStepPayment
	saleStepConfirm
)

type saleEntryDataMsg struct {
	products  []shop.Product
	customers []shop.Customer
	err       error
}

type saleRecordedMsg struct {
	sale *shop.Sale
	err  error
}

// saleEntryModel walks through product, quantity and price, then payment.
// Payment option 0 is a cash sale; option i>0 is credit to customers[i-1].
type saleEntryModel struct {
	step      saleStep
	products  []shop.Product
	customers []shop.Customer
	cursor    int
	payCursor int
	quantity  textinput.Model
	price     textinput.Model
	currency  string

	err       error
	loading   bool
	done      bool
	cancelled bool
	statusMsg string
	width     int
}

func newSaleEntry(currency string) saleEntryModel {
	qty := textinput.New()
	qty.Placeholder = "1"
	qty.CharLimit = 7

	price := textinput.New()
	price.Placeholder = "sell price"
	price.CharLimit = 20

	return saleEntryModel{
		step:     saleStepProduct,
		quantity: qty,
		price:    price,
		currency: currency,
		loading:  true,
	}
}

func (m *saleEntryModel) load(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		products, err := c.ListProducts(ctx, "")
		if err != nil {
			return saleEntryDataMsg{err: err}
		}
		customers, err := c.ListCustomers(ctx, "")
		return saleEntryDataMsg{products: products, customers: customers, err: err}
	}
}

func (m saleEntryModel) product() *shop.Product {
	if m.cursor >= 0 && m.cursor < len(m.products) {
		return &m.products[m.cursor]
	}
	return nil
}

// request builds the sale from the form state.
func (m saleEntryModel) request() (ledger.SaleRequest, error) {
	p := m.product()
	if p == nil {
		return ledger.SaleRequest{}, fmt.Errorf("no product selected")
	}
	qtyRaw := strings.TrimSpace(m.quantity.Value())
	if qtyRaw == "" {
		qtyRaw = "1"
	}
	qty, err := parseQuantity("quantity", qtyRaw)
	if err != nil {
		return ledger.SaleRequest{}, err
	}
	req := ledger.SaleRequest{ProductID: p.ID, Quantity: qty, PaymentType: shop.PaymentCash}
	if raw := strings.TrimSpace(m.price.Value()); raw != "" {
		price, err := parseAmount("unit price", raw)
		if err != nil {
			return ledger.SaleRequest{}, err
		}
		req.UnitPrice = &price
	}
	if m.payCursor > 0 && m.payCursor <= len(m.customers) {
		req.PaymentType = shop.PaymentCredit
		req.CustomerID = m.customers[m.payCursor-1].ID
	}
	return req, nil
}

func (m saleEntryModel) update(msg tea.Msg, c *client.Client) (saleEntryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case saleEntryDataMsg:
		m.loading = false
		m.products = msg.products
		m.customers = msg.customers
		m.err = msg.err
		return m, nil

	case saleRecordedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.step = saleStepConfirm
			return m, nil
		}
		m.done = true
		m.statusMsg = fmt.Sprintf("Sold %d x %s for %s",
			msg.sale.Quantity, msg.sale.ProductName, shop.FormatAmount(msg.sale.TotalPrice, m.currency))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape) {
			m.cancelled = true
			return m, nil
		}
		switch m.step {
		case saleStepProduct:
			return m.updateProduct(msg)
		case saleStepQuantity:
			return m.updateQuantity(msg)
		case saleStepPayment:
			return m.updatePayment(msg)
		case saleStepConfirm:
			return m.updateConfirm(msg, c)
		}
	}
	return m, nil
}

func (m saleEntryModel) updateProduct(msg tea.KeyMsg) (saleEntryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		p := m.product()
		if p == nil {
			return m, nil
		}
		m.price.Placeholder = p.SellPrice.String()
		m.step = saleStepQuantity
		m.err = nil
		return m, m.quantity.Focus()
	}
	return m, nil
}

func (m saleEntryModel) updateQuantity(msg tea.KeyMsg) (saleEntryModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if m.quantity.Focused() {
			m.quantity.Blur()
			return m, m.price.Focus()
		}
		m.price.Blur()
		return m, m.quantity.Focus()
	case tea.KeyEnter:
		if m.quantity.Focused() {
			m.quantity.Blur()
			return m, m.price.Focus()
		}
		if _, err := m.request(); err != nil {
			m.err = err
			return m, nil
		}
		m.price.Blur()
		m.err = nil
		m.step = saleStepPayment
		return m, nil
	}
	var cmd tea.Cmd
	if m.quantity.Focused() {
		m.quantity, cmd = m.quantity.Update(msg)
	} else {
		m.price, cmd = m.price.Update(msg)
	}
	return m, cmd
}

func (m saleEntryModel) updatePayment(msg tea.KeyMsg) (saleEntryModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.payCursor > 0 {
			m.payCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.payCursor < len(m.customers) {
			m.payCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.step = saleStepConfirm
	}
	return m, nil
}

func (m saleEntryModel) updateConfirm(msg tea.KeyMsg, c *client.Client) (saleEntryModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		req, err := m.request()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		return m, func() tea.Msg {
			s, err := c.RecordSale(context.Background(), req)
			return saleRecordedMsg{sale: s, err: err}
		}
	case "b", "backspace":
		m.step = saleStepPayment
	}
	return m, nil
}

func (m *saleEntryModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("New sale"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading products...")
		return boxStyle.Render(b.String())
	}
	if len(m.products) == 0 && m.err == nil {
		b.WriteString(dimStyle.Render("No products to sell. Add one on the Products tab first."))
		return boxStyle.Render(b.String())
	}

	switch m.step {
	case saleStepProduct:
		b.WriteString(subtitleStyle.Render("Choose a product") + "\n\n")
		for i, p := range m.products {
			line := fmt.Sprintf("  %-26s %10s  stock %d %s", truncate(p.Name, 26), p.SellPrice, p.Stock, p.Unit)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + line[2:]))
			} else {
				b.WriteString(line)
			}
			b.WriteString("\n")
		}

	case saleStepQuantity:
		p := m.product()
		b.WriteString(subtitleStyle.Render(p.Name) + "\n\n")
		b.WriteString(labelStyle.Render("Quantity") + m.quantity.View() + "\n")
		b.WriteString(labelStyle.Render("Unit price") + m.price.View() + "\n")
		b.WriteString(dimStyle.Render("\nLeave the price empty to use the sell price."))

	case saleStepPayment:
		b.WriteString(subtitleStyle.Render("Payment") + "\n\n")
		options := []string{"Cash"}
		for _, c := range m.customers {
			options = append(options, fmt.Sprintf("Credit to %s (owes %s)", c.Name, c.TotalDebt))
		}
		for i, o := range options {
			if i == m.payCursor {
				b.WriteString(selectedStyle.Render("> " + o))
			} else {
				b.WriteString("  " + o)
			}
			b.WriteString("\n")
		}

	case saleStepConfirm:
		req, err := m.request()
		if err == nil {
			p := m.product()
			unit := p.SellPrice
			if req.UnitPrice != nil {
				unit = *req.UnitPrice
			}
			b.WriteString(labelStyle.Render("Product") + p.Name + "\n")
			b.WriteString(labelStyle.Render("Quantity") + fmt.Sprint(req.Quantity) + "\n")
			b.WriteString(labelStyle.Render("Unit price") + shop.FormatAmount(unit, m.currency) + "\n")
			b.WriteString(labelStyle.Render("Total") + shop.FormatAmount(unit.Times(req.Quantity), m.currency) + "\n")
			pay := "Cash"
			if req.PaymentType == shop.PaymentCredit {
				pay = "Credit to " + m.customers[m.payCursor-1].Name
			}
			b.WriteString(labelStyle.Render("Payment") + pay + "\n")
			if req.Quantity > p.Stock {
				b.WriteString(warnStyle.Render(fmt.Sprintf("\nOnly %d in stock; stock will go negative.", p.Stock)) + "\n")
			}
		}
		b.WriteString(dimStyle.Render("\nenter/y: record  b: back"))
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()))
	}
	return boxStyle.Render(b.String())
}

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/shopledger/internal/client"
	"github.com/simonvc/shopledger/internal/ledger"
	"github.com/simonvc/shopledger/internal/shop"
)

type fieldSpec struct {
	label       string
	placeholder string
	value       string
	limit       int
}

type formField struct {
	label string
	input textinput.Model
}

// formSubmittedMsg reports the outcome of a form's submit command.
type formSubmittedMsg struct {
	status string
	err    error
}

// formModel is a vertical list of text inputs submitted with enter on the
// last field.
type formModel struct {
	title      string
	fields     []formField
	focus      int
	submit     func(values []string) tea.Cmd
	refresh    kind
	submitting bool

	err       error
	done      bool
	cancelled bool
	statusMsg string
	width     int
}

func newForm(title string, refresh kind, submit func([]string) tea.Cmd, specs ...fieldSpec) formModel {
	fields := make([]formField, len(specs))
	for i, s := range specs {
		in := textinput.New()
		in.Placeholder = s.placeholder
		in.CharLimit = s.limit
		in.SetValue(s.value)
		fields[i] = formField{label: s.label, input: in}
	}
	if len(fields) > 0 {
		fields[0].input.Focus()
	}
	return formModel{title: title, fields: fields, submit: submit, refresh: refresh}
}

func (m formModel) values() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = strings.TrimSpace(f.input.Value())
	}
	return out
}

func (m *formModel) setFocus(i int) tea.Cmd {
	m.fields[m.focus].input.Blur()
	m.focus = (i + len(m.fields)) % len(m.fields)
	return m.fields[m.focus].input.Focus()
}

func (m formModel) update(msg tea.Msg) (formModel, tea.Cmd) {
	switch msg := msg.(type) {
	case formSubmittedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.done = true
		m.statusMsg = msg.status
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyEsc:
			m.cancelled = true
			return m, nil
		case tea.KeyTab, tea.KeyDown:
			return m, m.setFocus(m.focus + 1)
		case tea.KeyShiftTab, tea.KeyUp:
			return m, m.setFocus(m.focus - 1)
		case tea.KeyEnter:
			if m.focus < len(m.fields)-1 {
				return m, m.setFocus(m.focus + 1)
			}
			m.err = nil
			m.submitting = true
			return m, m.submit(m.values())
		}
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m *formModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	for i, f := range m.fields {
		label := labelStyle.Render(f.label)
		if i == m.focus {
			label = selectedStyle.Inherit(labelStyle).Render(f.label)
		}
		b.WriteString(label + f.input.View() + "\n")
	}
	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(dimStyle.Render("Saving..."))
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	default:
		b.WriteString(dimStyle.Render("tab/up/down: move  enter: next/save  esc: cancel"))
	}
	return boxStyle.Render(b.String())
}

func parseQuantity(label, raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", label)
	}
	return n, nil
}

func parseAmount(label, raw string) (shop.Money, error) {
	if raw == "" {
		return 0, nil
	}
	m, err := shop.ParseMoney(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", label, err)
	}
	return m, nil
}

// newProductForm creates a product, or edits p when it is not nil.
func newProductForm(c *client.Client, p *shop.Product) formModel {
	title := "New product"
	specs := []fieldSpec{
		{label: "Name", placeholder: "e.g. Rice 1kg", limit: 200},
		{label: "Buy price", placeholder: "e.g. 50.00", limit: 20},
		{label: "Sell price", placeholder: "e.g. 75.00", limit: 20},
		{label: "Stock", placeholder: "0", limit: 12},
		{label: "Unit", placeholder: shop.DefaultUnit, limit: 50},
	}
	var id string
	if p != nil {
		id = p.ID
		title = "Edit " + p.Name
		specs[0].value = p.Name
		specs[1].value = p.BuyPrice.String()
		specs[2].value = p.SellPrice.String()
		specs[3].value = fmt.Sprint(p.Stock)
		specs[4].value = p.Unit
	}

	submit := func(v []string) tea.Cmd {
		return func() tea.Msg {
			buy, err := parseAmount("buy price", v[1])
			if err != nil {
				return formSubmittedMsg{err: err}
			}
			sell, err := parseAmount("sell price", v[2])
			if err != nil {
				return formSubmittedMsg{err: err}
			}
			stock, err := parseQuantity("stock", v[3])
			if err != nil {
				return formSubmittedMsg{err: err}
			}
			req := ledger.ProductRequest{Name: v[0], BuyPrice: buy, SellPrice: sell, Stock: stock, Unit: v[4]}
			if id == "" {
				created, err := c.CreateProduct(context.Background(), req)
				if err != nil {
					return formSubmittedMsg{err: err}
				}
				return formSubmittedMsg{status: "Product " + created.Name + " created"}
			}
			updated, err := c.UpdateProduct(context.Background(), id, req)
			if err != nil {
				return formSubmittedMsg{err: err}
			}
			return formSubmittedMsg{status: "Product " + updated.Name + " updated"}
		}
	}
	return newForm(title, kindProduct, submit, specs...)
}

func newPartyForm(c *client.Client, k kind) formModel {
	title, noun := "New customer", "Customer"
	if k == kindSupplier {
		title, noun = "New supplier", "Supplier"
	}
	submit := func(v []string) tea.Cmd {
		return func() tea.Msg {
			req := ledger.PartyRequest{Name: v[0], Phone: v[1], Address: v[2], Notes: v[3]}
			var err error
			if k == kindSupplier {
				_, err = c.CreateSupplier(context.Background(), req)
			} else {
				_, err = c.CreateCustomer(context.Background(), req)
			}
			if err != nil {
				return formSubmittedMsg{err: err}
			}
			return formSubmittedMsg{status: noun + " " + req.Name + " created"}
		}
	}
	return newForm(title, k, submit,
		fieldSpec{label: "Name", limit: 200},
		fieldSpec{label: "Phone", limit: 50},
		fieldSpec{label: "Address", limit: 300},
		fieldSpec{label: "Notes", limit: 1000},
	)
}

// newPaymentForm records money received from a customer or paid to a
// supplier.
func newPaymentForm(c *client.Client, k kind, id, name string) formModel {
	title := "Payment from " + name
	if k == kindSupplier {
		title = "Payment to " + name
	}
	submit := func(v []string) tea.Cmd {
		return func() tea.Msg {
			amt, err := parseAmount("amount", v[0])
			if err != nil {
				return formSubmittedMsg{err: err}
			}
			req := ledger.PaymentRequest{Amount: amt, Date: v[1], Notes: v[2]}
			if k == kindSupplier {
				_, err = c.RecordSupplierPayment(context.Background(), id, req)
			} else {
				_, err = c.RecordCustomerPayment(context.Background(), id, req)
			}
			if err != nil {
				return formSubmittedMsg{err: err}
			}
			return formSubmittedMsg{status: fmt.Sprintf("Payment of %s recorded for %s", amt, name)}
		}
	}
	return newForm(title, k, submit,
		fieldSpec{label: "Amount", placeholder: "e.g. 100.00", limit: 20},
		fieldSpec{label: "Date", placeholder: "YYYY-MM-DD (today)", limit: 10},
		fieldSpec{label: "Notes", limit: 1000},
	)
}

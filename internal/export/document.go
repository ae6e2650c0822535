// Package export renders reports and invoices as paged tabular documents in
// text, CSV, XLSX and PDF form.
package export

import (
	"fmt"
	"strconv"

	"github.com/simonvc/shopledger/internal/report"
	"github.com/simonvc/shopledger/internal/shop"
)

// Table is one page of a document.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Field is a labelled value printed above the first page.
type Field struct {
	Label string
	Value string
}

type Document struct {
	Title    string
	Subtitle string
	Fields   []Field
	Pages    []Table
}

// BuildReport lays out a range report: summary, then sales, purchases and
// expenses pages when they have rows, then inventory which is always present.
func BuildReport(r *report.RangeReport, inv report.Inventory) *Document {
	doc := &Document{
		Title:    "Accounting Report",
		Subtitle: fmt.Sprintf("Period: %s to %s", r.Start, r.End),
	}

	doc.Pages = append(doc.Pages, Table{
		Title:   "Summary",
		Columns: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Total Sales", r.Totals.TotalSales.String()},
			{"Total Purchases", r.Totals.TotalPurchases.String()},
			{"Total Expenses", r.Totals.TotalExpenses.String()},
			{"Gross Profit", r.GrossProfit.String()},
			{"Net Profit", r.NetProfit.String()},
		},
	})

	if len(r.Sales) > 0 {
		t := Table{Title: "Sales Details", Columns: []string{"Date", "Product", "Qty", "Price", "Total", "Profit"}}
		for _, s := range r.Sales {
			t.Rows = append(t.Rows, []string{
				s.Date, s.ProductName, qty(s.Quantity),
				s.UnitPrice.String(), s.TotalPrice.String(), s.Profit.String(),
			})
		}
		doc.Pages = append(doc.Pages, t)
	}

	if len(r.Purchases) > 0 {
		t := Table{Title: "Purchases Details", Columns: []string{"Date", "Product", "Qty", "Price", "Total", "Supplier"}}
		for _, p := range r.Purchases {
			supplier := p.SupplierName
			if supplier == "" {
				supplier = "-"
			}
			t.Rows = append(t.Rows, []string{
				p.Date, p.ProductName, qty(p.Quantity),
				p.UnitPrice.String(), p.TotalPrice.String(), supplier,
			})
		}
		doc.Pages = append(doc.Pages, t)
	}

	if len(r.Expenses) > 0 {
		t := Table{Title: "Expenses Details", Columns: []string{"Date", "Description", "Category", "Amount"}}
		for _, x := range r.Expenses {
			t.Rows = append(t.Rows, []string{x.Date, x.Description, string(x.Category), x.Amount.String()})
		}
		doc.Pages = append(doc.Pages, t)
	}

	t := Table{Title: "Inventory Status", Columns: []string{"Product", "Stock", "Unit", "Buy Price", "Sell Price", "Value"}}
	for _, item := range inv.Items {
		t.Rows = append(t.Rows, []string{
			item.Name, qty(item.Stock), item.Unit,
			item.BuyPrice.String(), item.SellPrice.String(), item.Value.String(),
		})
	}
	if len(t.Rows) == 0 {
		t.Rows = [][]string{{"No products", "", "", "", "", ""}}
	}
	doc.Pages = append(doc.Pages, t)
	return doc
}

// BuildInvoice lays out a single-page invoice whose number is the sale id.
func BuildInvoice(s shop.Sale, currency string) *Document {
	doc := &Document{
		Title: "Invoice",
		Fields: []Field{
			{"Invoice No", s.ID},
			{"Date", s.Date},
		},
	}
	if s.CustomerName != "" {
		doc.Fields = append(doc.Fields, Field{"Customer", s.CustomerName})
	}
	payment := "Cash"
	if s.IsCredit() {
		payment = "Credit"
	}
	doc.Fields = append(doc.Fields, Field{"Payment", payment})

	doc.Pages = []Table{{
		Title:   "Items",
		Columns: []string{"Product", "Qty", "Unit Price", "Total"},
		Rows: [][]string{{
			s.ProductName, qty(s.Quantity), s.UnitPrice.String(), s.TotalPrice.String(),
		}},
	}}
	doc.Fields = append(doc.Fields, Field{"Total", shop.FormatAmount(s.TotalPrice, currency)})
	return doc
}

// ReportFilename is the download name for a report in the given extension.
func ReportFilename(r *report.RangeReport, ext string) string {
	return fmt.Sprintf("accounting-report-%s-%s.%s", r.Start, r.End, ext)
}

func InvoiceFilename(s shop.Sale, ext string) string {
	return fmt.Sprintf("invoice-%s.%s", s.ID, ext)
}

func qty(n int64) string {
	return strconv.FormatInt(n, 10)
}

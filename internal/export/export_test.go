package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/simonvc/shopledger/internal/report"
	"github.com/simonvc/shopledger/internal/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func m(s string) shop.Money { return shop.MustMoney(s) }

func sampleReport() (*report.RangeReport, report.Inventory) {
	r := &report.RangeReport{
		Start: "2024-05-01",
		End:   "2024-05-07",
		Totals: report.Summary{
			TotalSales: m("75"), TotalPurchases: m("100"), TotalExpenses: m("10.5"), TotalProfit: m("14.5"),
		},
		GrossProfit: m("25"),
		NetProfit:   m("14.5"),
		Sales: []shop.Sale{{
			ID: "s1", ProductName: "Rice", Quantity: 5, UnitPrice: m("15"), TotalPrice: m("75"), Profit: m("25"), Date: "2024-05-02",
		}},
		Purchases: []shop.Purchase{{
			ID: "p1", ProductName: "Rice", Quantity: 10, UnitPrice: m("10"), TotalPrice: m("100"), Date: "2024-05-01",
		}},
	}
	return r, report.Inventory{}
}

func TestBuildReportPages(t *testing.T) {
	r, inv := sampleReport()
	doc := BuildReport(r, inv)

	assert.Equal(t, "Accounting Report", doc.Title)
	assert.Equal(t, "Period: 2024-05-01 to 2024-05-07", doc.Subtitle)

	titles := make([]string, len(doc.Pages))
	for i, p := range doc.Pages {
		titles[i] = p.Title
	}
	// no expenses page, inventory always present
	assert.Equal(t, []string{"Summary", "Sales Details", "Purchases Details", "Inventory Status"}, titles)

	assert.Equal(t, []string{"Gross Profit", "25.00"}, doc.Pages[0].Rows[3])
	assert.Equal(t, []string{"Net Profit", "14.50"}, doc.Pages[0].Rows[4])
	assert.Equal(t, []string{"2024-05-02", "Rice", "5", "15.00", "75.00", "25.00"}, doc.Pages[1].Rows[0])
	assert.Equal(t, "-", doc.Pages[2].Rows[0][5])
	assert.Equal(t, [][]string{{"No products", "", "", "", "", ""}}, doc.Pages[3].Rows)
}

func TestBuildInvoice(t *testing.T) {
	s := shop.Sale{
		ID: "inv-42", ProductName: "Tea", Quantity: 2, UnitPrice: m("6.25"), TotalPrice: m("12.5"),
		Date: "2024-05-10", PaymentType: shop.PaymentCredit, CustomerName: "Mona",
	}
	doc := BuildInvoice(s, "EGP")
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, []string{"Product", "Qty", "Unit Price", "Total"}, doc.Pages[0].Columns)
	assert.Equal(t, [][]string{{"Tea", "2", "6.25", "12.50"}}, doc.Pages[0].Rows)
	assert.Contains(t, doc.Fields, Field{"Invoice No", "inv-42"})
	assert.Contains(t, doc.Fields, Field{"Customer", "Mona"})
	assert.Contains(t, doc.Fields, Field{"Payment", "Credit"})
	assert.Contains(t, doc.Fields, Field{"Total", "12.50 EGP"})

	cash := BuildInvoice(shop.Sale{ID: "x", PaymentType: shop.PaymentCash}, "")
	for _, f := range cash.Fields {
		assert.NotEqual(t, "Customer", f.Label)
	}
}

func TestWriteText(t *testing.T) {
	r, inv := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, BuildReport(r, inv)))
	out := buf.String()
	assert.Contains(t, out, "Accounting Report")
	assert.Contains(t, out, "Sales Details")
	assert.Contains(t, out, "75.00")
	assert.Contains(t, out, "No products")
}

func TestWriteCSV(t *testing.T) {
	r, inv := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, BuildReport(r, inv)))

	reader := csv.NewReader(&buf)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Accounting Report", "Period: 2024-05-01 to 2024-05-07"}, records[0])
	assert.Contains(t, records, []string{"Total Sales", "75.00"})
}

func TestWriteXLSX(t *testing.T) {
	r, inv := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, BuildReport(r, inv)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Sales Details", "Purchases Details", "Inventory Status"}, f.GetSheetList())

	rows, err := f.GetRows("Sales Details")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Date", "Product", "Qty", "Price", "Total", "Profit"}, rows[0])
	assert.Equal(t, "75.00", rows[1][4])

	v, err := f.GetCellValue("Summary", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Accounting Report", v)
}

func TestPDFRendererPostsHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		file, _, err := r.FormFile("files")
		if !assert.NoError(t, err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		html, _ := io.ReadAll(file)
		assert.Contains(t, string(html), "<h2>Summary</h2>")
		assert.Contains(t, string(html), "Rice &amp; Co")
		_, _ = w.Write([]byte("%PDF"))
	}))
	defer srv.Close()

	r, inv := sampleReport()
	r.Sales[0].ProductName = "Rice & Co"
	renderer := Renderer{PDF: &PDFRenderer{Endpoint: srv.URL + "/"}}
	data, err := renderer.Render(context.Background(), BuildReport(r, inv), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestPDFRendererErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "chromium crashed", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := &PDFRenderer{Endpoint: srv.URL}
	_, err := p.Render(context.Background(), &Document{Title: "x"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "503"))

	_, err = Renderer{}.Render(context.Background(), &Document{}, FormatPDF)
	assert.ErrorIs(t, err, shop.ErrInvalidInput)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	f, err = ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Contains(t, f.ContentType(), "spreadsheetml")

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, shop.ErrInvalidInput)
}

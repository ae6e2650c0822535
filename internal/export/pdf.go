package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// PDFRenderer converts documents to PDF through a Gotenberg instance.
type PDFRenderer struct {
	Endpoint string
	Client   *http.Client
}

// Enabled reports whether an endpoint is configured.
func (p *PDFRenderer) Enabled() bool {
	return p != nil && strings.TrimSpace(p.Endpoint) != ""
}

// Render sends the document as HTML to Gotenberg and returns the PDF bytes.
func (p *PDFRenderer) Render(ctx context.Context, doc *Document) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("pdf renderer not initialised")
	}
	endpoint := strings.TrimRight(p.Endpoint, "/")
	if endpoint == "" {
		return nil, fmt.Errorf("gotenberg endpoint required")
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "index.html")
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(part, BuildHTML(doc)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/forms/chromium/convert/html", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("gotenberg response %d: %s", resp.StatusCode, string(data))
	}
	return io.ReadAll(resp.Body)
}

// BuildHTML lays out every page after the first on a new printed page.
func BuildHTML(doc *Document) string {
	var b strings.Builder
	b.WriteString("<html><head><meta charset=\"utf-8\"><style>")
	b.WriteString("body{font-family:helvetica,sans-serif;margin:24px;}h1{font-size:20px;text-align:center;}.subtitle{text-align:center;}h2{font-size:14px;}table{width:100%;border-collapse:collapse;margin-bottom:16px;}th,td{border:1px solid #ddd;padding:6px;text-align:left;}th{background:#f5f5f5;}.page{page-break-before:always;}.fields td{border:none;padding:2px 6px;}")
	b.WriteString("</style></head><body>")
	b.WriteString("<h1>" + escape(doc.Title) + "</h1>")
	if doc.Subtitle != "" {
		b.WriteString("<p class=\"subtitle\">" + escape(doc.Subtitle) + "</p>")
	}
	if len(doc.Fields) > 0 {
		b.WriteString("<table class=\"fields\"><tbody>")
		for _, f := range doc.Fields {
			b.WriteString("<tr><td><strong>" + escape(f.Label) + "</strong></td><td>" + escape(f.Value) + "</td></tr>")
		}
		b.WriteString("</tbody></table>")
	}

	for i, page := range doc.Pages {
		if i == 0 {
			b.WriteString("<section>")
		} else {
			b.WriteString("<section class=\"page\">")
		}
		b.WriteString("<h2>" + escape(page.Title) + "</h2><table><thead><tr>")
		for _, c := range page.Columns {
			b.WriteString("<th>" + escape(c) + "</th>")
		}
		b.WriteString("</tr></thead><tbody>")
		for _, row := range page.Rows {
			b.WriteString("<tr>")
			for _, cell := range row {
				b.WriteString("<td>" + escape(cell) + "</td>")
			}
			b.WriteString("</tr>")
		}
		b.WriteString("</tbody></table></section>")
	}

	b.WriteString("</body></html>")
	return b.String()
}

func escape(v string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(v)
}

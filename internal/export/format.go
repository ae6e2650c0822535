package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/simonvc/shopledger/internal/shop"
)

type Format string

const (
	FormatText Format = "txt"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", "text", FormatText:
		return FormatText, nil
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", shop.ErrInvalidInput, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "text/plain; charset=utf-8"
}

// Renderer turns documents into bytes in any supported format. PDF needs a
// configured Gotenberg endpoint.
type Renderer struct {
	PDF *PDFRenderer
}

func (r Renderer) Render(ctx context.Context, doc *Document, f Format) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case FormatText:
		if err := WriteText(&buf, doc); err != nil {
			return nil, err
		}
	case FormatCSV:
		if err := WriteCSV(&buf, doc); err != nil {
			return nil, err
		}
	case FormatXLSX:
		if err := WriteXLSX(&buf, doc); err != nil {
			return nil, err
		}
	case FormatPDF:
		if !r.PDF.Enabled() {
			return nil, fmt.Errorf("%w: pdf export needs GOTENBERG_URL", shop.ErrInvalidInput)
		}
		return r.PDF.Render(ctx, doc)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shop.ErrInvalidInput, f)
	}
	return buf.Bytes(), nil
}

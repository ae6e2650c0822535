package export

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// WriteText renders doc as bordered plain-text tables, one per page.
func WriteText(w io.Writer, doc *Document) error {
	if _, err := fmt.Fprintln(w, titleStyle.Render(doc.Title)); err != nil {
		return err
	}
	if doc.Subtitle != "" {
		fmt.Fprintln(w, doc.Subtitle)
	}
	for _, f := range doc.Fields {
		fmt.Fprintf(w, "%-12s %s\n", f.Label+":", f.Value)
	}

	for _, page := range doc.Pages {
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers(page.Columns...).
			Rows(page.Rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", titleStyle.Render(page.Title), t.Render()); err != nil {
			return err
		}
	}
	return nil
}

package export

import (
	"encoding/csv"
	"io"
)

// WriteCSV writes every page as a titled block separated by a blank record.
func WriteCSV(w io.Writer, doc *Document) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{doc.Title, doc.Subtitle}); err != nil {
		return err
	}
	for _, f := range doc.Fields {
		if err := writer.Write([]string{f.Label, f.Value}); err != nil {
			return err
		}
	}
	for _, page := range doc.Pages {
		if err := writer.Write(nil); err != nil {
			return err
		}
		if err := writer.Write([]string{page.Title}); err != nil {
			return err
		}
		if err := writer.Write(page.Columns); err != nil {
			return err
		}
		for _, row := range page.Rows {
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

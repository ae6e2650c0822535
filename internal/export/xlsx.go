package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes one worksheet per page. The document title, subtitle and
// fields head the first sheet.
func WriteXLSX(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}

	for i, page := range doc.Pages {
		sheet := sheetName(page.Title, i)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("new sheet %s: %w", sheet, err)
		}

		row := 1
		if i == 0 {
			var head [][]string
			head = append(head, []string{doc.Title})
			if doc.Subtitle != "" {
				head = append(head, []string{doc.Subtitle})
			}
			for _, fd := range doc.Fields {
				head = append(head, []string{fd.Label, fd.Value})
			}
			for _, cells := range head {
				if err := setRow(f, sheet, row, cells); err != nil {
					return err
				}
				row++
			}
			row++
		}

		if err := setRow(f, sheet, row, page.Columns); err != nil {
			return err
		}
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(page.Columns), row)
		if err := f.SetCellStyle(sheet, first, last, bold); err != nil {
			return fmt.Errorf("header style: %w", err)
		}
		row++

		for _, cells := range page.Rows {
			if err := setRow(f, sheet, row, cells); err != nil {
				return err
			}
			row++
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d on %s: %w", row, sheet, err)
	}
	return nil
}

// sheetName trims titles to Excel's 31 character limit.
func sheetName(title string, i int) string {
	if title == "" {
		return fmt.Sprintf("Page%d", i+1)
	}
	r := []rune(title)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}

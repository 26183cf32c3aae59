package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pable/go-cricket-metrics/internal/dataset"
)

const selectionSheet = "Selection"

// WriteXLSX writes one sheet per table, named after the dimension title, plus a
// Selection sheet recording the source and filter.
func WriteXLSX(w io.Writer, r dataset.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", selectionSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	selection := [][]any{
		{"Dataset", r.DatasetID},
		{"Source", r.Source},
		{"Seasons", strings.Join(r.Filter.SeasonList(), ", ")},
		{"Phases", strings.Join(phaseNames(r.Filter), ", ")},
	}
	if err := setRows(f, selectionSheet, selection); err != nil {
		return err
	}

	for _, t := range r.Tables {
		sheet := t.Dimension.Title()
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("new sheet %s: %w", sheet, err)
		}
		rows := make([][]any, 0, len(t.Rows)+1)
		head := header(t)
		hrow := make([]any, len(head))
		for i, h := range head {
			hrow[i] = h
		}
		rows = append(rows, hrow)
		for _, row := range t.Rows {
			cells := make([]any, 0, len(row.Values)+1)
			cells = append(cells, row.Key)
			for i, v := range row.Values {
				if t.Columns[i].Ratio {
					cells = append(cells, v)
				} else {
					cells = append(cells, int64(v))
				}
			}
			rows = append(rows, cells)
		}
		if err := setRows(f, sheet, rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

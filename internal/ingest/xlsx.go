package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// ReadXLSX reads the first sheet of a workbook; its first row is the header.
func ReadXLSX(path string) ([]model.Delivery, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return FromRows(rows)
}

// Package export writes a stats report as JSON, CSV or an XLSX workbook.
// Tables are written in the order and row order they carry in the report.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pable/go-cricket-metrics/internal/dataset"
	"github.com/pable/go-cricket-metrics/internal/model"
	"github.com/pable/go-cricket-metrics/internal/report"
)

// Format names an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatXLSX  Format = "xlsx"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want table, json, csv or xlsx)", s)
}

// Write encodes r in the given file format. FormatTable is not handled here.
func Write(w io.Writer, f Format, r dataset.Report) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	}
	return fmt.Errorf("export: unsupported format %q", f)
}

type jsonReport struct {
	DatasetID string      `json:"dataset_id"`
	Source    string      `json:"source"`
	Seasons   []string    `json:"seasons"`
	Phases    []string    `json:"phases"`
	Tables    []jsonTable `json:"tables"`
}

type jsonTable struct {
	Dimension string   `json:"dimension"`
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
}

// WriteJSON writes r as one indented JSON document. Each row is an array whose
// first element is the group key, aligned with the table's columns.
func WriteJSON(w io.Writer, r dataset.Report) error {
	out := jsonReport{
		DatasetID: r.DatasetID,
		Source:    r.Source,
		Seasons:   r.Filter.SeasonList(),
		Phases:    phaseNames(r.Filter),
		Tables:    make([]jsonTable, 0, len(r.Tables)),
	}
	for _, t := range r.Tables {
		jt := jsonTable{
			Dimension: t.Dimension.String(),
			Columns:   header(t),
			Rows:      make([][]any, 0, len(t.Rows)),
		}
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
			jt.Rows = append(jt.Rows, cells)
		}
		out.Tables = append(out.Tables, jt)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteCSV writes every table as one long-form CSV: a leading dimension
// column, then the key, then the table's own columns. Tables are separated by
// a blank line and each carries its own header row.
func WriteCSV(w io.Writer, r dataset.Report) error {
	cw := csv.NewWriter(w)
	for i, t := range r.Tables {
		if i > 0 {
			if err := cw.Write(nil); err != nil {
				return err
			}
		}
		if err := cw.Write(append([]string{"Dimension"}, header(t)...)); err != nil {
			return err
		}
		for _, row := range t.Rows {
			rec := make([]string, 0, len(row.Values)+2)
			rec = append(rec, t.Dimension.String(), row.Key)
			for j, v := range row.Values {
				rec = append(rec, report.FormatValue(t.Columns[j], v))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRowsCSV writes an ad-hoc result set with a header row.
func WriteRowsCSV(w io.Writer, cols []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func header(t model.Table) []string {
	h := make([]string, 0, len(t.Columns)+1)
	h = append(h, t.KeyColumn)
	for _, c := range t.Columns {
		h = append(h, c.Name)
	}
	return h
}

func phaseNames(f model.Filter) []string {
	phases := f.PhaseList()
	out := make([]string, len(phases))
	for i, p := range phases {
		out[i] = p.String()
	}
	return out
}

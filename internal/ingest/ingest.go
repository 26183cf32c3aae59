// Package ingest reads ball-by-ball delivery tables (CSV or XLSX) into typed
// records. Required columns are checked once, before any row is decoded.
package ingest

import (
	"crypto/sha256"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// RequiredColumns are the header names a dataset must carry. Other columns
// (Cricsheet files have many) are ignored.
var RequiredColumns = []string{
	"match_id", "season", "batting_team", "bowling_team", "venue",
	"striker", "bowler", "ball", "runs_off_bat", "extras",
	"wicket_type", "player_dismissed",
}

// MissingColumnError lists every required column absent from the header.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
}

// ValueError reports a numeric cell that could not be parsed.
type ValueError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

// ErrUnsupportedFormat is returned by ReadFile for extensions it cannot read.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Result is a parsed dataset file.
type Result struct {
	Source     string
	Hash       string // sha256 of the file contents, hex
	Deliveries []model.Delivery
}

// ReadFile parses a .csv or .xlsx dataset and hashes its contents.
func ReadFile(path string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".xlsx":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	var deliveries []model.Delivery
	if ext == ".csv" {
		deliveries, err = ReadCSV(io.TeeReader(f, h))
		if err != nil {
			return nil, err
		}
		// Hash any tail the csv reader did not consume.
		if _, err := io.Copy(h, f); err != nil {
			return nil, fmt.Errorf("hash dataset: %w", err)
		}
	} else {
		if _, err := io.Copy(h, f); err != nil {
			return nil, fmt.Errorf("hash dataset: %w", err)
		}
		deliveries, err = ReadXLSX(path)
		if err != nil {
			return nil, err
		}
	}

	return &Result{
		Source:     filepath.Base(path),
		Hash:       fmt.Sprintf("%x", h.Sum(nil)),
		Deliveries: deliveries,
	}, nil
}

// ReadCSV decodes a delimited table with a header row.
func ReadCSV(r io.Reader) ([]model.Delivery, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MissingColumnError{Columns: RequiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var out []model.Delivery
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if blank(rec) {
			continue
		}
		d, err := idx.decode(rec, line)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// FromRows decodes a header row plus data rows, as produced by spreadsheet readers.
func FromRows(rows [][]string) ([]model.Delivery, error) {
	if len(rows) == 0 {
		return nil, &MissingColumnError{Columns: RequiredColumns}
	}
	idx, err := indexHeader(rows[0])
	if err != nil {
		return nil, err
	}
	out := make([]model.Delivery, 0, len(rows)-1)
	for i, rec := range rows[1:] {
		if blank(rec) {
			continue
		}
		d, err := idx.decode(rec, i+2)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// columnIndex maps required column names to their position in a row.
type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(RequiredColumns))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.ToLower(strings.TrimSpace(h))
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing}
	}
	return idx, nil
}

func (idx columnIndex) cell(rec []string, col string) string {
	i := idx[col]
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// ident trims and NFC-normalizes an identifier so that visually equal names
// group together.
func (idx columnIndex) ident(rec []string, col string) string {
	return norm.NFC.String(idx.cell(rec, col))
}

func (idx columnIndex) decode(rec []string, line int) (model.Delivery, error) {
	d := model.Delivery{
		MatchID:         idx.ident(rec, "match_id"),
		Season:          idx.ident(rec, "season"),
		BattingTeam:     idx.ident(rec, "batting_team"),
		BowlingTeam:     idx.ident(rec, "bowling_team"),
		Venue:           idx.ident(rec, "venue"),
		Striker:         idx.ident(rec, "striker"),
		Bowler:          idx.ident(rec, "bowler"),
		WicketType:      idx.ident(rec, "wicket_type"),
		PlayerDismissed: idx.ident(rec, "player_dismissed"),
	}

	var err error
	if d.Ball, err = parseFloat(idx.cell(rec, "ball")); err != nil {
		return d, &ValueError{Line: line, Column: "ball", Value: idx.cell(rec, "ball"), Err: err}
	}
	if d.RunsOffBat, err = parseInt(idx.cell(rec, "runs_off_bat")); err != nil {
		return d, &ValueError{Line: line, Column: "runs_off_bat", Value: idx.cell(rec, "runs_off_bat"), Err: err}
	}
	if d.Extras, err = parseInt(idx.cell(rec, "extras")); err != nil {
		return d, &ValueError{Line: line, Column: "extras", Value: idx.cell(rec, "extras"), Err: err}
	}
	return d, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseInt accepts integers and integral floats ("4.0"), which spreadsheet
// exports often produce.
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not an integer")
	}
	return int(f), nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

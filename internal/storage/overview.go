package storage

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// GetOverview returns store-wide counts. Players are the distinct names seen as
// striker or bowler.
func (db *DB) GetOverview() (model.Overview, error) {
	var ov model.Overview
	err := db.conn.QueryRow(`
		SELECT
			(SELECT COUNT(1) FROM datasets),
			COUNT(1),
			COUNT(DISTINCT dataset_id || '/' || match_id),
			COUNT(DISTINCT season),
			COUNT(DISTINCT venue)
		FROM deliveries`).
		Scan(&ov.Datasets, &ov.Deliveries, &ov.Matches, &ov.Seasons, &ov.Venues)
	if err != nil {
		return ov, fmt.Errorf("overview counts: %w", err)
	}
	err = db.conn.QueryRow(`
		SELECT COUNT(1) FROM (
			SELECT striker AS name FROM deliveries
			UNION
			SELECT bowler FROM deliveries
		)`).Scan(&ov.Players)
	if err != nil {
		return ov, fmt.Errorf("overview players: %w", err)
	}
	return ov, nil
}

// GetSeasonBreakdown returns match and delivery counts per season, in season order.
func (db *DB) GetSeasonBreakdown() ([]model.SeasonCount, error) {
	rows, err := db.conn.Query(`
		SELECT season, COUNT(DISTINCT dataset_id || '/' || match_id), COUNT(1)
		FROM deliveries GROUP BY season ORDER BY season`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SeasonCount
	for rows.Next() {
		var s model.SeasonCount
		if err := rows.Scan(&s.Season, &s.Matches, &s.Deliveries); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns the column names and every row
// rendered as strings. NULL becomes "NULL".
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = formatValue(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case sql.RawBytes:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

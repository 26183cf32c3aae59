package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-cricket-metrics/internal/model"
)

// DatasetExists returns true if a dataset with the given content hash is already stored.
func (db *DB) DatasetExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM datasets WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DatasetByHash returns the dataset stored for a content hash, or nil.
func (db *DB) DatasetByHash(hash string) (*model.DatasetInfo, error) {
	return db.scanDataset(db.conn.QueryRow(`
		SELECT id, source, hash, imported_at, deliveries
		FROM datasets WHERE hash = ?`, hash))
}

// InsertDataset stores the dataset record and its deliveries in one transaction.
// Delivery order is preserved through the seq column.
func (db *DB) InsertDataset(info model.DatasetInfo, deliveries []model.Delivery) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO datasets(id, source, hash, imported_at, deliveries)
		VALUES (?, ?, ?, ?, ?)`,
		info.ID, info.Source, info.Hash, info.ImportedAt, len(deliveries),
	); err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO deliveries(
			dataset_id, seq, match_id, season, batting_team, bowling_team, venue,
			striker, bowler, ball, runs_off_bat, extras, wicket_type, player_dismissed
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, d := range deliveries {
		_, err := stmt.Exec(
			info.ID, i, d.MatchID, d.Season, d.BattingTeam, d.BowlingTeam, d.Venue,
			d.Striker, d.Bowler, d.Ball, d.RunsOffBat, d.Extras, d.WicketType, d.PlayerDismissed,
		)
		if err != nil {
			return fmt.Errorf("insert delivery %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// ListDatasets returns all stored datasets, newest import first.
func (db *DB) ListDatasets() ([]model.DatasetInfo, error) {
	rows, err := db.conn.Query(`
		SELECT id, source, hash, imported_at, deliveries
		FROM datasets ORDER BY imported_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.DatasetInfo
	for rows.Next() {
		var d model.DatasetInfo
		if err := rows.Scan(&d.ID, &d.Source, &d.Hash, &d.ImportedAt, &d.Deliveries); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDatasetByPrefix finds the first dataset whose ID starts with the given prefix.
func (db *DB) GetDatasetByPrefix(prefix string) (*model.DatasetInfo, error) {
	return db.scanDataset(db.conn.QueryRow(`
		SELECT id, source, hash, imported_at, deliveries
		FROM datasets WHERE id LIKE ? ORDER BY id LIMIT 1`, prefix+"%"))
}

func (db *DB) scanDataset(row *sql.Row) (*model.DatasetInfo, error) {
	var d model.DatasetInfo
	err := row.Scan(&d.ID, &d.Source, &d.Hash, &d.ImportedAt, &d.Deliveries)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadDeliveries returns a dataset's deliveries in their original order.
func (db *DB) LoadDeliveries(datasetID string) ([]model.Delivery, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, season, batting_team, bowling_team, venue,
		       striker, bowler, ball, runs_off_bat, extras, wicket_type, player_dismissed
		FROM deliveries WHERE dataset_id = ? ORDER BY seq`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Delivery
	for rows.Next() {
		var d model.Delivery
		if err := rows.Scan(&d.MatchID, &d.Season, &d.BattingTeam, &d.BowlingTeam, &d.Venue,
			&d.Striker, &d.Bowler, &d.Ball, &d.RunsOffBat, &d.Extras,
			&d.WicketType, &d.PlayerDismissed); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteDataset removes a dataset and its deliveries. It reports whether a
// dataset with that ID existed.
func (db *DB) DeleteDataset(id string) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM deliveries WHERE dataset_id = ?", id); err != nil {
		return false, fmt.Errorf("delete deliveries: %w", err)
	}
	res, err := tx.Exec("DELETE FROM datasets WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete dataset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

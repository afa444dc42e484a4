package fund

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SnapshotStore persists the daily valuation history in a SQLite database,
// one row per calendar day.
type SnapshotStore struct {
	db *sql.DB
}

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS snapshots (
	date TEXT PRIMARY KEY,
	portfolio_value TEXT NOT NULL,
	total_shares TEXT NOT NULL
);`

// OpenSnapshotStore opens (creating if needed) the snapshot database at the
// given path. Use ":memory:" for an ephemeral store.
func OpenSnapshotStore(path string) (*SnapshotStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open snapshot store %q: %w", path, err)
	}
	if _, err := db.Exec(createSnapshotsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create snapshots table: %w", err)
	}
	return &SnapshotStore{db: db}, nil
}

// Close releases the underlying database.
func (s *SnapshotStore) Close() error { return s.db.Close() }

// Save inserts the snapshot, replacing any existing row for the same date.
// Values are stored as decimal strings to keep the history exact.
func (s *SnapshotStore) Save(sn Snapshot) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (date, portfolio_value, total_shares) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET portfolio_value=excluded.portfolio_value, total_shares=excluded.total_shares`,
		sn.Date.String(), sn.PortfolioValue.value.String(), sn.TotalShares.value.String(),
	)
	if err != nil {
		return fmt.Errorf("could not save snapshot for %s: %w", sn.Date, err)
	}
	return nil
}

// Has reports whether a snapshot exists for the given date.
func (s *SnapshotStore) Has(on Date) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM snapshots WHERE date = ?`, on.String()).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not query snapshot for %s: %w", on, err)
	}
	return true, nil
}

// Get returns the snapshot for the given date.
func (s *SnapshotStore) Get(on Date) (Snapshot, error) {
	row := s.db.QueryRow(
		`SELECT date, portfolio_value, total_shares FROM snapshots WHERE date = ?`, on.String())
	return scanSnapshot(row.Scan)
}

// Range returns the snapshots between from and to (inclusive) in
// chronological order. The YYYY-MM-DD key makes lexical comparison
// chronological.
func (s *SnapshotStore) Range(from, to Date) ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT date, portfolio_value, total_shares FROM snapshots
		 WHERE date >= ? AND date <= ? ORDER BY date`, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("could not query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		sn, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, sn)
	}
	return snapshots, rows.Err()
}

// Latest returns the most recent snapshot on file. The boolean is false when
// the store is empty.
func (s *SnapshotStore) Latest() (Snapshot, bool, error) {
	row := s.db.QueryRow(
		`SELECT date, portfolio_value, total_shares FROM snapshots ORDER BY date DESC LIMIT 1`)
	sn, err := scanSnapshot(row.Scan)
	if err == sql.ErrNoRows {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	return sn, true, nil
}

func scanSnapshot(scan func(...any) error) (Snapshot, error) {
	var dateStr, valueStr, sharesStr string
	if err := scan(&dateStr, &valueStr, &sharesStr); err != nil {
		return Snapshot{}, err
	}
	on, err := ParseDate(dateStr)
	if err != nil {
		return Snapshot{}, fmt.Errorf("corrupt snapshot date %q: %w", dateStr, err)
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return Snapshot{}, fmt.Errorf("corrupt snapshot value %q: %w", valueStr, err)
	}
	shares, err := decimal.NewFromString(sharesStr)
	if err != nil {
		return Snapshot{}, fmt.Errorf("corrupt snapshot shares %q: %w", sharesStr, err)
	}
	return Snapshot{Date: on, PortfolioValue: M(value), TotalShares: Q(shares)}, nil
}

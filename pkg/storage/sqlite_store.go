package storage

import (
	"database/sql"
	"fmt"

	"github.com/benmeehan/accident-agent/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS accidents (
		seq               INTEGER PRIMARY KEY,
		time              TEXT NOT NULL,
		acceleration      DOUBLE NOT NULL,
		impact            DOUBLE NOT NULL,
		latitude          DOUBLE NOT NULL,
		longitude         DOUBLE NOT NULL,
		recorded_at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
`

// SQLiteStore keeps the accident log in a SQLite table, one row per sample.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrPersistence, path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", ErrPersistence, err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Save replaces the stored log with log in a single transaction.
func (s *SQLiteStore) Save(log *models.AccidentLog) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrPersistence, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM accidents"); err != nil {
		return fmt.Errorf("%w: clear: %v", ErrPersistence, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO accidents (seq, time, acceleration, impact, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: prepare: %v", ErrPersistence, err)
	}
	defer stmt.Close()

	for i, sample := range log.Samples() {
		if _, err := stmt.Exec(i, sample.Time, sample.Acceleration, sample.Impact,
			sample.GPS.Latitude, sample.GPS.Longitude); err != nil {
			return fmt.Errorf("%w: insert sample %d: %v", ErrPersistence, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrPersistence, err)
	}
	return nil
}

// Load reads all stored samples in their original order.
func (s *SQLiteStore) Load() (*models.AccidentLog, error) {
	rows, err := s.db.Query(`SELECT time, acceleration, impact, latitude, longitude
		FROM accidents ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrPersistence, err)
	}
	defer rows.Close()

	log := models.NewAccidentLog()
	for rows.Next() {
		var sample models.Sample
		if err := rows.Scan(&sample.Time, &sample.Acceleration, &sample.Impact,
			&sample.GPS.Latitude, &sample.GPS.Longitude); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrPersistence, err)
		}
		log.Append(sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrPersistence, err)
	}

	return log, nil
}

// Location returns the database path.
func (s *SQLiteStore) Location() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

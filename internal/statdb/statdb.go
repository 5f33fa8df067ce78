// Package statdb ingests decoded blueprint libraries' flattened entity
// lists into a DuckDB table for cross-collection analytics: parsed data
// lands in DuckDB so it can be queried without loading every collection
// into memory at once.
package statdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	duckdb "github.com/marcboeker/go-duckdb"
)

// Store wraps a DuckDB database of ingested libraries. Its tables persist
// across runs; every row carries the run_id of the ingest that wrote it.
type Store struct {
	db *sql.DB
}

// Open creates (or reopens) a DuckDB file at path and ensures its schema.
func Open(path string) (*Store, error) {
	connector, err := duckdb.NewConnector(path, func(execer driver.ExecerContext) error {
		_, err := execer.ExecContext(context.Background(), "PRAGMA threads=4", nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating duckdb connector: %w", err)
	}

	db := sql.OpenDB(connector)
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS entities (
			run_id        VARCHAR NOT NULL,
			library_file  VARCHAR NOT NULL,
			slot_index    INTEGER NOT NULL,
			entity_number INTEGER NOT NULL,
			name          VARCHAR NOT NULL,
			pos_x         DOUBLE,
			pos_y         DOUBLE
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating entities table: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			run_id       VARCHAR NOT NULL,
			library_file VARCHAR NOT NULL,
			mod          VARCHAR NOT NULL,
			migration    VARCHAR NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating migrations table: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS libraries (
			run_id       VARCHAR NOT NULL,
			library_file VARCHAR NOT NULL,
			generation   BIGINT,
			saved_at     BIGINT
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating libraries table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// EntityRow is one flattened entity from a decoded blueprint, ready for
// Appender ingestion.
type EntityRow struct {
	SlotIndex    int
	EntityNumber int
	Name         string
	X, Y         float64
}

// IngestEntities appends rows via the native Appender API, the fast path
// for bulk inserts.
func (s *Store) IngestEntities(runID, libraryFile string, rows []EntityRow) error {
	if len(rows) == 0 {
		return nil
	}
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("getting connection: %w", err)
	}
	defer conn.Close()

	return conn.Raw(func(driverConn interface{}) error {
		dConn, ok := driverConn.(*duckdb.Conn)
		if !ok {
			return fmt.Errorf("failed to cast to duckdb.Conn")
		}
		appender, err := duckdb.NewAppenderFromConn(dConn, "", "entities")
		if err != nil {
			return fmt.Errorf("creating appender: %w", err)
		}
		defer appender.Close()

		for _, row := range rows {
			if err := appender.AppendRow(
				runID, libraryFile, int32(row.SlotIndex), int32(row.EntityNumber), row.Name, row.X, row.Y,
			); err != nil {
				return fmt.Errorf("appending entity row: %w", err)
			}
		}
		return appender.Flush()
	})
}

// IngestMigrations records one library's migration list.
func (s *Store) IngestMigrations(runID, libraryFile string, mods, migrations []string) error {
	for i := range mods {
		if _, err := s.db.Exec(
			"INSERT INTO migrations (run_id, library_file, mod, migration) VALUES (?, ?, ?, ?)",
			runID, libraryFile, mods[i], migrations[i],
		); err != nil {
			return fmt.Errorf("inserting migration row: %w", err)
		}
	}
	return nil
}

// IngestLibrary records one library's generation and saved-at timestamp.
func (s *Store) IngestLibrary(runID, libraryFile string, generation, savedAt int64) error {
	_, err := s.db.Exec(
		"INSERT INTO libraries (run_id, library_file, generation, saved_at) VALUES (?, ?, ?, ?)",
		runID, libraryFile, generation, savedAt,
	)
	return err
}

// EntityCount is one row of the entity-counts-by-name report.
type EntityCount struct {
	Name  string
	Count int64
}

// EntityCountsByName runs the canned "entity counts by prototype name
// across a whole blueprint collection" analytical query.
func (s *Store) EntityCountsByName(runID string) ([]EntityCount, error) {
	rows, err := s.db.Query(
		"SELECT name, COUNT(*) FROM entities WHERE run_id = ? GROUP BY name ORDER BY COUNT(*) DESC",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying entity counts: %w", err)
	}
	defer rows.Close()

	var out []EntityCount
	for rows.Next() {
		var ec EntityCount
		if err := rows.Scan(&ec.Name, &ec.Count); err != nil {
			return nil, fmt.Errorf("scanning entity count row: %w", err)
		}
		out = append(out, ec)
	}
	return out, rows.Err()
}

// GenerationRange reports the oldest and newest library generation in run_id.
func (s *Store) GenerationRange(runID string) (oldest, newest int64, err error) {
	row := s.db.QueryRow("SELECT MIN(generation), MAX(generation) FROM libraries WHERE run_id = ?", runID)
	if err := row.Scan(&oldest, &newest); err != nil {
		return 0, 0, fmt.Errorf("querying generation range: %w", err)
	}
	return oldest, newest, nil
}

// MigrationFrequency is one row of the migration-string frequency report.
type MigrationFrequency struct {
	Mod       string
	Migration string
	Count     int64
}

// MigrationFrequencies runs the canned migration-string frequency query.
func (s *Store) MigrationFrequencies(runID string) ([]MigrationFrequency, error) {
	rows, err := s.db.Query(
		`SELECT mod, migration, COUNT(*) FROM migrations WHERE run_id = ?
		 GROUP BY mod, migration ORDER BY COUNT(*) DESC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying migration frequencies: %w", err)
	}
	defer rows.Close()

	var out []MigrationFrequency
	for rows.Next() {
		var mf MigrationFrequency
		if err := rows.Scan(&mf.Mod, &mf.Migration, &mf.Count); err != nil {
			return nil, fmt.Errorf("scanning migration frequency row: %w", err)
		}
		out = append(out, mf)
	}
	return out, rows.Err()
}

// Package sqlite stores the destination catalog in a local SQLite file using
// the pure-Go modernc.org/sqlite driver, so the binary stays cgo-free.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"ridehail/internal/domain/entities"
)

type POIRepository struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(path string) (*POIRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &POIRepository{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS pois (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		lat REAL NOT NULL,
		lng REAL NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_pois_position ON pois(position);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// List returns every POI ordered by its seeded position.
func (r *POIRepository) List(ctx context.Context) ([]entities.POI, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, lat, lng, description, category FROM pois ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("querying pois: %w", err)
	}
	defer rows.Close()

	var pois []entities.POI
	for rows.Next() {
		var p entities.POI
		var category string
		if err := rows.Scan(&p.ID, &p.Name, &p.Latitude, &p.Longitude, &p.Description, &category); err != nil {
			return nil, fmt.Errorf("scanning poi: %w", err)
		}
		p.Category = entities.Category(category)
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pois: %w", err)
	}
	return pois, nil
}

// ReplaceAll swaps the whole catalog in one transaction. Slice order becomes
// the stored position.
func (r *POIRepository) ReplaceAll(ctx context.Context, pois []entities.POI) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pois`); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("clearing pois: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO pois (id, position, name, lat, lng, description, category)
		VALUES (?,?,?,?,?,?,?)
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("preparing stmt: %w", err)
	}
	defer stmt.Close()

	for i, p := range pois {
		if _, err := stmt.ExecContext(ctx, p.ID, i, p.Name, p.Latitude, p.Longitude, p.Description, string(p.Category)); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting poi %q: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing tx: %w", err)
	}
	return len(pois), nil
}

func (r *POIRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pois").Scan(&count)
	return count, err
}

func (r *POIRepository) Close() error {
	return r.db.Close()
}

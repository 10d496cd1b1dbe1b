// Package storage persists short-DOI lookups in SQLite so repeated formatting
// runs do not hit the network for DOIs that were already resolved.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/matsen/bibfmt/internal/shortdoi"
	_ "modernc.org/sqlite"
)

// DOICache wraps a SQLite database of resolved short DOIs.
type DOICache struct {
	db *sql.DB
}

// OpenDOICache opens or creates the cache database at the given path.
func OpenDOICache(path string) (*DOICache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DOICache{db: db}, nil
}

// Close closes the database connection.
func (c *DOICache) Close() error {
	return c.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS short_dois (
			doi TEXT PRIMARY KEY,
			short_doi TEXT NOT NULL,
			resolved_at INTEGER NOT NULL
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Get returns the cached short DOI for doi. found is false on a cache miss.
func (c *DOICache) Get(ctx context.Context, doi string) (short string, found bool, err error) {
	row := c.db.QueryRowContext(ctx, `SELECT short_doi FROM short_dois WHERE doi = ?`, doi)
	if err := row.Scan(&short); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("querying short DOI for %s: %w", doi, err)
	}
	return short, true, nil
}

// Put stores a resolved short DOI, replacing any previous value.
func (c *DOICache) Put(ctx context.Context, doi, short string) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO short_dois (doi, short_doi, resolved_at) VALUES (?, ?, ?)
		ON CONFLICT(doi) DO UPDATE SET short_doi = excluded.short_doi, resolved_at = excluded.resolved_at`,
		doi, short, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("storing short DOI for %s: %w", doi, err)
	}
	return nil
}

// Count returns the number of cached DOIs.
func (c *DOICache) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM short_dois`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting short DOIs: %w", err)
	}
	return n, nil
}

// CachedResolver consults the cache before delegating to Next. Only
// successful lookups are cached; failures are retried on the next run.
type CachedResolver struct {
	Cache  *DOICache
	Next   shortdoi.Resolver
	Logger *slog.Logger
}

// ShortDOI implements shortdoi.Resolver.
func (r *CachedResolver) ShortDOI(ctx context.Context, doi string) (string, error) {
	short, found, err := r.Cache.Get(ctx, doi)
	if err != nil {
		r.logger().Warn("short DOI cache read failed", "doi", doi, "error", err)
	} else if found {
		return short, nil
	}

	short, err = r.Next.ShortDOI(ctx, doi)
	if err != nil {
		return "", err
	}

	if err := r.Cache.Put(ctx, doi, short); err != nil {
		r.logger().Warn("short DOI cache write failed", "doi", doi, "error", err)
	}
	return short, nil
}

func (r *CachedResolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

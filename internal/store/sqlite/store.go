package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"

	"github.com/MrSnakeDoc/recommendations/internal/domain"
)

// Store persists recommendations in a single SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach sqlite database: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}
	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS recommendations (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		one_click_subscribe INTEGER NOT NULL DEFAULT 0,
		reason TEXT,
		excerpt TEXT,
		featured_image TEXT,
		favicon TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER
	);
	CREATE INDEX IF NOT EXISTS idx_recommendations_created_at ON recommendations(created_at);
	`
	_, err := db.ExecContext(ctx, query)
	return err
}

// Save inserts or replaces a recommendation
func (s *Store) Save(ctx context.Context, rec *domain.Recommendation) error {
	query := `INSERT INTO recommendations
		(id, title, url, one_click_subscribe, reason, excerpt, featured_image, favicon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			url = excluded.url,
			one_click_subscribe = excluded.one_click_subscribe,
			reason = excluded.reason,
			excerpt = excluded.excerpt,
			featured_image = excluded.featured_image,
			favicon = excluded.favicon,
			updated_at = excluded.updated_at`

	var rawURL string
	if rec.URL != nil {
		rawURL = rec.URL.String()
	}

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.Title, rawURL, rec.OneClickSubscribe,
		nullString(rec.Reason), nullString(rec.Excerpt), nullString(rec.FeaturedImage), nullString(rec.Favicon),
		rec.CreatedAt.UnixNano(), nullTime(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, title, url, one_click_subscribe, reason, excerpt, featured_image, favicon, created_at, updated_at
	FROM recommendations`

// Get retrieves a recommendation by ID
func (s *Store) Get(ctx context.Context, id string) (*domain.Recommendation, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	rec, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.RecommendationNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}
	return rec, nil
}

// Delete removes a recommendation
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recommendations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recommendation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete recommendation: %w", err)
	}
	if n == 0 {
		return domain.RecommendationNotFound(id)
	}
	return nil
}

// List returns every recommendation, newest first
func (s *Store) List(ctx context.Context) ([]*domain.Recommendation, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	recs := []*domain.Recommendation{}
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(row scanner) (*domain.Recommendation, error) {
	var (
		rec                                     domain.Recommendation
		rawURL                                  string
		reason, excerpt, featuredImage, favicon sql.NullString
		createdAt                               int64
		updatedAt                               sql.NullInt64
	)
	err := row.Scan(&rec.ID, &rec.Title, &rawURL, &rec.OneClickSubscribe,
		&reason, &excerpt, &featuredImage, &favicon, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("recommendation %s has invalid url: %w", rec.ID, err)
	}
	rec.URL = u
	rec.Reason = stringPtr(reason)
	rec.Excerpt = stringPtr(excerpt)
	rec.FeaturedImage = stringPtr(featuredImage)
	rec.Favicon = stringPtr(favicon)
	rec.CreatedAt = time.Unix(0, createdAt).UTC()
	if updatedAt.Valid {
		t := time.Unix(0, updatedAt.Int64).UTC()
		rec.UpdatedAt = &t
	}
	return &rec, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixNano(), Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Bookmark is a saved capsule address. Only addresses and titles are kept;
// response bodies and browsing history never reach the database.
type Bookmark struct {
	URL       string
	Title     string
	CreatedAt time.Time
}

type Preferences struct {
	NumberLinks bool
	ShowOutline bool
	Homepage    string
}

const (
	prefNumberLinks = "number_links"
	prefShowOutline = "show_outline"
	prefHomepage    = "homepage"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS bookmarks (
  url TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS preferences (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable fails early when the database file is read-only.
func (r *Repository) CheckWritable(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS write_probe (id INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create write probe: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO write_probe (id) VALUES (1) ON CONFLICT(id) DO NOTHING`); err != nil {
		return fmt.Errorf("write probe: %w", err)
	}
	return nil
}

// SaveBookmark inserts a bookmark or renames an existing one. The original
// creation time is kept on update.
func (r *Repository) SaveBookmark(ctx context.Context, b Bookmark) error {
	if strings.TrimSpace(b.URL) == "" {
		return errors.New("bookmark url is required")
	}
	created := b.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO bookmarks (url, title, created_at)
VALUES (?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
  title=excluded.title
`, b.URL, b.Title, created.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save bookmark %s: %w", b.URL, err)
	}
	return nil
}

// ListBookmarks returns bookmarks oldest first.
func (r *Repository) ListBookmarks(ctx context.Context) ([]Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT url, title, created_at
FROM bookmarks
ORDER BY created_at ASC, url ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		var b Bookmark
		var createdAt string
		if err := rows.Scan(&b.URL, &b.Title, &createdAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		b.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse bookmark created_at %q: %w", createdAt, err)
		}
		bookmarks = append(bookmarks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return bookmarks, nil
}

// DeleteBookmark reports whether a bookmark with that url existed.
func (r *Repository) DeleteBookmark(ctx context.Context, url string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE url = ?`, url)
	if err != nil {
		return false, fmt.Errorf("delete bookmark %s: %w", url, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete bookmark rows affected: %w", err)
	}
	return n > 0, nil
}

// LoadPreferences returns the stored preferences. Keys never saved keep
// their zero value, except ShowOutline which defaults to on.
func (r *Repository) LoadPreferences(ctx context.Context) (Preferences, error) {
	prefs := Preferences{ShowOutline: true}
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return Preferences{}, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Preferences{}, fmt.Errorf("scan preference: %w", err)
		}
		switch key {
		case prefNumberLinks:
			prefs.NumberLinks = parseBool(value)
		case prefShowOutline:
			prefs.ShowOutline = parseBool(value)
		case prefHomepage:
			prefs.Homepage = value
		}
	}
	if err := rows.Err(); err != nil {
		return Preferences{}, fmt.Errorf("rows iteration: %w", err)
	}
	return prefs, nil
}

func (r *Repository) SavePreferences(ctx context.Context, prefs Preferences) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO preferences (key, value)
VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value
`)
	if err != nil {
		return fmt.Errorf("prepare preference statement: %w", err)
	}
	defer stmt.Close()

	values := [][2]string{
		{prefNumberLinks, strconv.FormatBool(prefs.NumberLinks)},
		{prefShowOutline, strconv.FormatBool(prefs.ShowOutline)},
		{prefHomepage, strings.TrimSpace(prefs.Homepage)},
	}
	for _, kv := range values {
		if _, err := stmt.ExecContext(ctx, kv[0], kv[1]); err != nil {
			return fmt.Errorf("save preference %s: %w", kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Package sqlite is the file-backed result store. A single process owns
// the database; WAL journaling with a generous busy timeout lets play
// saves and listings interleave, and each write runs in its own
// transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"gridiron/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Store = (*Client)(nil)

const (
	dsnScheme   = "sqlite://"
	pingTimeout = 30 * time.Second
)

// openPragmas run once per connection open, before any store call.
var openPragmas = [...]string{
	"PRAGMA busy_timeout = 30000;",
	"PRAGMA journal_mode = WAL;",
	"PRAGMA synchronous = NORMAL;",
	"PRAGMA foreign_keys = ON;",
}

type Client struct {
	db *sql.DB
}

func New(ctx context.Context, dsn string) (*Client, error) {
	path, err := driverPath(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	openCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(openCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}
	for _, pragma := range openPragmas {
		if _, err := db.ExecContext(openCtx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}
	return &Client{db: db}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close()
}

// driverPath translates a sqlite:// DSN into the path the driver
// expects. ":memory:" passes through for in-process stores, driver
// options after "?" are preserved, and bare relative paths are anchored
// to the working directory so the database lands next to gridiron.yaml.
func driverPath(dsn string) (string, error) {
	if !strings.HasPrefix(dsn, dsnScheme) {
		return "", fmt.Errorf("sqlite DSN must start with %s", dsnScheme)
	}
	rest := strings.TrimPrefix(dsn, dsnScheme)
	if rest == ":memory:" {
		return rest, nil
	}

	path, query, hasQuery := strings.Cut(rest, "?")
	unescaped, err := url.PathUnescape(path)
	if err != nil {
		return "", fmt.Errorf("unescaping sqlite path: %w", err)
	}
	if !filepath.IsAbs(unescaped) && !strings.HasPrefix(unescaped, "./") {
		unescaped = "./" + unescaped
	}
	if hasQuery {
		return unescaped + "?" + query, nil
	}
	return unescaped, nil
}

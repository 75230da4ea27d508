package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS slots (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// Slot stores the card collection as one row of a local SQLite file.
type Slot struct {
	db  *sql.DB
	key string
}

// Open opens (creating if needed) the SQLite database at path and prepares the slots table.
func Open(ctx context.Context, path, key string) (*Slot, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite dir: %w", err)
		}
	}

	// modernc.org/sqlite registers the driver as "sqlite" and applies _pragma
	// parameters on every new connection.
	// WAL lets the CLI read while the server writes; busy_timeout absorbs short lock waits.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// One connection per process; writers in other processes wait on busy_timeout.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Slot{db: db, key: key}, nil
}

func (s *Slot) Read(ctx context.Context) (string, error) {
	return readValue(ctx, s.db, s.key)
}

// Update runs fn inside a BEGIN IMMEDIATE transaction so the write lock is
// taken before the read, serializing concurrent writers across processes.
func (s *Slot) Update(ctx context.Context, fn func(string) (string, error)) (err error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to get sqlite conn: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("failed to begin: %w", err)
	}
	defer func() {
		if err != nil {
			_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		}
	}()

	current, err := readValue(ctx, conn, s.key)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	if next == "" {
		_, err = conn.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, s.key)
	} else {
		_, err = conn.ExecContext(ctx,
			`INSERT INTO slots (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, s.key, next)
	}
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}

	if _, err = conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *Slot) Delete(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", s.key, err)
	}
	return nil
}

func (s *Slot) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Slot) Name() string { return "sqlite" }

func (s *Slot) Close() error { return s.db.Close() }

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func readValue(ctx context.Context, q queryer, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

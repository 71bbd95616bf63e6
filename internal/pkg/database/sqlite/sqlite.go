package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

type Config struct {
	Path         string
	BusyTimeout  time.Duration
	MaxOpenConns int
}

// NewSQLite opens the database with foreign keys enforced. A single open
// connection is the normal setting: the engine serializes writers anyway and
// an in-memory database lives only as long as its connection.
func NewSQLite(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", DSN(cfg.Path, cfg.BusyTimeout))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// DSN builds a go-sqlite3 connection string. Paths starting with "file:" keep
// their own query parameters.
func DSN(path string, busyTimeout time.Duration) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	if busyTimeout > 0 {
		params.Set("_busy_timeout", fmt.Sprint(busyTimeout.Milliseconds()))
	}

	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + params.Encode()
	}
	return "file:" + path + "?" + params.Encode()
}

// OpenMemory opens a private in-memory database and migrates it. Each name
// gets its own database.
func OpenMemory(ctx context.Context, name string) (*sqlx.DB, error) {
	db, err := NewSQLite(&Config{Path: "file:" + name + "?mode=memory&cache=shared", MaxOpenConns: 1})
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// IsUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY constraint
// failure.
func IsUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// IsForeignKeyViolation reports whether err is a FOREIGN KEY constraint failure.
func IsForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// Classify gives a write-path error an error kind. Constraint failures the
// repository did not map itself are caller errors; any other engine failure
// is unavailable, the same kind read failures carry. Errors that already
// have a kind, ctx errors and nil pass through.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range []error{apperr.ErrNotFound, apperr.ErrConflict, apperr.ErrInvalid, apperr.ErrPrecondition, apperr.ErrUnavailable} {
		if errors.Is(err, kind) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var se sqlite3.Error
	switch {
	case errors.As(err, &se) && se.Code == sqlite3.ErrConstraint:
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	case errors.As(err, &se), errors.Is(err, sql.ErrConnDone), errors.Is(err, sql.ErrTxDone):
		return fmt.Errorf("%w: %w", apperr.ErrUnavailable, err)
	}
	return err
}

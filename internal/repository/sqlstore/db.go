package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"project-manager/internal/domain"
)

// Options selects and tunes the backing database.
type Options struct {
	Driver       string
	DSN          string
	Path         string
	MaxOpenConns int
}

// DB is a database handle that knows which SQL dialect it speaks.
type DB struct {
	*sql.DB
	dialect Dialect
}

type txKey struct{}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to the configured database. SQLite files and their directories
// are created on demand.
func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect, err := ParseDialect(opts.Driver)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch dialect {
	case DialectSQLite:
		db, err = openSQLite(opts.Path)
	case DialectPostgres:
		db, err = openPostgres(opts.DSN, opts.MaxOpenConns)
	}
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	return Wrap(db, dialect), nil
}

// Wrap adopts an already opened *sql.DB.
func Wrap(db *sql.DB, dialect Dialect) *DB {
	return &DB{DB: db, dialect: dialect}
}

// Dialect reports the SQL flavour of the handle.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

func openSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// one connection keeps transactions serialized
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}

// sqliteDSN applies per-connection pragmas through the DSN so that connections
// opened later by the pool get them too.
func sqliteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)"
}

func openPostgres(dsn string, maxOpen int) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen)
	}
	return db, nil
}

// WithinTransaction implements repository.Transactor. Calls nested inside an
// open transaction join it instead of starting a new one.
func (db *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx, db.dialect.txOptions())
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		if db.dialect.isSerializationFailure(err) {
			return fmt.Errorf("%w: concurrent modification, retry the request", domain.ErrConflict)
		}
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (db *DB) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db.DB
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn(ctx).ExecContext(ctx, db.dialect.rebind(query), args...)
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn(ctx).QueryContext(ctx, db.dialect.rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn(ctx).QueryRowContext(ctx, db.dialect.rebind(query), args...)
}

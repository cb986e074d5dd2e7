// Package sqlstore implements the store.Store interface on database/sql,
// backed by PostgreSQL (lib/pq or pgx) or an embedded SQLite database.
package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/alfredjeanlab/salesdash/internal/model"
	"github.com/alfredjeanlab/salesdash/internal/store"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres" // lib/pq
	DriverPGX      = "pgx"      // jackc/pgx stdlib
	DriverSQLite   = "sqlite"   // modernc.org/sqlite
)

//go:embed migrations
var migrationsFS embed.FS

type dialect int

const (
	dialectPostgres dialect = iota
	dialectSQLite
)

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverPostgres, DriverPGX:
		return dialectPostgres, nil
	case DriverSQLite:
		return dialectSQLite, nil
	}
	return 0, fmt.Errorf("unsupported database driver %q", driver)
}

// SQLStore implements store.Store on a *sql.DB.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// Compile-time check that SQLStore implements store.Store.
var _ store.Store = (*SQLStore)(nil)

// Open connects to the database with the named driver, configures the
// connection pool, and applies the schema.
func Open(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	if d == dialectSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if d == dialectSQLite {
		// One writer at a time; also keeps ":memory:" databases on a single connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db, d); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLStore{db: db, dialect: d}, nil
}

// sqliteDSN turns on case-sensitive LIKE so tag matching behaves as it does
// on PostgreSQL, and sets a busy timeout.
func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.Contains(dsn, "case_sensitive_like") {
		dsn += sep + "_pragma=case_sensitive_like(1)"
		sep = "&"
	}
	if !strings.Contains(dsn, "busy_timeout") {
		dsn += sep + "_pragma=busy_timeout(5000)"
	}
	return dsn
}

func runMigrations(db *sql.DB, d dialect) error {
	dir := "migrations/postgres"
	if d == dialectSQLite {
		dir = "migrations/sqlite"
	}
	sub, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("open migration dir: %w", err)
	}
	sourceDriver, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	var (
		dbDriver database.Driver
		name     string
	)
	switch d {
	case dialectSQLite:
		name = "sqlite"
		dbDriver, err = sqlite.WithInstance(db, &sqlite.Config{})
	default:
		name = "postgres"
		dbDriver, err = postgres.WithInstance(db, &postgres.Config{})
	}
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, name, dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) ListSales(ctx context.Context, filter *model.SalesFilter) ([]*model.SaleRecord, int, error) {
	return queryListSales(ctx, s.db, filter)
}

func (s *SQLStore) DistinctValues(ctx context.Context, field model.OptionField) ([]string, error) {
	return queryDistinctValues(ctx, s.db, field)
}

func (s *SQLStore) CountSales(ctx context.Context) (int, error) {
	return queryCountSales(ctx, s.db)
}

func (s *SQLStore) InsertSales(ctx context.Context, records []*model.SaleRecord) error {
	return queryInsertSales(ctx, s.db, records)
}

func (s *SQLStore) TruncateSales(ctx context.Context) error {
	return queryTruncateSales(ctx, s.db, s.dialect)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *SQLStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx, dialect: s.dialect}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx      *sql.Tx
	dialect dialect
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) ListSales(ctx context.Context, filter *model.SalesFilter) ([]*model.SaleRecord, int, error) {
	return queryListSales(ctx, s.tx, filter)
}

func (s *txStore) DistinctValues(ctx context.Context, field model.OptionField) ([]string, error) {
	return queryDistinctValues(ctx, s.tx, field)
}

func (s *txStore) CountSales(ctx context.Context) (int, error) {
	return queryCountSales(ctx, s.tx)
}

func (s *txStore) InsertSales(ctx context.Context, records []*model.SaleRecord) error {
	return queryInsertSales(ctx, s.tx, records)
}

func (s *txStore) TruncateSales(ctx context.Context) error {
	return queryTruncateSales(ctx, s.tx, s.dialect)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Ping is a no-op inside a transaction.
func (s *txStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}

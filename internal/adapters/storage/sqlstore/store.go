// Package sqlstore persists the dynamic entity tables, stored layouts and user
// preferences in SQLite, PostgreSQL or MySQL through database/sql.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/platform/logging"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

const (
	layoutsTable     = "layouts"
	preferencesTable = "user_preferences"

	defaultMaxOpenConns = 5
	pingTimeout         = 5 * time.Second
)

// Config selects the database.
type Config struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements ports.TxTableStore, ports.LayoutStore and
// ports.PreferenceStore on one connection pool.
type Store struct {
	*tables

	db *sql.DB
	d  dialect
}

var (
	_ ports.TxTableStore    = (*Store)(nil)
	_ ports.LayoutStore     = (*Store)(nil)
	_ ports.PreferenceStore = (*Store)(nil)
)

// Open connects, applies migrations and returns a ready store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	d, err := lookupDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if d.name == DriverSQLite {
		dsn, err = sqliteDSN(dsn)
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}

	// SQLite allows a single writer, and an in-memory database lives only as
	// long as its one connection.
	if d.name == DriverSQLite {
		db.SetMaxOpenConns(1)
	} else {
		maxOpen := cfg.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = defaultMaxOpenConns
		}

		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(max(1, maxOpen/2))
		db.SetConnMaxLifetime(10 * time.Minute)
	}

	s := &Store{tables: &tables{q: db, d: d}, db: db, d: d}

	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func sqliteDSN(dsn string) (string, error) {
	if dsn == "" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		if dsn == "" {
			dsn = ":memory:"
		}

		return dsn, nil
	}

	if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
		return "", fmt.Errorf("create db directory: %w", err)
	}

	if strings.Contains(dsn, "?") {
		return dsn, nil
	}

	return dsn + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil
}

// Driver returns the dialect name.
func (s *Store) Driver() string { return s.d.name }

// Close closes the pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return s.db.PingContext(ctx)
}

// Checker exposes Ping to the readiness registry.
func (s *Store) Checker() ports.HealthChecker {
	return ports.NewChecker(s.d.name, s.Ping)
}

// WithinTx runs fn inside one transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx ports.TableStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, &tables{q: tx, d: s.d}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	migrations := make([]string, 0, len(domain.Entities)+2)

	for _, e := range domain.Entities {
		defs := make([]string, 0)

		for _, c := range e.BaseColumns() {
			if c.Name == domain.IDColumn {
				defs = append(defs, s.d.quote(c.Name)+" "+s.d.autoPK)
				continue
			}

			defs = append(defs, s.d.quote(c.Name)+" "+c.Type.SQLType())
		}

		migrations = append(migrations, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
			s.d.quote(string(e)), strings.Join(defs, ",\n\t")))
	}

	migrations = append(migrations,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			scope %s NOT NULL,
			owner %s NOT NULL,
			data %s NOT NULL,
			updated_at %s NOT NULL,
			PRIMARY KEY (scope, owner)
		)`, s.d.quote(layoutsTable), s.d.keyType, s.d.keyType, s.d.textType, s.d.keyType),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			user_id %s NOT NULL,
			name %s NOT NULL,
			value %s NOT NULL,
			updated_at %s NOT NULL,
			PRIMARY KEY (user_id, name)
		)`, s.d.quote(preferencesTable), s.d.keyType, s.d.keyType, s.d.textType, s.d.keyType),
	)

	logger := logging.FromContext(ctx)

	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return err
		}
	}

	logger.Debug("storage migrated", "driver", s.d.name, "statements", len(migrations))

	return nil
}

// replaceDocument writes the single row addressed by (keyA, keyB) with one
// upsert, so concurrent first writes of a key settle on the last one.
func (s *Store) replaceDocument(ctx context.Context, table, colA, colB, colData, keyA, keyB string, data []byte) error {
	query := s.d.upsert(table, []string{colA, colB}, []string{colData, "updated_at"})

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, query, keyA, keyB, string(data), now); err != nil {
		return fmt.Errorf("upsert %s: %w", table, err)
	}

	return nil
}

func (s *Store) loadDocument(ctx context.Context, table, colA, colB, colData, keyA, keyB string) ([]byte, bool, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s AND %s = %s",
		colData, s.d.quote(table), colA, s.d.bind(1), colB, s.d.bind(2))

	var data string

	err := s.db.QueryRowContext(ctx, query, keyA, keyB).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", table, err)
	}

	return []byte(data), true, nil
}

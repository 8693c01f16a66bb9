package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/jsamuelsen/quotation-service/internal/domain"

	_ "github.com/go-sql-driver/mysql" // mysql driver
	_ "github.com/lib/pq"              // postgres driver
	_ "modernc.org/sqlite"             // sqlite driver
)

// Supported drivers, matching config.Driver*.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// dialect captures the SQL differences between the three databases.
type dialect struct {
	name   string
	driver string

	// autoPK is the column definition of an auto-incrementing primary key.
	autoPK string
	// textType stores JSON documents.
	textType string
	// keyType stores short composite-key parts.
	keyType string
	// returning is true when INSERT ... RETURNING id is used instead of
	// LastInsertId.
	returning bool
}

var dialects = map[string]dialect{
	DriverSQLite: {
		name:     DriverSQLite,
		driver:   "sqlite",
		autoPK:   "INTEGER PRIMARY KEY AUTOINCREMENT",
		textType: "TEXT",
		keyType:  "TEXT",
	},
	DriverPostgres: {
		name:      DriverPostgres,
		driver:    "postgres",
		autoPK:    "BIGSERIAL PRIMARY KEY",
		textType:  "TEXT",
		keyType:   "VARCHAR(128)",
		returning: true,
	},
	DriverMySQL: {
		name:     DriverMySQL,
		driver:   "mysql",
		autoPK:   "BIGINT AUTO_INCREMENT PRIMARY KEY",
		textType: "LONGTEXT",
		keyType:  "VARCHAR(128)",
	},
}

func lookupDialect(name string) (dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported storage driver %q", name)
	}

	return d, nil
}

func (d dialect) quote(ident string) string {
	if d.name == DriverMySQL {
		return "`" + strings.ReplaceAll(ident, "`", "``") + "`"
	}

	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// bind returns the n-th (1-based) placeholder.
func (d dialect) bind(n int) string {
	if d.name == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}

	return "?"
}

func (d dialect) insertDefaults(table string) string {
	if d.name == DriverMySQL {
		return fmt.Sprintf("INSERT INTO %s () VALUES ()", d.quote(table))
	}

	return fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", d.quote(table))
}

// upsert inserts one row or, when the keys already exist, overwrites cols.
// The first len(keys) placeholders bind the keys, the rest bind cols.
func (d dialect) upsert(table string, keys, cols []string) string {
	all := append(slices.Clone(keys), cols...)

	binds := make([]string, len(all))
	for i := range all {
		binds[i] = d.bind(i + 1)
	}

	sets := make([]string, len(cols))
	for i, c := range cols {
		if d.name == DriverMySQL {
			sets[i] = fmt.Sprintf("%s = VALUES(%s)", c, c)
		} else {
			sets[i] = fmt.Sprintf("%s = excluded.%s", c, c)
		}
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.quote(table), strings.Join(all, ", "), strings.Join(binds, ", "))

	if d.name == DriverMySQL {
		return stmt + " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
	}

	return stmt + fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", strings.Join(keys, ", "), strings.Join(sets, ", "))
}

// columns reads a table's columns in ordinal order.
func (d dialect) columns(ctx context.Context, q querier, table string) ([]domain.Column, error) {
	var (
		rows *sql.Rows
		err  error
	)

	switch d.name {
	case DriverSQLite:
		rows, err = q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", d.quote(table)))
	case DriverPostgres:
		rows, err = q.QueryContext(ctx,
			`SELECT column_name, data_type FROM information_schema.columns
			 WHERE table_schema = current_schema() AND table_name = $1
			 ORDER BY ordinal_position`, table)
	default:
		rows, err = q.QueryContext(ctx,
			`SELECT COLUMN_NAME, DATA_TYPE FROM INFORMATION_SCHEMA.COLUMNS
			 WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
			 ORDER BY ORDINAL_POSITION`, table)
	}

	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []domain.Column

	for rows.Next() {
		var name, typ string

		if d.name == DriverSQLite {
			var (
				cid, notNull, pk int
				dflt             sql.NullString
			)

			if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
				return nil, fmt.Errorf("scanning column of %s: %w", table, err)
			}
		} else if err := rows.Scan(&name, &typ); err != nil {
			return nil, fmt.Errorf("scanning column of %s: %w", table, err)
		}

		cols = append(cols, domain.Column{Name: name, Type: domain.ColumnTypeFromSQL(typ)})
	}

	return cols, rows.Err()
}

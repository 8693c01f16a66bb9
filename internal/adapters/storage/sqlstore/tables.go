package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/platform/logging"
)

// tables implements ports.TableStore over a pool or a transaction.
type tables struct {
	q querier
	d dialect
}

func (t *tables) Columns(ctx context.Context, entity domain.Entity) ([]domain.Column, error) {
	return t.d.columns(ctx, t.q, string(entity))
}

func (t *tables) AddColumn(ctx context.Context, entity domain.Entity, name string, typ domain.ColumnType) (domain.Column, error) {
	name, err := domain.NormalizeColumnName(name)
	if err != nil {
		return domain.Column{}, err
	}

	cols, err := t.Columns(ctx, entity)
	if err != nil {
		return domain.Column{}, err
	}

	if hasColumn(cols, name) {
		return domain.Column{}, domain.NewDuplicateError(string(entity)+" column", name)
	}

	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", t.d.quote(string(entity)), t.d.quote(name), typ.SQLType())
	if _, err := t.q.ExecContext(ctx, stmt); err != nil {
		return domain.Column{}, fmt.Errorf("add column %s.%s: %w", entity, name, err)
	}

	logging.FromContext(ctx).Info("column added", "entity", entity, "column", name, "type", typ)

	return domain.Column{Name: name, Type: typ}, nil
}

func (t *tables) DeleteColumn(ctx context.Context, entity domain.Entity, name string) error {
	name, err := domain.NormalizeColumnName(name)
	if err != nil {
		return err
	}

	if entity.IsRequired(name) {
		return domain.NewForbiddenError("delete column", fmt.Sprintf("%s is a required %s column", name, entity))
	}

	cols, err := t.Columns(ctx, entity)
	if err != nil {
		return err
	}

	if !hasColumn(cols, name) {
		return domain.NewNotFoundError(string(entity)+" column", name)
	}

	stmt := fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", t.d.quote(string(entity)), t.d.quote(name))
	if _, err := t.q.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("drop column %s.%s: %w", entity, name, err)
	}

	logging.FromContext(ctx).Info("column deleted", "entity", entity, "column", name)

	return nil
}

func (t *tables) RenameColumn(ctx context.Context, entity domain.Entity, oldName, newName string) error {
	oldName, err := domain.NormalizeColumnName(oldName)
	if err != nil {
		return err
	}

	newName, err = domain.NormalizeColumnName(newName)
	if err != nil {
		return err
	}

	if entity.IsRequired(oldName) {
		return domain.NewForbiddenError("rename column", fmt.Sprintf("%s is a required %s column", oldName, entity))
	}

	if oldName == newName {
		return domain.NewValidationError("new_name", "must differ from the current name")
	}

	cols, err := t.Columns(ctx, entity)
	if err != nil {
		return err
	}

	if !hasColumn(cols, oldName) {
		return domain.NewNotFoundError(string(entity)+" column", oldName)
	}

	if hasColumn(cols, newName) {
		return domain.NewDuplicateError(string(entity)+" column", newName)
	}

	stmt := fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
		t.d.quote(string(entity)), t.d.quote(oldName), t.d.quote(newName))
	if _, err := t.q.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("rename column %s.%s: %w", entity, oldName, err)
	}

	logging.FromContext(ctx).Info("column renamed", "entity", entity, "from", oldName, "to", newName)

	return nil
}

func (t *tables) ListRows(ctx context.Context, entity domain.Entity) ([]domain.Row, error) {
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s", t.d.quote(string(entity)), t.d.quote(domain.IDColumn))
	return t.queryRows(ctx, query)
}

func (t *tables) FindRows(ctx context.Context, entity domain.Entity, column string, value any) ([]domain.Row, error) {
	if err := t.requireColumn(ctx, entity, column); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = %s ORDER BY %s",
		t.d.quote(string(entity)), t.d.quote(column), t.d.bind(1), t.d.quote(domain.IDColumn))

	return t.queryRows(ctx, query, dbValue(value))
}

func (t *tables) GetRow(ctx context.Context, entity domain.Entity, id int64) (domain.Row, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = %s",
		t.d.quote(string(entity)), t.d.quote(domain.IDColumn), t.d.bind(1))

	rows, err := t.queryRows(ctx, query, id)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, domain.NewNotFoundError(string(entity), strconv.FormatInt(id, 10))
	}

	return rows[0], nil
}

func (t *tables) CreateRow(ctx context.Context, entity domain.Entity, data domain.Row) (int64, error) {
	cols, err := t.Columns(ctx, entity)
	if err != nil {
		return 0, err
	}

	names, args := knownValues(cols, data)
	table := t.d.quote(string(entity))

	var query string
	if len(names) == 0 {
		query = t.d.insertDefaults(string(entity))
	} else {
		quoted := make([]string, len(names))
		binds := make([]string, len(names))

		for i, n := range names {
			quoted[i] = t.d.quote(n)
			binds[i] = t.d.bind(i + 1)
		}

		query = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(quoted, ", "), strings.Join(binds, ", "))
	}

	if t.d.returning {
		var id int64

		if err := t.q.QueryRowContext(ctx, query+" RETURNING "+t.d.quote(domain.IDColumn), args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("insert into %s: %w", entity, err)
		}

		return id, nil
	}

	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", entity, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", entity, err)
	}

	return id, nil
}

func (t *tables) UpdateRow(ctx context.Context, entity domain.Entity, id int64, data domain.Row) error {
	cols, err := t.Columns(ctx, entity)
	if err != nil {
		return err
	}

	names, args := knownValues(cols, data)
	if len(names) == 0 {
		_, err := t.GetRow(ctx, entity, id)
		return err
	}

	sets := make([]string, len(names))
	for i, n := range names {
		sets[i] = t.d.quote(n) + " = " + t.d.bind(i+1)
	}

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		t.d.quote(string(entity)), strings.Join(sets, ", "), t.d.quote(domain.IDColumn), t.d.bind(len(names)+1))

	return t.execOnRow(ctx, entity, id, query, append(args, id)...)
}

func (t *tables) UpdateField(ctx context.Context, entity domain.Entity, id int64, column string, value any) error {
	column = strings.ToLower(strings.TrimSpace(column))

	if column == domain.IDColumn {
		return domain.NewForbiddenError("update field", "id is not editable")
	}

	if err := t.requireColumn(ctx, entity, column); err != nil {
		return err
	}

	query := fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s = %s",
		t.d.quote(string(entity)), t.d.quote(column), t.d.bind(1), t.d.quote(domain.IDColumn), t.d.bind(2))

	return t.execOnRow(ctx, entity, id, query, dbValue(value), id)
}

func (t *tables) DeleteRow(ctx context.Context, entity domain.Entity, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		t.d.quote(string(entity)), t.d.quote(domain.IDColumn), t.d.bind(1))

	res, err := t.q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", entity, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NewNotFoundError(string(entity), strconv.FormatInt(id, 10))
	}

	return nil
}

func (t *tables) DeleteRows(ctx context.Context, entity domain.Entity, column string, value any) (int64, error) {
	if err := t.requireColumn(ctx, entity, column); err != nil {
		return 0, err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s", t.d.quote(string(entity)), t.d.quote(column), t.d.bind(1))

	res, err := t.q.ExecContext(ctx, query, dbValue(value))
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", entity, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", entity, err)
	}

	return n, nil
}

// execOnRow runs an UPDATE and maps "no row touched" to NotFound. MySQL
// reports zero affected rows when values are unchanged, so existence is
// confirmed before giving up.
func (t *tables) execOnRow(ctx context.Context, entity domain.Entity, id int64, query string, args ...any) error {
	res, err := t.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", entity, err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	_, err = t.GetRow(ctx, entity, id)

	return err
}

func (t *tables) requireColumn(ctx context.Context, entity domain.Entity, column string) error {
	cols, err := t.Columns(ctx, entity)
	if err != nil {
		return err
	}

	if !hasColumn(cols, column) {
		return domain.NewValidationError("column_name", fmt.Sprintf("unknown %s column %q", entity, column))
	}

	return nil
}

func (t *tables) queryRows(ctx context.Context, query string, args ...any) ([]domain.Row, error) {
	rows, err := t.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	out := make([]domain.Row, 0)

	for rows.Next() {
		values := make([]any, len(names))
		ptrs := make([]any, len(names))

		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		row := make(domain.Row, len(names))
		for i, n := range names {
			row[n] = formatValue(values[i])
		}

		if id, ok := domain.ToInt64(row[domain.IDColumn]); ok {
			row[domain.IDColumn] = id
		}

		out = append(out, row)
	}

	return out, rows.Err()
}

func hasColumn(cols []domain.Column, name string) bool {
	return slices.ContainsFunc(cols, func(c domain.Column) bool { return c.Name == name })
}

// knownValues picks the values of data that match existing columns, in
// schema order, skipping id.
func knownValues(cols []domain.Column, data domain.Row) ([]string, []any) {
	var (
		names []string
		args  []any
	)

	for _, c := range cols {
		if c.Name == domain.IDColumn {
			continue
		}

		if v, ok := data[c.Name]; ok {
			names = append(names, c.Name)
			args = append(args, dbValue(v))
		}
	}

	return names, args
}

// dbValue flattens JSON objects and arrays into text.
func dbValue(v any) any {
	switch v.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	case json.Number:
		return v.(json.Number).String()
	default:
		return v
	}
}

// formatValue converts driver values into JSON-friendly ones.
func formatValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	default:
		return val
	}
}

// isNoRows reports whether err means an empty result.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Package ports defines the interfaces the application layer depends on.
// Adapters under internal/adapters implement them.
//
// Every method takes a context first and reports failures with the domain
// error types (ErrNotFound, ErrConflict, ErrValidation, ErrForbidden).
package ports

import (
	"context"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

// TableStore persists the dynamic quotation, items and charges tables.
type TableStore interface {
	// Columns returns the table's columns in schema order.
	Columns(ctx context.Context, entity domain.Entity) ([]domain.Column, error)

	// AddColumn adds a nullable column. A duplicate name is a conflict.
	AddColumn(ctx context.Context, entity domain.Entity, name string, typ domain.ColumnType) (domain.Column, error)

	// DeleteColumn drops a column. Required columns are forbidden.
	DeleteColumn(ctx context.Context, entity domain.Entity, name string) error

	// RenameColumn renames a column. Required columns are forbidden and the
	// new name must be free.
	RenameColumn(ctx context.Context, entity domain.Entity, oldName, newName string) error

	// ListRows returns every row ordered by id.
	ListRows(ctx context.Context, entity domain.Entity) ([]domain.Row, error)

	// FindRows returns rows whose column equals value, ordered by id.
	FindRows(ctx context.Context, entity domain.Entity, column string, value any) ([]domain.Row, error)

	// GetRow returns one row or ErrNotFound.
	GetRow(ctx context.Context, entity domain.Entity, id int64) (domain.Row, error)

	// CreateRow inserts the known columns of data and returns the new id.
	// Unknown keys and id are ignored.
	CreateRow(ctx context.Context, entity domain.Entity, data domain.Row) (int64, error)

	// UpdateRow sets the known columns of data on row id. Unknown keys and
	// id are ignored.
	UpdateRow(ctx context.Context, entity domain.Entity, id int64, data domain.Row) error

	// UpdateField sets a single cell. Editing id is forbidden.
	UpdateField(ctx context.Context, entity domain.Entity, id int64, column string, value any) error

	// DeleteRow removes one row or returns ErrNotFound.
	DeleteRow(ctx context.Context, entity domain.Entity, id int64) error

	// DeleteRows removes rows whose column equals value and returns the count.
	DeleteRows(ctx context.Context, entity domain.Entity, column string, value any) (int64, error)
}

// TxTableStore is a TableStore that can run several operations atomically.
type TxTableStore interface {
	TableStore

	// WithinTx runs fn against a store bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TableStore) error) error
}

// LayoutStore keeps one opaque layout document per key. Last write wins.
type LayoutStore interface {
	// LoadLayout returns the stored document and whether one exists.
	LoadLayout(ctx context.Context, key layout.Key) ([]byte, bool, error)

	// SaveLayout replaces the document stored under key.
	SaveLayout(ctx context.Context, key layout.Key, data []byte) error

	// DeleteLayout removes the document. Deleting a missing key is not an error.
	DeleteLayout(ctx context.Context, key layout.Key) error
}

// PreferenceStore keeps small per-user settings as JSON values.
type PreferenceStore interface {
	GetPreference(ctx context.Context, userID, name string) ([]byte, bool, error)
	SetPreference(ctx context.Context, userID, name string, value []byte) error
}

package sqlstore

import (
	"context"
	"fmt"

	"github.com/jsamuelsen/quotation-service/internal/domain/layout"
)

// LoadLayout returns the stored layout document for key. ok is false when
// nothing was saved under it.
func (s *Store) LoadLayout(ctx context.Context, key layout.Key) ([]byte, bool, error) {
	if err := key.Validate(); err != nil {
		return nil, false, err
	}

	return s.loadDocument(ctx, layoutsTable, "scope", "owner", "data", string(key.Scope), key.Owner())
}

// SaveLayout stores data under key, replacing any previous document.
func (s *Store) SaveLayout(ctx context.Context, key layout.Key, data []byte) error {
	if err := key.Validate(); err != nil {
		return err
	}

	return s.replaceDocument(ctx, layoutsTable, "scope", "owner", "data", string(key.Scope), key.Owner(), data)
}

// DeleteLayout removes the layout under key. Deleting a missing key is not
// an error.
func (s *Store) DeleteLayout(ctx context.Context, key layout.Key) error {
	if err := key.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE scope = %s AND owner = %s", s.d.quote(layoutsTable), s.d.bind(1), s.d.bind(2))
	if _, err := s.db.ExecContext(ctx, query, string(key.Scope), key.Owner()); err != nil {
		return fmt.Errorf("delete layout %s: %w", key, err)
	}

	return nil
}

package sqlstore

import (
	"context"
	"strings"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// GetPreference returns the raw value of a user preference.
func (s *Store) GetPreference(ctx context.Context, userID, name string) ([]byte, bool, error) {
	return s.loadDocument(ctx, preferencesTable, "user_id", "name", "value", userID, name)
}

// SetPreference stores value under (userID, name), overwriting it.
func (s *Store) SetPreference(ctx context.Context, userID, name string, value []byte) error {
	if strings.TrimSpace(userID) == "" {
		return domain.NewValidationError("user_id", "is required")
	}

	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "is required")
	}

	return s.replaceDocument(ctx, preferencesTable, "user_id", "name", "value", userID, name, value)
}

package layout

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// Scope selects which stored layout a key addresses.
type Scope string

// Layout scopes.
const (
	ScopeQuotation Scope = "quotation"
	ScopeGlobal    Scope = "global"
)

// globalOwner is the single owner of the shared template.
const globalOwner = "default"

// Key addresses exactly one stored layout. There is no fallback between a
// quotation's layout and the global template.
type Key struct {
	Scope       Scope
	QuotationID string
}

// QuotationKey addresses the layout of one quotation.
func QuotationKey(id string) Key {
	return Key{Scope: ScopeQuotation, QuotationID: strings.TrimSpace(id)}
}

// GlobalKey addresses the shared template.
func GlobalKey() Key {
	return Key{Scope: ScopeGlobal}
}

// ParseScope validates a scope name. Empty means quotation.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeQuotation:
		return ScopeQuotation, nil
	case ScopeGlobal:
		return ScopeGlobal, nil
	default:
		return "", domain.NewValidationError("scope", fmt.Sprintf("unknown layout scope %q", s))
	}
}

// Validate checks that a quotation key names a quotation.
func (k Key) Validate() error {
	switch k.Scope {
	case ScopeGlobal:
		return nil
	case ScopeQuotation:
		if k.QuotationID == "" {
			return domain.NewValidationError("quotationId", "is required")
		}
		return nil
	default:
		return domain.NewValidationError("scope", fmt.Sprintf("unknown layout scope %q", k.Scope))
	}
}

// Owner is the storage owner id: the quotation id, or "default" for the
// global template.
func (k Key) Owner() string {
	if k.Scope == ScopeGlobal {
		return globalOwner
	}

	return k.QuotationID
}

// String renders the key as "<scope>:<owner>", used for cache keys and logs.
func (k Key) String() string {
	return string(k.Scope) + ":" + k.Owner()
}

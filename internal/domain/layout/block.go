// Package layout models the printable quotation layout built in the designer:
// the palette of block templates, the ordered canvas document, per-kind block
// properties, the pointer gesture controller and the JSON wire format.
//
// Everything here is synchronous and owned by a single editing session.
// Structural mutations addressed at unknown block ids are silent no-ops.
package layout

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// Kind is the immutable type of a block.
type Kind string

// Block kinds.
const (
	KindHeader  Kind = "header"
	KindField   Kind = "field"
	KindTable   Kind = "table"
	KindTotal   Kind = "total"
	KindDivider Kind = "divider"
	KindText    Kind = "text"
	KindImage   Kind = "image"
)

// Kinds lists every block kind in palette order.
var Kinds = []Kind{KindHeader, KindField, KindTable, KindTotal, KindDivider, KindText, KindImage}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if slices.Contains(Kinds, k) {
		return k, nil
	}

	return "", domain.NewValidationError("type", fmt.Sprintf("unknown block type %q", s))
}

// Category groups templates in the palette.
type Category string

// Template categories.
const (
	CategoryQuotationField Category = "quotation"
	CategorySpecial        Category = "special"
)

// Block is one placed element of the canvas.
type Block struct {
	InstanceID string
	Kind       Kind

	// TemplateID, Category and Label are copied from the template the block
	// was created from.
	TemplateID string
	Category   Category
	Label      string

	Props Properties

	// Extra holds keys the block's kind does not define. They round-trip
	// through storage untouched.
	Extra map[string]any
}

// Clone returns a deep copy of b.
func (b Block) Clone() Block {
	out := b
	if b.Props != nil {
		out.Props = b.Props.Clone()
	}

	if b.Extra != nil {
		out.Extra = maps.Clone(b.Extra)
	}

	return out
}

// Style returns the block's shared text style, or nil for dividers.
func (b Block) Style() *Style {
	if b.Props == nil {
		return nil
	}

	return b.Props.StyleRef()
}

// Image returns the image properties when b is an image block.
func (b Block) Image() (*ImageProps, bool) {
	p, ok := b.Props.(*ImageProps)
	return p, ok
}

// DisplayLabel is the label shown for the block. Field blocks carry their own
// editable label.
func (b Block) DisplayLabel() string {
	if f, ok := b.Props.(*FieldProps); ok {
		return f.Label
	}

	return b.Label
}

package layout

import (
	"fmt"
	"maps"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

const instanceIDPrefix = "canvas-"

// Identity keys are fixed at creation and cannot be changed through
// UpdateProperty.
const (
	KeyCanvasID = "canvasId"
	KeyType     = "type"
	KeyID       = "id"
	KeyCategory = "category"
)

func isIdentityKey(key string) bool {
	switch key {
	case KeyCanvasID, KeyType, KeyID, KeyCategory:
		return true
	}

	return false
}

// Document is the ordered list of blocks on the canvas plus the transient
// selection. It is not safe for concurrent use.
type Document struct {
	blocks   []Block
	selected string

	// issued remembers every id the document has held so that ids are never
	// handed out twice, even after removal.
	issued map[string]struct{}
	newID  func() string
}

// Option configures a Document.
type Option func(*Document)

// WithIDGenerator replaces the uuid-based instance id source.
func WithIDGenerator(gen func() string) Option {
	return func(d *Document) {
		d.newID = gen
	}
}

// NewDocument creates an empty document.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		issued: make(map[string]struct{}),
		newID: func() string {
			return instanceIDPrefix + uuid.NewString()
		},
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Len returns the number of blocks.
func (d *Document) Len() int { return len(d.blocks) }

// Blocks returns a deep copy of the blocks in order.
func (d *Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = b.Clone()
	}

	return out
}

// IndexOf returns the position of id, or -1.
func (d *Document) IndexOf(id string) int {
	for i := range d.blocks {
		if d.blocks[i].InstanceID == id {
			return i
		}
	}

	return -1
}

// Get returns a copy of the block with id.
func (d *Document) Get(id string) (Block, bool) {
	i := d.IndexOf(id)
	if i < 0 {
		return Block{}, false
	}

	return d.blocks[i].Clone(), true
}

// InsertFromTemplate places a new block built from t. It goes to *at when
// 0 <= *at <= Len(), otherwise to the end.
func (d *Document) InsertFromTemplate(t BlockTemplate, at *int) Block {
	b := Block{
		InstanceID: d.nextID(),
		Kind:       t.Kind,
		TemplateID: t.TemplateID,
		Category:   t.Category,
		Label:      t.Label,
		Props:      NewProperties(t.Kind, t.InitialValue),
	}

	if f, ok := b.Props.(*FieldProps); ok {
		f.Label = t.Label
		f.FieldKey = t.SourceFieldKey
		b.Label = ""
	}

	idx := len(d.blocks)
	if at != nil && *at >= 0 && *at <= len(d.blocks) {
		idx = *at
	}

	d.blocks = append(d.blocks, Block{})
	copy(d.blocks[idx+1:], d.blocks[idx:])
	d.blocks[idx] = b

	return b.Clone()
}

func (d *Document) nextID() string {
	for {
		id := d.newID()
		if _, used := d.issued[id]; used || id == "" {
			continue
		}

		d.issued[id] = struct{}{}

		return id
	}
}

// Reorder moves id to target, shifting the blocks in between. target is
// clamped into range.
func (d *Document) Reorder(id string, target int) bool {
	from := d.IndexOf(id)
	if from < 0 {
		return false
	}

	to := clamp(target, 0, len(d.blocks)-1)
	if from == to {
		return false
	}

	moved := d.blocks[from]
	if from < to {
		copy(d.blocks[from:to], d.blocks[from+1:to+1])
	} else {
		copy(d.blocks[to+1:from+1], d.blocks[to:from])
	}

	d.blocks[to] = moved

	return true
}

// Remove deletes id and clears the selection if it pointed at it.
func (d *Document) Remove(id string) bool {
	i := d.IndexOf(id)
	if i < 0 {
		return false
	}

	d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)

	if d.selected == id {
		d.selected = ""
	}

	return true
}

// UpdateProperty sets one property of block id. Keys the block's kind does
// not own land in Extra. Identity keys are ignored.
func (d *Document) UpdateProperty(id, key string, value any) bool {
	i := d.IndexOf(id)
	if i < 0 || key == "" || isIdentityKey(key) {
		return false
	}

	b := &d.blocks[i]

	if b.Props != nil && b.Props.Set(key, value) {
		return true
	}

	if key == PropLabel {
		b.Label = toString(value)
		return true
	}

	if b.Extra == nil {
		b.Extra = make(map[string]any)
	}

	b.Extra[key] = value

	return true
}

// Select makes id the only selected block.
func (d *Document) Select(id string) bool {
	if d.IndexOf(id) < 0 {
		return false
	}

	d.selected = id

	return true
}

// ClearSelection drops the selection.
func (d *Document) ClearSelection() { d.selected = "" }

// SelectedID returns the selected block id or "".
func (d *Document) SelectedID() string { return d.selected }

// Selected returns the selected block.
func (d *Document) Selected() (Block, bool) {
	if d.selected == "" {
		return Block{}, false
	}

	return d.Get(d.selected)
}

// Replace swaps the whole content, as done when a stored layout is loaded.
// The selection is cleared.
func (d *Document) Replace(blocks []Block) error {
	seen := make(map[string]struct{}, len(blocks))
	fields := map[string]string{}

	for i, b := range blocks {
		key := fmt.Sprintf("[%d].%s", i, KeyCanvasID)

		switch {
		case b.InstanceID == "":
			fields[key] = "is required"
		case hasKey(seen, b.InstanceID):
			fields[key] = fmt.Sprintf("duplicate id %q", b.InstanceID)
		}

		seen[b.InstanceID] = struct{}{}

		if b.Props != nil && b.Props.Kind() != b.Kind {
			fields[fmt.Sprintf("[%d].%s", i, KeyType)] = "does not match properties"
		}
	}

	if len(fields) > 0 {
		return domain.NewFieldsValidationError(fields)
	}

	d.blocks = make([]Block, len(blocks))
	for i, b := range blocks {
		if b.Props == nil {
			b.Props = NewProperties(b.Kind, "")
		}

		d.blocks[i] = b.Clone()
	}

	maps.Copy(d.issued, seen)
	d.selected = ""

	return nil
}

func hasKey(m map[string]struct{}, k string) bool {
	_, ok := m[k]
	return ok
}

package layout

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// Encode renders blocks as the flat JSON array the browser editor reads.
func Encode(blocks []Block) ([]byte, error) {
	return json.Marshal(ToWire(blocks))
}

// ToWire converts blocks into flat objects. Extra keys are written first so
// typed properties always win on a name clash.
func ToWire(blocks []Block) []map[string]any {
	out := make([]map[string]any, len(blocks))
	for i, b := range blocks {
		out[i] = WireBlock(b)
	}

	return out
}

// WireBlock converts one block.
func WireBlock(b Block) map[string]any {
	m := make(map[string]any, len(b.Extra)+12)
	for k, v := range b.Extra {
		m[k] = v
	}

	if b.Props != nil {
		for k, v := range b.Props.Fields() {
			m[k] = v
		}
	}

	m[KeyCanvasID] = b.InstanceID
	m[KeyType] = string(b.Kind)
	m[KeyID] = b.TemplateID
	m[KeyCategory] = string(b.Category)
	m[PropLabel] = b.DisplayLabel()

	return m
}

// Decode parses a stored layout. Empty input and JSON null decode to no
// blocks. Ranges are clamped; unknown types, missing or duplicate canvas ids
// and non data URI images are validation errors.
func Decode(data []byte) ([]Block, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.NewValidationError("layout", "must be a JSON array of blocks: "+err.Error())
	}

	return FromWire(raw)
}

// FromWire converts flat objects into blocks.
func FromWire(raw []map[string]any) ([]Block, error) {
	blocks := make([]Block, 0, len(raw))
	fields := map[string]string{}
	seen := make(map[string]struct{}, len(raw))

	for i, obj := range raw {
		b, problems := blockFromWire(obj)

		if b.InstanceID != "" {
			if hasKey(seen, b.InstanceID) {
				problems[KeyCanvasID] = fmt.Sprintf("duplicate id %q", b.InstanceID)
			}

			seen[b.InstanceID] = struct{}{}
		}

		for k, msg := range problems {
			fields[fmt.Sprintf("[%d].%s", i, k)] = msg
		}

		blocks = append(blocks, b)
	}

	if len(fields) > 0 {
		return nil, domain.NewFieldsValidationError(fields)
	}

	return blocks, nil
}

func blockFromWire(obj map[string]any) (Block, map[string]string) {
	problems := map[string]string{}

	var b Block

	id, _ := obj[KeyCanvasID].(string)
	if id == "" {
		problems[KeyCanvasID] = "is required"
	}

	b.InstanceID = id

	typ, _ := obj[KeyType].(string)

	kind, err := ParseKind(typ)
	if err != nil {
		problems[KeyType] = fmt.Sprintf("unknown block type %q", typ)
		return b, problems
	}

	b.Kind = kind
	b.TemplateID = toString(obj[KeyID])
	b.Category = Category(toString(obj[KeyCategory]))
	b.Props = NewProperties(kind, "")

	if kind != KindField {
		b.Label = toString(obj[PropLabel])
	}

	for k, v := range obj {
		switch k {
		case KeyCanvasID, KeyType, KeyID, KeyCategory:
			continue
		}

		if kind == KindImage && k == PropValue {
			if err := CheckImageValue(v); err != nil {
				problems[k] = "must be empty or a data URI"
				continue
			}
		}

		if b.Props.Set(k, v) || k == PropLabel {
			continue
		}

		if b.Extra == nil {
			b.Extra = make(map[string]any)
		}

		b.Extra[k] = v
	}

	return b, problems
}

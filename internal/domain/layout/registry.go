package layout

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// Special template ids.
const (
	TemplateHeader  = "header-title"
	TemplateTable   = "items-table"
	TemplateTotal   = "total-cost"
	TemplateDivider = "divider"
	TemplateText    = "text-block"
	TemplateImage   = "image-block"

	fieldTemplatePrefix = "quotation-"
	emptyFieldValue     = "-"
)

// BlockTemplate is a palette entry. Templates are never mutated by placing them.
type BlockTemplate struct {
	TemplateID     string   `json:"id"`
	Kind           Kind     `json:"type"`
	Label          string   `json:"label"`
	Category       Category `json:"category"`
	SourceFieldKey string   `json:"fieldKey,omitempty"`
	InitialValue   string   `json:"value,omitempty"`
}

var specialTemplates = []BlockTemplate{
	{TemplateID: TemplateHeader, Kind: KindHeader, Label: "Header Title", Category: CategorySpecial, InitialValue: "QUOTATION"},
	{TemplateID: TemplateTable, Kind: KindTable, Label: "Items Table", Category: CategorySpecial},
	{TemplateID: TemplateTotal, Kind: KindTotal, Label: "Total Cost", Category: CategorySpecial},
	{TemplateID: TemplateDivider, Kind: KindDivider, Label: "Divider", Category: CategorySpecial},
	{TemplateID: TemplateText, Kind: KindText, Label: "Text Block", Category: CategorySpecial, InitialValue: "Enter your custom text here..."},
	{TemplateID: TemplateImage, Kind: KindImage, Label: "Image", Category: CategorySpecial},
}

// SpecialTemplates returns the fixed, record-independent templates.
func SpecialTemplates() []BlockTemplate {
	return append([]BlockTemplate(nil), specialTemplates...)
}

// BuildTemplates returns the palette for a quotation record: one field
// template per column except id, in key order, then the special templates.
func BuildTemplates(record map[string]any) []BlockTemplate {
	keys := make([]string, 0, len(record))
	for k := range record {
		if k != domain.IDColumn {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)

	out := make([]BlockTemplate, 0, len(keys)+len(specialTemplates))
	for _, k := range keys {
		out = append(out, BlockTemplate{
			TemplateID:     fieldTemplatePrefix + k,
			Kind:           KindField,
			Label:          FormatLabel(k),
			Category:       CategoryQuotationField,
			SourceFieldKey: k,
			InitialValue:   displayValue(record[k]),
		})
	}

	return append(out, specialTemplates...)
}

// FindTemplate looks a template up by id.
func FindTemplate(templates []BlockTemplate, id string) (BlockTemplate, bool) {
	for _, t := range templates {
		if t.TemplateID == id {
			return t, true
		}
	}

	return BlockTemplate{}, false
}

// FormatLabel turns a column key like "customer_name" into "Customer Name".
func FormatLabel(key string) string {
	parts := strings.Split(key, "_")
	words := parts[:0]

	for _, p := range parts {
		if p == "" {
			continue
		}

		words = append(words, strings.ToUpper(p[:1])+p[1:])
	}

	return strings.Join(words, " ")
}

func displayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return emptyFieldValue
	case string:
		if t == "" {
			return emptyFieldValue
		}
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// Property bounds and defaults.
const (
	MinFontSize     = 8
	MaxFontSize     = 72
	DefaultFontSize = 14
	HeaderFontSize  = 24

	MinImageWidth      = 50
	MaxImageWidth      = 700
	DefaultImageWidth  = 200
	MinImageHeight     = 50
	MaxImageHeight     = 500
	DefaultImageHeight = 100

	DefaultColor = "#000000"
)

// Property keys as they appear on the wire and in UpdateProperty.
const (
	PropFontSize   = "fontSize"
	PropFontWeight = "fontWeight"
	PropTextAlign  = "textAlign"
	PropColor      = "color"
	PropValue      = "value"
	PropLabel      = "label"
	PropFieldKey   = "fieldKey"
	PropWidth      = "width"
	PropHeight     = "height"
	PropObjectFit  = "objectFit"
	PropImageX     = "imageX"
	PropImageY     = "imageY"
)

// ErrInvalidImage is returned when an image value is neither empty nor a data URI.
var ErrInvalidImage = fmt.Errorf("%w: image value must be empty or a data URI", domain.ErrValidation)

// FontWeight values.
const (
	WeightNormal   = "normal"
	WeightBold     = "bold"
	WeightSemiBold = "600"
	WeightLight    = "300"
)

// TextAlign values.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// ObjectFit values.
const (
	FitContain   = "contain"
	FitCover     = "cover"
	FitFill      = "fill"
	FitScaleDown = "scale-down"
)

var (
	fontWeights = []string{WeightNormal, WeightBold, WeightSemiBold, WeightLight}
	textAligns  = []string{AlignLeft, AlignCenter, AlignRight}
	objectFits  = []string{FitContain, FitCover, FitFill, FitScaleDown}

	colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// Properties is the kind-specific property set of a block.
type Properties interface {
	Kind() Kind
	// StyleRef returns the shared style, or nil when the kind has none.
	StyleRef() *Style
	// Set applies one property and reports whether the kind owns key.
	// Out-of-range values are clamped and invalid enums fall back to the
	// kind's default.
	Set(key string, value any) bool
	// Fields returns the wire representation of the properties.
	Fields() map[string]any
	Clone() Properties
}

// Style is shared by every kind except divider.
type Style struct {
	FontSize   int
	FontWeight string
	TextAlign  string
	Color      string
}

// DefaultStyle returns the style a fresh block of kind starts with.
func DefaultStyle(kind Kind) Style {
	s := Style{
		FontSize:   DefaultFontSize,
		FontWeight: WeightNormal,
		TextAlign:  AlignLeft,
		Color:      DefaultColor,
	}

	switch kind {
	case KindHeader:
		s.FontSize = HeaderFontSize
		s.FontWeight = WeightBold
	case KindImage:
		s.TextAlign = AlignCenter
	}

	return s
}

func (s *Style) set(kind Kind, key string, value any) bool {
	def := DefaultStyle(kind)

	switch key {
	case PropFontSize:
		if n, ok := toInt(value); ok {
			s.FontSize = clamp(n, MinFontSize, MaxFontSize)
		} else {
			s.FontSize = def.FontSize
		}
	case PropFontWeight:
		s.FontWeight = oneOf(toString(value), fontWeights, def.FontWeight)
	case PropTextAlign:
		s.TextAlign = oneOf(toString(value), textAligns, def.TextAlign)
	case PropColor:
		c := strings.TrimSpace(toString(value))
		if colorPattern.MatchString(c) {
			s.Color = c
		} else {
			s.Color = def.Color
		}
	default:
		return false
	}

	return true
}

func (s Style) fields(into map[string]any) {
	into[PropFontSize] = s.FontSize
	into[PropFontWeight] = s.FontWeight
	into[PropTextAlign] = s.TextAlign
	into[PropColor] = s.Color
}

// TextProps backs header and text blocks.
type TextProps struct {
	Style Style
	Value string

	kind Kind
}

func (p *TextProps) Kind() Kind {
	if p.kind == "" {
		return KindText
	}

	return p.kind
}

func (p *TextProps) StyleRef() *Style { return &p.Style }

func (p *TextProps) Set(key string, value any) bool {
	if key == PropValue {
		p.Value = toString(value)
		return true
	}

	return p.Style.set(p.Kind(), key, value)
}

func (p *TextProps) Fields() map[string]any {
	m := map[string]any{PropValue: p.Value}
	p.Style.fields(m)

	return m
}

func (p *TextProps) Clone() Properties {
	c := *p
	return &c
}

// FieldProps backs a quotation field block. Value is a snapshot taken when
// the block was placed.
type FieldProps struct {
	Style    Style
	Label    string
	Value    string
	FieldKey string
}

func (p *FieldProps) Kind() Kind       { return KindField }
func (p *FieldProps) StyleRef() *Style { return &p.Style }

func (p *FieldProps) Set(key string, value any) bool {
	switch key {
	case PropLabel:
		p.Label = toString(value)
	case PropValue:
		p.Value = toString(value)
	case PropFieldKey:
		p.FieldKey = toString(value)
	default:
		return p.Style.set(KindField, key, value)
	}

	return true
}

func (p *FieldProps) Fields() map[string]any {
	m := map[string]any{
		PropLabel:    p.Label,
		PropValue:    p.Value,
		PropFieldKey: p.FieldKey,
	}
	p.Style.fields(m)

	return m
}

func (p *FieldProps) Clone() Properties {
	c := *p
	return &c
}

// ImageProps backs an image block. ImageX and ImageY offset the picture
// inside its box and are only adjusted while the block is selected.
type ImageProps struct {
	Style     Style
	Value     string
	Width     int
	Height    int
	ObjectFit string
	ImageX    int
	ImageY    int
}

func (p *ImageProps) Kind() Kind       { return KindImage }
func (p *ImageProps) StyleRef() *Style { return &p.Style }

// Set ignores image values that are not data URIs.
func (p *ImageProps) Set(key string, value any) bool {
	switch key {
	case PropValue:
		if s := toString(value); ValidImageValue(s) {
			p.Value = s
		}
	case PropWidth:
		if n, ok := toInt(value); ok {
			p.Width = clamp(n, MinImageWidth, MaxImageWidth)
		}
	case PropHeight:
		if n, ok := toInt(value); ok {
			p.Height = clamp(n, MinImageHeight, MaxImageHeight)
		}
	case PropObjectFit:
		p.ObjectFit = oneOf(toString(value), objectFits, FitContain)
	case PropImageX:
		if n, ok := toInt(value); ok {
			p.ImageX = n
		}
	case PropImageY:
		if n, ok := toInt(value); ok {
			p.ImageY = n
		}
	default:
		return p.Style.set(KindImage, key, value)
	}

	return true
}

func (p *ImageProps) Fields() map[string]any {
	m := map[string]any{
		PropValue:     p.Value,
		PropWidth:     p.Width,
		PropHeight:    p.Height,
		PropObjectFit: p.ObjectFit,
		PropImageX:    p.ImageX,
		PropImageY:    p.ImageY,
	}
	p.Style.fields(m)

	return m
}

func (p *ImageProps) Clone() Properties {
	c := *p
	return &c
}

// HasImage reports whether an image has been uploaded.
func (p *ImageProps) HasImage() bool { return p.Value != "" }

// TableProps backs the items table. Rows are resolved at render time.
type TableProps struct {
	Style Style
}

func (p *TableProps) Kind() Kind       { return KindTable }
func (p *TableProps) StyleRef() *Style { return &p.Style }

func (p *TableProps) Set(key string, value any) bool {
	return p.Style.set(KindTable, key, value)
}

func (p *TableProps) Fields() map[string]any {
	m := map[string]any{}
	p.Style.fields(m)

	return m
}

func (p *TableProps) Clone() Properties {
	c := *p
	return &c
}

// TotalProps backs the grand total line. The amount is computed at render time.
type TotalProps struct {
	Style Style
}

func (p *TotalProps) Kind() Kind       { return KindTotal }
func (p *TotalProps) StyleRef() *Style { return &p.Style }

func (p *TotalProps) Set(key string, value any) bool {
	return p.Style.set(KindTotal, key, value)
}

func (p *TotalProps) Fields() map[string]any {
	m := map[string]any{}
	p.Style.fields(m)

	return m
}

func (p *TotalProps) Clone() Properties {
	c := *p
	return &c
}

// DividerProps has no properties.
type DividerProps struct{}

func (p *DividerProps) Kind() Kind { return KindDivider }
func (p *DividerProps) StyleRef() *Style { return nil }
func (p *DividerProps) Set(string, any) bool { return false }
func (p *DividerProps) Fields() map[string]any { return map[string]any{} }
func (p *DividerProps) Clone() Properties { return &DividerProps{} }

// NewProperties returns the default properties for kind. initial seeds the
// value of text, header and field blocks.
func NewProperties(kind Kind, initial string) Properties {
	style := DefaultStyle(kind)

	switch kind {
	case KindHeader, KindText:
		return &TextProps{Style: style, Value: initial, kind: kind}
	case KindField:
		return &FieldProps{Style: style, Value: initial}
	case KindImage:
		return &ImageProps{
			Style:     style,
			Width:     DefaultImageWidth,
			Height:    DefaultImageHeight,
			ObjectFit: FitContain,
		}
	case KindTable:
		return &TableProps{Style: style}
	case KindTotal:
		return &TotalProps{Style: style}
	default:
		return &DividerProps{}
	}
}

// ValidImageValue reports whether s may be stored as an image payload.
func ValidImageValue(s string) bool {
	return s == "" || strings.HasPrefix(s, "data:")
}

// CheckImageValue returns ErrInvalidImage for values UpdateProperty would drop.
func CheckImageValue(value any) error {
	if ValidImageValue(toString(value)) {
		return nil
	}

	return ErrInvalidImage
}

// IsInvalidImage reports whether err is an image payload rejection.
func IsInvalidImage(err error) bool {
	return errors.Is(err, ErrInvalidImage)
}

// PropertySpec describes one editing control for a kind.
type PropertySpec struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Min     int      `json:"min,omitempty"`
	Max     int      `json:"max,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Property control types.
const (
	SpecNumber = "number"
	SpecEnum   = "enum"
	SpecColor  = "color"
	SpecText   = "text"
	SpecImage  = "image"
)

var styleSpecs = []PropertySpec{
	{Name: PropFontSize, Type: SpecNumber, Min: MinFontSize, Max: MaxFontSize},
	{Name: PropFontWeight, Type: SpecEnum, Options: fontWeights},
	{Name: PropTextAlign, Type: SpecEnum, Options: textAligns},
	{Name: PropColor, Type: SpecColor},
}

// EditableProperties lists the controls the editor shows for kind.
func EditableProperties(kind Kind) []PropertySpec {
	var specs []PropertySpec

	switch kind {
	case KindHeader, KindText:
		specs = append(specs, PropertySpec{Name: PropValue, Type: SpecText})
		specs = append(specs, styleSpecs...)
	case KindField:
		specs = append(specs,
			PropertySpec{Name: PropLabel, Type: SpecText},
			PropertySpec{Name: PropValue, Type: SpecText},
		)
		specs = append(specs, styleSpecs...)
	case KindImage:
		specs = append(specs,
			PropertySpec{Name: PropValue, Type: SpecImage},
			PropertySpec{Name: PropWidth, Type: SpecNumber, Min: MinImageWidth, Max: MaxImageWidth},
			PropertySpec{Name: PropHeight, Type: SpecNumber, Min: MinImageHeight, Max: MaxImageHeight},
			PropertySpec{Name: PropObjectFit, Type: SpecEnum, Options: objectFits},
			PropertySpec{Name: PropTextAlign, Type: SpecEnum, Options: textAligns},
		)
	case KindTable, KindTotal:
		specs = append(specs, styleSpecs...)
	}

	for i := range specs {
		specs[i].Options = append([]string(nil), specs[i].Options...)
	}

	return specs
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func oneOf(v string, allowed []string, def string) string {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(a, v) {
			return a
		}
	}

	return def
}

// toInt accepts JSON numbers, Go integers and numeric strings such as "24"
// or "24px".
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(max(math.MinInt32, min(n, math.MaxInt32))), true
	case float64:
		if math.IsNaN(n) {
			return 0, false
		}
		// Saturate before converting: out-of-range floats do not convert
		// to a predictable int.
		return int(math.Round(max(math.MinInt32, min(n, math.MaxInt32)))), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return toInt(f)
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(n), "px")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return toInt(f)
	default:
		return 0, false
	}
}

func toString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

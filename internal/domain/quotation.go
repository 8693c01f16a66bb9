package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// IDColumn is the primary key column every entity table carries.
const IDColumn = "id"

// Entity names one of the dynamic tables.
type Entity string

// Known entities.
const (
	EntityQuotation Entity = "quotation"
	EntityItems     Entity = "items"
	EntityCharges   Entity = "charges"
)

// Entities lists every entity in a stable order.
var Entities = []Entity{EntityQuotation, EntityItems, EntityCharges}

// ParseEntity validates an entity name taken from a route or flag.
func ParseEntity(name string) (Entity, error) {
	e := Entity(strings.ToLower(strings.TrimSpace(name)))
	if slices.Contains(Entities, e) {
		return e, nil
	}

	return "", NewValidationError("entity", fmt.Sprintf("unknown entity %q", name))
}

// IDField is the request and response field naming a row id of the entity:
// quotation_id, item_id or charge_id.
func (e Entity) IDField() string {
	switch e {
	case EntityItems:
		return "item_id"
	case EntityCharges:
		return "charge_id"
	default:
		return "quotation_id"
	}
}

// BaseColumns returns the columns every fresh table starts with, in order.
func (e Entity) BaseColumns() []Column {
	switch e {
	case EntityQuotation:
		return stringColumns(
			"customer_name", "contact_person", "designation", "department",
			"mobile_number", "email_id", "customer_code", "gst_details",
			"enquiry_ref", "enquiry_date", "payment_terms", "ot_charges",
			"delivery_period", "place_of_work", "terms_condition_1",
			"terms_condition_2", "no_person_visiting_1", "no_person_visiting_2",
		)
	case EntityItems:
		cols := []Column{{Name: IDColumn, Type: ColumnInteger}, {Name: "quotation_id", Type: ColumnInteger}}
		return append(cols, stringColumns(
			"sample_activity", "specification", "hsn_sac_code", "qty", "unit",
			"unit_rate", "total_cost",
		)[1:]...)
	case EntityCharges:
		return stringColumns("name", "specification", "charge_amount")
	default:
		return nil
	}
}

func stringColumns(names ...string) []Column {
	cols := make([]Column, 0, len(names)+1)
	cols = append(cols, Column{Name: IDColumn, Type: ColumnInteger})

	for _, n := range names {
		cols = append(cols, Column{Name: n, Type: ColumnString})
	}

	return cols
}

var requiredColumns = map[Entity][]string{
	EntityQuotation: {IDColumn, "customer_name", "enquiry_ref", "mobile_number"},
	EntityItems: {
		IDColumn, "quotation_id", "sample_activity", "specification",
		"hsn_sac_code", "unit", "unit_rate", "total_cost",
	},
	EntityCharges: {IDColumn, "name", "charge_amount", "specification"},
}

// RequiredColumns returns the columns that may not be deleted or renamed.
func (e Entity) RequiredColumns() []string {
	return slices.Clone(requiredColumns[e])
}

// IsRequired reports whether column belongs to the entity's protected set.
func (e Entity) IsRequired(column string) bool {
	return slices.Contains(requiredColumns[e], column)
}

// ColumnType is the declared type of a dynamic column.
type ColumnType string

// Supported column types.
const (
	ColumnString  ColumnType = "string"
	ColumnInteger ColumnType = "integer"
	ColumnBoolean ColumnType = "boolean"
	ColumnFloat   ColumnType = "float"
	ColumnDate    ColumnType = "date"
)

var columnTypeAliases = map[string]ColumnType{
	"string":  ColumnString,
	"text":    ColumnString,
	"varchar": ColumnString,
	"int":     ColumnInteger,
	"integer": ColumnInteger,
	"bool":    ColumnBoolean,
	"boolean": ColumnBoolean,
	"float":   ColumnFloat,
	"real":    ColumnFloat,
	"number":  ColumnFloat,
	"date":    ColumnDate,
}

// ParseColumnType resolves a user-supplied type name. Empty means string.
func ParseColumnType(name string) (ColumnType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ColumnString, nil
	}

	if t, ok := columnTypeAliases[name]; ok {
		return t, nil
	}

	return "", NewValidationError("column_type", fmt.Sprintf("unsupported column type %q", name))
}

// SQLType returns the portable SQL type used when adding the column.
func (t ColumnType) SQLType() string {
	switch t {
	case ColumnInteger:
		return "INTEGER"
	case ColumnBoolean:
		return "BOOLEAN"
	case ColumnFloat:
		return "REAL"
	case ColumnDate:
		return "DATE"
	default:
		return "VARCHAR(255)"
	}
}

// ColumnTypeFromSQL maps a database-reported type back to a column type.
func ColumnTypeFromSQL(sqlType string) ColumnType {
	s := strings.ToUpper(sqlType)

	switch {
	case strings.Contains(s, "INT"):
		return ColumnInteger
	case strings.Contains(s, "BOOL"), s == "TINYINT(1)":
		return ColumnBoolean
	case strings.Contains(s, "REAL"), strings.Contains(s, "FLOAT"),
		strings.Contains(s, "DOUBLE"), strings.Contains(s, "NUMERIC"), strings.Contains(s, "DECIMAL"):
		return ColumnFloat
	case strings.Contains(s, "DATE"), strings.Contains(s, "TIME"):
		return ColumnDate
	default:
		return ColumnString
	}
}

// Column describes one column of a dynamic table.
type Column struct {
	Name string     `json:"column_name"`
	Type ColumnType `json:"data_type"`
}

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// NormalizeColumnName trims and lower-cases name and checks it is a plain
// identifier safe to splice into DDL.
func NormalizeColumnName(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "", NewValidationError("column_name", "column name is required")
	}

	if len(n) > 63 || !identifierPattern.MatchString(n) {
		return "", NewValidationError("column_name",
			fmt.Sprintf("%q must start with a letter or underscore and contain only letters, digits and underscores", name))
	}

	return n, nil
}

// Row is one record of a dynamic table keyed by column name.
type Row map[string]any

// ID returns the row's primary key, or 0 when absent or malformed.
func (r Row) ID() int64 {
	id, ok := ToInt64(r[IDColumn])
	if !ok {
		return 0
	}

	return id
}

// ToInt64 converts the numeric shapes produced by JSON decoding and SQL
// drivers into an int64.
func ToInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i, err == nil
	case []byte:
		i, err := strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// ToFloat parses numbers and numeric strings. Anything else is not a number.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case []byte:
		return ToFloat(string(n))
	default:
		return 0, false
	}
}

// ItemsTotal sums total_cost over items. Non-numeric totals count as zero.
func ItemsTotal(items []Row) float64 {
	var sum float64

	for _, item := range items {
		if f, ok := ToFloat(item["total_cost"]); ok {
			sum += f
		}
	}

	return sum
}

// LineTotal returns qty * unit_rate when both parse as numbers.
func LineTotal(item Row) (float64, bool) {
	qty, ok := ToFloat(item["qty"])
	if !ok {
		return 0, false
	}

	rate, ok := ToFloat(item["unit_rate"])
	if !ok {
		return 0, false
	}

	return qty * rate, true
}

// FillLineTotal sets total_cost from qty and unit_rate when the item has no
// total of its own.
func FillLineTotal(item Row) {
	if v, ok := item["total_cost"]; ok && v != nil && v != "" {
		return
	}

	if total, ok := LineTotal(item); ok {
		item["total_cost"] = strconv.FormatFloat(total, 'f', 2, 64)
	}
}

// FormatAmount renders a money value with two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

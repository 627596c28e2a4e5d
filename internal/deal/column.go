package deal

import (
	"fmt"
	"slices"
)

// MinColumnWidth is the narrowest a column may be resized to, in pixels.
const MinColumnWidth = 80

// DisplayType selects how a column renders and edits its cells.
type DisplayType string

// Display type constants.
const (
	TypeText       DisplayType = "text"
	TypeNumber     DisplayType = "number"
	TypeDate       DisplayType = "date"
	TypeStatus     DisplayType = "status"
	TypeCurrency   DisplayType = "currency"
	TypePercentage DisplayType = "percentage"
)

var displayTypes = []DisplayType{TypeText, TypeNumber, TypeDate, TypeStatus, TypeCurrency, TypePercentage}

// Valid reports whether t is a known display type.
func (t DisplayType) Valid() bool {
	return slices.Contains(displayTypes, t)
}

// ColumnConfig describes one displayable column. The order of a []ColumnConfig
// is the display order.
type ColumnConfig struct {
	Key        Field       `json:"key"`
	Label      string      `json:"label"`
	Visible    bool        `json:"visible"`
	Width      int         `json:"width"`
	Sortable   bool        `json:"sortable"`
	Filterable bool        `json:"filterable"`
	Type       DisplayType `json:"type"`
}

// DefaultColumns returns the stock column layout. Source and Created start hidden.
func DefaultColumns() []ColumnConfig {
	return []ColumnConfig{
		{Key: FieldDealName, Label: "Deal Name", Visible: true, Width: 200, Sortable: true, Filterable: true, Type: TypeText},
		{Key: FieldCompany, Label: "Company", Visible: true, Width: 180, Sortable: true, Filterable: true, Type: TypeText},
		{Key: FieldOwner, Label: "Owner", Visible: true, Width: 150, Sortable: true, Filterable: true, Type: TypeText},
		{Key: FieldStatus, Label: "Status", Visible: true, Width: 120, Sortable: true, Filterable: true, Type: TypeStatus},
		{Key: FieldPriority, Label: "Priority", Visible: true, Width: 100, Sortable: true, Filterable: true, Type: TypeStatus},
		{Key: FieldAmount, Label: "Amount", Visible: true, Width: 120, Sortable: true, Filterable: true, Type: TypeCurrency},
		{Key: FieldProbability, Label: "Probability", Visible: true, Width: 100, Sortable: true, Filterable: false, Type: TypePercentage},
		{Key: FieldCloseDate, Label: "Close Date", Visible: true, Width: 120, Sortable: true, Filterable: true, Type: TypeDate},
		{Key: FieldLastActivity, Label: "Last Activity", Visible: true, Width: 130, Sortable: true, Filterable: false, Type: TypeDate},
		{Key: FieldSource, Label: "Source", Visible: false, Width: 120, Sortable: true, Filterable: true, Type: TypeText},
		{Key: FieldCreatedDate, Label: "Created", Visible: false, Width: 120, Sortable: true, Filterable: false, Type: TypeDate},
	}
}

// ValidateColumns rejects empty layouts, unknown or duplicate keys and unknown
// display types.
func ValidateColumns(cols []ColumnConfig) error {
	if len(cols) == 0 {
		return ErrNoColumns
	}

	seen := make(map[Field]struct{}, len(cols))

	for _, c := range cols {
		if !c.Key.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownField, c.Key)
		}

		if _, dup := seen[c.Key]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateColumn, c.Key)
		}

		seen[c.Key] = struct{}{}

		if !c.Type.Valid() {
			return fmt.Errorf("%w: %q (column %s)", ErrInvalidDisplayType, c.Type, c.Key)
		}
	}

	return nil
}

// NormalizeColumns returns a copy of cols with widths clamped to MinColumnWidth.
func NormalizeColumns(cols []ColumnConfig) []ColumnConfig {
	out := slices.Clone(cols)
	for i := range out {
		out[i].Width = max(out[i].Width, MinColumnWidth)
	}

	return out
}

// VisibleColumns returns the visible subset of cols in order.
func VisibleColumns(cols []ColumnConfig) []ColumnConfig {
	out := make([]ColumnConfig, 0, len(cols))

	for _, c := range cols {
		if c.Visible {
			out = append(out, c)
		}
	}

	return out
}

// ColumnIndex returns the position of key in cols, or -1.
func ColumnIndex(cols []ColumnConfig, key Field) int {
	return slices.IndexFunc(cols, func(c ColumnConfig) bool { return c.Key == key })
}

// MoveColumn removes the column at from and reinserts it at to. Out of range
// indexes return an unmodified copy.
func MoveColumn(cols []ColumnConfig, from, to int) []ColumnConfig {
	out := slices.Clone(cols)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}

	moved := out[from]
	out = slices.Delete(out, from, from+1)

	return slices.Insert(out, to, moved)
}

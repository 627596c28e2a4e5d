package view

import (
	"github.com/calvinalkan/dealgrid/internal/deal"
)

// Align is the horizontal alignment of a cell.
type Align int

// Align values.
const (
	AlignLeft Align = iota
	AlignRight
)

// EditorKind selects the widget used to edit a cell.
type EditorKind int

// EditorKind values.
const (
	EditorText EditorKind = iota
	EditorNumber
	EditorChoice
)

func (k EditorKind) String() string {
	switch k {
	case EditorNumber:
		return "number"
	case EditorChoice:
		return "choice"
	default:
		return "text"
	}
}

// EditorSpec describes the editor for one cell. Options is set only for
// EditorChoice.
type EditorSpec struct {
	Kind    EditorKind
	Options []string
}

// CellKind renders and edits the cells of one display type. The set of
// kinds is closed; use KindOf to obtain one.
type CellKind interface {
	Type() deal.DisplayType
	Format(v deal.Value) string
	Align() Align
	Editor(key deal.Field) EditorSpec
	// Chip reports whether the cell renders as a colored chip.
	Chip() bool

	sealed()
}

// KindOf returns the kind for t. Unknown types render as text.
func KindOf(t deal.DisplayType) CellKind {
	switch t {
	case deal.TypeNumber:
		return numberKind{}
	case deal.TypeDate:
		return dateKind{}
	case deal.TypeStatus:
		return statusKind{}
	case deal.TypeCurrency:
		return currencyKind{}
	case deal.TypePercentage:
		return percentageKind{}
	default:
		return textKind{}
	}
}

// FormatCell renders the value of col for d.
func FormatCell(col deal.ColumnConfig, d *deal.Deal) string {
	return KindOf(col.Type).Format(col.Key.Get(d))
}

type textKind struct{}

func (textKind) Type() deal.DisplayType       { return deal.TypeText }
func (textKind) Format(v deal.Value) string   { return v.String() }
func (textKind) Align() Align                 { return AlignLeft }
func (textKind) Editor(deal.Field) EditorSpec { return EditorSpec{Kind: EditorText} }
func (textKind) Chip() bool                   { return false }
func (textKind) sealed()                      {}

type numberKind struct{}

func (numberKind) Type() deal.DisplayType       { return deal.TypeNumber }
func (numberKind) Format(v deal.Value) string   { return v.String() }
func (numberKind) Align() Align                 { return AlignRight }
func (numberKind) Editor(deal.Field) EditorSpec { return EditorSpec{Kind: EditorNumber} }
func (numberKind) Chip() bool                   { return false }
func (numberKind) sealed()                      {}

type dateKind struct{}

func (dateKind) Type() deal.DisplayType       { return deal.TypeDate }
func (dateKind) Format(v deal.Value) string   { return FormatDate(v.String()) }
func (dateKind) Align() Align                 { return AlignLeft }
func (dateKind) Editor(deal.Field) EditorSpec { return EditorSpec{Kind: EditorText} }
func (dateKind) Chip() bool                   { return false }
func (dateKind) sealed()                      {}

type currencyKind struct{}

func (currencyKind) Type() deal.DisplayType       { return deal.TypeCurrency }
func (currencyKind) Format(v deal.Value) string   { return FormatCurrency(v.Num()) }
func (currencyKind) Align() Align                 { return AlignRight }
func (currencyKind) Editor(deal.Field) EditorSpec { return EditorSpec{Kind: EditorNumber} }
func (currencyKind) Chip() bool                   { return false }
func (currencyKind) sealed()                      {}

type percentageKind struct{}

func (percentageKind) Type() deal.DisplayType       { return deal.TypePercentage }
func (percentageKind) Format(v deal.Value) string   { return FormatPercent(v.Num()) }
func (percentageKind) Align() Align                 { return AlignRight }
func (percentageKind) Editor(deal.Field) EditorSpec { return EditorSpec{Kind: EditorNumber} }
func (percentageKind) Chip() bool                   { return false }
func (percentageKind) sealed()                      {}

// statusKind covers every enum-valued column. The choice list depends on the
// column key: the status field gets status options, anything else priority
// options.
type statusKind struct{}

func (statusKind) Type() deal.DisplayType     { return deal.TypeStatus }
func (statusKind) Format(v deal.Value) string { return v.String() }
func (statusKind) Align() Align               { return AlignLeft }
func (statusKind) Chip() bool                 { return true }
func (statusKind) sealed()                    {}

func (statusKind) Editor(key deal.Field) EditorSpec {
	if key == deal.FieldStatus {
		opts := make([]string, len(deal.StatusOptions))
		for i, s := range deal.StatusOptions {
			opts[i] = string(s)
		}

		return EditorSpec{Kind: EditorChoice, Options: opts}
	}

	opts := make([]string, len(deal.PriorityOptions))
	for i, p := range deal.PriorityOptions {
		opts[i] = string(p)
	}

	return EditorSpec{Kind: EditorChoice, Options: opts}
}

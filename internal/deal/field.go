package deal

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names one addressable attribute of a Deal. The set is closed: every
// Field value handed out by ParseField has an accessor.
type Field string

// Field constants, named after the JSON keys of Deal.
const (
	FieldID           Field = "id"
	FieldDealName     Field = "dealName"
	FieldCompany      Field = "company"
	FieldOwner        Field = "owner"
	FieldStatus       Field = "status"
	FieldPriority     Field = "priority"
	FieldAmount       Field = "amount"
	FieldProbability  Field = "probability"
	FieldCloseDate    Field = "closeDate"
	FieldCreatedDate  Field = "createdDate"
	FieldLastActivity Field = "lastActivity"
	FieldSource       Field = "source"
	FieldTags         Field = "tags"
	FieldNotes        Field = "notes"
)

// Value is a field value extracted from a deal: either a number or a string.
type Value struct {
	str   string
	num   float64
	isNum bool
}

// StringValue wraps s.
func StringValue(s string) Value { return Value{str: s} }

// NumberValue wraps n.
func NumberValue(n float64) Value { return Value{num: n, isNum: true} }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.isNum }

// Num returns the numeric value (0 for strings).
func (v Value) Num() float64 { return v.num }

// String returns the value as text. Numbers use the shortest representation.
func (v Value) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}

	return v.str
}

// Compare orders two values. Numbers compare numerically, strings compare
// case-insensitively. A number sorts before a string.
func (v Value) Compare(o Value) int {
	switch {
	case v.isNum && o.isNum:
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		default:
			return 0
		}
	case v.isNum:
		return -1
	case o.isNum:
		return 1
	}

	return strings.Compare(strings.ToLower(v.str), strings.ToLower(o.str))
}

type accessor struct {
	get      func(d *Deal) Value
	sortable bool
}

func text(get func(d *Deal) string) accessor {
	return accessor{get: func(d *Deal) Value { return StringValue(get(d)) }, sortable: true}
}

func number(get func(d *Deal) float64) accessor {
	return accessor{get: func(d *Deal) Value { return NumberValue(get(d)) }, sortable: true}
}

// accessors is the single source of truth for field lookup.
var accessors = map[Field]accessor{
	FieldID:           text(func(d *Deal) string { return d.ID }),
	FieldDealName:     text(func(d *Deal) string { return d.DealName }),
	FieldCompany:      text(func(d *Deal) string { return d.Company }),
	FieldOwner:        text(func(d *Deal) string { return d.Owner }),
	FieldStatus:       text(func(d *Deal) string { return string(d.Status) }),
	FieldPriority:     text(func(d *Deal) string { return string(d.Priority) }),
	FieldAmount:       number(func(d *Deal) float64 { return d.Amount }),
	FieldProbability:  number(func(d *Deal) float64 { return float64(d.Probability) }),
	FieldCloseDate:    text(func(d *Deal) string { return d.CloseDate }),
	FieldCreatedDate:  text(func(d *Deal) string { return d.CreatedDate }),
	FieldLastActivity: text(func(d *Deal) string { return d.LastActivity }),
	FieldSource:       text(func(d *Deal) string { return d.Source }),
	FieldNotes:        text(func(d *Deal) string { return d.Notes }),
	FieldTags: {
		get: func(d *Deal) Value { return StringValue(strings.Join(d.Tags, ", ")) },
	},
}

// Fields returns every known field in schema order.
func Fields() []Field {
	return []Field{
		FieldID, FieldDealName, FieldCompany, FieldOwner, FieldStatus, FieldPriority,
		FieldAmount, FieldProbability, FieldCloseDate, FieldCreatedDate, FieldLastActivity,
		FieldSource, FieldTags, FieldNotes,
	}
}

// ParseField resolves a field name. Unknown names are rejected here so that
// later lookups cannot fail.
func ParseField(name string) (Field, error) {
	f := Field(name)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	return f, nil
}

// Valid reports whether f names a known field.
func (f Field) Valid() bool {
	_, ok := accessors[f]
	return ok
}

// Sortable reports whether f can be used as a sort key.
func (f Field) Sortable() bool {
	return accessors[f].sortable
}

// Get extracts f from d. Unknown fields yield an empty string value.
func (f Field) Get(d *Deal) Value {
	acc, ok := accessors[f]
	if !ok {
		return Value{}
	}

	return acc.get(d)
}

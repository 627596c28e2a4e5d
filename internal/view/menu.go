package view

import "slices"

// TargetType is what a context menu was opened on.
type TargetType string

// TargetType values.
const (
	TargetColumn TargetType = "column"
	TargetRow    TargetType = "row"
)

// MenuTarget names the header or row a context menu belongs to. Key is a
// column key for TargetColumn and a row id for TargetRow.
type MenuTarget struct {
	Type TargetType
	Key  string
}

// MenuAction is one entry of a context menu.
type MenuAction string

// Column and row actions.
const (
	ActionHide      MenuAction = "hide"
	ActionSortAsc   MenuAction = "sort-asc"
	ActionSortDesc  MenuAction = "sort-desc"
	ActionEdit      MenuAction = "edit"
	ActionDuplicate MenuAction = "duplicate"
	ActionDelete    MenuAction = "delete"
)

// Label returns the display text of a.
func (a MenuAction) Label() string {
	switch a {
	case ActionHide:
		return "Hide Column"
	case ActionSortAsc:
		return "Sort Ascending"
	case ActionSortDesc:
		return "Sort Descending"
	case ActionEdit:
		return "Edit"
	case ActionDuplicate:
		return "Duplicate"
	case ActionDelete:
		return "Delete"
	default:
		return string(a)
	}
}

// ContextMenu is an open context menu at screen position X, Y.
type ContextMenu struct {
	X      int
	Y      int
	Target MenuTarget
}

// Actions returns the actions offered for the menu's target type.
func (m ContextMenu) Actions() []MenuAction {
	if m.Target.Type == TargetColumn {
		return []MenuAction{ActionHide, ActionSortAsc, ActionSortDesc}
	}

	return []MenuAction{ActionEdit, ActionDuplicate, ActionDelete}
}

// Offers reports whether a is one of the menu's actions.
func (m ContextMenu) Offers(a MenuAction) bool {
	return slices.Contains(m.Actions(), a)
}

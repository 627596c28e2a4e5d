// Package tui renders a view.Controller as a bubbletea program.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/calvinalkan/dealgrid/internal/deal"
	"github.com/calvinalkan/dealgrid/internal/grid"
	"github.com/calvinalkan/dealgrid/internal/view"
)

type mode int

const (
	modeGrid mode = iota
	modeEdit
	modeSearch
	modeMenu
)

// Screen rows above the first data row: title, header, separator.
const bodyTop = 3

// markerWidth is the selection and expansion prefix of every row.
const markerWidth = 6

// resizeStep is the pixel change of one < or > press.
const resizeStep = 10

// Model is the bubbletea model of the grid.
type Model struct {
	ctx  context.Context
	ctrl *view.Controller

	width  int
	height int
	top    int

	mode    mode
	input   textinput.Model
	menuIdx int
	status  string
	err     error
}

// New returns a model over ctrl with the first cell focused.
func New(ctx context.Context, ctrl *view.Controller) Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 200

	ctrl.FocusCell(0, 0)

	return Model{ctx: ctx, ctrl: ctrl, input: in, height: 24, width: 120}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tea.KeyMsg:
		m.err = nil

		var cmd tea.Cmd

		switch m.mode {
		case modeEdit:
			m, cmd = m.updateEdit(msg)
		case modeSearch:
			m, cmd = m.updateSearch(msg)
		case modeMenu:
			m = m.updateMenu(msg)
		default:
			m, cmd = m.updateGrid(msg)
		}

		m.scroll()

		return m, cmd

	case tea.MouseMsg:
		m.err = nil
		m = m.updateMouse(msg)
		m.scroll()

		return m, nil
	}

	return m, nil
}

var navKeys = map[string]view.Key{
	"up": view.KeyUp, "k": view.KeyUp,
	"down": view.KeyDown, "j": view.KeyDown,
	"left": view.KeyLeft, "h": view.KeyLeft,
	"right": view.KeyRight, "l": view.KeyRight,
	"home": view.KeyHome, "end": view.KeyEnd,
	"pgup": view.KeyPageUp, "pgdown": view.KeyPageDown,
}

func (m Model) updateGrid(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	if k, ok := navKeys[key]; ok {
		m.err = m.ctrl.HandleKey(m.ctx, k)
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		m.ctrl.Close()
		return m, tea.Quit

	case "tab":
		if _, ok := m.ctrl.Focus(); !ok {
			m.ctrl.FocusCell(0, 0)
		}

	case "esc":
		m.err = m.ctrl.HandleKey(m.ctx, view.KeyEscape)

	case "enter":
		m.err = m.ctrl.HandleKey(m.ctx, view.KeyEnter)
		m = m.openEditor()

	case " ":
		if id, ok := m.focusedRow(); ok {
			m.ctrl.ToggleSelection(id, true)
		}

	case "a":
		m.ctrl.SelectAll(m.ctrl.Engine().SelectionState() != grid.SelectAll)

	case "x":
		if id, ok := m.focusedRow(); ok {
			m.ctrl.ToggleExpansion(id)
		}

	case "s", "S":
		if col, ok := m.focusedColumn(); ok {
			m.ctrl.ClickHeader(col.Key, key == "S")
		}

	case "/":
		m.mode = modeSearch
		m.input.SetValue(m.ctrl.Engine().Snapshot().Filters().Search)
		m.input.CursorEnd()
		m.input.Focus()

	case "c":
		m.ctrl.ClearFilters()
		m.status = "filters cleared"

	case "<", ">":
		m = m.resizeFocused(key)

	case "H", "L":
		m = m.dragFocused(key)

	case "m", "M":
		m = m.openMenu(key == "M")
	}

	return m, nil
}

func (m Model) openEditor() Model {
	s, ok := m.ctrl.Editing()
	if !ok {
		return m
	}

	m.mode = modeEdit
	m.input.SetValue(s.Value)
	m.input.CursorEnd()
	m.input.Focus()

	return m
}

func (m Model) updateEdit(msg tea.KeyMsg) (Model, tea.Cmd) {
	if _, ok := m.ctrl.Editing(); !ok {
		return m.closeInput(), nil
	}

	switch msg.String() {
	case "enter":
		_ = m.ctrl.SetEditValue(m.input.Value())
		s, _ := m.ctrl.Editing()

		m.err = m.ctrl.HandleKey(m.ctx, view.KeyEnter)
		if m.err == nil && s.Value != s.Original {
			m.status = fmt.Sprintf("edit recorded: %s %s -> %s", s.Target.Column, s.Original, s.Value)
		}

		return m.closeInput(), nil

	case "esc":
		m.err = m.ctrl.HandleKey(m.ctx, view.KeyEscape)
		return m.closeInput(), nil

	case "tab":
		if s, ok := m.ctrl.Editing(); ok && s.Editor.Kind == view.EditorChoice {
			m.input.SetValue(nextOption(s.Editor.Options, m.input.Value()))
			m.input.CursorEnd()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func nextOption(options []string, current string) string {
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}

	return options[0]
}

func (m Model) updateSearch(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ctrl.UpdateFilters(grid.Patch().WithSearch(strings.TrimSpace(m.input.Value())))
		return m.closeInput(), nil
	case "esc":
		return m.closeInput(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m Model) closeInput() Model {
	m.mode = modeGrid
	m.input.Blur()
	m.input.SetValue("")

	return m
}

func (m Model) openMenu(row bool) Model {
	cell, ok := m.ctrl.Focus()
	if !ok {
		return m
	}

	target := view.MenuTarget{Type: view.TargetColumn, Key: string(m.ctrl.Columns()[cell.Col].Key)}
	if row {
		target = view.MenuTarget{Type: view.TargetRow, Key: m.ctrl.Rows()[cell.Row].ID}
	}

	if m.err = m.ctrl.OpenMenu(m.columnX(cell.Col), bodyTop+cell.Row, target); m.err == nil {
		m.mode = modeMenu
		m.menuIdx = 0
	}

	return m
}

func (m Model) updateMenu(msg tea.KeyMsg) Model {
	menu, ok := m.ctrl.Menu()
	if !ok {
		m.mode = modeGrid
		return m
	}

	actions := menu.Actions()

	switch msg.String() {
	case "up", "k":
		m.menuIdx = max(0, m.menuIdx-1)
	case "down", "j":
		m.menuIdx = min(len(actions)-1, m.menuIdx+1)
	case "enter":
		m.err = m.ctrl.RunMenuAction(actions[m.menuIdx])
		if m.err == nil {
			m.status = actions[m.menuIdx].Label()
		}

		m.mode = modeGrid
	case "esc":
		m.err = m.ctrl.HandleKey(m.ctx, view.KeyEscape)
		m.mode = modeGrid
	}

	return m
}

func (m Model) resizeFocused(key string) Model {
	col, ok := m.focusedColumn()
	if !ok {
		return m
	}

	delta := resizeStep
	if key == "<" {
		delta = -resizeStep
	}

	if m.err = m.ctrl.BeginResize(col.Key, 0); m.err != nil {
		return m
	}

	if _, m.err = m.ctrl.MoveResize(delta); m.err != nil {
		m.ctrl.CancelResize()
		return m
	}

	m.err = m.ctrl.EndResize()

	return m
}

// dragFocused moves the focused column one visible slot left or right and
// keeps focus on it.
func (m Model) dragFocused(key string) Model {
	cell, ok := m.ctrl.Focus()
	if !ok {
		return m
	}

	visible := m.ctrl.Columns()

	target := cell.Col + 1
	if key == "H" {
		target = cell.Col - 1
	}

	if target < 0 || target >= len(visible) {
		return m
	}

	layout := m.ctrl.Engine().Columns()
	from := deal.ColumnIndex(layout, visible[cell.Col].Key)
	to := deal.ColumnIndex(layout, visible[target].Key)

	if m.err = m.ctrl.BeginDrag(from); m.err != nil {
		return m
	}

	if m.err = m.ctrl.Drop(to); m.err == nil {
		m.ctrl.FocusCell(cell.Row, target)
	}

	return m
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionPress {
		return m
	}

	if m.mode == modeMenu {
		m.ctrl.ClickOutside()
		m.mode = modeGrid

		return m
	}

	col, ok := m.columnAt(msg.X)

	switch {
	case msg.Y == 1 && ok && msg.Button == tea.MouseButtonLeft:
		m.ctrl.ClickHeader(m.ctrl.Columns()[col].Key, msg.Shift)

	case msg.Y == 1 && ok && msg.Button == tea.MouseButtonRight:
		target := view.MenuTarget{Type: view.TargetColumn, Key: string(m.ctrl.Columns()[col].Key)}
		if m.err = m.ctrl.OpenMenu(msg.X, msg.Y, target); m.err == nil {
			m.mode, m.menuIdx = modeMenu, 0
		}

	case msg.Y >= bodyTop:
		row, hit := m.rowAt(msg.Y)
		if !hit {
			return m
		}

		if msg.Button == tea.MouseButtonRight {
			target := view.MenuTarget{Type: view.TargetRow, Key: m.ctrl.Rows()[row].ID}
			if m.err = m.ctrl.OpenMenu(msg.X, msg.Y, target); m.err == nil {
				m.mode, m.menuIdx = modeMenu, 0
			}

			return m
		}

		if msg.X < markerWidth {
			m.ctrl.ToggleSelection(m.ctrl.Rows()[row].ID, msg.Ctrl || msg.Shift)
			return m
		}

		if ok {
			m.err = m.ctrl.ClickCell(row, col)
			m = m.openEditor()
		}
	}

	return m
}

func (m Model) focusedRow() (string, bool) {
	cell, ok := m.ctrl.Focus()
	if !ok {
		return "", false
	}

	return m.ctrl.Rows()[cell.Row].ID, true
}

func (m Model) focusedColumn() (deal.ColumnConfig, bool) {
	cell, ok := m.ctrl.Focus()
	if !ok {
		return deal.ColumnConfig{}, false
	}

	return m.ctrl.Columns()[cell.Col], true
}

// columnX is the screen column where visible column i starts.
func (m Model) columnX(i int) int {
	x := markerWidth

	for _, col := range m.ctrl.Columns()[:i] {
		x += view.Chars(col) + 1
	}

	return x
}

func (m Model) columnAt(x int) (int, bool) {
	pos := markerWidth

	for i, col := range m.ctrl.Columns() {
		w := view.Chars(col)
		if x >= pos && x < pos+w {
			return i, true
		}

		pos += w + 1
	}

	return 0, false
}

// rowAt maps a screen line to a derived-view row, accounting for scroll
// and expanded detail lines.
func (m Model) rowAt(y int) (int, bool) {
	line := bodyTop
	rows := m.ctrl.Rows()
	snap := m.ctrl.Engine().Snapshot()

	for i := m.top; i < len(rows); i++ {
		if y == line {
			return i, true
		}

		line += 1 + detailLines(&rows[i], snap)
		if line > y {
			return 0, false
		}
	}

	return 0, false
}

func detailLines(d *deal.Deal, snap grid.Snapshot) int {
	if !snap.IsExpanded(d.ID) {
		return 0
	}

	return 2 + len(d.RecentActivities(view.DetailActivities))
}

// bodyHeight is the number of screen lines available for rows.
func (m Model) bodyHeight() int {
	return max(1, m.height-bodyTop-3)
}

// scroll keeps the focused row on screen.
func (m *Model) scroll() {
	cell, ok := m.ctrl.Focus()
	if !ok {
		m.top = min(m.top, max(0, len(m.ctrl.Rows())-1))
		return
	}

	if cell.Row < m.top {
		m.top = cell.Row
		return
	}

	rows := m.ctrl.Rows()
	snap := m.ctrl.Engine().Snapshot()

	for {
		used := 0
		for i := m.top; i <= cell.Row; i++ {
			used += 1 + detailLines(&rows[i], snap)
		}

		if used <= m.bodyHeight() || m.top >= cell.Row {
			return
		}

		m.top++
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	engine := m.ctrl.Engine()
	snap := engine.Snapshot()
	cols := m.ctrl.Columns()
	rows := m.ctrl.Rows()
	cell, focused := m.ctrl.Focus()
	edit, editing := m.ctrl.Editing()

	b.WriteString(titleStyle.Render(" Deals"))

	if f := snap.Filters(); !f.IsEmpty() {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d of %d shown", len(rows), len(engine.Records()))))
	}

	b.WriteString("\n")

	b.WriteString(headerStyle.Render(selectionMarker(engine.SelectionState()) + "   "))

	for i, col := range cols {
		label := view.Fit(view.HeaderLabel(col, snap.SortConfigs()), view.Chars(col), view.KindOf(col.Type).Align())
		b.WriteString(headerStyle.Render(label))

		if i < len(cols)-1 {
			b.WriteString(headerStyle.Render(" "))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", m.columnX(len(cols)))))
	b.WriteString("\n")

	if text, empty := m.ctrl.EmptyState(); empty {
		b.WriteString(dimStyle.Render(" " + text))
		b.WriteString("\n")
	}

	lines := 0

	for r := m.top; r < len(rows) && lines < m.bodyHeight(); r++ {
		d := &rows[r]

		b.WriteString(rowMarker(snap.IsSelected(d.ID), snap.IsExpanded(d.ID)))

		for c, col := range cols {
			kind := view.KindOf(col.Type)
			w := view.Chars(col)

			text := view.FormatCell(col, d)
			if editing && edit.Target.RowID == d.ID && edit.Target.Column == col.Key {
				text = m.input.Value() + "_"
			}

			padded := view.Fit(text, w, kind.Align())

			switch {
			case focused && cell.Row == r && cell.Col == c:
				padded = cursorStyle.Render(padded)
			case kind.Chip():
				padded = chip(padded, text)
			case snap.IsSelected(d.ID):
				padded = selectStyle.Render(padded)
			}

			b.WriteString(padded)

			if c < len(cols)-1 {
				b.WriteString(" ")
			}
		}

		b.WriteString("\n")

		lines++

		if snap.IsExpanded(d.ID) {
			lines += m.writeDetail(&b, d)
		}
	}

	b.WriteString(m.footer())

	out := b.String()

	if menu, ok := m.ctrl.Menu(); ok && m.mode == modeMenu {
		out = lipgloss.JoinVertical(lipgloss.Left, out, m.renderMenu(menu))
	}

	return out
}

func (m Model) writeDetail(b *strings.Builder, d *deal.Deal) int {
	detail, ok := m.ctrl.Detail(d.ID)
	if !ok {
		return 0
	}

	indent := strings.Repeat(" ", markerWidth)

	b.WriteString(dimStyle.Render(fmt.Sprintf("%ssource: %s  tags: %s", indent, detail.Source, strings.Join(detail.Tags, ", "))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(indent + "notes: " + detail.Notes))
	b.WriteString("\n")

	for _, a := range detail.Activities {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%s%s  %s  %s", indent, view.FormatDate(a.Date), a.Type, a.Description)))
		b.WriteString("\n")
	}

	return 2 + len(detail.Activities)
}

func (m Model) footer() string {
	var b strings.Builder

	b.WriteString(statusStyle.Render(" " + view.TotalsLine(m.ctrl.Engine().Aggregates())))

	if n := m.ctrl.Engine().Snapshot().SelectedCount(); n > 0 {
		b.WriteString(statusStyle.Render(fmt.Sprintf("  %d selected", n)))
	}

	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(" error: " + m.err.Error()))
	case m.mode == modeSearch:
		b.WriteString(" search: " + m.input.View())
	case m.mode == modeEdit:
		hint := " enter save  esc cancel"
		if s, ok := m.ctrl.Editing(); ok && s.Editor.Kind == view.EditorChoice {
			hint += "  tab next option"
		}

		b.WriteString(dimStyle.Render(hint))
	case m.status != "":
		b.WriteString(statusStyle.Render(" " + m.status))
	default:
		b.WriteString(dimStyle.Render(" hjkl move  enter edit  space select  a all  x expand  s/S sort  / search  c clear  </> width  H/L move  m/M menu  q quit"))
	}

	return b.String()
}

func (m Model) renderMenu(menu view.ContextMenu) string {
	var b strings.Builder

	for i, a := range menu.Actions() {
		line := "  " + a.Label()
		if i == m.menuIdx {
			line = cursorStyle.Render("> " + a.Label())
		}

		b.WriteString(line)

		if i < len(menu.Actions())-1 {
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().MarginLeft(menu.X).Render(menuStyle.Render(b.String()))
}

func selectionMarker(s grid.SelectionState) string {
	switch s {
	case grid.SelectAll:
		return "[x]"
	case grid.SelectSome:
		return "[-]"
	default:
		return "[ ]"
	}
}

func rowMarker(selected, expanded bool) string {
	box := "[ ] "
	if selected {
		box = "[x] "
	}

	arrow := "▸ "
	if expanded {
		arrow = "▾ "
	}

	return box + arrow
}

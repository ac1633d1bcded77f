// Package teagrid is a Bubble Tea GridAdapter backend: a rendered table
// widget with a scrolling viewport, a cursor and a textinput cell editor.
// Unlike memgrid it stores cells as strings and owns presentation state, so
// the two backends exercise the adapter contract from structurally
// different implementations.
package teagrid

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskgrid/grid"
)

// Row is one widget row: a stable id plus string cells keyed by column id.
type Row struct {
	ID    string
	Cells map[string]string
}

// Model is the grid widget. Use it by pointer; it mutates in place the way
// the engine's adapter contract expects.
type Model struct {
	columns []grid.Column
	rows    []Row

	focus    *grid.CellID
	selected map[string]bool

	top    int // first visible row in the viewport
	height int // rows per page
	width  int

	editing  bool
	editCell grid.CellID
	editor   textinput.Model

	styles Styles

	listenerSeq    int
	selListeners   map[int]func()
	focusListeners map[int]func()
}

// New creates a widget grid with the given columns and page height.
func New(columns []grid.Column, height int) *Model {
	if height < 1 {
		height = 1
	}
	editor := textinput.New()
	editor.Prompt = ""
	return &Model{
		columns:        append([]grid.Column(nil), columns...),
		height:         height,
		editor:         editor,
		styles:         DefaultStyles(),
		selected:       make(map[string]bool),
		selListeners:   make(map[int]func()),
		focusListeners: make(map[int]func()),
	}
}

// SetRows replaces the widget's data wholesale, e.g. after a reload from
// the store. Selection and focus pointing at vanished rows go stale and
// no-op through the adapter.
func (m *Model) SetRows(rows []Row) {
	m.rows = rows
	if m.top >= len(rows) {
		m.top = 0
	}
}

// AppendRow adds one row.
func (m *Model) AppendRow(row Row) {
	if row.Cells == nil {
		row.Cells = make(map[string]string)
	}
	m.rows = append(m.rows, row)
}

// SetSize updates the viewport dimensions from the host's window size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	if height > 0 {
		m.height = height
	}
}

// SelectRows adds rows to the selection set.
func (m *Model) SelectRows(ids ...string) {
	changed := false
	for _, id := range ids {
		if m.rowIndex(id) >= 0 && !m.selected[id] {
			m.selected[id] = true
			changed = true
		}
	}
	if changed {
		m.notifySelection()
	}
}

// Top returns the viewport's first visible row index.
func (m *Model) Top() int { return m.top }

// Update handles widget-level input: arrow-key cursor moves and page
// scrolling while navigating, editor input while editing. Keys the engine
// already consumed must not be routed here; the host calls the engine
// first.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return nil
	case tea.KeyMsg:
		if m.editing {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return cmd
		}
		switch msg.String() {
		case "up":
			m.moveCursor(grid.DirUp)
		case "down":
			m.moveCursor(grid.DirDown)
		case "left":
			m.moveCursor(grid.DirLeft)
		case "right":
			m.moveCursor(grid.DirRight)
		case "pgup":
			m.top -= m.height
			if m.top < 0 {
				m.top = 0
			}
		case "pgdown":
			m.top += m.height
			if max := len(m.rows) - m.height; m.top > max {
				m.top = max
			}
			if m.top < 0 {
				m.top = 0
			}
		}
	}
	return nil
}

func (m *Model) moveCursor(dir grid.Direction) {
	rowIDs := m.VisibleRowIDs()
	cols := m.VisibleColumns()
	if len(rowIDs) == 0 || len(cols) == 0 {
		return
	}
	pos := grid.Position{}
	if m.focus != nil {
		for i, id := range rowIDs {
			if id == m.focus.RowID {
				pos.Row = i
			}
		}
		for i, col := range cols {
			if col.ID == m.focus.ColumnID {
				pos.Col = i
			}
		}
		pos = grid.NextPosition(pos, dir, len(rowIDs), len(cols))
	}
	id := grid.CellID{RowID: rowIDs[pos.Row], ColumnID: cols[pos.Col].ID}
	m.SetFocusedCell(id)
	m.ScrollToCell(id)
}

// ---------------------------------------------------------------------------
// GridAdapter contract
// ---------------------------------------------------------------------------

func (m *Model) SelectedNodes() []grid.RowNode {
	var out []grid.RowNode
	for _, row := range m.rows {
		if m.selected[row.ID] {
			out = append(out, m.rowNode(row))
		}
	}
	return out
}

func (m *Model) FocusedCell() *grid.FocusedCell {
	if m.focus == nil {
		return nil
	}
	idx := m.rowIndex(m.focus.RowID)
	return &grid.FocusedCell{Cell: *m.focus, RowIndex: idx}
}

func (m *Model) SetFocusedCell(id grid.CellID) {
	if m.rowIndex(id.RowID) < 0 || m.columnIndex(id.ColumnID) < 0 {
		return
	}
	m.focus = &id
	m.notifyFocus()
}

func (m *Model) VisibleColumns() []grid.Column {
	var out []grid.Column
	for _, col := range m.columns {
		if col.Visible {
			out = append(out, col)
		}
	}
	return out
}

func (m *Model) VisibleRowIDs() []string {
	out := make([]string, len(m.rows))
	for i, row := range m.rows {
		out[i] = row.ID
	}
	return out
}

func (m *Model) CellValue(id grid.CellID) any {
	i := m.rowIndex(id.RowID)
	if i < 0 {
		return nil
	}
	v, ok := m.rows[i].Cells[id.ColumnID]
	if !ok {
		return nil
	}
	return v
}

func (m *Model) UpdateCellValue(id grid.CellID, value any) {
	if !m.IsCellEditable(id) {
		return
	}
	i := m.rowIndex(id.RowID)
	if value == nil {
		delete(m.rows[i].Cells, id.ColumnID)
		return
	}
	m.rows[i].Cells[id.ColumnID] = grid.ValueString(value)
}

func (m *Model) IsCellEditable(id grid.CellID) bool {
	ci := m.columnIndex(id.ColumnID)
	if ci < 0 {
		return false
	}
	col := m.columns[ci]
	if !col.Visible || !col.Editable {
		return false
	}
	return m.rowIndex(id.RowID) >= 0
}

func (m *Model) IsEditing() bool { return m.editing }

func (m *Model) StartEditing(id grid.CellID, seed string) {
	if !m.IsCellEditable(id) {
		return
	}
	m.editing = true
	m.editCell = id
	if seed != "" {
		// type-to-edit replaces the cell content with the typed character
		m.editor.SetValue(seed)
	} else {
		m.editor.SetValue(grid.ValueString(m.CellValue(id)))
	}
	m.editor.CursorEnd()
	m.editor.Focus()
}

func (m *Model) StopEditing(cancel bool) {
	if !m.editing {
		return
	}
	m.editing = false
	m.editor.Blur()
	if cancel {
		return
	}
	value := m.editor.Value()
	if value == "" {
		m.UpdateCellValue(m.editCell, nil)
		return
	}
	m.UpdateCellValue(m.editCell, value)
}

func (m *Model) SelectAll() {
	changed := false
	for _, row := range m.rows {
		if !m.selected[row.ID] {
			m.selected[row.ID] = true
			changed = true
		}
	}
	if changed {
		m.notifySelection()
	}
}

func (m *Model) DeselectAll() {
	if len(m.selected) == 0 {
		return
	}
	m.selected = make(map[string]bool)
	m.notifySelection()
}

// ScrollToCell adjusts the viewport so the cell's row is on screen.
func (m *Model) ScrollToCell(id grid.CellID) {
	i := m.rowIndex(id.RowID)
	if i < 0 {
		return
	}
	if i < m.top {
		m.top = i
	}
	if i >= m.top+m.height {
		m.top = i - m.height + 1
	}
}

func (m *Model) OnSelectionChange(fn func()) func() {
	m.listenerSeq++
	id := m.listenerSeq
	m.selListeners[id] = fn
	return func() { delete(m.selListeners, id) }
}

func (m *Model) OnFocusChange(fn func()) func() {
	m.listenerSeq++
	id := m.listenerSeq
	m.focusListeners[id] = fn
	return func() { delete(m.focusListeners, id) }
}

func (m *Model) RowByID(rowID string) *grid.RowNode {
	i := m.rowIndex(rowID)
	if i < 0 {
		return nil
	}
	node := m.rowNode(m.rows[i])
	return &node
}

func (m *Model) RowIDByIndex(index int) (string, bool) {
	if index < 0 || index >= len(m.rows) {
		return "", false
	}
	return m.rows[index].ID, true
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

func (m *Model) rowNode(row Row) grid.RowNode {
	data := make(map[string]any, len(row.Cells))
	for k, v := range row.Cells {
		data[k] = v
	}
	return grid.RowNode{ID: row.ID, Data: data}
}

func (m *Model) rowIndex(id string) int {
	for i := range m.rows {
		if m.rows[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) columnIndex(id string) int {
	for i := range m.columns {
		if m.columns[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) notifySelection() {
	for _, fn := range m.selListeners {
		fn()
	}
}

func (m *Model) notifyFocus() {
	for _, fn := range m.focusListeners {
		fn()
	}
}

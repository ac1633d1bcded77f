// Package memgrid is a headless in-memory GridAdapter backend. It owns row
// and column state, sorting, filtering, selection and focus, but renders
// nothing; hosts that need a widget use the teagrid backend instead.
package memgrid

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jask/jaskgrid/grid"
)

// Grid is an in-memory grid. It is not safe for concurrent use; like the
// engine it belongs to a single event loop.
type Grid struct {
	columns []grid.Column
	rows    []grid.RowNode // document order

	sortColumn string
	sortDesc   bool
	filter     string

	selected map[string]bool
	focus    *grid.CellID

	editing  bool
	editCell grid.CellID
	editSeed string

	// last cell handed to ScrollToCell; a headless grid has no viewport so
	// this only records intent for the host.
	lastScroll *grid.CellID

	listenerSeq    int
	selListeners   map[int]func()
	focusListeners map[int]func()
}

// New creates a grid with the given column set and no rows.
func New(columns []grid.Column) *Grid {
	return &Grid{
		columns:        append([]grid.Column(nil), columns...),
		selected:       make(map[string]bool),
		selListeners:   make(map[int]func()),
		focusListeners: make(map[int]func()),
	}
}

// ---------------------------------------------------------------------------
// Data management (backend API, not part of the adapter contract)
// ---------------------------------------------------------------------------

// AppendRow adds a row with a freshly minted id and returns it.
func (g *Grid) AppendRow(data map[string]any) string {
	id := uuid.NewString()
	g.InsertRow(id, data)
	return id
}

// InsertRow adds a row under a caller-supplied stable id. Duplicate ids
// replace the existing row's data in place.
func (g *Grid) InsertRow(id string, data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}
	for i := range g.rows {
		if g.rows[i].ID == id {
			g.rows[i].Data = data
			return
		}
	}
	g.rows = append(g.rows, grid.RowNode{ID: id, Data: data})
}

// RemoveRow drops a row; selection and focus referring to it become stale
// and read as no-ops through the adapter.
func (g *Grid) RemoveRow(id string) {
	for i := range g.rows {
		if g.rows[i].ID == id {
			g.rows = append(g.rows[:i], g.rows[i+1:]...)
			break
		}
	}
	if g.selected[id] {
		delete(g.selected, id)
		g.notifySelection()
	}
}

// RowCount reports the number of stored rows, ignoring the filter.
func (g *Grid) RowCount() int { return len(g.rows) }

// SortBy orders visible rows by a column, numeric-aware. An empty column id
// restores document order.
func (g *Grid) SortBy(columnID string, desc bool) {
	g.sortColumn = columnID
	g.sortDesc = desc
}

// SetFilter hides rows whose visible cells do not contain the query
// (case-insensitive substring). Empty query shows everything.
func (g *Grid) SetFilter(query string) {
	g.filter = strings.ToLower(strings.TrimSpace(query))
}

// SetColumnVisible toggles a column. Hidden columns drop out of every
// adapter accessor, and with them out of copy, paste, fill and navigation.
func (g *Grid) SetColumnVisible(columnID string, visible bool) {
	for i := range g.columns {
		if g.columns[i].ID == columnID {
			g.columns[i].Visible = visible
		}
	}
}

// SelectRows adds rows to the selection set.
func (g *Grid) SelectRows(ids ...string) {
	changed := false
	for _, id := range ids {
		if g.rowIndex(id) >= 0 && !g.selected[id] {
			g.selected[id] = true
			changed = true
		}
	}
	if changed {
		g.notifySelection()
	}
}

// EditSeed returns the initial text handed to the most recent StartEditing.
func (g *Grid) EditSeed() string { return g.editSeed }

// EditingCell returns the cell being edited; the zero CellID when idle.
func (g *Grid) EditingCell() grid.CellID {
	if !g.editing {
		return grid.CellID{}
	}
	return g.editCell
}

// LastScrolledTo returns the target of the most recent ScrollToCell.
func (g *Grid) LastScrolledTo() *grid.CellID { return g.lastScroll }

// ---------------------------------------------------------------------------
// GridAdapter contract
// ---------------------------------------------------------------------------

func (g *Grid) SelectedNodes() []grid.RowNode {
	var out []grid.RowNode
	for _, row := range g.visibleRows() {
		if g.selected[row.ID] {
			out = append(out, row)
		}
	}
	return out
}

func (g *Grid) FocusedCell() *grid.FocusedCell {
	if g.focus == nil {
		return nil
	}
	idx := -1
	for i, id := range g.VisibleRowIDs() {
		if id == g.focus.RowID {
			idx = i
			break
		}
	}
	return &grid.FocusedCell{Cell: *g.focus, RowIndex: idx}
}

func (g *Grid) SetFocusedCell(id grid.CellID) {
	if g.rowIndex(id.RowID) < 0 || g.columnIndex(id.ColumnID) < 0 {
		return
	}
	g.focus = &id
	g.notifyFocus()
}

func (g *Grid) VisibleColumns() []grid.Column {
	var out []grid.Column
	for _, col := range g.columns {
		if col.Visible {
			out = append(out, col)
		}
	}
	return out
}

func (g *Grid) VisibleRowIDs() []string {
	rows := g.visibleRows()
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.ID
	}
	return out
}

func (g *Grid) CellValue(id grid.CellID) any {
	i := g.rowIndex(id.RowID)
	if i < 0 {
		return nil
	}
	return g.rows[i].Data[id.ColumnID]
}

func (g *Grid) UpdateCellValue(id grid.CellID, value any) {
	if !g.IsCellEditable(id) {
		return
	}
	i := g.rowIndex(id.RowID)
	if value == nil {
		delete(g.rows[i].Data, id.ColumnID)
		return
	}
	g.rows[i].Data[id.ColumnID] = value
}

func (g *Grid) IsCellEditable(id grid.CellID) bool {
	ci := g.columnIndex(id.ColumnID)
	if ci < 0 {
		return false
	}
	col := g.columns[ci]
	if !col.Visible || !col.Editable {
		return false
	}
	return g.rowIndex(id.RowID) >= 0
}

func (g *Grid) IsEditing() bool { return g.editing }

func (g *Grid) StartEditing(id grid.CellID, seed string) {
	if !g.IsCellEditable(id) {
		return
	}
	g.editing = true
	g.editCell = id
	g.editSeed = seed
}

func (g *Grid) StopEditing(cancel bool) {
	g.editing = false
	g.editSeed = ""
}

func (g *Grid) SelectAll() {
	changed := false
	for _, id := range g.VisibleRowIDs() {
		if !g.selected[id] {
			g.selected[id] = true
			changed = true
		}
	}
	if changed {
		g.notifySelection()
	}
}

func (g *Grid) DeselectAll() {
	if len(g.selected) == 0 {
		return
	}
	g.selected = make(map[string]bool)
	g.notifySelection()
}

func (g *Grid) ScrollToCell(id grid.CellID) {
	if g.rowIndex(id.RowID) < 0 {
		return
	}
	cell := id
	g.lastScroll = &cell
}

func (g *Grid) OnSelectionChange(fn func()) func() {
	g.listenerSeq++
	id := g.listenerSeq
	g.selListeners[id] = fn
	return func() { delete(g.selListeners, id) }
}

func (g *Grid) OnFocusChange(fn func()) func() {
	g.listenerSeq++
	id := g.listenerSeq
	g.focusListeners[id] = fn
	return func() { delete(g.focusListeners, id) }
}

func (g *Grid) RowByID(rowID string) *grid.RowNode {
	i := g.rowIndex(rowID)
	if i < 0 {
		return nil
	}
	return &g.rows[i]
}

func (g *Grid) RowIDByIndex(index int) (string, bool) {
	ids := g.VisibleRowIDs()
	if index < 0 || index >= len(ids) {
		return "", false
	}
	return ids[index], true
}

// ---------------------------------------------------------------------------
// Internals
// ---------------------------------------------------------------------------

// visibleRows applies filter then sort, fresh on every call. Caching the
// ordering would reintroduce the positional-addressing bug the CellID
// scheme exists to avoid.
func (g *Grid) visibleRows() []grid.RowNode {
	rows := make([]grid.RowNode, 0, len(g.rows))
	for _, row := range g.rows {
		if g.filter == "" || g.rowMatchesFilter(row) {
			rows = append(rows, row)
		}
	}
	if g.sortColumn != "" {
		col := g.sortColumn
		desc := g.sortDesc
		sort.SliceStable(rows, func(i, j int) bool {
			less := cellLess(rows[i].Data[col], rows[j].Data[col])
			if desc {
				return !less && !cellEqual(rows[i].Data[col], rows[j].Data[col])
			}
			return less
		})
	}
	return rows
}

func (g *Grid) rowMatchesFilter(row grid.RowNode) bool {
	for _, col := range g.columns {
		if !col.Visible {
			continue
		}
		if strings.Contains(strings.ToLower(grid.ValueString(row.Data[col.ID])), g.filter) {
			return true
		}
	}
	return false
}

func (g *Grid) rowIndex(id string) int {
	for i := range g.rows {
		if g.rows[i].ID == id {
			return i
		}
	}
	return -1
}

func (g *Grid) columnIndex(id string) int {
	for i := range g.columns {
		if g.columns[i].ID == id {
			return i
		}
	}
	return -1
}

func (g *Grid) notifySelection() {
	for _, fn := range g.selListeners {
		fn()
	}
}

func (g *Grid) notifyFocus() {
	for _, fn := range g.focusListeners {
		fn()
	}
}

// cellLess compares cell values numerically when both sides parse as
// numbers, falling back to case-insensitive string order.
func cellLess(a, b any) bool {
	na, aok := parseNumber(a)
	nb, bok := parseNumber(b)
	if aok && bok {
		return na < nb
	}
	return strings.ToLower(grid.ValueString(a)) < strings.ToLower(grid.ValueString(b))
}

func cellEqual(a, b any) bool {
	return grid.ValueString(a) == grid.ValueString(b)
}

func parseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(grid.ValueString(v)), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

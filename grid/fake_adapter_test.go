package grid

// fakeAdapter is a minimal GridAdapter for engine tests: rows in document
// order, a selection set, a focus pointer and listener bookkeeping. It
// mirrors the defensive contract: stale ids read as nil and write as no-ops.
type fakeAdapter struct {
	columns  []Column
	rows     []RowNode
	selected map[string]bool
	focus    *CellID
	editing  bool
	editCell CellID
	editSeed string
	scrolled []CellID

	listenerSeq    int
	selListeners   map[int]func()
	focusListeners map[int]func()
}

func newFakeAdapter(columns []Column, rows []RowNode) *fakeAdapter {
	return &fakeAdapter{
		columns:        columns,
		rows:           rows,
		selected:       make(map[string]bool),
		selListeners:   make(map[int]func()),
		focusListeners: make(map[int]func()),
	}
}

func (f *fakeAdapter) selectRows(ids ...string) {
	for _, id := range ids {
		f.selected[id] = true
	}
	for _, fn := range f.selListeners {
		fn()
	}
}

func (f *fakeAdapter) rowByID(id string) *RowNode {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i]
		}
	}
	return nil
}

func (f *fakeAdapter) columnByID(id string) *Column {
	for i := range f.columns {
		if f.columns[i].ID == id {
			return &f.columns[i]
		}
	}
	return nil
}

func (f *fakeAdapter) SelectedNodes() []RowNode {
	var out []RowNode
	for _, row := range f.rows {
		if f.selected[row.ID] {
			out = append(out, row)
		}
	}
	return out
}

func (f *fakeAdapter) FocusedCell() *FocusedCell {
	if f.focus == nil {
		return nil
	}
	idx := -1
	for i, id := range f.VisibleRowIDs() {
		if id == f.focus.RowID {
			idx = i
			break
		}
	}
	return &FocusedCell{Cell: *f.focus, RowIndex: idx}
}

func (f *fakeAdapter) SetFocusedCell(id CellID) {
	if f.rowByID(id.RowID) == nil || f.columnByID(id.ColumnID) == nil {
		return
	}
	f.focus = &id
	for _, fn := range f.focusListeners {
		fn()
	}
}

func (f *fakeAdapter) VisibleColumns() []Column {
	var out []Column
	for _, col := range f.columns {
		if col.Visible {
			out = append(out, col)
		}
	}
	return out
}

func (f *fakeAdapter) VisibleRowIDs() []string {
	out := make([]string, len(f.rows))
	for i, row := range f.rows {
		out[i] = row.ID
	}
	return out
}

func (f *fakeAdapter) CellValue(id CellID) any {
	row := f.rowByID(id.RowID)
	if row == nil {
		return nil
	}
	return row.Data[id.ColumnID]
}

func (f *fakeAdapter) UpdateCellValue(id CellID, value any) {
	if !f.IsCellEditable(id) {
		return
	}
	row := f.rowByID(id.RowID)
	if value == nil {
		delete(row.Data, id.ColumnID)
		return
	}
	row.Data[id.ColumnID] = value
}

func (f *fakeAdapter) IsCellEditable(id CellID) bool {
	col := f.columnByID(id.ColumnID)
	if col == nil || !col.Visible || !col.Editable {
		return false
	}
	return f.rowByID(id.RowID) != nil
}

func (f *fakeAdapter) IsEditing() bool { return f.editing }

func (f *fakeAdapter) StartEditing(id CellID, seed string) {
	if !f.IsCellEditable(id) {
		return
	}
	f.editing = true
	f.editCell = id
	f.editSeed = seed
}

func (f *fakeAdapter) StopEditing(cancel bool) {
	f.editing = false
	f.editSeed = ""
}

func (f *fakeAdapter) SelectAll() {
	ids := make([]string, 0, len(f.rows))
	for _, row := range f.rows {
		ids = append(ids, row.ID)
	}
	f.selectRows(ids...)
}

func (f *fakeAdapter) DeselectAll() {
	f.selected = make(map[string]bool)
	for _, fn := range f.selListeners {
		fn()
	}
}

func (f *fakeAdapter) ScrollToCell(id CellID) {
	f.scrolled = append(f.scrolled, id)
}

func (f *fakeAdapter) OnSelectionChange(fn func()) func() {
	f.listenerSeq++
	id := f.listenerSeq
	f.selListeners[id] = fn
	return func() { delete(f.selListeners, id) }
}

func (f *fakeAdapter) OnFocusChange(fn func()) func() {
	f.listenerSeq++
	id := f.listenerSeq
	f.focusListeners[id] = fn
	return func() { delete(f.focusListeners, id) }
}

func (f *fakeAdapter) RowByID(rowID string) *RowNode {
	return f.rowByID(rowID)
}

func (f *fakeAdapter) RowIDByIndex(index int) (string, bool) {
	if index < 0 || index >= len(f.rows) {
		return "", false
	}
	return f.rows[index].ID, true
}

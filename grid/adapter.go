package grid

// GridAdapter is the seam between the interaction engine and a concrete grid
// widget. Implementations must answer every accessor from current state at
// call time (no caching across calls: sort and filter reorder rows between
// any two keystrokes) and must degrade to nil/empty returns instead of
// panicking when handed a stale CellID.
type GridAdapter interface {
	// SelectedNodes returns the selected rows in document order; empty when
	// nothing is selected.
	SelectedNodes() []RowNode

	// FocusedCell returns the focused cell, or nil when nothing is focused.
	FocusedCell() *FocusedCell

	// SetFocusedCell moves keyboard focus. Unknown ids are a no-op.
	SetFocusedCell(id CellID)

	// VisibleColumns returns the visible columns in display order. Hidden
	// columns never appear here and are therefore excluded from copy,
	// paste, fill and navigation.
	VisibleColumns() []Column

	// VisibleRowIDs returns row ids in the current display order, after
	// sorting and filtering.
	VisibleRowIDs() []string

	// CellValue reads a cell; nil for stale or unknown ids.
	CellValue(id CellID) any

	// UpdateCellValue writes a cell. Writing nil clears it. Stale ids and
	// non-editable cells are a no-op.
	UpdateCellValue(id CellID, value any)

	// IsCellEditable is the authoritative editability check; all mutating
	// paths consult it before writing.
	IsCellEditable(id CellID) bool

	// Edit-mode state machine. StartEditing may seed the editor with an
	// initial string (type-to-edit). StopEditing(true) discards the edit.
	IsEditing() bool
	StartEditing(id CellID, seed string)
	StopEditing(cancel bool)

	SelectAll()
	DeselectAll()

	// ScrollToCell makes the cell visible. Required after every navigation
	// move; a focused cell outside the viewport breaks subsequent keyboard
	// operations.
	ScrollToCell(id CellID)

	// OnSelectionChange and OnFocusChange register change listeners and
	// return their unsubscribe functions. Unsubscribing must be exact so an
	// engine can detach without leaking callbacks into a torn-down host.
	OnSelectionChange(fn func()) (unsubscribe func())
	OnFocusChange(fn func()) (unsubscribe func())

	// RowByID returns the row for a stable id, nil when unknown.
	RowByID(rowID string) *RowNode

	// RowIDByIndex maps a visible position back to a stable id; ok is false
	// when the index is out of range.
	RowIDByIndex(index int) (id string, ok bool)
}

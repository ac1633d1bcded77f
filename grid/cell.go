package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// CellID is the stable address of a cell. RowID is a data-source key that
// survives sorting and filtering; ColumnID names the field. A CellID is
// valid only while both parts denote a visible row and column.
type CellID struct {
	RowID    string
	ColumnID string
}

// Column describes one column of a grid.
type Column struct {
	ID       string
	Title    string
	Width    int
	Visible  bool
	Editable bool
}

// RowNode is one row of grid data. Data is opaque to the engine; values are
// read and written by column id only.
type RowNode struct {
	ID   string
	Data map[string]any
}

// FocusedCell points at the cell that currently has keyboard focus.
// RowIndex is the row's position in the visible ordering at the time of the
// call; it must not be cached across renders.
type FocusedCell struct {
	Cell     CellID
	RowIndex int
}

// ClearedCell records one cell emptied by a clear operation.
type ClearedCell struct {
	RowID    string
	Field    string
	OldValue any
}

// FilledCell records one cell overwritten by fill-down.
type FilledCell struct {
	RowID    string
	Field    string
	OldValue any
	NewValue any
}

// CellUpdate is one pending write produced by paste. OriginalData is a
// snapshot of the row before any update in the batch was applied, so the
// host can build an undo entry or a server diff.
type CellUpdate struct {
	RowID        string
	Field        string
	NewValue     string
	OriginalData map[string]any
}

// SelectedCell pairs a cell address with its current value, the unit the
// selection aggregator works on.
type SelectedCell struct {
	Cell  CellID
	Value any
}

// SelectionInfo holds statistics over the current selection. Sum, Average,
// Min and Max are nil when no selected value parses as a finite number.
type SelectionInfo struct {
	CellCount    int
	RowCount     int
	NumericCount int
	Sum          *float64
	Average      *float64
	Min          *float64
	Max          *float64
}

// ValueString renders a cell value the way it appears on the clipboard.
// nil becomes the empty string; everything else goes through fmt.
func ValueString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// valueEmpty reports whether a cell holds nothing worth clearing.
func valueEmpty(v any) bool {
	return strings.TrimSpace(ValueString(v)) == ""
}

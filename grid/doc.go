// Package grid implements an Excel-style interaction engine for tabular
// editing surfaces: copy, paste, fill-down, clear, cell navigation and
// selection statistics. The engine is written entirely against the
// GridAdapter contract so different grid widgets can share one set of
// keyboard and clipboard semantics.
//
// Cells are addressed by CellID{RowID, ColumnID}, never by position: row
// indexes shift under sort and filter, so positional math is re-derived
// from the adapter's current visible-row/visible-column ordering on every
// call. The clipboard interchange format is Excel-compatible TSV.
package grid

// Package gridtest holds the adapter conformance suite. Every GridAdapter
// backend runs the same checks from its own test file, so the engine can be
// written once against the contract and trusted on each backend.
package gridtest

import (
	"testing"

	"github.com/jask/jaskgrid/grid"
)

// Harness is what a backend hands to the suite: its adapter plus a
// row-selection hook, since multi-row selection is backend API rather than
// part of the GridAdapter contract.
type Harness struct {
	Adapter    grid.GridAdapter
	SelectRows func(ids ...string)
}

// Factory builds a fresh backend seeded with the given columns and rows.
type Factory func(t *testing.T, columns []grid.Column, rows []grid.RowNode) Harness

func fixtureColumns() []grid.Column {
	return []grid.Column{
		{ID: "qty", Title: "Qty", Visible: true, Editable: true},
		{ID: "name", Title: "Name", Visible: true, Editable: true},
		{ID: "note", Title: "Note", Visible: true, Editable: false},
		{ID: "id", Title: "ID", Visible: false, Editable: false},
	}
}

func fixtureRows() []grid.RowNode {
	return []grid.RowNode{
		{ID: "r1", Data: map[string]any{"qty": "1", "name": "alpha", "note": "n1", "id": "r1"}},
		{ID: "r2", Data: map[string]any{"qty": "2", "name": "beta", "note": "n2", "id": "r2"}},
		{ID: "r3", Data: map[string]any{"qty": "3", "name": "gamma", "note": "n3", "id": "r3"}},
	}
}

// Run executes the conformance suite against a backend factory.
func Run(t *testing.T, factory Factory) {
	t.Run("visible columns exclude hidden", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		cols := h.Adapter.VisibleColumns()
		if len(cols) != 3 {
			t.Fatalf("visible columns = %d, want 3", len(cols))
		}
		for _, col := range cols {
			if col.ID == "id" {
				t.Fatal("hidden column leaked into VisibleColumns")
			}
		}
	})

	t.Run("visible row ids in document order", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		ids := h.Adapter.VisibleRowIDs()
		want := []string{"r1", "r2", "r3"}
		if len(ids) != len(want) {
			t.Fatalf("row ids = %v, want %v", ids, want)
		}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("row ids = %v, want %v", ids, want)
			}
		}
	})

	t.Run("cell read and write by id", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		id := grid.CellID{RowID: "r2", ColumnID: "name"}
		if v := grid.ValueString(h.Adapter.CellValue(id)); v != "beta" {
			t.Fatalf("value = %q, want beta", v)
		}
		h.Adapter.UpdateCellValue(id, "delta")
		if v := grid.ValueString(h.Adapter.CellValue(id)); v != "delta" {
			t.Fatalf("value after write = %q, want delta", v)
		}
		h.Adapter.UpdateCellValue(id, nil)
		if v := h.Adapter.CellValue(id); v != nil && grid.ValueString(v) != "" {
			t.Fatalf("value after clear = %v, want empty", v)
		}
	})

	t.Run("stale ids are no-ops", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		stale := grid.CellID{RowID: "gone", ColumnID: "qty"}
		if v := h.Adapter.CellValue(stale); v != nil {
			t.Fatalf("stale read = %v, want nil", v)
		}
		h.Adapter.UpdateCellValue(stale, "x") // must not panic
		if h.Adapter.IsCellEditable(stale) {
			t.Fatal("stale cell reported editable")
		}
		h.Adapter.SetFocusedCell(stale)
		if foc := h.Adapter.FocusedCell(); foc != nil && foc.Cell == stale {
			t.Fatal("focus moved to a stale cell")
		}
		h.Adapter.ScrollToCell(stale) // must not panic
	})

	t.Run("editability is authoritative", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		if !h.Adapter.IsCellEditable(grid.CellID{RowID: "r1", ColumnID: "qty"}) {
			t.Fatal("qty should be editable")
		}
		readonly := grid.CellID{RowID: "r1", ColumnID: "note"}
		if h.Adapter.IsCellEditable(readonly) {
			t.Fatal("note column should be read-only")
		}
		before := grid.ValueString(h.Adapter.CellValue(readonly))
		h.Adapter.UpdateCellValue(readonly, "changed")
		if got := grid.ValueString(h.Adapter.CellValue(readonly)); got != before {
			t.Fatalf("read-only cell mutated: %q -> %q", before, got)
		}
		hidden := grid.CellID{RowID: "r1", ColumnID: "id"}
		if h.Adapter.IsCellEditable(hidden) {
			t.Fatal("hidden column should not be editable")
		}
	})

	t.Run("focus reflects set and index", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		if foc := h.Adapter.FocusedCell(); foc != nil {
			t.Fatalf("initial focus = %+v, want nil", foc)
		}
		id := grid.CellID{RowID: "r3", ColumnID: "qty"}
		h.Adapter.SetFocusedCell(id)
		foc := h.Adapter.FocusedCell()
		if foc == nil || foc.Cell != id {
			t.Fatalf("focus = %+v, want %v", foc, id)
		}
		if foc.RowIndex != 2 {
			t.Fatalf("row index = %d, want 2", foc.RowIndex)
		}
	})

	t.Run("row lookups", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		if node := h.Adapter.RowByID("r2"); node == nil || node.ID != "r2" {
			t.Fatalf("RowByID(r2) = %+v", node)
		}
		if node := h.Adapter.RowByID("gone"); node != nil {
			t.Fatalf("RowByID(gone) = %+v, want nil", node)
		}
		if id, ok := h.Adapter.RowIDByIndex(1); !ok || id != "r2" {
			t.Fatalf("RowIDByIndex(1) = %q, %v", id, ok)
		}
		if _, ok := h.Adapter.RowIDByIndex(99); ok {
			t.Fatal("RowIDByIndex(99) should report out of range")
		}
		if _, ok := h.Adapter.RowIDByIndex(-1); ok {
			t.Fatal("RowIDByIndex(-1) should report out of range")
		}
	})

	t.Run("edit state machine", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		if h.Adapter.IsEditing() {
			t.Fatal("fresh grid should not be editing")
		}
		id := grid.CellID{RowID: "r1", ColumnID: "name"}
		h.Adapter.StartEditing(id, "x")
		if !h.Adapter.IsEditing() {
			t.Fatal("StartEditing must enter edit mode")
		}
		h.Adapter.StopEditing(true)
		if h.Adapter.IsEditing() {
			t.Fatal("StopEditing must leave edit mode")
		}
		h.Adapter.StartEditing(grid.CellID{RowID: "r1", ColumnID: "note"}, "")
		if h.Adapter.IsEditing() {
			t.Fatal("read-only cell must not enter edit mode")
		}
	})

	t.Run("selection listeners fire and detach", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		fired := 0
		unsub := h.Adapter.OnSelectionChange(func() { fired++ })
		h.SelectRows("r1")
		if fired == 0 {
			t.Fatal("selection listener did not fire")
		}
		h.Adapter.DeselectAll()
		seen := fired
		unsub()
		h.SelectRows("r2")
		if fired != seen {
			t.Fatal("selection listener fired after unsubscribe")
		}
	})

	t.Run("focus listeners fire and detach", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		fired := 0
		unsub := h.Adapter.OnFocusChange(func() { fired++ })
		h.Adapter.SetFocusedCell(grid.CellID{RowID: "r1", ColumnID: "qty"})
		if fired == 0 {
			t.Fatal("focus listener did not fire")
		}
		seen := fired
		unsub()
		h.Adapter.SetFocusedCell(grid.CellID{RowID: "r2", ColumnID: "qty"})
		if fired != seen {
			t.Fatal("focus listener fired after unsubscribe")
		}
	})

	t.Run("select all and deselect all", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		h.Adapter.SelectAll()
		if got := len(h.Adapter.SelectedNodes()); got != 3 {
			t.Fatalf("selected = %d rows, want 3", got)
		}
		h.Adapter.DeselectAll()
		if got := len(h.Adapter.SelectedNodes()); got != 0 {
			t.Fatalf("selected after deselect = %d rows, want 0", got)
		}
	})

	t.Run("selected nodes in document order", func(t *testing.T) {
		h := factory(t, fixtureColumns(), fixtureRows())
		h.SelectRows("r3", "r1")
		nodes := h.Adapter.SelectedNodes()
		if len(nodes) != 2 || nodes[0].ID != "r1" || nodes[1].ID != "r3" {
			t.Fatalf("selected nodes = %+v, want r1 then r3", nodes)
		}
	})
}

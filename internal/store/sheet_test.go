package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/jask/jaskgrid/grid"
)

// testStore creates a migrated temporary database and returns a store over it.
func testStore(t *testing.T) *SheetStore {
	t.Helper()
	f, err := os.CreateTemp("", "jaskgrid-test-*.db")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := f.Name()
	f.Close()

	db, err := Open(path)
	if err != nil {
		os.Remove(path)
		t.Fatalf("open: %v", err)
	}
	if err := RunMigrations(db); err != nil {
		db.Close()
		os.Remove(path)
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(path)
	})
	return NewSheetStore(db)
}

func TestInsertAndLoadRows(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id1, err := s.InsertRow(ctx, map[string]string{"item": "Apples", "qty": "12"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id2, err := s.InsertRow(ctx, map[string]string{"item": "Bread"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	rows, err := s.LoadRows(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].ID != id1 || rows[1].ID != id2 {
		t.Fatalf("row order = %s, %s, want insertion order", rows[0].ID, rows[1].ID)
	}
	if rows[0].Cells["qty"] != "12" {
		t.Fatalf("qty = %q, want 12", rows[0].Cells["qty"])
	}
	if _, ok := rows[1].Cells["qty"]; ok {
		t.Fatal("absent cell should stay absent")
	}
}

func TestApplyUpdatesUpsertsAndDeletes(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.InsertRow(ctx, map[string]string{"item": "Apples", "qty": "12"})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	err = s.ApplyUpdates(ctx, []grid.CellUpdate{
		{RowID: id, Field: "qty", NewValue: "20"},   // overwrite
		{RowID: id, Field: "note", NewValue: "new"}, // insert
		{RowID: id, Field: "item", NewValue: ""},    // delete
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	rows, err := s.LoadRows(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cells := rows[0].Cells
	if cells["qty"] != "20" || cells["note"] != "new" {
		t.Fatalf("cells = %v, want qty=20 note=new", cells)
	}
	if _, ok := cells["item"]; ok {
		t.Fatal("empty update should delete the cell")
	}
}

func TestClearAndFillBatches(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id1, _ := s.InsertRow(ctx, map[string]string{"qty": "1", "item": "a"})
	id2, _ := s.InsertRow(ctx, map[string]string{"qty": "9", "item": "b"})

	if err := s.FillCells(ctx, []grid.FilledCell{
		{RowID: id2, Field: "qty", OldValue: "9", NewValue: "1"},
	}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if err := s.ClearCells(ctx, []grid.ClearedCell{
		{RowID: id1, Field: "item", OldValue: "a"},
	}); err != nil {
		t.Fatalf("clear: %v", err)
	}

	rows, err := s.LoadRows(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rows[1].Cells["qty"] != "1" {
		t.Fatalf("filled qty = %q, want 1", rows[1].Cells["qty"])
	}
	if _, ok := rows[0].Cells["item"]; ok {
		t.Fatal("cleared cell should be gone")
	}
}

func TestSeedSampleDataIsIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.SeedSampleData(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	first, err := s.LoadRows(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("seed inserted nothing")
	}

	if err := s.SeedSampleData(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	second, err := s.LoadRows(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("rows after reseed = %d, want %d", len(second), len(first))
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	id, _ := s.InsertRow(ctx, map[string]string{"qty": "1"})

	err := WithTx(s.db, func(tx *sql.Tx) error {
		if err := writeCell(ctx, tx, id, "qty", "99"); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	if err == nil {
		t.Fatal("expected error from tx body")
	}

	rows, _ := s.LoadRows(ctx)
	if rows[0].Cells["qty"] != "1" {
		t.Fatalf("qty = %q, want rollback to 1", rows[0].Cells["qty"])
	}
}

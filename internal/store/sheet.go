package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/jaskgrid/grid"
)

// Row is one persisted sheet row: a stable id, a display position and the
// cell values keyed by column id. Missing keys are empty cells.
type Row struct {
	ID    string
	Pos   int
	Cells map[string]string
}

// SheetStore reads and writes sheet rows.
type SheetStore struct {
	db *sql.DB
}

func NewSheetStore(db *sql.DB) *SheetStore {
	return &SheetStore{db: db}
}

// LoadRows returns all rows ordered by position.
func (s *SheetStore) LoadRows(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, pos FROM sheet_rows ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("load rows: %w", err)
	}
	defer rows.Close()

	var out []Row
	index := make(map[string]int)
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.Pos); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.Cells = make(map[string]string)
		index[r.ID] = len(out)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cells, err := s.db.QueryContext(ctx, `SELECT row_id, column_id, value FROM sheet_cells`)
	if err != nil {
		return nil, fmt.Errorf("load cells: %w", err)
	}
	defer cells.Close()
	for cells.Next() {
		var rowID, columnID, value string
		if err := cells.Scan(&rowID, &columnID, &value); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		if i, ok := index[rowID]; ok {
			out[i].Cells[columnID] = value
		}
	}
	return out, cells.Err()
}

// InsertRow appends a row at the end of the sheet and returns its minted id.
func (s *SheetStore) InsertRow(ctx context.Context, cells map[string]string) (string, error) {
	id := uuid.NewString()
	err := WithTx(s.db, func(tx *sql.Tx) error {
		var pos sql.NullInt64
		if err := tx.QueryRowContext(ctx, `SELECT MAX(pos) FROM sheet_rows`).Scan(&pos); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO sheet_rows(id, pos) VALUES(?, ?)`, id, pos.Int64+1); err != nil {
			return err
		}
		return upsertCells(ctx, tx, id, cells)
	})
	if err != nil {
		return "", fmt.Errorf("insert row: %w", err)
	}
	return id, nil
}

// ApplyUpdates persists one paste batch atomically. Empty values delete the
// cell so cleared and pasted-empty cells read back identically.
func (s *SheetStore) ApplyUpdates(ctx context.Context, updates []grid.CellUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	err := WithTx(s.db, func(tx *sql.Tx) error {
		for _, u := range updates {
			if err := writeCell(ctx, tx, u.RowID, u.Field, u.NewValue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("apply updates: %w", err)
	}
	return nil
}

// ClearCells persists one clear batch atomically.
func (s *SheetStore) ClearCells(ctx context.Context, cleared []grid.ClearedCell) error {
	if len(cleared) == 0 {
		return nil
	}
	err := WithTx(s.db, func(tx *sql.Tx) error {
		for _, c := range cleared {
			if err := writeCell(ctx, tx, c.RowID, c.Field, ""); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear cells: %w", err)
	}
	return nil
}

// FillCells persists one fill-down batch atomically.
func (s *SheetStore) FillCells(ctx context.Context, filled []grid.FilledCell) error {
	if len(filled) == 0 {
		return nil
	}
	err := WithTx(s.db, func(tx *sql.Tx) error {
		for _, f := range filled {
			if err := writeCell(ctx, tx, f.RowID, f.Field, grid.ValueString(f.NewValue)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("fill cells: %w", err)
	}
	return nil
}

func writeCell(ctx context.Context, tx *sql.Tx, rowID, columnID, value string) error {
	if value == "" {
		_, err := tx.ExecContext(ctx, `DELETE FROM sheet_cells WHERE row_id = ? AND column_id = ?`, rowID, columnID)
		return err
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sheet_cells(row_id, column_id, value) VALUES(?, ?, ?)
		ON CONFLICT(row_id, column_id) DO UPDATE SET value = excluded.value`,
		rowID, columnID, value)
	return err
}

func upsertCells(ctx context.Context, tx *sql.Tx, rowID string, cells map[string]string) error {
	for columnID, value := range cells {
		if err := writeCell(ctx, tx, rowID, columnID, value); err != nil {
			return err
		}
	}
	return nil
}

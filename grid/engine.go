package grid

import (
	"context"
	"errors"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// ErrNoAdapter is returned by NewEngine when no adapter is supplied.
var ErrNoAdapter = errors.New("grid: engine requires an adapter")

// Callbacks is the host-side contract. The engine never persists anything
// itself; each operation reports what changed through exactly one callback
// invocation so the host can apply the batch as a single transaction.
type Callbacks struct {
	OnCellsCleared func(cleared []ClearedCell)
	OnCellsFilled  func(filled []FilledCell)
	OnPaste        func(ctx context.Context, updates []CellUpdate) error
}

// Options configures a new Engine.
type Options struct {
	Adapter   GridAdapter
	Clipboard Clipboard // defaults to SystemClipboard
	Callbacks Callbacks
	Logger    zerolog.Logger
}

// Engine wires the clipboard codec, navigation and selection statistics to
// one grid through its adapter. Every Engine owns its copy buffer, so
// multiple grids on one screen do not interfere.
type Engine struct {
	adapter GridAdapter
	clip    Clipboard
	cb      Callbacks
	log     zerolog.Logger

	selection  SelectionInfo
	lastCopied [][]string
	pasting    atomic.Bool
	unsubs     []func()
}

// NewEngine attaches an engine to a grid. Call Close when the host grid is
// torn down; leaked listeners would otherwise fire against a dead widget.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Adapter == nil {
		return nil, ErrNoAdapter
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}
	e := &Engine{
		adapter: opts.Adapter,
		clip:    clip,
		cb:      opts.Callbacks,
		log:     opts.Logger,
	}
	e.unsubs = append(e.unsubs,
		opts.Adapter.OnSelectionChange(e.refreshSelection),
		opts.Adapter.OnFocusChange(e.refreshSelection),
	)
	e.refreshSelection()
	return e, nil
}

// Close detaches the engine from its adapter.
func (e *Engine) Close() {
	for _, unsub := range e.unsubs {
		if unsub != nil {
			unsub()
		}
	}
	e.unsubs = nil
}

// Selection returns the statistics computed at the last selection or focus
// change.
func (e *Engine) Selection() SelectionInfo {
	return e.selection
}

// refreshSelection recomputes statistics. A focused cell with no multi-row
// selection still counts as a one-cell selection.
func (e *Engine) refreshSelection() {
	cells := e.selectedCells()
	e.selection = Summarize(cells)
}

func (e *Engine) selectedCells() []SelectedCell {
	nodes := e.adapter.SelectedNodes()
	cols := e.adapter.VisibleColumns()
	if len(nodes) > 0 {
		cells := make([]SelectedCell, 0, len(nodes)*len(cols))
		for _, node := range nodes {
			for _, col := range cols {
				id := CellID{RowID: node.ID, ColumnID: col.ID}
				cells = append(cells, SelectedCell{Cell: id, Value: e.adapter.CellValue(id)})
			}
		}
		return cells
	}
	foc := e.adapter.FocusedCell()
	if foc == nil {
		return nil
	}
	return []SelectedCell{{Cell: foc.Cell, Value: e.adapter.CellValue(foc.Cell)}}
}

// ---------------------------------------------------------------------------
// Copy / paste
// ---------------------------------------------------------------------------

// Copy serializes the selection (or the focused cell when nothing is
// selected) as TSV and writes it to the clipboard. Clipboard failures are
// logged and swallowed: permission errors are routine and must never take
// down the keyboard handler.
func (e *Engine) Copy(ctx context.Context) {
	matrix := e.copyMatrix()
	if len(matrix) == 0 {
		return
	}
	e.lastCopied = matrix
	if err := e.clip.WriteText(ctx, SerializeMatrix(matrix)); err != nil {
		e.log.Warn().Err(err).Msg("clipboard write failed")
	}
}

func (e *Engine) copyMatrix() [][]string {
	cols := e.adapter.VisibleColumns()
	nodes := e.adapter.SelectedNodes()
	if len(nodes) > 0 && len(cols) > 0 {
		matrix := make([][]string, 0, len(nodes))
		for _, node := range nodes {
			row := make([]string, 0, len(cols))
			for _, col := range cols {
				row = append(row, ValueString(e.adapter.CellValue(CellID{RowID: node.ID, ColumnID: col.ID})))
			}
			matrix = append(matrix, row)
		}
		return matrix
	}
	foc := e.adapter.FocusedCell()
	if foc == nil {
		return nil
	}
	return [][]string{{ValueString(e.adapter.CellValue(foc.Cell))}}
}

// LastCopied returns the matrix captured by the most recent Copy on this
// engine instance.
func (e *Engine) LastCopied() [][]string {
	return e.lastCopied
}

// Paste reads TSV from the clipboard and builds one CellUpdate batch
// anchored at the focused cell, walking the parsed block row-major through
// the current visible ordering. Rows and columns that run past the grid
// edge are truncated silently; non-editable destinations are skipped per
// cell. The whole batch goes to OnPaste in a single call. A paste that is
// still awaiting its OnPaste result causes later requests to be dropped.
func (e *Engine) Paste(ctx context.Context) {
	if e.cb.OnPaste == nil {
		return
	}
	// Anchor to the focus captured now, before any suspension point:
	// Excel pastes relative to where the paste was initiated even if focus
	// moves while the clipboard is being read.
	foc := e.adapter.FocusedCell()
	if foc == nil {
		return
	}
	if !e.pasting.CompareAndSwap(false, true) {
		e.log.Debug().Msg("paste dropped: previous paste still in flight")
		return
	}
	defer e.pasting.Store(false)

	text, err := e.clip.ReadText(ctx)
	if err != nil {
		e.log.Warn().Err(err).Msg("clipboard read failed")
		return
	}
	matrix := DeserializeMatrix(text)
	if len(matrix) == 0 {
		return
	}

	updates := e.pasteUpdates(foc.Cell, matrix)
	if len(updates) == 0 {
		return
	}
	if err := e.cb.OnPaste(ctx, updates); err != nil {
		e.log.Warn().Err(err).Msg("paste apply failed")
	}
}

func (e *Engine) pasteUpdates(anchor CellID, matrix [][]string) []CellUpdate {
	rowIDs := e.adapter.VisibleRowIDs()
	cols := e.adapter.VisibleColumns()
	startRow := indexOfRow(rowIDs, anchor.RowID)
	startCol := indexOfColumn(cols, anchor.ColumnID)
	if startRow < 0 || startCol < 0 {
		return nil
	}

	var updates []CellUpdate
	for i, srcRow := range matrix {
		ri := startRow + i
		if ri >= len(rowIDs) {
			break
		}
		rowID := rowIDs[ri]
		var original map[string]any
		if node := e.adapter.RowByID(rowID); node != nil {
			original = cloneData(node.Data)
		}
		for j, value := range srcRow {
			ci := startCol + j
			if ci >= len(cols) {
				break
			}
			id := CellID{RowID: rowID, ColumnID: cols[ci].ID}
			if !e.adapter.IsCellEditable(id) {
				continue
			}
			updates = append(updates, CellUpdate{
				RowID:        rowID,
				Field:        cols[ci].ID,
				NewValue:     value,
				OriginalData: original,
			})
		}
	}
	return updates
}

// ---------------------------------------------------------------------------
// Clear / fill
// ---------------------------------------------------------------------------

// ClearSelectedCells empties every editable cell across the selected rows,
// or just the focused cell when no rows are selected. Cells that are
// already empty produce no event; OnCellsCleared fires once with the full
// batch, and not at all when nothing changed.
func (e *Engine) ClearSelectedCells() {
	cols := e.adapter.VisibleColumns()
	nodes := e.adapter.SelectedNodes()

	var cleared []ClearedCell
	if len(nodes) > 0 {
		for _, node := range nodes {
			for _, col := range cols {
				if c, ok := e.clearCell(CellID{RowID: node.ID, ColumnID: col.ID}); ok {
					cleared = append(cleared, c)
				}
			}
		}
	} else if foc := e.adapter.FocusedCell(); foc != nil {
		if c, ok := e.clearCell(foc.Cell); ok {
			cleared = append(cleared, c)
		}
	}

	if len(cleared) == 0 {
		return
	}
	if e.cb.OnCellsCleared != nil {
		e.cb.OnCellsCleared(cleared)
	}
	e.refreshSelection()
}

func (e *Engine) clearCell(id CellID) (ClearedCell, bool) {
	if !e.adapter.IsCellEditable(id) {
		return ClearedCell{}, false
	}
	old := e.adapter.CellValue(id)
	if valueEmpty(old) {
		return ClearedCell{}, false
	}
	e.adapter.UpdateCellValue(id, nil)
	return ClearedCell{RowID: id.RowID, Field: id.ColumnID, OldValue: old}, true
}

// FillDown copies the first selected row's values into every other selected
// row, editable columns only. "First" is document order, resolved against
// the current visible ordering. Cells whose value already matches the
// source are left untouched, which makes the operation idempotent: a second
// fill emits an empty batch. Fewer than two selected rows is a no-op.
func (e *Engine) FillDown() {
	nodes := e.sortedSelection()
	if len(nodes) < 2 {
		return
	}
	cols := e.adapter.VisibleColumns()
	source := nodes[0]

	var filled []FilledCell
	for _, node := range nodes[1:] {
		for _, col := range cols {
			id := CellID{RowID: node.ID, ColumnID: col.ID}
			if !e.adapter.IsCellEditable(id) {
				continue
			}
			srcVal := e.adapter.CellValue(CellID{RowID: source.ID, ColumnID: col.ID})
			cur := e.adapter.CellValue(id)
			if ValueString(cur) == ValueString(srcVal) {
				continue
			}
			e.adapter.UpdateCellValue(id, srcVal)
			filled = append(filled, FilledCell{
				RowID:    node.ID,
				Field:    col.ID,
				OldValue: cur,
				NewValue: srcVal,
			})
		}
	}

	if len(filled) == 0 {
		return
	}
	if e.cb.OnCellsFilled != nil {
		e.cb.OnCellsFilled(filled)
	}
	e.refreshSelection()
}

// sortedSelection returns the selected rows ordered by their position in
// the current visible ordering, dropping rows that sorting or filtering has
// hidden since they were selected.
func (e *Engine) sortedSelection() []RowNode {
	nodes := e.adapter.SelectedNodes()
	if len(nodes) < 2 {
		return nodes
	}
	pos := make(map[string]int)
	for i, id := range e.adapter.VisibleRowIDs() {
		pos[id] = i
	}
	ordered := make([]RowNode, 0, len(nodes))
	for _, node := range nodes {
		if _, ok := pos[node.ID]; ok {
			ordered = append(ordered, node)
		}
	}
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && pos[ordered[j].ID] < pos[ordered[j-1].ID]; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered
}

// ---------------------------------------------------------------------------
// Navigation and selection pass-throughs
// ---------------------------------------------------------------------------

// Navigate moves focus one step and scrolls the landing cell into view.
// With no focused cell it starts at the grid origin.
func (e *Engine) Navigate(dir Direction) {
	rowIDs := e.adapter.VisibleRowIDs()
	cols := e.adapter.VisibleColumns()
	if len(rowIDs) == 0 || len(cols) == 0 {
		return
	}

	pos := Position{}
	if foc := e.adapter.FocusedCell(); foc != nil {
		if r := indexOfRow(rowIDs, foc.Cell.RowID); r >= 0 {
			pos.Row = r
		}
		if c := indexOfColumn(cols, foc.Cell.ColumnID); c >= 0 {
			pos.Col = c
		}
		pos = NextPosition(pos, dir, len(rowIDs), len(cols))
	}

	id := CellID{RowID: rowIDs[pos.Row], ColumnID: cols[pos.Col].ID}
	e.adapter.SetFocusedCell(id)
	e.adapter.ScrollToCell(id)
}

func (e *Engine) SelectAll()   { e.adapter.SelectAll() }
func (e *Engine) DeselectAll() { e.adapter.DeselectAll() }

// ---------------------------------------------------------------------------
// Keyboard dispatch
// ---------------------------------------------------------------------------

// HandleKey runs the two-state keyboard machine and reports whether the key
// was consumed. While a cell is open for edit only esc (cancel) and plain
// enter (commit, then move down) are intercepted; everything else flows to
// the native editor. Unconsumed keys are the host's to route.
func (e *Engine) HandleKey(ctx context.Context, msg tea.KeyMsg) bool {
	if e.adapter.IsEditing() {
		switch msg.String() {
		case "esc":
			e.adapter.StopEditing(true)
			return true
		case "enter":
			e.adapter.StopEditing(false)
			e.Navigate(DirDown)
			return true
		}
		return false
	}

	action, r := classifyKey(msg)
	switch action {
	case keyCopy:
		e.Copy(ctx)
	case keyPaste:
		e.Paste(ctx)
	case keySelectAll:
		e.SelectAll()
	case keyFillDown:
		e.FillDown()
	case keyClear:
		e.ClearSelectedCells()
	case keyNavNext:
		e.Navigate(DirNext)
	case keyNavPrev:
		e.Navigate(DirPrev)
	case keyNavDown:
		e.Navigate(DirDown)
	case keyNavUp:
		e.Navigate(DirUp)
	case keyEdit:
		foc := e.adapter.FocusedCell()
		if foc == nil || !e.adapter.IsCellEditable(foc.Cell) {
			return false
		}
		e.adapter.StartEditing(foc.Cell, "")
	case keyCancel:
		e.adapter.StopEditing(true)
		e.DeselectAll()
	case keyType:
		foc := e.adapter.FocusedCell()
		if foc == nil || !e.adapter.IsCellEditable(foc.Cell) {
			return false
		}
		e.adapter.StartEditing(foc.Cell, string(r))
	default:
		return false
	}
	return true
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func indexOfRow(rowIDs []string, rowID string) int {
	for i, id := range rowIDs {
		if id == rowID {
			return i
		}
	}
	return -1
}

func indexOfColumn(cols []Column, columnID string) int {
	for i, col := range cols {
		if col.ID == columnID {
			return i
		}
	}
	return -1
}

func cloneData(data map[string]any) map[string]any {
	if data == nil {
		return nil
	}
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

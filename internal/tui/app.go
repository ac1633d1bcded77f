// Package tui is the terminal sheet editor: a teagrid widget wired to the
// interaction engine, with cell edits persisted through the sqlite store.
// It is also the reference host for the engine's callback contract.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jask/jaskgrid/grid"
	"github.com/jask/jaskgrid/grid/teagrid"
	"github.com/jask/jaskgrid/internal/config"
	"github.com/jask/jaskgrid/internal/store"
)

// App ties the widget, engine and store together.
type App struct {
	ctx    context.Context
	cfg    config.Config
	log    zerolog.Logger
	sheet  *store.SheetStore
	widget *teagrid.Model
	engine *grid.Engine
	keys   keyMap

	jump   *jumpState
	status string
	width  int
	height int
}

// sheetColumns is the demo sheet layout. The id column stays hidden: it
// exists so pastes resolved by row key have a stable anchor, not for
// display.
func sheetColumns() []grid.Column {
	return []grid.Column{
		{ID: "item", Title: "Item", Width: 18, Visible: true, Editable: true},
		{ID: "qty", Title: "Qty", Width: 6, Visible: true, Editable: true},
		{ID: "price", Title: "Price", Width: 9, Visible: true, Editable: true},
		{ID: "note", Title: "Note", Width: 24, Visible: true, Editable: true},
		{ID: "id", Title: "ID", Width: 36, Visible: false, Editable: false},
	}
}

// New builds the app and attaches the engine to the widget.
func New(ctx context.Context, cfg config.Config, sheet *store.SheetStore, log zerolog.Logger) (*App, error) {
	a := &App{
		ctx:    ctx,
		cfg:    cfg,
		log:    log,
		sheet:  sheet,
		widget: teagrid.New(sheetColumns(), cfg.UI.PageSize),
		keys:   newKeyMap(),
	}

	var clip grid.Clipboard = grid.SystemClipboard{}
	if !cfg.Clipboard.System {
		clip = &grid.MemoryClipboard{}
	}

	engine, err := grid.NewEngine(grid.Options{
		Adapter:   a.widget,
		Clipboard: clip,
		Logger:    log,
		Callbacks: grid.Callbacks{
			OnPaste:        a.applyPaste,
			OnCellsCleared: a.persistCleared,
			OnCellsFilled:  a.persistFilled,
		},
	})
	if err != nil {
		return nil, err
	}
	a.engine = engine
	return a, nil
}

func (a *App) Init() tea.Cmd {
	return a.loadRows()
}

// ---------------------------------------------------------------------------
// Engine callbacks: the persistence side of the change-batch contract
// ---------------------------------------------------------------------------

// applyPaste writes the paste batch to the widget, then persists it in one
// transaction. The engine never mutates the grid on paste; that is the
// host's call to make.
func (a *App) applyPaste(ctx context.Context, updates []grid.CellUpdate) error {
	for _, u := range updates {
		id := grid.CellID{RowID: u.RowID, ColumnID: u.Field}
		if u.NewValue == "" {
			a.widget.UpdateCellValue(id, nil)
		} else {
			a.widget.UpdateCellValue(id, u.NewValue)
		}
	}
	if err := a.sheet.ApplyUpdates(ctx, updates); err != nil {
		a.status = errorStyle.Render("paste not saved: " + err.Error())
		return err
	}
	a.status = fmt.Sprintf("Pasted %d cells", len(updates))
	return nil
}

func (a *App) persistCleared(cleared []grid.ClearedCell) {
	if err := a.sheet.ClearCells(a.ctx, cleared); err != nil {
		a.log.Error().Err(err).Msg("persist clear failed")
		a.status = errorStyle.Render("clear not saved: " + err.Error())
		return
	}
	a.status = fmt.Sprintf("Cleared %d cells", len(cleared))
}

func (a *App) persistFilled(filled []grid.FilledCell) {
	if err := a.sheet.FillCells(a.ctx, filled); err != nil {
		a.log.Error().Err(err).Msg("persist fill failed")
		a.status = errorStyle.Render("fill not saved: " + err.Error())
		return
	}
	a.status = fmt.Sprintf("Filled %d cells", len(filled))
}

// ---------------------------------------------------------------------------
// Bubble Tea messages
// ---------------------------------------------------------------------------

type rowsLoadedMsg struct {
	rows []store.Row
}

type rowAddedMsg struct {
	id string
}

type errMsg struct {
	err error
}

func (a *App) loadRows() tea.Cmd {
	return func() tea.Msg {
		rows, err := a.sheet.LoadRows(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return rowsLoadedMsg{rows: rows}
	}
}

func (a *App) addRow() tea.Cmd {
	return func() tea.Msg {
		id, err := a.sheet.InsertRow(a.ctx, map[string]string{})
		if err != nil {
			return errMsg{err}
		}
		return rowAddedMsg{id: id}
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// title, status and footer rows
		a.widget.SetSize(msg.Width, msg.Height-4)
		return a, nil

	case rowsLoadedMsg:
		rows := make([]teagrid.Row, 0, len(msg.rows))
		for _, r := range msg.rows {
			cells := r.Cells
			if cells == nil {
				cells = make(map[string]string)
			}
			cells["id"] = r.ID
			rows = append(rows, teagrid.Row{ID: r.ID, Cells: cells})
		}
		a.widget.SetRows(rows)
		if a.widget.FocusedCell() == nil && len(rows) > 0 {
			a.widget.SetFocusedCell(grid.CellID{RowID: rows[0].ID, ColumnID: "item"})
		}
		a.status = fmt.Sprintf("Loaded %d rows", len(rows))
		return a, nil

	case rowAddedMsg:
		a.widget.AppendRow(teagrid.Row{ID: msg.id, Cells: map[string]string{"id": msg.id}})
		a.widget.SetFocusedCell(grid.CellID{RowID: msg.id, ColumnID: "item"})
		a.widget.ScrollToCell(grid.CellID{RowID: msg.id, ColumnID: "item"})
		a.status = "Row added"
		return a, nil

	case errMsg:
		a.log.Error().Err(msg.err).Msg("tui error")
		a.status = errorStyle.Render(msg.err.Error())
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.jump != nil {
		a.handleJumpKey(msg)
		return a, nil
	}

	if !a.widget.IsEditing() {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Jump):
			a.jump = newJump(a.widget.VisibleColumns())
			return a, nil
		case key.Matches(msg, a.keys.AddRow):
			return a, a.addRow()
		}
	}

	// The engine gets first refusal; unconsumed keys fall through to the
	// widget (arrow keys, paging, editor input).
	if a.engine.HandleKey(a.ctx, msg) {
		return a, nil
	}
	return a, a.widget.Update(msg)
}

func (a *App) handleJumpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		a.jump = nil
	case "enter":
		if col, ok := a.jump.selected(); ok {
			a.focusColumn(col.ID)
		}
		a.jump = nil
	case "up":
		a.jump.move(-1)
	case "down":
		a.jump.move(1)
	case "backspace":
		if q := a.jump.query; q != "" {
			a.jump.setQuery(q[:len(q)-1])
		}
	default:
		if msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) == 1 {
			a.jump.setQuery(a.jump.query + string(msg.Runes))
		}
	}
}

// focusColumn keeps the row and moves focus to the chosen column.
func (a *App) focusColumn(columnID string) {
	rowID := ""
	if foc := a.widget.FocusedCell(); foc != nil {
		rowID = foc.Cell.RowID
	} else if ids := a.widget.VisibleRowIDs(); len(ids) > 0 {
		rowID = ids[0]
	}
	if rowID == "" {
		return
	}
	id := grid.CellID{RowID: rowID, ColumnID: columnID}
	a.widget.SetFocusedCell(id)
	a.widget.ScrollToCell(id)
}

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (a *App) View() string {
	title := titleStyle.Render("jaskgrid")
	body := a.widget.View()
	status := statusStyle.Render(a.statusLine())
	footer := footerStyle.Render(
		"ctrl+c copy  ctrl+v paste  ctrl+d fill  del clear  tab/enter move  f2 edit  ctrl+g jump  ctrl+n row  ctrl+q quit")

	view := lipgloss.JoinVertical(lipgloss.Left, title, body, status, footer)
	if a.jump != nil {
		view = lipgloss.JoinVertical(lipgloss.Left, view, a.jumpView())
	}
	return view
}

// statusLine shows the latest operation result plus live selection
// statistics, the spreadsheet status-bar convention.
func (a *App) statusLine() string {
	info := a.engine.Selection()
	if info.CellCount == 0 {
		return a.status
	}
	parts := []string{
		fmt.Sprintf("%d cells", info.CellCount),
		fmt.Sprintf("%d rows", info.RowCount),
	}
	if info.NumericCount > 0 {
		parts = append(parts,
			"sum "+formatStat(*info.Sum),
			"avg "+formatStat(*info.Average),
			"min "+formatStat(*info.Min),
			"max "+formatStat(*info.Max),
		)
	}
	stats := statsStyle.Render(strings.Join(parts, "  "))
	if a.status == "" {
		return stats
	}
	return a.status + "  " + stats
}

func (a *App) jumpView() string {
	var b strings.Builder
	b.WriteString("jump to column: " + a.jump.query)
	for i, col := range a.jump.matches {
		b.WriteByte('\n')
		cursor := "  "
		if i == a.jump.cursor {
			cursor = "> "
		}
		line := cursor + col.Title
		if i == a.jump.cursor {
			b.WriteString(line)
		} else {
			b.WriteString(mutedStyle.Render(line))
		}
	}
	return modalStyle.Render(b.String())
}

func formatStat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package teagrid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/jaskgrid/grid"
)

// Styles bundles the widget's lipgloss styles so hosts can retheme it.
type Styles struct {
	Header       lipgloss.Style
	Cell         lipgloss.Style
	FocusedCell  lipgloss.Style
	SelectedRow  lipgloss.Style
	EditingCell  lipgloss.Style
	ReadOnlyCell lipgloss.Style
}

// DefaultStyles returns the stock look.
func DefaultStyles() Styles {
	return Styles{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b4befe")),
		Cell:         lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")),
		FocusedCell:  lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#b4befe")),
		SelectedRow:  lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Background(lipgloss.Color("#45475a")),
		EditingCell:  lipgloss.NewStyle().Foreground(lipgloss.Color("#1e1e2e")).Background(lipgloss.Color("#f9e2af")),
		ReadOnlyCell: lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086")),
	}
}

// SetStyles replaces the widget's styles.
func (m *Model) SetStyles(s Styles) { m.styles = s }

// View renders the header plus the rows inside the current viewport. The
// editing cell shows the live editor; the focused cell and selected rows
// get their own styles.
func (m *Model) View() string {
	cols := m.VisibleColumns()
	if len(cols) == 0 {
		return "no columns"
	}

	var b strings.Builder
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = m.styles.Header.Render(pad(col.Title, colWidth(col)))
	}
	b.WriteString(strings.Join(header, " "))

	end := m.top + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for ri := m.top; ri < end; ri++ {
		b.WriteByte('\n')
		b.WriteString(m.renderRow(m.rows[ri], cols))
	}
	return b.String()
}

func (m *Model) renderRow(row Row, cols []grid.Column) string {
	selected := m.selected[row.ID]
	cells := make([]string, len(cols))
	for i, col := range cols {
		id := grid.CellID{RowID: row.ID, ColumnID: col.ID}
		width := colWidth(col)

		if m.editing && m.editCell == id {
			cells[i] = m.styles.EditingCell.Render(pad(m.editor.View(), width))
			continue
		}

		text := pad(row.Cells[col.ID], width)
		switch {
		case m.focus != nil && *m.focus == id:
			cells[i] = m.styles.FocusedCell.Render(text)
		case selected:
			cells[i] = m.styles.SelectedRow.Render(text)
		case !col.Editable:
			cells[i] = m.styles.ReadOnlyCell.Render(text)
		default:
			cells[i] = m.styles.Cell.Render(text)
		}
	}
	return strings.Join(cells, " ")
}

func colWidth(col grid.Column) int {
	if col.Width > 0 {
		return col.Width
	}
	return 12
}

// pad truncates or right-pads to the column width.
func pad(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			return string(r[:width])
		}
		return string(r[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(r))
}

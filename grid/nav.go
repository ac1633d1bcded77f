package grid

// Direction is a navigation move relative to the focused cell.
type Direction int

const (
	// DirNext advances one column, wrapping to the start of the next row at
	// the right edge (Tab).
	DirNext Direction = iota
	// DirPrev is the mirror of DirNext (Shift+Tab).
	DirPrev
	// DirDown moves one row down, column unchanged (Enter).
	DirDown
	// DirUp moves one row up, column unchanged (Shift+Enter).
	DirUp
	// DirLeft and DirRight are column-only moves without row wraparound,
	// for arrow-key style hosts.
	DirLeft
	DirRight
)

// Position is a (row, column) pair inside the current visible ordering.
// Positions are derived fresh per move and never cached across renders.
type Position struct {
	Row int
	Col int
}

// NextPosition computes the landing position for a move. Both axes are
// clamped to [0, length-1]; an empty grid pins the result at the origin.
func NextPosition(pos Position, dir Direction, rowCount, colCount int) Position {
	if rowCount <= 0 || colCount <= 0 {
		return Position{}
	}
	next := pos
	switch dir {
	case DirNext:
		next.Col++
		if next.Col >= colCount {
			next.Col = 0
			next.Row++
		}
	case DirPrev:
		next.Col--
		if next.Col < 0 {
			next.Col = colCount - 1
			next.Row--
		}
	case DirDown:
		next.Row++
	case DirUp:
		next.Row--
	case DirRight:
		next.Col++
	case DirLeft:
		next.Col--
	}
	next.Row = clampIndex(next.Row, rowCount)
	next.Col = clampIndex(next.Col, colCount)
	return next
}

func clampIndex(i, length int) int {
	if i < 0 || length <= 0 {
		return 0
	}
	if i >= length {
		return length - 1
	}
	return i
}

package grid

import "testing"

func TestNextPosition(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		dir  Direction
		rows int
		cols int
		want Position
	}{
		{"next within row", Position{0, 0}, DirNext, 3, 3, Position{0, 1}},
		{"next wraps to next row", Position{0, 2}, DirNext, 3, 3, Position{1, 0}},
		{"next clamps at last cell", Position{2, 2}, DirNext, 3, 3, Position{2, 0}},
		{"prev within row", Position{1, 1}, DirPrev, 3, 3, Position{1, 0}},
		{"prev wraps to previous row", Position{1, 0}, DirPrev, 3, 3, Position{0, 2}},
		{"prev clamps at origin", Position{0, 0}, DirPrev, 3, 3, Position{0, 2}},
		{"down keeps column", Position{0, 2}, DirDown, 3, 3, Position{1, 2}},
		{"down clamps at bottom", Position{2, 1}, DirDown, 3, 3, Position{2, 1}},
		{"up keeps column", Position{2, 1}, DirUp, 3, 3, Position{1, 1}},
		{"up clamps at top", Position{0, 1}, DirUp, 3, 3, Position{0, 1}},
		{"right no row wrap", Position{1, 2}, DirRight, 3, 3, Position{1, 2}},
		{"left no row wrap", Position{1, 0}, DirLeft, 3, 3, Position{1, 0}},
		{"empty grid pins origin", Position{5, 5}, DirNext, 0, 0, Position{0, 0}},
		{"no rows pins origin", Position{0, 0}, DirNext, 0, 2, Position{0, 0}},
		{"no columns pins origin", Position{0, 1}, DirDown, 2, 0, Position{0, 0}},
		{"single cell", Position{0, 0}, DirDown, 1, 1, Position{0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NextPosition(tc.pos, tc.dir, tc.rows, tc.cols)
			if got != tc.want {
				t.Fatalf("NextPosition(%v, %d) = %v, want %v", tc.pos, tc.dir, got, tc.want)
			}
		})
	}
}

func TestNextPositionNeverOutOfBounds(t *testing.T) {
	dirs := []Direction{DirNext, DirPrev, DirUp, DirDown, DirLeft, DirRight}
	for rows := 0; rows <= 3; rows++ {
		for cols := 0; cols <= 3; cols++ {
			for r := -1; r <= rows; r++ {
				for c := -1; c <= cols; c++ {
					for _, dir := range dirs {
						got := NextPosition(Position{r, c}, dir, rows, cols)
						if got.Row < 0 || got.Col < 0 {
							t.Fatalf("negative position %v for rows=%d cols=%d", got, rows, cols)
						}
						if rows > 0 && got.Row >= rows {
							t.Fatalf("row %d out of range (rows=%d)", got.Row, rows)
						}
						if cols > 0 && got.Col >= cols {
							t.Fatalf("col %d out of range (cols=%d)", got.Col, cols)
						}
						if (rows == 0 || cols == 0) && got != (Position{0, 0}) {
							t.Fatalf("empty axis should pin origin, got %v", got)
						}
					}
				}
			}
		}
	}
}

package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/jaskgrid/grid"
)

// jumpState is the column-jump picker: type part of a column name, the
// candidates are ranked by edit distance, enter focuses that column in the
// current row.
type jumpState struct {
	query   string
	columns []grid.Column
	matches []grid.Column
	cursor  int
}

func newJump(columns []grid.Column) *jumpState {
	j := &jumpState{columns: columns}
	j.refilter()
	return j
}

func (j *jumpState) setQuery(q string) {
	j.query = q
	j.cursor = 0
	j.refilter()
}

func (j *jumpState) refilter() {
	j.matches = rankColumns(j.query, j.columns)
}

func (j *jumpState) move(delta int) {
	j.cursor += delta
	if j.cursor < 0 {
		j.cursor = 0
	}
	if j.cursor >= len(j.matches) {
		j.cursor = len(j.matches) - 1
	}
}

func (j *jumpState) selected() (grid.Column, bool) {
	if j.cursor < 0 || j.cursor >= len(j.matches) {
		return grid.Column{}, false
	}
	return j.matches[j.cursor], true
}

// rankColumns orders columns by how well their title matches the query:
// substring hits first (leftmost wins), then by levenshtein distance.
// An empty query keeps display order.
func rankColumns(query string, columns []grid.Column) []grid.Column {
	out := append([]grid.Column(nil), columns...)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out
	}
	score := func(col grid.Column) int {
		title := strings.ToLower(col.Title)
		if idx := strings.Index(title, q); idx >= 0 {
			// substring hits sort before any edit distance, leftmost first
			return idx - 1_000_000
		}
		return levenshtein.ComputeDistance(q, title)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return score(out[a]) < score(out[b])
	})
	return out
}

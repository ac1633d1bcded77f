package tui

import (
	"testing"

	"github.com/jask/jaskgrid/grid"
)

func jumpColumns() []grid.Column {
	return []grid.Column{
		{ID: "item", Title: "Item", Visible: true},
		{ID: "qty", Title: "Quantity", Visible: true},
		{ID: "price", Title: "Price", Visible: true},
		{ID: "note", Title: "Note", Visible: true},
	}
}

func TestRankColumnsEmptyQueryKeepsOrder(t *testing.T) {
	got := rankColumns("", jumpColumns())
	want := []string{"item", "qty", "price", "note"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("rank[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestRankColumnsSubstringFirst(t *testing.T) {
	got := rankColumns("pri", jumpColumns())
	if got[0].ID != "price" {
		t.Fatalf("top match = %s, want price", got[0].ID)
	}
}

func TestRankColumnsFuzzyFallback(t *testing.T) {
	// "qantity" is a typo, not a substring, so ranking falls back to edit
	// distance and Quantity still wins.
	got := rankColumns("qantity", jumpColumns())
	if got[0].ID != "qty" {
		t.Fatalf("top match = %s, want qty (closest by edit distance)", got[0].ID)
	}
}

func TestJumpStateCursorAndSelection(t *testing.T) {
	j := newJump(jumpColumns())
	j.setQuery("note")
	if col, ok := j.selected(); !ok || col.ID != "note" {
		t.Fatalf("selected = %v, %v, want note", col.ID, ok)
	}

	j.setQuery("")
	j.move(2)
	if col, _ := j.selected(); col.ID != "price" {
		t.Fatalf("selected after move = %s, want price", col.ID)
	}
	j.move(10)
	if col, _ := j.selected(); col.ID != "note" {
		t.Fatalf("cursor must clamp at the last match, got %s", col.ID)
	}
	j.move(-10)
	if col, _ := j.selected(); col.ID != "item" {
		t.Fatalf("cursor must clamp at the first match, got %s", col.ID)
	}
}

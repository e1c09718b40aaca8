package cli

import (
	"reflect"
	"testing"
)

func TestShrinkToFit_NoChangeWhenItFits(t *testing.T) {
	widths := []int{6, 36, 10}
	mins := []int{4, 2, 6}
	want := append([]int(nil), widths...)
	shrinkToFit(widths, mins, 80) // 6+36+10 + 2*2 = 56
	if !reflect.DeepEqual(widths, want) {
		t.Errorf("expected no change: got %v, want %v", widths, want)
	}
}

func TestShrinkToFit_TakesFromWidestColumn(t *testing.T) {
	widths := []int{6, 60, 10}
	mins := []int{4, 5, 6}
	shrinkToFit(widths, mins, 78) // natural 6+60+10+4 = 80

	line := columnGap * 2
	for _, w := range widths {
		line += w
	}
	if line > 78 {
		t.Errorf("row still %d columns wide; widths=%v", line, widths)
	}
	if widths[0] != 6 || widths[2] != 10 {
		t.Errorf("narrow columns should be untouched: %v", widths)
	}
}

func TestShrinkToFit_NeverBelowHeaderWidth(t *testing.T) {
	widths := []int{4, 60}
	mins := []int{2, 18} // len("LAST STATUS CHANGE")
	shrinkToFit(widths, mins, 20)
	if widths[1] < 18 {
		t.Errorf("column shrunk below its header: %v", widths)
	}
}

func TestShrinkToFit_StopsWhenAllAtMinimum(t *testing.T) {
	widths := []int{4, 8}
	mins := []int{4, 8}
	want := append([]int(nil), widths...)
	shrinkToFit(widths, mins, 5) // impossible target
	if !reflect.DeepEqual(widths, want) {
		t.Errorf("columns at minimum must be left alone: got %v", widths)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits untouched", "10.0.1.0/24", 20, "10.0.1.0/24"},
		{"exact fit untouched", "10.0.1.0/24", 11, "10.0.1.0/24"},
		{"uuid cut with ellipsis", "0a1b2c3d-4e5f-6071-8293-a4b5c6d7e8f9", 12, "0a1b2c3d-4e…"},
		{"width one is all ellipsis", "connected", 1, "…"},
		{"zero width passes through", "anything", 0, "anything"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.width); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestTruncate_StripsANSIBeforeCutting(t *testing.T) {
	got := truncate(Green("connected"), 5)
	if got != "conn…" {
		t.Errorf("expected ANSI stripped and cut, got %q", got)
	}
	if visualLen(got) != 5 {
		t.Errorf("expected visible width 5, got %d", visualLen(got))
	}
}

func TestNaturalWidths_CoversHeadersAndCells(t *testing.T) {
	tbl := NewTable("KIND", "IDENTITY")
	tbl.Row("network", "172.21.14.0/24")
	tbl.Row("router", "10.0.0.1")

	got := tbl.naturalWidths()
	if got[0] != len("network") {
		t.Errorf("column 0 width = %d, want %d", got[0], len("network"))
	}
	if got[1] != len("172.21.14.0/24") {
		t.Errorf("column 1 width = %d, want %d", got[1], len("172.21.14.0/24"))
	}
}

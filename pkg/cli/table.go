package cli

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ansiRe matches ANSI escape sequences so colored cells measure by
// their visible text.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func visualLen(s string) int {
	return utf8.RuneCountInString(ansiRe.ReplaceAllString(s, ""))
}

// terminalWidth returns stdout's column count, with the COLUMNS
// environment variable taking precedence. 0 means "not a terminal":
// rows are printed at their natural width.
func terminalWidth() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n
		}
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}

// Table renders column-aligned rows for `show` and `sources`. Cells
// hold atomic tokens — node UUIDs, prefixes, system ids, timestamps —
// so an over-wide cell is truncated with an ellipsis rather than
// word-wrapped across lines. Output is buffered and emitted by Flush;
// an empty table prints nothing.
type Table struct {
	headers []string
	rows    [][]string
}

func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Row appends one row. Missing trailing cells render empty.
func (t *Table) Row(values ...string) {
	t.rows = append(t.rows, values)
}

// Flush writes headers, a dashed divider, and every buffered row.
func (t *Table) Flush() {
	if len(t.rows) == 0 {
		return
	}

	widths := t.naturalWidths()
	if tw := terminalWidth(); tw > 0 {
		shrinkToFit(widths, headerWidths(t.headers), tw)
	}

	emit(t.headers, widths)
	divider := make([]string, len(t.headers))
	for i, w := range widths {
		divider[i] = strings.Repeat("-", w)
	}
	emit(divider, widths)
	for _, row := range t.rows {
		emit(row, widths)
	}
}

// naturalWidths is the widest cell per column, headers included.
func (t *Table) naturalWidths() []int {
	widths := headerWidths(t.headers)
	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if l := visualLen(cell); l > widths[i] {
				widths[i] = l
			}
		}
	}
	return widths
}

func headerWidths(headers []string) []int {
	out := make([]int, len(headers))
	for i, h := range headers {
		out[i] = visualLen(h)
	}
	return out
}

const columnGap = 2

// shrinkToFit narrows columns in place until the row fits termWidth,
// always taking from the currently widest column and never going below
// a column's header width. When every column is at its minimum the row
// is left over-wide rather than made unreadable.
func shrinkToFit(widths, minimums []int, termWidth int) {
	for {
		line := columnGap * (len(widths) - 1)
		for _, w := range widths {
			line += w
		}
		if line <= termWidth {
			return
		}

		widest := -1
		for i, w := range widths {
			if w > minimums[i] && (widest < 0 || w > widths[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			return
		}

		over := line - termWidth
		slack := widths[widest] - minimums[widest]
		if over > slack {
			over = slack
		}
		widths[widest] -= over
	}
}

// truncate shortens s to fit width visible characters, marking the cut
// with a trailing ellipsis. Colored cells are stripped of ANSI codes
// before cutting so the escape sequences can't be split mid-code.
func truncate(s string, width int) string {
	if width <= 0 || visualLen(s) <= width {
		return s
	}
	plain := []rune(ansiRe.ReplaceAllString(s, ""))
	if width == 1 {
		return "…"
	}
	return string(plain[:width-1]) + "…"
}

func emit(row []string, widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = truncate(row[i], w)
		}
		pad := w - visualLen(cell)
		if pad < 0 {
			pad = 0
		}
		parts[i] = cell + strings.Repeat(" ", pad)
	}
	fmt.Fprintln(os.Stdout, strings.TrimRight(strings.Join(parts, strings.Repeat(" ", columnGap)), " "))
}

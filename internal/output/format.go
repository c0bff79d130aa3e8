// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"ltask/internal/view"
)

const (
	// ListSeparator is the separator line between the list and the progress bar.
	ListSeparator = "------------"

	// BarWidth is the number of cells in the text progress bar.
	BarWidth = 20
)

// FormatEntry formats a rendered task line.
// Format: "{N:>4}  [x] {TITLE}  (due: {DUE})  id:{ID}\n"
func FormatEntry(w io.Writer, num int, e view.Entry) {
	mark := " "
	if e.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s  (due: %s)  id:%s\n", num, mark, normalizeTitle(e.Title), e.Due, e.ID)
}

// FormatEntries formats every entry, numbered from 1.
func FormatEntries(w io.Writer, entries []view.Entry) {
	for i, e := range entries {
		FormatEntry(w, i+1, e)
	}
}

// FormatProgress formats the progress bar and label. The bar fill uses the
// unrounded fraction; the label uses the rounded percentage.
func FormatProgress(w io.Writer, p view.Progress) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "[%s] %s\n", Bar(p.Fraction(), BarWidth), p.Label())
}

// Bar draws a fraction in [0, 1] as width cells of '#' and '-'.
func Bar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return strings.Repeat("#", filled) + strings.Repeat("-", width-filled)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

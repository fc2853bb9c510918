package core

import "github.com/rivo/uniseg"

// Cell represents a single terminal cell.
type Cell struct {
	Rune  rune
	Width int
	Style Style
}

// EmptyCell returns an empty cell with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune &&
		c.Width == other.Width &&
		c.Style.Equals(other.Style)
}

// RuneWidth returns the display width of a rune.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return uniseg.StringWidth(string(r))
}

// StringWidth returns the display width of s in terminal columns.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// Truncate shortens s to at most width columns, never splitting a
// grapheme cluster. A trailing ellipsis marks truncation when it fits.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	limit := width - 1
	out := make([]byte, 0, len(s))
	used := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > limit {
			break
		}
		out = append(out, cluster...)
		used += w
	}
	if limit >= 0 {
		out = append(out, "…"...)
	}
	return string(out)
}

// Graphemes splits s into grapheme clusters with their display widths.
func Graphemes(s string) (clusters []string, widths []int) {
	state := -1
	for len(s) > 0 {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		clusters = append(clusters, cluster)
		widths = append(widths, w)
	}
	return clusters, widths
}

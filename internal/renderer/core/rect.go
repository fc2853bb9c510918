package core

// ScreenPos represents a position on screen.
type ScreenPos struct {
	Row int
	Col int
}

// ScreenRect represents a rectangular region on screen.
type ScreenRect struct {
	Top    int // First row (inclusive)
	Left   int // First column (inclusive)
	Bottom int // Last row (exclusive)
	Right  int // Last column (exclusive)
}

// NewScreenRect creates a screen rectangle.
func NewScreenRect(top, left, bottom, right int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: bottom, Right: right}
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains returns true if pos is within the rectangle.
func (r ScreenRect) Contains(pos ScreenPos) bool {
	return pos.Row >= r.Top && pos.Row < r.Bottom &&
		pos.Col >= r.Left && pos.Col < r.Right
}

// Intersection returns the overlap of two rectangles.
func (r ScreenRect) Intersection(other ScreenRect) ScreenRect {
	out := ScreenRect{
		Top:    max(r.Top, other.Top),
		Left:   max(r.Left, other.Left),
		Bottom: min(r.Bottom, other.Bottom),
		Right:  min(r.Right, other.Right),
	}
	if out.IsEmpty() {
		return ScreenRect{}
	}
	return out
}

// Inset shrinks the rectangle by the given margins.
func (r ScreenRect) Inset(top, right, bottom, left int) ScreenRect {
	return ScreenRect{
		Top:    r.Top + top,
		Left:   r.Left + left,
		Bottom: r.Bottom - bottom,
		Right:  r.Right - right,
	}
}

// Translate moves the rectangle by dRow rows and dCol columns.
func (r ScreenRect) Translate(dRow, dCol int) ScreenRect {
	return ScreenRect{
		Top:    r.Top + dRow,
		Left:   r.Left + dCol,
		Bottom: r.Bottom + dRow,
		Right:  r.Right + dCol,
	}
}

// Center returns the rectangle's center in doubled coordinates so that
// odd sizes stay integral.
func (r ScreenRect) Center() (row2, col2 int) {
	return r.Top + r.Bottom, r.Left + r.Right
}

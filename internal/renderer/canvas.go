package renderer

import (
	"github.com/dshills/tvpanel/internal/renderer/backend"
	"github.com/dshills/tvpanel/internal/renderer/core"
)

// canvas draws clipped to a rectangle of the backend.
type canvas struct {
	b    backend.Backend
	clip core.ScreenRect
}

func (c canvas) set(x, y int, r rune, style core.Style) {
	if !c.clip.Contains(core.ScreenPos{Row: y, Col: x}) {
		return
	}
	c.b.SetCell(x, y, core.NewStyledCell(r, style))
}

func (c canvas) fill(rect core.ScreenRect, style core.Style) {
	c.b.Fill(rect.Intersection(c.clip), core.NewStyledCell(' ', style))
}

// text draws s starting at (x, y), truncated to maxWidth columns. Returns
// the columns used.
func (c canvas) text(x, y int, s string, style core.Style, maxWidth int) int {
	s = core.Truncate(s, maxWidth)
	clusters, widths := core.Graphemes(s)
	col := x
	for i, cluster := range clusters {
		w := widths[i]
		if w == 0 {
			continue
		}
		if col+w > c.clip.Right {
			break
		}
		c.set(col, y, []rune(cluster)[0], style)
		col += w
	}
	return col - x
}

// box draws a single-line border around rect and fills its inside.
func (c canvas) box(rect core.ScreenRect, border, inside core.Style) {
	if rect.Width() < 2 || rect.Height() < 2 {
		return
	}
	c.fill(rect.Inset(1, 1, 1, 1), inside)

	top, bottom := rect.Top, rect.Bottom-1
	left, right := rect.Left, rect.Right-1
	for x := left + 1; x < right; x++ {
		c.set(x, top, '─', border)
		c.set(x, bottom, '─', border)
	}
	for y := top + 1; y < bottom; y++ {
		c.set(left, y, '│', border)
		c.set(right, y, '│', border)
	}
	c.set(left, top, '┌', border)
	c.set(right, top, '┐', border)
	c.set(left, bottom, '└', border)
	c.set(right, bottom, '┘', border)
}

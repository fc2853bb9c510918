package renderer

import (
	"fmt"
	"time"

	"github.com/dshills/tvpanel/internal/notification"
	"github.com/dshills/tvpanel/internal/panel"
	"github.com/dshills/tvpanel/internal/player"
	"github.com/dshills/tvpanel/internal/renderer/backend"
	"github.com/dshills/tvpanel/internal/renderer/core"
)

// DefaultAccent is used when no accent is configured.
var DefaultAccent = core.ColorFromRGB(0x3e, 0xa6, 0xff)

// Glyphs for checkbox state.
const (
	glyphChecked   = "[x]"
	glyphUnchecked = "[ ]"
	logoText       = "▶ TV"
)

// Scene is everything visible in one frame.
type Scene struct {
	Player player.State
	Panel  *panel.View
	Toasts []notification.Toast
}

// Renderer paints scenes onto a backend.
type Renderer struct {
	backend backend.Backend
	accent  core.Color
	frames  uint64
}

// New creates a renderer.
func New(b backend.Backend) *Renderer {
	return &Renderer{backend: b, accent: DefaultAccent}
}

// SetAccent sets the focus highlight color from a hex string. Invalid
// values keep the current accent and return an error.
func (r *Renderer) SetAccent(hex string) error {
	c, err := core.ColorFromHex(hex)
	if err != nil {
		return err
	}
	r.accent = c
	return nil
}

// Accent returns the focus highlight color.
func (r *Renderer) Accent() core.Color {
	return r.accent
}

// Frames returns the number of frames rendered.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Render draws scene and flushes it to the terminal.
func (r *Renderer) Render(scene Scene) {
	w, h := r.backend.Size()
	c := canvas{b: r.backend, clip: core.RectFromSize(0, 0, h, w)}

	r.backend.Clear()
	r.drawPlayer(c, w, h, scene.Player)
	if scene.Panel != nil && scene.Panel.Shown() {
		r.drawPanel(c, w, h, scene.Panel)
	}
	r.drawToasts(c, w, h, scene.Toasts)
	r.backend.Show()
	r.frames++
}

func (r *Renderer) drawPlayer(c canvas, w, h int, st player.State) {
	base := core.DefaultStyle()
	title := core.DefaultStyle().Bold()

	if !st.LogoHidden {
		c.text(1, 0, logoText, core.NewStyle(core.ColorRed, core.ColorDefault).Bold(), w-2)
	}
	c.text(1, 1, st.Title, title, w-2)

	if h < 4 {
		return
	}
	state := "▶"
	if st.Paused {
		state = "❚❚"
	}
	status := fmt.Sprintf("%s %s / %s  vol %d", state, clock(st.Position), clock(st.Duration), st.Volume)
	c.text(1, h-2, status, base, w-2)

	barWidth := w - 2
	if barWidth <= 0 || st.Duration <= 0 {
		return
	}
	filled := int(int64(barWidth) * int64(st.Position) / int64(st.Duration))
	for x := 0; x < barWidth; x++ {
		style := core.NewStyle(core.ColorGray, core.ColorDefault)
		ch := '─'
		if x < filled {
			style = core.NewStyle(core.ColorRed, core.ColorDefault)
			ch = '━'
		}
		c.set(1+x, h-1, ch, style)
	}
}

// panelRect centers the panel box on screen.
func panelRect(w, h int, v *panel.View) core.ScreenRect {
	pw, ph := v.Size()
	pw, ph = min(pw, w), min(ph, h)
	return core.RectFromSize((h-ph)/2, (w-pw)/2, ph, pw)
}

func (r *Renderer) drawPanel(c canvas, w, h int, v *panel.View) {
	rect := panelRect(w, h, v)
	inside := core.NewStyle(core.ColorWhite, core.ColorFromRGB(0x21, 0x21, 0x21))
	border := inside.WithForeground(r.accent)
	c.box(rect, border, inside)

	inner := canvas{b: c.b, clip: rect.Inset(1, 1, 1, 1)}
	maxW := rect.Width() - 4
	model := v.Model()

	inner.text(rect.Left+2, rect.Top+v.TitleRow(), model.Title, inside.Bold(), maxW)

	focused := v.Focused()
	for _, row := range v.Rows() {
		cb := model.Checkbox(row.Key)
		if cb == nil {
			continue
		}
		style := inside
		if row.Key == focused {
			style = core.NewStyle(r.accent.Contrast(), r.accent)
		}
		glyph := glyphUnchecked
		if cb.Checked() {
			glyph = glyphChecked
		}
		rr := row.Rect.Translate(rect.Top, rect.Left)
		inner.fill(rr, style)
		n := inner.text(rr.Left, rr.Top, glyph, style, rr.Width())
		inner.text(rr.Left+n, rr.Top, cb.Label(), style, rr.Width()-n)
	}

	inner.text(rect.Left+2, rect.Top+v.FooterRow(), model.Footer, inside.Dim(), maxW)
}

func (r *Renderer) drawToasts(c canvas, w, h int, toasts []notification.Toast) {
	row := h - 4
	for i := len(toasts) - 1; i >= 0 && row >= 0; i-- {
		t := toasts[i]
		text := " " + t.Text + " "
		width := min(core.StringWidth(text), w)
		style := core.NewStyle(core.ColorWhite, core.ColorFromRGB(0x30, 0x30, 0x30))
		if t.Hidden() {
			style = style.Dim()
		}
		c.text(w-width, row, text, style, width)
		row--
	}
}

func clock(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d / time.Minute)
	s := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", m, s)
}

package panel

import (
	"fmt"

	"github.com/dshills/tvpanel/internal/focus"
	"github.com/dshills/tvpanel/internal/input/dispatch"
	"github.com/dshills/tvpanel/internal/logging"
	"github.com/dshills/tvpanel/internal/renderer/core"
)

// Row offsets inside the panel box.
const (
	titleRow    = 1
	firstRow    = 3
	rowPadLeft  = 2
	footerSpace = 1
)

// View is the on-screen panel. It implements Surface: showing it makes it
// drawable, focusing it moves dispatcher focus to the panel node and
// focus to a checkbox.
type View struct {
	model  *Model
	node   *dispatch.Node
	disp   *dispatch.Dispatcher
	engine *focus.Engine
	logger *logging.Logger

	shown bool
	rows  []Row
}

// Row is a laid out checkbox, relative to the panel origin.
type Row struct {
	Key    string
	Label  string
	Rect   core.ScreenRect
	Indent int
}

// NewView lays out model and registers every checkbox with engine. The
// panel node is created under the dispatcher root.
func NewView(model *Model, d *dispatch.Dispatcher, engine *focus.Engine, logger *logging.Logger) (*View, error) {
	v := &View{
		model:  model,
		node:   d.Root().NewChild("panel"),
		disp:   d,
		engine: engine,
		logger: logger,
	}

	row := firstRow
	for _, s := range model.Sections {
		for _, cb := range s.Rows {
			cb := cb
			r := Row{
				Key:    cb.Key(),
				Label:  cb.Label(),
				Indent: s.Indent,
				Rect:   core.RectFromSize(row, rowPadLeft+s.Indent, 1, 4+core.StringWidth(cb.Label())),
			}
			v.rows = append(v.rows, r)
			err := engine.Add(&focus.Element{
				ID:      cb.Key(),
				Rect:    r.Rect,
				OnClick: cb.Click,
				OnFocus: func() { logger.Debug("focus %s", cb.Key()) },
			})
			if err != nil {
				return nil, fmt.Errorf("laying out panel: %w", err)
			}
			row++
		}
	}
	return v, nil
}

// Node returns the dispatch node of the panel.
func (v *View) Node() *dispatch.Node {
	return v.node
}

// Model returns the panel model.
func (v *View) Model() *Model {
	return v.model
}

// Rows returns the laid out rows in display order.
func (v *View) Rows() []Row {
	return v.rows
}

// Shown reports whether the panel is drawable.
func (v *View) Shown() bool {
	return v.shown
}

// Focused returns the key of the focused checkbox, or "".
func (v *View) Focused() string {
	return v.engine.FocusedID()
}

// Size returns the panel box size.
func (v *View) Size() (width, height int) {
	width = core.StringWidth(v.model.Title) + 2*rowPadLeft
	for _, r := range v.rows {
		width = max(width, r.Rect.Right+rowPadLeft)
	}
	width = max(width, core.StringWidth(v.model.Footer)+2*rowPadLeft)
	height = firstRow + len(v.rows) + footerSpace + 2
	return width, height
}

// TitleRow returns the row of the heading.
func (v *View) TitleRow() int {
	return titleRow
}

// FooterRow returns the row of the footer line.
func (v *View) FooterRow() int {
	return firstRow + len(v.rows) + footerSpace
}

func (v *View) Show() {
	v.shown = true
}

func (v *View) Hide() {
	v.shown = false
}

func (v *View) Focus() {
	v.disp.SetFocus(v.node)
	v.engine.FocusDefault()
	v.logger.Info("panel focused")
}

func (v *View) Blur() {
	v.engine.Blur()
	v.disp.SetFocus(nil)
	v.logger.Info("panel blurred")
}

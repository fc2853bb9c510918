// Package router maps classified remote input onto panel operations.
//
// The global router sits at the dispatcher root and sees every event
// phase first; it owns the green button. The panel router sits on the
// panel node, handles keydown only while the panel is visible, and keeps
// input from leaking to the host while it does.
package router

import (
	"github.com/dshills/tvpanel/internal/input/dispatch"
	"github.com/dshills/tvpanel/internal/input/key"
	"github.com/dshills/tvpanel/internal/logging"
)

// Visibility is the panel visibility controller.
type Visibility interface {
	Visible() bool
	SetVisible(visible bool)
}

// Navigator moves focus among panel controls.
type Navigator interface {
	Navigate(dir key.Direction) bool
}

// Activator clicks the focused control.
type Activator interface {
	ActivateFocused() bool
}

// Global toggles the panel on the green button.
type Global struct {
	panel  Visibility
	logger *logging.Logger
}

// NewGlobal creates the global router.
func NewGlobal(panel Visibility, logger *logging.Logger) *Global {
	return &Global{panel: panel, logger: logger}
}

// HandleEvent implements dispatch.Handler.
func (g *Global) HandleEvent(e *dispatch.Event) {
	g.logger.Debug("key event: %s char=%d key=%d", e.Type, e.CharCode, e.KeyCode)

	if key.Classify(e.Event) != key.ActionColorGreen {
		return
	}
	e.PreventDefault()
	e.StopPropagation()
	g.panel.SetVisible(!g.panel.Visible())
}

// Panel routes input while the panel is open.
type Panel struct {
	panel     Visibility
	navigator Navigator
	activator Activator
	logger    *logging.Logger
}

// NewPanel creates the panel router.
func NewPanel(panel Visibility, nav Navigator, act Activator, logger *logging.Logger) *Panel {
	return &Panel{
		panel:     panel,
		navigator: nav,
		activator: act,
		logger:    logger,
	}
}

// HandleEvent implements dispatch.Handler.
func (p *Panel) HandleEvent(e *dispatch.Event) {
	p.logger.Debug("panel key event: %s key=%d", e.Type, e.KeyCode)

	action := key.Classify(e.Event)
	if action == key.ActionColorGreen {
		// The global router toggles on green.
		return
	}

	switch {
	case action.IsDirectional():
		dir, _ := action.Direction()
		p.navigator.Navigate(dir)
	case action == key.ActionConfirm:
		p.activator.ActivateFocused()
	case action == key.ActionCancel:
		p.panel.SetVisible(false)
	}

	e.PreventDefault()
	e.StopPropagation()
}

// Install registers g at the dispatcher root for every phase and p on
// panelNode for keydown while the panel is visible.
func Install(d *dispatch.Dispatcher, panelNode *dispatch.Node, g *Global, p *Panel) (*dispatch.Registration, *dispatch.Registration) {
	global := d.Root().AddHandler(g, key.KeyDown, key.KeyPress, key.KeyUp)
	local := panelNode.AddHandler(p, key.KeyDown).When(p.panel.Visible)
	return global, local
}

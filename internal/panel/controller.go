// Package panel implements the settings overlay: its visibility state
// machine and the model of controls it shows.
package panel

import "github.com/dshills/tvpanel/internal/logging"

// State is the panel visibility state.
type State int

const (
	// Hidden is the initial state.
	Hidden State = iota
	Visible
)

func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// Surface is what the controller drives on a transition.
type Surface interface {
	Show()
	Hide()
	Focus()
	Blur()
}

// Controller owns the panel visibility state. SetVisible is the only
// operation that changes it.
type Controller struct {
	surface   Surface
	state     State
	listeners []func(visible bool)
	logger    *logging.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller in the Hidden state.
func NewController(surface Surface, opts ...Option) *Controller {
	c := &Controller{surface: surface}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetVisible transitions the panel. Requesting the current state is a
// no-op. The surface is shown and focused, or hidden and blurred, before
// the state is updated.
func (c *Controller) SetVisible(visible bool) {
	if visible == c.Visible() {
		return
	}

	if visible {
		c.surface.Show()
		c.surface.Focus()
		c.state = Visible
	} else {
		c.surface.Hide()
		c.surface.Blur()
		c.state = Hidden
	}
	c.logger.Debug("panel %s", c.state)

	for _, fn := range c.listeners {
		fn(visible)
	}
}

// Toggle flips the visibility.
func (c *Controller) Toggle() {
	c.SetVisible(!c.Visible())
}

// Visible reports whether the panel is shown.
func (c *Controller) Visible() bool {
	return c.state == Visible
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// OnChange registers fn to run after every completed transition.
func (c *Controller) OnChange(fn func(visible bool)) {
	c.listeners = append(c.listeners, fn)
}

// Package dispatch delivers key events through a tree of nodes in
// capture order.
//
// Handlers registered on the root fire before handlers registered on a
// descendant. A handler may prevent the event's default action or stop it
// from reaching nodes further down the path. Once capture completes, the
// host's default handler runs unless the default was prevented.
package dispatch

import (
	"github.com/dshills/tvpanel/internal/input/key"
	"github.com/dshills/tvpanel/internal/logging"
)

// Event is a key event in flight through the dispatcher.
type Event struct {
	key.Event

	defaultPrevented   bool
	propagationStopped bool
	currentNode        *Node
}

// PreventDefault suppresses the host's default handling of the event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// StopPropagation keeps the event from reaching further nodes. Remaining
// handlers on the current node still run.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// PropagationStopped reports whether StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// CurrentNode returns the node whose handlers are running.
func (e *Event) CurrentNode() *Node {
	return e.currentNode
}

// Handler processes events at a node.
type Handler interface {
	HandleEvent(e *Event)
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(e *Event)

// HandleEvent implements Handler.
func (f HandlerFunc) HandleEvent(e *Event) {
	f(e)
}

// DefaultHandler runs after capture when the default was not prevented.
type DefaultHandler interface {
	HandleDefault(e key.Event)
}

// Dispatcher routes events from the root to the focused node.
type Dispatcher struct {
	root     *Node
	focused  *Node
	fallback DefaultHandler
	logger   *logging.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithDefaultHandler sets the host default handler.
func WithDefaultHandler(h DefaultHandler) Option {
	return func(d *Dispatcher) {
		d.fallback = h
	}
}

// WithLogger sets the dispatcher logger.
func WithLogger(logger *logging.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates a dispatcher with a root node named "document".
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{root: newNode("document", nil)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the root node.
func (d *Dispatcher) Root() *Node {
	return d.root
}

// SetFocus makes n the event target. A nil node targets the root.
func (d *Dispatcher) SetFocus(n *Node) {
	if n != nil && !n.within(d.root) {
		d.logger.Warn("focus on detached node %s ignored", n.name)
		return
	}
	d.focused = n
}

// Focused returns the event target.
func (d *Dispatcher) Focused() *Node {
	if d.focused == nil {
		return d.root
	}
	return d.focused
}

// Dispatch delivers e along the path from the root to the focused node,
// then runs the default handler unless the default was prevented.
func (d *Dispatcher) Dispatch(e key.Event) *Event {
	ev := &Event{Event: e}

	for _, n := range d.Focused().path() {
		ev.currentNode = n
		n.fire(ev)
		if ev.propagationStopped {
			break
		}
	}
	ev.currentNode = nil

	if ev.defaultPrevented {
		return ev
	}
	if d.fallback != nil {
		d.fallback.HandleDefault(e)
	}
	return ev
}

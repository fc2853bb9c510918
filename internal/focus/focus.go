// Package focus implements spatial focus navigation among on-screen
// controls.
//
// Controls register with the rectangle they occupy. Navigate moves focus
// to the closest control in the requested direction; ActivateFocused
// delivers a synthetic click to the control that holds focus.
package focus

import (
	"errors"
	"fmt"

	"github.com/dshills/tvpanel/internal/input/key"
	"github.com/dshills/tvpanel/internal/logging"
	"github.com/dshills/tvpanel/internal/renderer/core"
)

// ErrDuplicateElement is returned when an element ID is registered twice.
var ErrDuplicateElement = errors.New("duplicate focus element")

// alignmentWeight penalizes candidates that are off the axis of travel.
const alignmentWeight = 2

// Element is a focusable control.
type Element struct {
	ID   string
	Rect core.ScreenRect

	// OnFocus and OnBlur are called when the element gains or loses focus.
	OnFocus func()
	OnBlur  func()

	// OnClick receives synthetic clicks from ActivateFocused.
	OnClick func()

	Disabled bool
}

// Engine tracks focusable elements and the focused one.
type Engine struct {
	elements []*Element
	focused  *Element
	last     string
	logger   *logging.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an empty focus engine.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Add registers an element. Registration order breaks ties in Navigate.
func (e *Engine) Add(el *Element) error {
	if e.find(el.ID) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateElement, el.ID)
	}
	e.elements = append(e.elements, el)
	return nil
}

// Remove unregisters an element, blurring it first if focused.
func (e *Engine) Remove(id string) {
	for i, el := range e.elements {
		if el.ID != id {
			continue
		}
		if e.focused == el {
			e.Blur()
		}
		e.elements = append(e.elements[:i], e.elements[i+1:]...)
		return
	}
}

// Elements returns the registered elements in registration order.
func (e *Engine) Elements() []*Element {
	out := make([]*Element, len(e.elements))
	copy(out, e.elements)
	return out
}

// Focused returns the focused element, or nil.
func (e *Engine) Focused() *Element {
	return e.focused
}

// FocusedID returns the focused element ID, or "".
func (e *Engine) FocusedID() string {
	if e.focused == nil {
		return ""
	}
	return e.focused.ID
}

// Focus moves focus to the element with the given ID.
func (e *Engine) Focus(id string) bool {
	el := e.find(id)
	if el == nil || el.Disabled {
		return false
	}
	e.setFocus(el)
	return true
}

// FocusDefault restores the last focused element, or focuses the first
// enabled one.
func (e *Engine) FocusDefault() bool {
	if e.last != "" && e.Focus(e.last) {
		return true
	}
	for _, el := range e.elements {
		if !el.Disabled {
			e.setFocus(el)
			return true
		}
	}
	return false
}

// Blur removes focus from the focused element.
func (e *Engine) Blur() {
	if e.focused == nil {
		return
	}
	prev := e.focused
	e.focused = nil
	if prev.OnBlur != nil {
		prev.OnBlur()
	}
}

// Navigate moves focus in dir. Focus stays put when nothing lies in that
// direction. Returns whether focus moved.
func (e *Engine) Navigate(dir key.Direction) bool {
	if e.focused == nil {
		moved := e.FocusDefault()
		e.logger.Debug("navigate %s: no focus, default -> %s", dir, e.FocusedID())
		return moved
	}

	next := e.nearest(e.focused, dir)
	if next == nil {
		e.logger.Debug("navigate %s: no candidate from %s", dir, e.focused.ID)
		return false
	}
	e.logger.Debug("navigate %s: %s -> %s", dir, e.focused.ID, next.ID)
	e.setFocus(next)
	return true
}

// ActivateFocused sends a synthetic click to the focused element.
func (e *Engine) ActivateFocused() bool {
	el := e.focused
	if el == nil || el.Disabled || el.OnClick == nil {
		return false
	}
	el.OnClick()
	return true
}

func (e *Engine) setFocus(el *Element) {
	if e.focused == el {
		return
	}
	e.Blur()
	e.focused = el
	e.last = el.ID
	if el.OnFocus != nil {
		el.OnFocus()
	}
}

func (e *Engine) find(id string) *Element {
	for _, el := range e.elements {
		if el.ID == id {
			return el
		}
	}
	return nil
}

// nearest returns the best candidate in dir from cur, or nil.
func (e *Engine) nearest(cur *Element, dir key.Direction) *Element {
	var best *Element
	bestScore := 0
	for _, el := range e.elements {
		if el == cur || el.Disabled {
			continue
		}
		score, ok := distance(cur.Rect, el.Rect, dir)
		if !ok {
			continue
		}
		if best == nil || score < bestScore {
			best, bestScore = el, score
		}
	}
	return best
}

// distance scores candidate relative to from when moving in dir. The
// candidate must lie entirely beyond from's edge in that direction.
// Lower is closer.
func distance(from, candidate core.ScreenRect, dir key.Direction) (int, bool) {
	var primary, secondary int
	switch dir {
	case key.DirUp:
		primary = from.Top - candidate.Bottom
		secondary = gap(from.Left, from.Right, candidate.Left, candidate.Right)
	case key.DirDown:
		primary = candidate.Top - from.Bottom
		secondary = gap(from.Left, from.Right, candidate.Left, candidate.Right)
	case key.DirLeft:
		primary = from.Left - candidate.Right
		secondary = gap(from.Top, from.Bottom, candidate.Top, candidate.Bottom)
	case key.DirRight:
		primary = candidate.Left - from.Right
		secondary = gap(from.Top, from.Bottom, candidate.Top, candidate.Bottom)
	default:
		return 0, false
	}
	if primary < 0 {
		return 0, false
	}
	return primary + alignmentWeight*secondary, true
}

// gap returns the distance between two spans on one axis, 0 if they
// overlap.
func gap(aStart, aEnd, bStart, bEnd int) int {
	switch {
	case bEnd <= aStart:
		return aStart - bEnd + 1
	case bStart >= aEnd:
		return bStart - aEnd + 1
	default:
		return 0
	}
}

// Package notification shows transient messages over the player.
//
// A toast moves through four phases on two independent timers:
//
//	t=0                    Hidden    (added, transition-in pending)
//	t=RevealDelay          Revealed
//	t=duration             Hiding    (transition-out)
//	t=duration+RemoveDelay Removed
package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/tvpanel/internal/logging"
	"github.com/dshills/tvpanel/internal/loop"
)

// Phase timing.
const (
	RevealDelay     = 100 * time.Millisecond
	RemoveDelay     = 1000 * time.Millisecond
	DefaultDuration = 3000 * time.Millisecond
)

// StartupHint is posted once after startup.
const StartupHint = "Press [GREEN] to open the configuration screen"

// Phase is the lifecycle stage of a toast.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseRevealed
	PhaseHiding
	PhaseRemoved
)

func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhaseRevealed:
		return "revealed"
	case PhaseHiding:
		return "hiding"
	case PhaseRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Toast is one notification.
type Toast struct {
	ID       string
	Text     string
	Duration time.Duration
	Phase    Phase
}

// Hidden reports whether the toast carries the hidden marker: before the
// reveal and during the transition out.
func (t Toast) Hidden() bool {
	return t.Phase != PhaseRevealed
}

// Center owns the notification stack.
type Center struct {
	sched    loop.Scheduler
	toasts   []*Toast
	duration time.Duration
	onChange func()
	logger   *logging.Logger
}

// Option configures a Center.
type Option func(*Center)

// WithDefaultDuration sets the duration used when Notify gets zero.
func WithDefaultDuration(d time.Duration) Option {
	return func(c *Center) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithOnChange sets a callback run after every phase change.
func WithOnChange(fn func()) Option {
	return func(c *Center) {
		c.onChange = fn
	}
}

// WithLogger sets the center logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Center) {
		c.logger = logger
	}
}

// New creates a notification center scheduling on sched.
func New(sched loop.Scheduler, opts ...Option) *Center {
	c := &Center{
		sched:    sched,
		duration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notify appends a toast. A non-positive duration uses the default.
func (c *Center) Notify(text string, duration time.Duration) string {
	if duration <= 0 {
		duration = c.duration
	}
	t := &Toast{
		ID:       uuid.NewString(),
		Text:     text,
		Duration: duration,
		Phase:    PhaseHidden,
	}
	c.toasts = append(c.toasts, t)
	c.logger.Info("notification %s: %q for %s", t.ID, text, duration)
	c.changed()

	c.sched.AfterFunc(RevealDelay, func() {
		c.advance(t, PhaseHidden, PhaseRevealed)
	})
	c.sched.AfterFunc(duration, func() {
		if t.Phase == PhaseRemoved {
			return
		}
		t.Phase = PhaseHiding
		c.changed()
		c.sched.AfterFunc(RemoveDelay, func() {
			c.Remove(t.ID)
		})
	})
	return t.ID
}

// advance moves t to next if it is still in from. A reveal timer that
// fires after the hide timer must not undo the hide.
func (c *Center) advance(t *Toast, from, next Phase) {
	if t.Phase != from {
		return
	}
	t.Phase = next
	c.changed()
}

// Remove drops the toast with id. Removing twice, or removing an unknown
// id, does nothing. Pending timers are not cancelled; they find the toast
// gone and do nothing.
func (c *Center) Remove(id string) bool {
	for i, t := range c.toasts {
		if t.ID != id {
			continue
		}
		t.Phase = PhaseRemoved
		c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
		c.changed()
		return true
	}
	return false
}

// Get returns a copy of the toast with id.
func (c *Center) Get(id string) (Toast, bool) {
	for _, t := range c.toasts {
		if t.ID == id {
			return *t, true
		}
	}
	return Toast{}, false
}

// Active returns copies of the toasts still on screen, oldest first.
func (c *Center) Active() []Toast {
	out := make([]Toast, len(c.toasts))
	for i, t := range c.toasts {
		out[i] = *t
	}
	return out
}

// ScheduleHint posts the startup hint after delay.
func (c *Center) ScheduleHint(delay time.Duration) loop.Timer {
	return c.sched.AfterFunc(delay, func() {
		c.Notify(StartupHint, 0)
	})
}

func (c *Center) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

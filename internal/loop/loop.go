// Package loop provides the single-threaded UI event loop.
//
// Every input handler, timer callback and store notification runs on the
// loop goroutine. Work reaches the loop through Post, deferred work through
// AfterFunc. A handler runs to completion before the next task starts, so
// nothing observes a half-applied state transition.
package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dshills/tvpanel/internal/logging"
)

// ErrStopped is returned by Run when the loop was stopped with Stop.
var ErrStopped = errors.New("loop stopped")

// Timer is a pending deferred callback.
type Timer interface {
	// Stop prevents the callback from running. Returns false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Scheduler schedules deferred callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Executor queues work to run later on the owning goroutine.
type Executor interface {
	Post(fn func()) bool
}

// Clock abstracts time so that tests can drive timers by hand.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock {
	return realClock{}
}

// Loop is a single-threaded task queue.
type Loop struct {
	tasks  chan func()
	clock  Clock
	logger *logging.Logger
	idle   func()

	stopOnce sync.Once
	done     chan struct{}
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock sets the clock used by AfterFunc.
func WithClock(c Clock) Option {
	return func(l *Loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithQueueSize sets the task buffer size.
func WithQueueSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.tasks = make(chan func(), n)
		}
	}
}

// WithLogger sets the logger used to report recovered panics.
func WithLogger(logger *logging.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithIdle sets fn to run whenever the queue empties after a task.
func WithIdle(fn func()) Option {
	return func(l *Loop) {
		l.idle = fn
	}
}

// New creates a new loop.
func New(opts ...Option) *Loop {
	l := &Loop{
		tasks: make(chan func(), 256),
		clock: RealClock(),
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post queues fn to run on the loop. Returns false if the loop is stopped.
// Post blocks while the queue is full.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// AfterFunc runs fn on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	return l.clock.AfterFunc(d, func() {
		l.Post(fn)
	})
}

// Now returns the loop clock's current time.
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Run executes queued tasks until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return ErrStopped
		case fn := <-l.tasks:
			l.runTask(fn)
			if len(l.tasks) == 0 {
				l.runIdle()
			}
		}
	}
}

// Drain runs every task currently queued and returns the number run.
// Used when the loop is driven by hand.
func (l *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.tasks:
			l.runTask(fn)
			n++
		default:
			if n > 0 {
				l.runIdle()
			}
			return n
		}
	}
}

func (l *Loop) runIdle() {
	if l.idle != nil {
		l.runTask(l.idle)
	}
}

// Stop ends Run. It is safe to call Stop multiple times.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// runTask calls fn with panic recovery so a failing handler cannot take
// down the loop.
func (l *Loop) runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("task panicked: %v", fmt.Sprint(r))
		}
	}()
	fn()
}

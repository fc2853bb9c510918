package loop

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoop_PostRunsInOrder(t *testing.T) {
	l := New()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}

	if n := l.Drain(); n != 5 {
		t.Fatalf("Drain() = %d, want 5", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task order = %v", got)
		}
	}
}

func TestLoop_PostAfterStop(t *testing.T) {
	l := New()
	l.Stop()
	l.Stop()

	if l.Post(func() {}) {
		t.Error("Post after Stop should return false")
	}
}

func TestLoop_RunStops(t *testing.T) {
	l := New()
	ran := make(chan struct{})
	l.Post(func() {
		close(ran)
		l.Stop()
	})

	err := l.Run(context.Background())
	if !errors.Is(err, ErrStopped) {
		t.Errorf("Run() error = %v, want ErrStopped", err)
	}
	select {
	case <-ran:
	default:
		t.Error("task did not run")
	}
}

func TestLoop_RunContextCancel(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestLoop_PanicRecovered(t *testing.T) {
	l := New()
	var after bool
	l.Post(func() { panic("boom") })
	l.Post(func() { after = true })

	l.Drain()

	if !after {
		t.Error("task after panic did not run")
	}
}

func TestLoop_IdleRunsOncePerBurst(t *testing.T) {
	var idle int
	l := New(WithIdle(func() { idle++ }))

	if l.Drain(); idle != 0 {
		t.Fatalf("idle = %d on empty queue, want 0", idle)
	}

	for i := 0; i < 3; i++ {
		l.Post(func() {})
	}
	l.Drain()
	if idle != 1 {
		t.Errorf("idle = %d, want 1", idle)
	}
}

func TestLoop_AfterFuncPostsToLoop(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	l := New(WithClock(clock))

	var fired bool
	l.AfterFunc(100*time.Millisecond, func() { fired = true })

	clock.Advance(100 * time.Millisecond)
	if fired {
		t.Fatal("callback ran outside the loop")
	}

	l.Drain()
	if !fired {
		t.Error("callback did not run after Drain")
	}
}

func TestManualClock_FiresInDeadlineOrder(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var order []string

	clock.AfterFunc(300*time.Millisecond, func() { order = append(order, "c") })
	clock.AfterFunc(100*time.Millisecond, func() { order = append(order, "a") })
	clock.AfterFunc(200*time.Millisecond, func() { order = append(order, "b") })

	clock.Advance(250 * time.Millisecond)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order = %v, want [a b]", order)
	}

	clock.Advance(50 * time.Millisecond)
	if len(order) != 3 || order[2] != "c" {
		t.Fatalf("order = %v, want [a b c]", order)
	}
}

func TestManualClock_ChainedTimers(t *testing.T) {
	start := time.Unix(0, 0)
	clock := NewManualClock(start)
	var firedAt time.Time

	clock.AfterFunc(time.Second, func() {
		clock.AfterFunc(time.Second, func() { firedAt = clock.Now() })
	})

	clock.Advance(3 * time.Second)
	if want := start.Add(2 * time.Second); !firedAt.Equal(want) {
		t.Errorf("chained timer fired at %v, want %v", firedAt, want)
	}
}

func TestManualClock_Stop(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	var fired bool
	timer := clock.AfterFunc(time.Second, func() { fired = true })

	if !timer.Stop() {
		t.Error("first Stop should return true")
	}
	if timer.Stop() {
		t.Error("second Stop should return false")
	}

	clock.Advance(2 * time.Second)
	if fired {
		t.Error("stopped timer fired")
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", clock.Pending())
	}
}

package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	tmpDir := t.TempDir()
	w, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Close()

	a := filepath.Join(tmpDir, "a.toml")
	b := filepath.Join(tmpDir, "b.toml")

	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch(a) error = %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch(b) error = %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Fatalf("second Watch(a) error = %v", err)
	}
	if got := len(w.WatchedFiles()); got != 2 {
		t.Errorf("WatchedFiles() = %d files, want 2", got)
	}

	if err := w.Unwatch(a); err != nil {
		t.Errorf("Unwatch(a) error = %v", err)
	}
	if got := len(w.WatchedFiles()); got != 1 {
		t.Errorf("WatchedFiles() = %d files, want 1", got)
	}
}

func TestWatcher_StartIdempotent(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}

	w.Start()
	w.Start()
	if !w.IsRunning() {
		t.Error("IsRunning() = false after Start()")
	}

	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if w.IsRunning() {
		t.Error("IsRunning() = true after Close()")
	}
}

func waitForEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("did not receive file change event")
		return Event{}
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "settings.toml")
	if err := os.WriteFile(path, []byte("hideLogo = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(0))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	events := make(chan Event, 16)
	w.OnChange(func(event Event) { events <- event })
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	w.Start()

	if err := os.WriteFile(path, []byte("hideLogo = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitForEvent(t, events)
	if ev.Path != path {
		t.Errorf("event.Path = %q, want %q", ev.Path, path)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "settings.toml")

	w, err := New(WithDebounce(0))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	var mu sync.Mutex
	var seen []Event
	w.OnChange(func(event Event) {
		mu.Lock()
		seen = append(seen, event)
		mu.Unlock()
	})
	_ = w.Watch(path)
	w.Start()

	if err := os.WriteFile(filepath.Join(tmpDir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 0 {
		t.Errorf("received %d events for an unwatched file", len(seen))
	}
}

func TestWatcher_DebounceCoalesces(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "settings.yaml")

	w, err := New(WithDebounce(100 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	events := make(chan Event, 16)
	w.OnChange(func(event Event) { events <- event })
	_ = w.Watch(path)
	w.Start()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ev := waitForEvent(t, events)
	if ev.Op != OpCreate {
		t.Errorf("coalesced op = %v, want create", ev.Op)
	}

	select {
	case extra := <-events:
		t.Errorf("unexpected second event %+v", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

package focus

import (
	"errors"
	"testing"

	"github.com/dshills/tvpanel/internal/input/key"
	"github.com/dshills/tvpanel/internal/renderer/core"
)

// column builds a vertical list like the settings panel: general rows at
// column 2, an indented group at column 4.
func column(t *testing.T, e *Engine, ids ...string) {
	t.Helper()
	for i, id := range ids {
		left := 2
		if i >= 2 {
			left = 4
		}
		if err := e.Add(&Element{ID: id, Rect: core.RectFromSize(i, left, 1, 20)}); err != nil {
			t.Fatalf("Add(%s): %v", id, err)
		}
	}
}

func TestEngine_AddDuplicate(t *testing.T) {
	e := New()
	if err := e.Add(&Element{ID: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := e.Add(&Element{ID: "a"}); !errors.Is(err, ErrDuplicateElement) {
		t.Errorf("got %v, want ErrDuplicateElement", err)
	}
}

func TestEngine_NavigateVertical(t *testing.T) {
	e := New()
	column(t, e, "a", "b", "c", "d")
	e.Focus("a")

	steps := []struct {
		dir   key.Direction
		want  string
		moved bool
	}{
		{key.DirDown, "b", true},
		{key.DirDown, "c", true},
		{key.DirDown, "d", true},
		{key.DirDown, "d", false},
		{key.DirUp, "c", true},
		{key.DirLeft, "c", false},
		{key.DirRight, "c", false},
	}
	for i, s := range steps {
		moved := e.Navigate(s.dir)
		if moved != s.moved || e.FocusedID() != s.want {
			t.Fatalf("step %d: Navigate(%s) moved=%v focus=%s, want moved=%v focus=%s",
				i, s.dir, moved, e.FocusedID(), s.moved, s.want)
		}
	}
}

func TestEngine_NavigatePrefersAligned(t *testing.T) {
	e := New()
	_ = e.Add(&Element{ID: "origin", Rect: core.RectFromSize(0, 0, 1, 4)})
	_ = e.Add(&Element{ID: "far-aligned", Rect: core.RectFromSize(3, 0, 1, 4)})
	_ = e.Add(&Element{ID: "near-offset", Rect: core.RectFromSize(1, 30, 1, 4)})
	e.Focus("origin")

	e.Navigate(key.DirDown)
	if got := e.FocusedID(); got != "far-aligned" {
		t.Errorf("focus = %s, want far-aligned", got)
	}
}

func TestEngine_NavigateWithoutFocus(t *testing.T) {
	e := New()
	column(t, e, "a", "b")

	if !e.Navigate(key.DirDown) {
		t.Fatal("Navigate without focus should focus the first element")
	}
	if got := e.FocusedID(); got != "a" {
		t.Errorf("focus = %s, want a", got)
	}
}

func TestEngine_FocusCallbacks(t *testing.T) {
	var log []string
	e := New()
	for i, id := range []string{"a", "b"} {
		id := id
		_ = e.Add(&Element{
			ID:      id,
			Rect:    core.RectFromSize(i, 0, 1, 1),
			OnFocus: func() { log = append(log, "focus "+id) },
			OnBlur:  func() { log = append(log, "blur "+id) },
		})
	}

	e.Focus("a")
	e.Focus("a")
	e.Navigate(key.DirDown)
	e.Blur()
	e.Blur()

	want := []string{"focus a", "blur a", "focus b", "blur b"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %s, want %s", i, log[i], want[i])
		}
	}
}

func TestEngine_FocusDefaultRestoresLast(t *testing.T) {
	e := New()
	column(t, e, "a", "b", "c")
	e.Focus("b")
	e.Blur()

	e.FocusDefault()
	if got := e.FocusedID(); got != "b" {
		t.Errorf("focus = %s, want b", got)
	}
}

func TestEngine_SkipsDisabled(t *testing.T) {
	e := New()
	column(t, e, "a", "b", "c")
	e.elements[1].Disabled = true
	e.Focus("a")

	e.Navigate(key.DirDown)
	if got := e.FocusedID(); got != "c" {
		t.Errorf("focus = %s, want c", got)
	}
	if e.Focus("b") {
		t.Error("disabled element accepted focus")
	}
}

func TestEngine_ActivateFocused(t *testing.T) {
	clicks := 0
	e := New()
	_ = e.Add(&Element{ID: "a", OnClick: func() { clicks++ }})

	if e.ActivateFocused() {
		t.Error("ActivateFocused without focus should do nothing")
	}
	e.Focus("a")
	if !e.ActivateFocused() {
		t.Error("ActivateFocused should click the focused element")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestEngine_RemoveFocused(t *testing.T) {
	blurred := false
	e := New()
	_ = e.Add(&Element{ID: "a", OnBlur: func() { blurred = true }})
	e.Focus("a")

	e.Remove("a")
	if !blurred || e.Focused() != nil {
		t.Errorf("Remove should blur the focused element")
	}
	if len(e.Elements()) != 0 {
		t.Errorf("Elements() = %d, want 0", len(e.Elements()))
	}
}

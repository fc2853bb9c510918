package panel

import (
	"strings"
	"testing"
)

type recordingSurface struct {
	calls []string
}

func (s *recordingSurface) Show()  { s.calls = append(s.calls, "show") }
func (s *recordingSurface) Hide()  { s.calls = append(s.calls, "hide") }
func (s *recordingSurface) Focus() { s.calls = append(s.calls, "focus") }
func (s *recordingSurface) Blur()  { s.calls = append(s.calls, "blur") }

func (s *recordingSurface) count(name string) int {
	n := 0
	for _, c := range s.calls {
		if c == name {
			n++
		}
	}
	return n
}

func TestController_InitialState(t *testing.T) {
	c := NewController(&recordingSurface{})
	if c.Visible() || c.State() != Hidden {
		t.Errorf("new controller state = %v, want hidden", c.State())
	}
}

func TestController_ShowIsIdempotent(t *testing.T) {
	s := &recordingSurface{}
	c := NewController(s)

	c.SetVisible(true)
	c.SetVisible(true)

	if got := s.count("focus"); got != 1 {
		t.Errorf("focus calls = %d, want 1", got)
	}
	if !c.Visible() {
		t.Error("panel should be visible")
	}
}

func TestController_ShowThenHide(t *testing.T) {
	s := &recordingSurface{}
	c := NewController(s)

	c.SetVisible(true)
	c.SetVisible(false)
	c.SetVisible(false)

	want := "show,focus,hide,blur"
	if got := strings.Join(s.calls, ","); got != want {
		t.Errorf("calls = %s, want %s", got, want)
	}
	if c.State() != Hidden {
		t.Errorf("state = %v, want hidden", c.State())
	}
}

func TestController_HideWhenHiddenIsNoop(t *testing.T) {
	s := &recordingSurface{}
	c := NewController(s)
	c.SetVisible(false)
	if len(s.calls) != 0 {
		t.Errorf("calls = %v, want none", s.calls)
	}
}

func TestController_Toggle(t *testing.T) {
	s := &recordingSurface{}
	c := NewController(s)

	c.Toggle()
	if !c.Visible() {
		t.Fatal("Toggle from hidden should show")
	}
	c.Toggle()
	if c.Visible() {
		t.Fatal("Toggle from visible should hide")
	}
	if s.count("focus") != 1 || s.count("blur") != 1 {
		t.Errorf("calls = %v", s.calls)
	}
}

// stateProbe checks the state the surface observes during a transition.
type stateProbe struct {
	c    *Controller
	seen []State
}

func (p *stateProbe) Show()  { p.seen = append(p.seen, p.c.State()) }
func (p *stateProbe) Hide()  { p.seen = append(p.seen, p.c.State()) }
func (p *stateProbe) Focus() {}
func (p *stateProbe) Blur()  {}

func TestController_StateUpdatedAfterSideEffects(t *testing.T) {
	p := &stateProbe{}
	c := NewController(p)
	p.c = c

	c.SetVisible(true)
	c.SetVisible(false)

	if len(p.seen) != 2 || p.seen[0] != Hidden || p.seen[1] != Visible {
		t.Errorf("states seen by surface = %v, want [hidden visible]", p.seen)
	}
}

func TestController_OnChange(t *testing.T) {
	c := NewController(&recordingSurface{})
	var got []bool
	c.OnChange(func(v bool) { got = append(got, v) })

	c.SetVisible(true)
	c.SetVisible(true)
	c.SetVisible(false)

	if len(got) != 2 || !got[0] || got[1] {
		t.Errorf("OnChange = %v, want [true false]", got)
	}
}

func TestState_String(t *testing.T) {
	if Hidden.String() != "hidden" || Visible.String() != "visible" {
		t.Errorf("String() = %s/%s", Hidden, Visible)
	}
}

package player

import (
	"testing"
	"time"

	"github.com/dshills/tvpanel/internal/input/key"
)

func down(code int) key.Event {
	return key.NewEvent(key.KeyDown, code, 0)
}

func TestPlayer_DefaultKeys(t *testing.T) {
	quit := 0
	p := New("demo", 10*time.Minute, WithOnQuit(func() { quit++ }))

	p.HandleDefault(down(key.CodeRight))
	p.HandleDefault(down(key.CodeRight))
	p.HandleDefault(down(key.CodeLeft))
	if got := p.State().Position; got != SeekStep {
		t.Errorf("Position = %s, want %s", got, SeekStep)
	}

	p.HandleDefault(down(key.CodeUp))
	if got := p.State().Volume; got != 55 {
		t.Errorf("Volume = %d, want 55", got)
	}
	p.HandleDefault(down(key.CodeDown))
	p.HandleDefault(down(key.CodeDown))
	if got := p.State().Volume; got != 45 {
		t.Errorf("Volume = %d, want 45", got)
	}

	p.HandleDefault(down(key.CodeEnter))
	if !p.State().Paused {
		t.Error("Enter should pause")
	}
	p.HandleDefault(down(CodeSpace))
	if p.State().Paused {
		t.Error("Space should resume")
	}

	p.HandleDefault(down(CodeQuit))
	if quit != 1 {
		t.Errorf("quit = %d, want 1", quit)
	}
}

func TestPlayer_IgnoresNonKeydown(t *testing.T) {
	p := New("demo", time.Minute)
	p.HandleDefault(key.NewEvent(key.KeyPress, key.CodeRight, 0))
	p.HandleDefault(key.NewEvent(key.KeyUp, key.CodeRight, 0))
	if p.State().Position != 0 {
		t.Errorf("Position = %s, want 0", p.State().Position)
	}
}

func TestPlayer_Clamping(t *testing.T) {
	p := New("demo", 15*time.Second)

	p.Seek(-time.Minute)
	if p.State().Position != 0 {
		t.Errorf("Position = %s, want 0", p.State().Position)
	}
	p.Seek(time.Minute)
	if p.State().Position != 15*time.Second {
		t.Errorf("Position = %s, want 15s", p.State().Position)
	}

	p.SetVolume(500)
	if p.State().Volume != MaxVolume {
		t.Errorf("Volume = %d, want %d", p.State().Volume, MaxVolume)
	}
	p.SetVolume(-1)
	if p.State().Volume != 0 {
		t.Errorf("Volume = %d, want 0", p.State().Volume)
	}
}

func TestPlayer_Tick(t *testing.T) {
	p := New("demo", 3*time.Second)

	p.Tick(time.Second)
	if p.State().Position != time.Second {
		t.Errorf("Position = %s, want 1s", p.State().Position)
	}

	p.TogglePause()
	p.Tick(time.Second)
	if p.State().Position != time.Second {
		t.Error("Tick advanced while paused")
	}

	p.TogglePause()
	p.Tick(5 * time.Second)
	if p.State().Position != 3*time.Second || !p.State().Paused {
		t.Errorf("state at end = %+v, want paused at 3s", p.State())
	}
}

func TestPlayer_Classes(t *testing.T) {
	p := New("demo", time.Minute)
	if !p.HasClass(ClassQualityRoot) {
		t.Fatal("player should start with the quality class")
	}

	calls := 0
	cancel := p.ObserveClasses(func() { calls++ })

	p.AddClass("x")
	p.AddClass("x")
	p.RemoveClass("x")
	p.RemoveClass("x")
	if calls != 2 {
		t.Errorf("observer calls = %d, want 2", calls)
	}

	cancel()
	p.AddClass("y")
	if calls != 2 {
		t.Error("observer ran after cancel")
	}

	got := p.Classes()
	if len(got) != 2 || got[0] != ClassQualityRoot || got[1] != "y" {
		t.Errorf("Classes() = %v", got)
	}
}

func TestPlayer_LogoHidden(t *testing.T) {
	changes := 0
	p := New("demo", time.Minute, WithOnChange(func() { changes++ }))

	p.SetLogoHidden(true)
	p.SetLogoHidden(true)
	if !p.State().LogoHidden || changes != 1 {
		t.Errorf("LogoHidden = %v, changes = %d", p.State().LogoHidden, changes)
	}
}

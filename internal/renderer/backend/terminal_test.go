package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tvpanel/internal/renderer/core"
)

func newSimTerminal(t *testing.T, w, h int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	sim.SetSize(w, h)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func TestTerminalSetGetCell(t *testing.T) {
	term, _ := newSimTerminal(t, 20, 5)

	style := core.NewStyle(core.ColorFromRGB(10, 20, 30), core.ColorDefault).Bold()
	term.SetCell(3, 2, core.NewStyledCell('x', style))

	got := term.GetCell(3, 2)
	if got.Rune != 'x' {
		t.Errorf("Rune = %q, want 'x'", got.Rune)
	}
	if !got.Style.Foreground.Equals(core.ColorFromRGB(10, 20, 30)) {
		t.Errorf("Foreground = %v", got.Style.Foreground)
	}
	if !got.Style.Attributes.Has(core.AttrBold) {
		t.Error("bold attribute lost")
	}
}

func TestTerminalFillClipsToScreen(t *testing.T) {
	term, _ := newSimTerminal(t, 4, 3)

	term.Fill(core.NewScreenRect(-1, -1, 10, 10), core.NewStyledCell('#', core.DefaultStyle()))

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got := term.GetCell(x, y).Rune; got != '#' {
				t.Fatalf("cell (%d,%d) = %q, want '#'", x, y, got)
			}
		}
	}
}

func TestTerminalPollKeyEvent(t *testing.T) {
	term, sim := newSimTerminal(t, 10, 2)

	sim.InjectKey(tcell.KeyRune, 'g', tcell.ModNone)
	ev := term.PollEvent()
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'g' {
		t.Errorf("got %+v, want rune 'g' key event", ev)
	}

	sim.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
	ev = term.PollEvent()
	if ev.Key != KeyDown {
		t.Errorf("Key = %v, want down", ev.Key)
	}
}

func TestTerminalInterrupt(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 2)

	term.Interrupt("wake")
	for {
		ev := term.PollEvent()
		if ev.Type == EventResize {
			continue
		}
		if ev.Type != EventInterrupt || ev.Data != "wake" {
			t.Fatalf("got %+v, want interrupt", ev)
		}
		return
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		in   tcell.Key
		want Key
	}{
		{tcell.KeyEnter, KeyEnter},
		{tcell.KeyEscape, KeyEscape},
		{tcell.KeyBackspace2, KeyBackspace},
		{tcell.KeyF2, KeyF2},
		{tcell.KeyCtrlC, KeyCtrlC},
		{tcell.KeyTab, KeyNone},
	}
	for _, tt := range tests {
		if got := convertKey(tt.in); got != tt.want {
			t.Errorf("convertKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

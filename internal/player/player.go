// Package player is the host application under the settings overlay: a
// simulated video player with its own remote handling.
package player

import (
	"sort"
	"time"

	"github.com/dshills/tvpanel/internal/input/key"
	"github.com/dshills/tvpanel/internal/logging"
)

// Key codes the player reacts to besides the arrows and Enter.
const (
	CodeSpace = 32
	CodeQuit  = 'Q'
)

// Player tuning.
const (
	SeekStep   = 10 * time.Second
	VolumeStep = 5
	MaxVolume  = 100
)

// ClassQualityRoot is a body class the player sets on startup that hides
// part of the UI; cosmetic fixups strip it.
const ClassQualityRoot = "app-quality-root"

// State is a snapshot of the player.
type State struct {
	Title      string
	Position   time.Duration
	Duration   time.Duration
	Volume     int
	Paused     bool
	LogoHidden bool
}

// Player is the simulated host. It is not safe for concurrent use; all
// calls happen on the UI loop.
type Player struct {
	state   State
	classes map[string]bool

	classObservers map[int]func()
	nextObserver   int

	onQuit   func()
	onChange func()
	logger   *logging.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithOnQuit sets the callback for the quit key.
func WithOnQuit(fn func()) Option {
	return func(p *Player) {
		p.onQuit = fn
	}
}

// WithOnChange sets a callback run after every state change.
func WithOnChange(fn func()) Option {
	return func(p *Player) {
		p.onChange = fn
	}
}

// WithLogger sets the player logger.
func WithLogger(logger *logging.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

// New creates a player for a video of the given length.
func New(title string, length time.Duration, opts ...Option) *Player {
	p := &Player{
		state: State{
			Title:    title,
			Duration: length,
			Volume:   50,
		},
		classes:        map[string]bool{ClassQualityRoot: true},
		classObservers: make(map[int]func()),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns a snapshot of the player.
func (p *Player) State() State {
	return p.state
}

// HandleDefault implements dispatch.DefaultHandler. Only keydown events
// act.
func (p *Player) HandleDefault(e key.Event) {
	if e.Type != key.KeyDown {
		return
	}

	switch e.KeyCode {
	case key.CodeLeft:
		p.Seek(-SeekStep)
	case key.CodeRight:
		p.Seek(SeekStep)
	case key.CodeUp:
		p.SetVolume(p.state.Volume + VolumeStep)
	case key.CodeDown:
		p.SetVolume(p.state.Volume - VolumeStep)
	case key.CodeEnter, CodeSpace:
		p.TogglePause()
	case CodeQuit:
		p.logger.Info("quit requested")
		if p.onQuit != nil {
			p.onQuit()
		}
	}
}

// Seek moves the position by d, clamped to the video.
func (p *Player) Seek(d time.Duration) {
	p.state.Position = clamp(p.state.Position+d, 0, p.state.Duration)
	p.logger.Debug("seek to %s", p.state.Position)
	p.changed()
}

// SetVolume sets the volume, clamped to 0..MaxVolume.
func (p *Player) SetVolume(v int) {
	p.state.Volume = min(max(v, 0), MaxVolume)
	p.changed()
}

// TogglePause flips between playing and paused.
func (p *Player) TogglePause() {
	p.state.Paused = !p.state.Paused
	p.changed()
}

// Tick advances playback by d unless paused. Playback stops at the end.
func (p *Player) Tick(d time.Duration) {
	if p.state.Paused || p.state.Position >= p.state.Duration {
		return
	}
	p.state.Position = clamp(p.state.Position+d, 0, p.state.Duration)
	if p.state.Position == p.state.Duration {
		p.state.Paused = true
	}
	p.changed()
}

// SetLogoHidden shows or hides the header logo.
func (p *Player) SetLogoHidden(hidden bool) {
	if p.state.LogoHidden == hidden {
		return
	}
	p.state.LogoHidden = hidden
	p.changed()
}

// AddClass sets a body class.
func (p *Player) AddClass(name string) {
	if p.classes[name] {
		return
	}
	p.classes[name] = true
	p.classesChanged()
}

// RemoveClass clears a body class.
func (p *Player) RemoveClass(name string) {
	if !p.classes[name] {
		return
	}
	delete(p.classes, name)
	p.classesChanged()
}

// HasClass reports whether a body class is set.
func (p *Player) HasClass(name string) bool {
	return p.classes[name]
}

// Classes returns the body classes in sorted order.
func (p *Player) Classes() []string {
	out := make([]string, 0, len(p.classes))
	for c := range p.classes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// ObserveClasses calls fn after every class change. The returned function
// stops observation.
func (p *Player) ObserveClasses(fn func()) (cancel func()) {
	id := p.nextObserver
	p.nextObserver++
	p.classObservers[id] = fn
	return func() { delete(p.classObservers, id) }
}

func (p *Player) classesChanged() {
	ids := make([]int, 0, len(p.classObservers))
	for id := range p.classObservers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := p.classObservers[id]; ok {
			fn()
		}
	}
	p.changed()
}

func (p *Player) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}

func clamp(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

// Package remote turns terminal key presses into the key event sequence
// a TV remote produces.
//
// Every press becomes keydown, keypress and keyup. The keypress carries
// the char code: the color code for color buttons, the rune for printable
// keys.
package remote

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/tvpanel/internal/input/key"
	"github.com/dshills/tvpanel/internal/renderer/backend"
)

// ErrInvalidBinding is returned for a color binding that is not one rune.
var ErrInvalidBinding = errors.New("invalid remote binding")

// Keymap assigns terminal runes to the four color buttons.
type Keymap struct {
	Red, Green, Yellow, Blue rune
}

// DefaultKeymap returns r, g, y and b.
func DefaultKeymap() Keymap {
	return Keymap{Red: 'r', Green: 'g', Yellow: 'y', Blue: 'b'}
}

// ParseKeymap builds a keymap from single-character strings.
func ParseKeymap(red, green, yellow, blue string) (Keymap, error) {
	var km Keymap
	for _, b := range []struct {
		name string
		s    string
		dst  *rune
	}{
		{"red", red, &km.Red},
		{"green", green, &km.Green},
		{"yellow", yellow, &km.Yellow},
		{"blue", blue, &km.Blue},
	} {
		r, size := utf8.DecodeRuneInString(b.s)
		if r == utf8.RuneError || size != len(b.s) {
			return Keymap{}, fmt.Errorf("%w: %s = %q", ErrInvalidBinding, b.name, b.s)
		}
		*b.dst = r
	}
	return km, nil
}

// Color returns the color bound to r.
func (km Keymap) Color(r rune) (key.Color, bool) {
	switch unicode.ToLower(r) {
	case unicode.ToLower(km.Red):
		return key.ColorRed, true
	case unicode.ToLower(km.Green):
		return key.ColorGreen, true
	case unicode.ToLower(km.Yellow):
		return key.ColorYellow, true
	case unicode.ToLower(km.Blue):
		return key.ColorBlue, true
	}
	return "", false
}

// Adapter translates backend key events.
type Adapter struct {
	keymap Keymap
}

// New creates an adapter with the given keymap.
func New(km Keymap) *Adapter {
	return &Adapter{keymap: km}
}

// Keymap returns the adapter keymap.
func (a *Adapter) Keymap() Keymap {
	return a.keymap
}

// SetKeymap replaces the keymap.
func (a *Adapter) SetKeymap(km Keymap) {
	a.keymap = km
}

var namedKeys = map[backend.Key]int{
	backend.KeyLeft:      key.CodeLeft,
	backend.KeyUp:        key.CodeUp,
	backend.KeyRight:     key.CodeRight,
	backend.KeyDown:      key.CodeDown,
	backend.KeyEnter:     key.CodeEnter,
	backend.KeyEscape:    key.CodeEscape,
	backend.KeyBackspace: key.CodeEscape,
}

var functionKeys = map[backend.Key]key.Color{
	backend.KeyF1: key.ColorRed,
	backend.KeyF2: key.ColorGreen,
	backend.KeyF3: key.ColorYellow,
	backend.KeyF4: key.ColorBlue,
}

// Codes returns the key and char codes for ev.
func (a *Adapter) Codes(ev backend.Event) (keyCode, charCode int, ok bool) {
	if ev.Type != backend.EventKey {
		return 0, 0, false
	}
	if code, found := namedKeys[ev.Key]; found {
		if code == key.CodeEnter {
			return code, code, true
		}
		return code, 0, true
	}
	if c, found := functionKeys[ev.Key]; found {
		code := key.PrimaryColorCodes[c]
		return code, code, true
	}
	if ev.Key != backend.KeyRune {
		return 0, 0, false
	}
	if c, found := a.keymap.Color(ev.Rune); found {
		code := key.PrimaryColorCodes[c]
		return code, code, true
	}
	return int(unicode.ToUpper(ev.Rune)), int(ev.Rune), true
}

// Translate returns the keydown, keypress and keyup events for ev, or nil
// when ev is not a remote key.
func (a *Adapter) Translate(ev backend.Event) []key.Event {
	keyCode, charCode, ok := a.Codes(ev)
	if !ok {
		return nil
	}
	return []key.Event{
		key.NewEvent(key.KeyDown, keyCode, 0),
		key.NewEvent(key.KeyPress, keyCode, charCode),
		key.NewEvent(key.KeyUp, keyCode, 0),
	}
}

package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack  = Color{R: 0, G: 0, B: 0}
	ColorWhite  = Color{R: 255, G: 255, B: 255}
	ColorGray   = Color{R: 128, G: 128, B: 128}
	ColorRed    = Color{R: 0xe5, G: 0x39, B: 0x35}
	ColorGreen  = Color{R: 0x43, G: 0xa0, B: 0x47}
	ColorYellow = Color{R: 0xfd, G: 0xd8, B: 0x35}
	ColorBlue   = Color{R: 0x1e, G: 0x88, B: 0xe5}
)

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex creates a color from "#RGB" or "#RRGGBB".
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

// MustColorFromHex is like ColorFromHex but falls back to fallback on error.
func MustColorFromHex(hex string, fallback Color) Color {
	c, err := ColorFromHex(hex)
	if err != nil {
		return fallback
	}
	return c
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Blend mixes c with other in Lab space. Amount 0.0 = c, 1.0 = other.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Indexed || other.Indexed || c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount).Clamped())
}

// Darken returns a darker version of the color. Amount is 0.0 to 1.0.
func (c Color) Darken(amount float64) Color {
	return c.Blend(ColorBlack, amount)
}

// Contrast returns black or white, whichever reads better on c.
func (c Color) Contrast() Color {
	if c.Indexed || c.Default {
		return ColorDefault
	}
	l, _, _ := c.colorful().Lab()
	if l > 0.6 {
		return ColorBlack
	}
	return ColorWhite
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}
}

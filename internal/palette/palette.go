// Package palette provides the colors used for rendering: the fixed polygon
// fill color and the window background color.
package palette

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultFill       = "#ff8000" // orange, (1.0, 0.5, 0.0)
	DefaultBackground = "#66a6cc" // light blue, ~(0.4, 0.65, 0.8)
)

// Palette holds the colors for a session. Every vertex of every polygon uses
// Fill.
type Palette struct {
	Fill       colorful.Color
	Background colorful.Color
}

// Default returns the palette used when nothing is configured.
func Default() Palette {
	p, err := Parse(DefaultFill, DefaultBackground)
	if err != nil {
		panic(err) // constants above are valid hex
	}
	return p
}

// Parse builds a palette from hex color strings ("#rrggbb" or "#rgb").
func Parse(fill, background string) (Palette, error) {
	f, err := colorful.Hex(fill)
	if err != nil {
		return Palette{}, fmt.Errorf("invalid fill color %q: %w", fill, err)
	}
	b, err := colorful.Hex(background)
	if err != nil {
		return Palette{}, fmt.Errorf("invalid background color %q: %w", background, err)
	}
	return Palette{Fill: f, Background: b}, nil
}

// Vec3 converts a color to an RGB vector, each component in [0, 1].
func Vec3(c colorful.Color) mgl32.Vec3 {
	c = c.Clamped()
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}

// RGBA returns the color as clear-color components with full opacity.
func RGBA(c colorful.Color) (r, g, b, a float32) {
	v := Vec3(c)
	return v[0], v[1], v[2], 1
}

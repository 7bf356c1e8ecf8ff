package utils

import (
	"fmt"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
)

var colourPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

// ColourValidate reports whether c is a #RRGGBBAA hex colour
func ColourValidate(c string) bool {
	return colourPattern.MatchString(c)
}

// ColourParse turns #RRGGBBAA into normalised RGBA, ready for gl.ClearColor
func ColourParse(s string) (mgl32.Vec4, error) {
	if !ColourValidate(s) {
		return mgl32.Vec4{}, fmt.Errorf("%s is not a valid RGBA hex colour", s)
	}
	var r, g, b, a uint8
	_, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &r, &g, &b, &a)
	if err != nil {
		return mgl32.Vec4{}, fmt.Errorf("could not parse colour %s: %w", s, err)
	}
	return mgl32.Vec4{
		float32(r) / 255,
		float32(g) / 255,
		float32(b) / 255,
		float32(a) / 255,
	}, nil
}

package utils

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestColourValidate(t *testing.T) {
	valid := []string{"#00000000", "#ffFFffFF", "#1a2B3c4D"}
	invalid := []string{"", "#000000", "000000000", "#0000000g", "#000000000", "x#00000000"}
	for _, c := range valid {
		if !ColourValidate(c) {
			t.Errorf("%q should be valid", c)
		}
	}
	for _, c := range invalid {
		if ColourValidate(c) {
			t.Errorf("%q should be invalid", c)
		}
	}
}

func TestColourParse(t *testing.T) {
	c, err := ColourParse("#ff0000ff")
	if err != nil {
		t.Fatal(err)
	}
	if c != (mgl32.Vec4{1, 0, 0, 1}) {
		t.Errorf("got %v", c)
	}

	c, err = ColourParse("#00000000")
	if err != nil {
		t.Fatal(err)
	}
	if c != (mgl32.Vec4{}) {
		t.Errorf("got %v", c)
	}

	c, err = ColourParse("#80808080")
	if err != nil {
		t.Fatal(err)
	}
	want := float32(128) / 255
	if !mgl32.FloatEqual(c[0], want) || !mgl32.FloatEqual(c[3], want) {
		t.Errorf("got %v, want components of %f", c, want)
	}

	if _, err := ColourParse("red"); err == nil {
		t.Error("expected an error for a named colour")
	}
}

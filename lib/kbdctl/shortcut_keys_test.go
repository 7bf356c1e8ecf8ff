package kbdctl

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestIsQuit(t *testing.T) {
	tests := []struct {
		name   string
		key    glfw.Key
		action glfw.Action
		mods   glfw.ModifierKey
		want   bool
	}{
		{"escape release", glfw.KeyEscape, glfw.Release, 0, true},
		{"escape press", glfw.KeyEscape, glfw.Press, 0, false},
		{"ctrl+q", glfw.KeyQ, glfw.Release, glfw.ModControl, true},
		{"ctrl+shift+q", glfw.KeyQ, glfw.Release, glfw.ModControl | glfw.ModShift, true},
		{"plain q", glfw.KeyQ, glfw.Release, 0, false},
		{"ctrl+w", glfw.KeyW, glfw.Release, glfw.ModControl, false},
	}
	for _, tt := range tests {
		if got := IsQuit(tt.key, tt.action, tt.mods); got != tt.want {
			t.Errorf("%s: IsQuit = %t, want %t", tt.name, got, tt.want)
		}
	}
}

func TestKeyCallback(t *testing.T) {
	quits := 0
	cb := keyCallback(func() { quits++ })

	cb(nil, glfw.KeyA, 0, glfw.Release, 0)
	cb(nil, glfw.KeyEscape, 0, glfw.Press, 0)
	cb(nil, glfw.KeyEscape, 0, glfw.Release, 0)

	if quits != 1 {
		t.Errorf("quits = %d, want 1", quits)
	}
}

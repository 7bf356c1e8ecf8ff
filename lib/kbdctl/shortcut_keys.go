package kbdctl

import (
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// IsQuit reports whether a key event should close the window: Escape, or
// Ctrl+Q, on release
func IsQuit(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) bool {
	if action != glfw.Release {
		return false
	}
	if key == glfw.KeyEscape {
		return true
	}
	return key == glfw.KeyQ && mods&glfw.ModControl != 0
}

func SetupShortcutKeys(w *glfw.Window, onQuit func()) {
	w.SetKeyCallback(keyCallback(onQuit))
}

func keyCallback(onQuit func()) glfw.KeyCallback {
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if IsQuit(key, action, mods) {
			slog.Info("told to quit, exiting", slog.String("module", "kbdctl"))
			onQuit()
		}
	}
}

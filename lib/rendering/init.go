package rendering

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Init loads the GL function pointers for the context that is current on the
// calling thread
func Init() error {
	err := gl.Init()
	if err != nil {
		return fmt.Errorf("could not initialise OpenGL context: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	slog.Debug(fmt.Sprintf("OpenGL version '%s'", version), slog.String("module", "rendering"))

	return nil
}

// Describe returns vendor, renderer and version of the current context
func Describe() string {
	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))
	return fmt.Sprintf("%s / %s / %s", vendor, renderer, version)
}

package platform

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Init must be called from the main thread, with the OS thread locked
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	major, minor, rev := glfw.GetVersion()
	slog.Debug(fmt.Sprintf("GLFW %d.%d.%d", major, minor, rev), slog.String("module", "platform"))
	return nil
}

func Terminate() {
	glfw.Terminate()
}

// catch turns the panics go-gl/glfw raises for GLFW errors into errors
func catch(f func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok {
			err = e
			return
		}
		err = fmt.Errorf("glfw: %v", r)
	}()
	f()
	return nil
}

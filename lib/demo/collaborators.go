package demo

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SurfaceTemplate describes what we would like the window's framebuffer to
// look like. The platform picks the closest configuration it can get.
type SurfaceTemplate struct {
	Title       string
	Width       int
	Height      int
	Resizable   bool
	Transparent bool
	PreferAlpha bool
	// MaxSamples is the multisample count to start searching from
	MaxSamples int
}

type Window interface {
	Size() (width, height int)
	Destroy()
}

type Surface interface {
	Resize(width, height int)
	SetSwapInterval(interval int) error
	SwapBuffers() error
	Destroy()
}

type Context interface {
	MakeCurrent(s Surface) error
	// Describe returns vendor, renderer and version of the context
	Describe() string
	Destroy()
}

// Platform creates the native objects. The window is created lazily, on the
// first resume.
type Platform interface {
	FinalizeWindow(tmpl SurfaceTemplate) (Window, error)
	CreateSurface(w Window, tmpl SurfaceTemplate) (Surface, error)
	CreateContext(s Surface) (Context, error)
}

type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	if s == VertexStage {
		return "vertex"
	}
	return "fragment"
}

// GL is the subset of the graphics API the demo needs
type GL interface {
	CompileShader(stage ShaderStage, source string) (uint32, error)
	LinkProgram(vertex, fragment uint32) (uint32, error)
	DetachShader(program, shader uint32)
	DeleteShader(shader uint32)
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	// Release frees GL objects the binding created on its own, such as the
	// vertex array DrawArrays needs. It must run while the context is current.
	Release()
	ClearColour(c mgl32.Vec4)
	Clear()
	DrawArrays(first, count int32)
	Viewport(width, height int32)
}

// Loop is the handle the driver gets on the event loop that called it
type Loop interface {
	RequestRedraw()
	Exit()
}

// Observer gets told about things worth counting. All methods are called on
// the event loop thread.
type Observer interface {
	FramePresented()
	Resized(width, height int, applied bool)
	SwapIntervalFailed()
}

type nopObserver struct{}

func (nopObserver) FramePresented()        {}
func (nopObserver) Resized(int, int, bool) {}
func (nopObserver) SwapIntervalFailed()    {}

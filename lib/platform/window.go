package platform

import (
	"fmt"

	"github.com/fosdem/triangle/lib/demo"
	"github.com/fosdem/triangle/lib/event"
	"github.com/fosdem/triangle/lib/kbdctl"
	"github.com/fosdem/triangle/lib/rendering"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Window struct {
	w *glfw.Window
}

func (w *Window) Size() (int, int) {
	return w.w.GetFramebufferSize()
}

func (w *Window) Destroy() {
	w.w.Destroy()
}

// Surface is the default framebuffer of a GLFW window
type Surface struct {
	w      *glfw.Window
	width  int
	height int
}

// Resize records the new size. GLFW reallocates the default framebuffer by
// itself when the window changes size.
func (s *Surface) Resize(width, height int) {
	s.width = width
	s.height = height
}

func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

func (s *Surface) SetSwapInterval(interval int) error {
	return catch(func() {
		glfw.SwapInterval(interval)
	})
}

func (s *Surface) SwapBuffers() error {
	return catch(s.w.SwapBuffers)
}

func (s *Surface) Destroy() {}

type Context struct {
	w *glfw.Window
}

func (c *Context) MakeCurrent(s demo.Surface) error {
	surface, ok := s.(*Surface)
	if !ok || surface.w != c.w {
		return fmt.Errorf("context can only be made current on its own window")
	}
	return catch(c.w.MakeContextCurrent)
}

func (c *Context) Describe() string {
	return rendering.Describe()
}

func (c *Context) Destroy() {
	glfw.DetachCurrentContext()
}

// sampleCandidates lists the multisample counts to try, best first
func sampleCandidates(max int) []int {
	var out []int
	for n := max; n > 0; n /= 2 {
		out = append(out, n)
	}
	return append(out, 0)
}

func windowHints(tmpl demo.SurfaceTemplate, samples int) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(tmpl.Resizable))
	glfw.WindowHint(glfw.TransparentFramebuffer, boolHint(tmpl.Transparent))
	if tmpl.PreferAlpha {
		glfw.WindowHint(glfw.AlphaBits, 8)
	} else {
		glfw.WindowHint(glfw.AlphaBits, 0)
	}
	glfw.WindowHint(glfw.Samples, samples)
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (p *Platform) createWindow(tmpl demo.SurfaceTemplate) (*glfw.Window, error) {
	var lastErr error
	for _, samples := range sampleCandidates(tmpl.MaxSamples) {
		windowHints(tmpl, samples)
		window, err := glfw.CreateWindow(tmpl.Width, tmpl.Height, tmpl.Title, nil, nil)
		if err == nil {
			p.logger.Info(fmt.Sprintf("created %dx%d window with %d samples, alpha=%t", tmpl.Width, tmpl.Height, samples, tmpl.PreferAlpha))
			return window, nil
		}
		p.logger.Debug(fmt.Sprintf("no window with %d samples: %s", samples, err))
		lastErr = err
	}
	return nil, fmt.Errorf("no usable framebuffer configuration: %w", lastErr)
}

func (p *Platform) FinalizeWindow(tmpl demo.SurfaceTemplate) (demo.Window, error) {
	if p.window != nil {
		return p.window, nil
	}

	w, err := p.createWindow(tmpl)
	if err != nil {
		return nil, err
	}
	p.window = &Window{w: w}
	p.installCallbacks(w)
	return p.window, nil
}

func (p *Platform) CreateSurface(w demo.Window, _ demo.SurfaceTemplate) (demo.Surface, error) {
	window, ok := w.(*Window)
	if !ok {
		return nil, fmt.Errorf("not a glfw window: %T", w)
	}
	width, height := window.Size()
	return &Surface{w: window.w, width: width, height: height}, nil
}

func (p *Platform) CreateContext(s demo.Surface) (demo.Context, error) {
	surface, ok := s.(*Surface)
	if !ok {
		return nil, fmt.Errorf("not a glfw surface: %T", s)
	}
	ctx := &Context{w: surface.w}
	err := ctx.MakeCurrent(surface)
	if err != nil {
		return nil, err
	}
	err = rendering.Init()
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

func (p *Platform) installCallbacks(w *glfw.Window) {
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		p.push(event.Resize(width, height))
	})
	w.SetCloseCallback(func(_ *glfw.Window) {
		p.push(event.Close())
	})
	w.SetRefreshCallback(func(_ *glfw.Window) {
		p.RequestRedraw()
	})
	kbdctl.SetupShortcutKeys(w, func() {
		p.push(event.Close())
	})
}

var _ demo.Platform = (*Platform)(nil)

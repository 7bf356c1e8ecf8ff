package demo

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fosdem/triangle/lib/event"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrContext = errors.New("could not create rendering context")
	ErrCompile = errors.New("could not compile shader")
	ErrLink    = errors.New("could not link program")
	ErrPresent = errors.New("could not present frame")
)

type State int

const (
	Uninitialized State = iota
	Ready
	Resizing
	Terminated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Resizing:
		return "resizing"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// TriangleVertices is the number of vertices drawn per frame; their positions
// live in the vertex shader and are looked up by gl_VertexID
const TriangleVertices = 3

type Options struct {
	Template SurfaceTemplate
	// SwapInterval 0 means present without waiting for vblank
	SwapInterval   int
	ClearColour    mgl32.Vec4
	VertexShader   string
	FragmentShader string
	Observer       Observer
}

// session is everything that exists once the demo is Ready. It is built in
// one go and torn down in one go.
type session struct {
	window  Window
	surface Surface
	context Context
	program uint32
}

type Driver struct {
	platform Platform
	gl       GL
	opts     Options
	observer Observer

	state   State
	session *session
	logger  *slog.Logger
}

func New(platform Platform, gl GL, opts Options) *Driver {
	d := &Driver{
		platform: platform,
		gl:       gl,
		opts:     opts,
		observer: opts.Observer,
		logger:   slog.Default().With(slog.String("module", "demo")),
	}
	if d.observer == nil {
		d.observer = nopObserver{}
	}
	return d
}

func (d *Driver) State() State {
	return d.state
}

// Handle reacts to one event. A returned error is fatal: the caller is
// expected to abort with it.
func (d *Driver) Handle(ev event.Event, loop Loop) error {
	if d.state == Terminated {
		return nil
	}

	switch ev.Kind {
	case event.CloseRequested:
		d.logger.Info("close requested, exiting")
		d.state = Terminated
		loop.Exit()
		return nil
	case event.Resumed:
		if d.session != nil {
			return nil
		}
		return d.resume(loop)
	case event.ClearColourChanged:
		// kept for the session that resume will build
		d.opts.ClearColour = ev.Colour
		d.logger.Info(fmt.Sprintf("clear colour changed to %v", ev.Colour))
	}

	if d.session == nil {
		d.logger.Debug(fmt.Sprintf("ignoring %s before resume", ev))
		return nil
	}

	switch ev.Kind {
	case event.Resized:
		d.resize(ev.Width, ev.Height)
	case event.RedrawRequested, event.AboutToWait:
		return d.draw(loop)
	case event.ClearColourChanged:
		d.gl.ClearColour(ev.Colour)
	}
	return nil
}

func (d *Driver) resume(loop Loop) error {
	s, err := d.buildSession()
	if err != nil {
		return err
	}
	d.session = s
	d.state = Ready
	loop.RequestRedraw()
	return nil
}

// buildSession performs the one-time setup. On failure, whatever was created
// so far is released again before returning.
func (d *Driver) buildSession() (_ *session, err error) {
	s := &session{}
	defer func() {
		if err != nil {
			s.destroy(d.gl)
		}
	}()

	s.window, err = d.platform.FinalizeWindow(d.opts.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: window: %w", ErrContext, err)
	}

	s.surface, err = d.platform.CreateSurface(s.window, d.opts.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: surface: %w", ErrContext, err)
	}

	s.context, err = d.platform.CreateContext(s.surface)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContext, err)
	}
	err = s.context.MakeCurrent(s.surface)
	if err != nil {
		return nil, fmt.Errorf("%w: make current: %w", ErrContext, err)
	}
	d.logger.Info(fmt.Sprintf("running on %s", s.context.Describe()))

	err = s.surface.SetSwapInterval(d.opts.SwapInterval)
	if err != nil {
		d.logger.Warn(fmt.Sprintf("could not set swap interval %d: %s", d.opts.SwapInterval, err))
		d.observer.SwapIntervalFailed()
	}

	s.program, err = d.buildProgram()
	if err != nil {
		return nil, err
	}
	d.gl.UseProgram(s.program)
	d.gl.ClearColour(d.opts.ClearColour)

	w, h := s.window.Size()
	d.gl.Viewport(int32(w), int32(h))
	d.observer.Resized(w, h, true)
	return s, nil
}

func (d *Driver) buildProgram() (uint32, error) {
	vs, err := d.gl.CompileShader(VertexStage, d.opts.VertexShader)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	defer d.gl.DeleteShader(vs)

	fs, err := d.gl.CompileShader(FragmentStage, d.opts.FragmentShader)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCompile, err)
	}
	defer d.gl.DeleteShader(fs)

	program, err := d.gl.LinkProgram(vs, fs)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLink, err)
	}
	d.gl.DetachShader(program, vs)
	d.gl.DetachShader(program, fs)
	return program, nil
}

func (d *Driver) resize(width, height int) {
	if width == 0 || height == 0 {
		// a zero-area surface cannot be presented, wait for a real size
		d.logger.Debug(fmt.Sprintf("ignoring resize to %dx%d", width, height))
		d.observer.Resized(width, height, false)
		return
	}

	d.state = Resizing
	d.session.surface.Resize(width, height)
	d.gl.Viewport(int32(width), int32(height))
	d.state = Ready
	d.observer.Resized(width, height, true)
}

func (d *Driver) draw(loop Loop) error {
	d.gl.Clear()
	d.gl.DrawArrays(0, TriangleVertices)

	loop.RequestRedraw()

	err := d.session.surface.SwapBuffers()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPresent, err)
	}
	d.observer.FramePresented()
	return nil
}

// Close releases the program, context, surface and window together. It is
// safe to call more than once.
func (d *Driver) Close() {
	if d.session != nil {
		d.session.destroy(d.gl)
		d.session = nil
	}
	d.state = Terminated
}

func (s *session) destroy(gl GL) {
	if s.program != 0 {
		gl.UseProgram(0)
		gl.DeleteProgram(s.program)
		gl.Release()
		s.program = 0
	}
	if s.context != nil {
		s.context.Destroy()
		s.context = nil
	}
	if s.surface != nil {
		s.surface.Destroy()
		s.surface = nil
	}
	if s.window != nil {
		s.window.Destroy()
		s.window = nil
	}
}

package platform

import (
	"log/slog"
	"sync"

	"github.com/fosdem/triangle/lib/demo"
	"github.com/fosdem/triangle/lib/event"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Platform is both the native object factory and the event loop. Everything
// except Post must be called from the main thread.
type Platform struct {
	window *Window
	logger *slog.Logger

	mu    sync.Mutex
	queue []event.Event

	redrawPending bool
	exitRequested bool

	// wait blocks until an event arrives, poll only processes pending ones
	wait func()
	poll func()
	wake func() error
}

func New() *Platform {
	return &Platform{
		logger: slog.Default().With(slog.String("module", "platform")),
		wait:   glfw.WaitEvents,
		poll:   glfw.PollEvents,
		wake: func() error {
			return catch(glfw.PostEmptyEvent)
		},
	}
}

// Handler processes one event; an error stops the loop and is returned from Run
type Handler func(ev event.Event, loop demo.Loop) error

// Run delivers Resumed, then keeps pumping GLFW events into h until Exit is
// called or h fails. While a redraw is pending the loop only polls, so it
// keeps rendering continuously.
func (p *Platform) Run(h Handler) error {
	err := h(event.Resume(), p)
	if err != nil {
		return err
	}

	for !p.exitRequested {
		if p.redrawPending {
			p.poll()
		} else {
			p.wait()
		}

		for _, ev := range p.drain() {
			err = h(ev, p)
			if err != nil {
				return err
			}
			if p.exitRequested {
				return nil
			}
		}

		if p.redrawPending {
			p.redrawPending = false
			err = h(event.Redraw(), p)
		} else {
			err = h(event.Idle(), p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Platform) RequestRedraw() {
	p.redrawPending = true
}

func (p *Platform) Exit() {
	p.exitRequested = true
}

// Post hands an event to the loop from any goroutine
func (p *Platform) Post(ev event.Event) {
	p.push(ev)
	if err := p.wake(); err != nil {
		p.logger.Warn("could not wake event loop", slog.Any("err", err))
	}
}

func (p *Platform) push(ev event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, ev)
}

func (p *Platform) drain() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	evs := p.queue
	p.queue = nil
	return evs
}

var _ demo.Loop = (*Platform)(nil)

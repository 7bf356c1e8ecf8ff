package platform

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/fosdem/triangle/lib/demo"
	"github.com/fosdem/triangle/lib/event"
)

// newTestPlatform returns a Platform whose GLFW pumping is replaced by fn,
// so the loop logic can run without a display
func newTestPlatform(pump func(p *Platform)) *Platform {
	p := New()
	p.wait = func() { pump(p) }
	p.poll = func() { pump(p) }
	p.wake = func() error { return nil }
	return p
}

func kinds(evs []event.Event) []event.Kind {
	var out []event.Kind
	for _, ev := range evs {
		out = append(out, ev.Kind)
	}
	return out
}

func TestRunDeliversResumeFirst(t *testing.T) {
	iterations := 0
	p := newTestPlatform(func(p *Platform) {
		iterations++
		if iterations == 2 {
			p.push(event.Resize(320, 200))
		}
		if iterations == 3 {
			p.push(event.Close())
		}
	})

	var seen []event.Event
	err := p.Run(func(ev event.Event, loop demo.Loop) error {
		seen = append(seen, ev)
		switch ev.Kind {
		case event.Resumed, event.RedrawRequested:
			loop.RequestRedraw()
		case event.CloseRequested:
			loop.Exit()
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []event.Kind{
		event.Resumed,
		event.RedrawRequested,
		event.Resized,
		event.RedrawRequested,
		event.CloseRequested,
	}
	if !slices.Equal(kinds(seen), want) {
		t.Errorf("events = %v, want %v", kinds(seen), want)
	}
}

func TestRunWaitsWhenIdle(t *testing.T) {
	waits, polls := 0, 0
	p := New()
	p.wake = func() error { return nil }
	p.wait = func() {
		waits++
		if waits == 2 {
			p.push(event.Close())
		}
	}
	p.poll = func() { polls++ }

	var seen []event.Kind
	err := p.Run(func(ev event.Event, loop demo.Loop) error {
		seen = append(seen, ev.Kind)
		if ev.Kind == event.CloseRequested {
			loop.Exit()
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if polls != 0 {
		t.Errorf("polled %d times without a pending redraw", polls)
	}
	want := []event.Kind{event.Resumed, event.AboutToWait, event.CloseRequested}
	if !slices.Equal(seen, want) {
		t.Errorf("events = %v, want %v", seen, want)
	}
}

func TestRunStopsOnHandlerError(t *testing.T) {
	p := newTestPlatform(func(*Platform) {})
	boom := errors.New("present failed")
	frames := 0

	err := p.Run(func(ev event.Event, loop demo.Loop) error {
		loop.RequestRedraw()
		if ev.Kind == event.RedrawRequested {
			frames++
			if frames == 3 {
				return boom
			}
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if frames != 3 {
		t.Errorf("frames = %d", frames)
	}
}

func TestRunResumeError(t *testing.T) {
	p := newTestPlatform(func(*Platform) {
		t.Error("loop pumped events after a failed resume")
	})
	boom := errors.New("no context")
	err := p.Run(func(event.Event, demo.Loop) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestNoEventsAfterExit(t *testing.T) {
	p := newTestPlatform(func(p *Platform) {
		p.push(event.Close())
		p.push(event.Resize(1, 1))
	})

	var seen []event.Kind
	err := p.Run(func(ev event.Event, loop demo.Loop) error {
		seen = append(seen, ev.Kind)
		if ev.Kind == event.CloseRequested {
			loop.Exit()
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if seen[len(seen)-1] != event.CloseRequested {
		t.Errorf("events after close: %v", seen)
	}
}

func TestPostFromOtherGoroutines(t *testing.T) {
	woken := 0
	var mu sync.Mutex
	p := New()
	p.wake = func() error {
		mu.Lock()
		defer mu.Unlock()
		woken++
		return nil
	}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Post(event.Redraw())
		}()
	}
	wg.Wait()

	if n := len(p.drain()); n != 10 {
		t.Errorf("drained %d events, want 10", n)
	}
	if woken != 10 {
		t.Errorf("woken %d times", woken)
	}
	if n := len(p.drain()); n != 0 {
		t.Errorf("queue not emptied, %d left", n)
	}
}

func TestSampleCandidates(t *testing.T) {
	tests := []struct {
		max  int
		want []int
	}{
		{16, []int{16, 8, 4, 2, 1, 0}},
		{6, []int{6, 3, 1, 0}},
		{1, []int{1, 0}},
		{0, []int{0}},
	}
	for _, tt := range tests {
		if got := sampleCandidates(tt.max); !slices.Equal(got, tt.want) {
			t.Errorf("sampleCandidates(%d) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestCatch(t *testing.T) {
	if err := catch(func() {}); err != nil {
		t.Errorf("unexpected error %s", err)
	}
	boom := errors.New("API unavailable")
	if err := catch(func() { panic(boom) }); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
	if err := catch(func() { panic("weird") }); err == nil || err.Error() != "glfw: weird" {
		t.Errorf("err = %v", err)
	}
}

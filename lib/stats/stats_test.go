package stats

import (
	"testing"
	"time"

	"github.com/fosdem/triangle/lib/metrics"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		t.Fatal(err)
	}
	switch {
	case pb.Counter != nil:
		return pb.Counter.GetValue()
	case pb.Gauge != nil:
		return pb.Gauge.GetValue()
	}
	t.Fatalf("unsupported metric %v", m.Desc())
	return 0
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFPS(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)}
	s := newWithClock(clock.now)

	for range 60 {
		clock.advance(1 * time.Second / 60)
		s.FramePresented()
	}
	// float rounding might leave us a hair short of one second
	clock.advance(time.Millisecond)
	s.FramePresented()

	snap := s.Snapshot()
	if snap.Frames != 61 {
		t.Errorf("frames = %d", snap.Frames)
	}
	if snap.FPS < 60 || snap.FPS > 61 {
		t.Errorf("fps = %d, want ~60", snap.FPS)
	}
	if snap.Uptime < 1 {
		t.Errorf("uptime = %f", snap.Uptime)
	}
}

func TestResized(t *testing.T) {
	s := New()
	before := value(t, metrics.Resizes.WithLabelValues(metrics.ResizeIgnored))

	s.Resized(800, 600, true)
	s.Resized(0, 600, false)

	snap := s.Snapshot()
	if snap.Width != 800 || snap.Height != 600 {
		t.Errorf("size = %dx%d", snap.Width, snap.Height)
	}
	if snap.IgnoredResizes != 1 {
		t.Errorf("ignored = %d", snap.IgnoredResizes)
	}
	if got := value(t, metrics.Resizes.WithLabelValues(metrics.ResizeIgnored)); got != before+1 {
		t.Errorf("ignored metric = %f, want %f", got, before+1)
	}
	if got := value(t, metrics.SurfaceWidth); got != 800 {
		t.Errorf("width gauge = %f", got)
	}
}

func TestSwapIntervalFailed(t *testing.T) {
	s := New()
	before := value(t, metrics.SwapIntervalFailures)
	s.SwapIntervalFailed()
	if s.Snapshot().SwapIntervalFailures != 1 {
		t.Error("failure not recorded")
	}
	if got := value(t, metrics.SwapIntervalFailures); got != before+1 {
		t.Errorf("metric = %f", got)
	}
}

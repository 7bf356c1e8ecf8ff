package stats

import (
	"sync"
	"time"

	"github.com/fosdem/triangle/lib/metrics"
	"github.com/fosdem/triangle/lib/utils"
)

// Snapshot is what the API hands out
type Snapshot struct {
	Uptime               float64 `json:"uptime"`
	FPS                  uint64  `json:"fps"`
	Frames               uint64  `json:"frames"`
	Width                int     `json:"width"`
	Height               int     `json:"height"`
	IgnoredResizes       uint64  `json:"ignored_resizes"`
	SwapIntervalFailures uint64  `json:"swap_interval_failures"`
	WsClients            int     `json:"ws_clients"`
}

// Stats implements demo.Observer. The render loop writes it, HTTP handlers
// read it.
type Stats struct {
	mu   sync.Mutex
	snap Snapshot

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
	deltaTimer   *utils.DeltaTimer
	now          func() time.Time
}

func New() *Stats {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Stats {
	s := &Stats{now: now}
	s.start = now()
	s.frameTimer = s.start
	s.deltaTimer = utils.NewDeltaTimer(now)
	return s
}

func (s *Stats) FramePresented() {
	dt := s.deltaTimer.Next()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.Frames++
	s.frameCounter++
	now := s.now()
	if now.Sub(s.frameTimer) >= 1*time.Second {
		s.snap.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = now
	}

	metrics.FramesPresented.Inc()
	if dt > 0 {
		metrics.FrameSeconds.Observe(dt.Seconds())
	}
}

func (s *Stats) Resized(width, height int, applied bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !applied {
		s.snap.IgnoredResizes++
		metrics.Resizes.WithLabelValues(metrics.ResizeIgnored).Inc()
		return
	}
	s.snap.Width = width
	s.snap.Height = height
	metrics.Resizes.WithLabelValues(metrics.ResizeApplied).Inc()
	metrics.SurfaceWidth.Set(float64(width))
	metrics.SurfaceHeight.Set(float64(height))
}

func (s *Stats) SwapIntervalFailed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap.SwapIntervalFailures++
	metrics.SwapIntervalFailures.Inc()
}

func (s *Stats) SetWsClients(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.WsClients = n
}

func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snap
	snap.Uptime = s.now().Sub(s.start).Seconds()
	return snap
}

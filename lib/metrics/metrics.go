package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesPresented = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triangle_frames_presented_total",
		Help: "Total number of frames swapped to the window",
	})
	Resizes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triangle_resizes_total",
		Help: "Total number of resize events, by whether the surface was resized",
	}, []string{"result"})
	SwapIntervalFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "triangle_swap_interval_failures_total",
		Help: "Number of times the requested swap interval could not be set",
	})
	FrameSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triangle_frame_seconds",
		Help:    "Time between consecutive presented frames",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
	SurfaceWidth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "triangle_surface_width",
		Help: "Current width of the drawable surface in pixels",
	})
	SurfaceHeight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "triangle_surface_height",
		Help: "Current height of the drawable surface in pixels",
	})
)

const (
	ResizeApplied = "applied"
	ResizeIgnored = "ignored"
)

func init() {
	Resizes.WithLabelValues(ResizeApplied).Add(0)
	Resizes.WithLabelValues(ResizeIgnored).Add(0)
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/fosdem/triangle/lib/config"
	"github.com/fosdem/triangle/lib/event"
	"github.com/fosdem/triangle/lib/metrics"
	"github.com/fosdem/triangle/lib/stats"
	"github.com/fosdem/triangle/lib/utils"
	"github.com/gorilla/websocket"
)

// Poster is how the API talks to the render loop, which runs on another thread
type Poster interface {
	Post(ev event.Event)
}

type Api struct {
	srv    http.Server
	mux    *http.ServeMux
	cfg    *config.ApiCfg
	loop   Poster
	logger *slog.Logger

	Stats *stats.Stats

	wsMu      sync.Mutex
	wsClients map[*websocket.Conn]bool
	// StatsInterval is how often websocket clients get a stats push
	StatsInterval time.Duration
}

func New(cfg *config.ApiCfg, loop Poster, s *stats.Stats) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.loop = loop
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.wsClients = make(map[*websocket.Conn]bool)
	a.Stats = s
	a.StatsInterval = 2 * time.Second
	a.logger = slog.Default().With(slog.String("module", "api"))
	a.routes()
	return a
}

func (a *Api) routes() {
	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.Handle("/metrics", metrics.Handler())
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("POST /api/close", a.requestClose)
	a.mux.HandleFunc("PUT /api/clear_colour", a.setClearColour)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) Shutdown(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}

// @Summary	Current render statistics
// @Router		/api/stats [get]
// @Tags		stats
// @Produce	json
// @Success	200	{object}	stats.Snapshot
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.Stats.Snapshot())
	if err != nil {
		http.Error(w, fmt.Sprintf("could not encode stats: %s", err), http.StatusInternalServerError)
		return
	}
}

// @Summary	Close the window and exit, as if the user closed it
// @Router		/api/close [post]
// @Tags		control
// @Success	200
func (a *Api) requestClose(w http.ResponseWriter, _ *http.Request) {
	a.logger.Info("closing as per api request")
	a.loop.Post(event.Close())
	a.ok(w)
}

type ClearColourReq struct {
	Colour string `json:"colour" example:"#ff0000ff"`
}

// @Summary	Change the colour the window is cleared to every frame
// @Router		/api/clear_colour [put]
// @Tags		control
// @Accept		json
// @Param		req	body	ClearColourReq	true	"New colour as #RRGGBBAA"
// @Success	200
// @Failure	400	{string}	string	"Could not decode json request"
func (a *Api) setClearColour(w http.ResponseWriter, req *http.Request) {
	var colourReq ClearColourReq
	err := json.NewDecoder(req.Body).Decode(&colourReq)
	if err != nil {
		http.Error(w, fmt.Sprintf("could not decode json request: %s", err), http.StatusBadRequest)
		return
	}
	c, err := utils.ColourParse(colourReq.Colour)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	a.loop.Post(event.Recolour(c))
	a.ok(w)
}

func (a *Api) ok(w http.ResponseWriter) {
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		a.logger.Warn("could not write response", slog.Any("err", err))
	}
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// ServeInBackground starts the server when the api is configured. A server
// failure is logged; the demo keeps running without it.
func ServeInBackground(cfg *config.ApiCfg, loop Poster, s *stats.Stats) *Api {
	if cfg == nil {
		return nil
	}
	theApi := New(cfg, loop, s)

	theApi.logger.Info(fmt.Sprintf("starting web server on %s", cfg.Bind))
	go func() {
		err := theApi.Serve()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			theApi.logger.Error("web server stopped", slog.Any("err", err))
		}
	}()
	return theApi
}

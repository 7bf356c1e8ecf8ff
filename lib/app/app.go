package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fosdem/triangle/lib/api"
	"github.com/fosdem/triangle/lib/config"
	"github.com/fosdem/triangle/lib/demo"
	"github.com/fosdem/triangle/lib/event"
	"github.com/fosdem/triangle/lib/platform"
	"github.com/fosdem/triangle/lib/rendering"
	"github.com/fosdem/triangle/lib/rendering/shaders"
	"github.com/fosdem/triangle/lib/stats"
	"github.com/fosdem/triangle/lib/utils"
	"github.com/fosdem/triangle/lib/watch"
)

// Options turns a config into what the demo driver needs. Shader sources are
// rendered here so that a broken template fails before any window appears.
func Options(cfg *config.Config, observer demo.Observer) (demo.Options, error) {
	colour, err := utils.ColourParse(cfg.ClearColour)
	if err != nil {
		return demo.Options{}, err
	}

	shaderer, err := shaders.NewShaderer(string(cfg.ShaderDir))
	if err != nil {
		return demo.Options{}, fmt.Errorf("could not get shaders: %w", err)
	}
	vert, frag, err := shaderer.Sources(shaders.DefaultShaderData())
	if err != nil {
		return demo.Options{}, err
	}

	return demo.Options{
		Template: demo.SurfaceTemplate{
			Title:       cfg.Window.Title,
			Width:       cfg.Window.Width,
			Height:      cfg.Window.Height,
			Resizable:   cfg.Window.Resizable,
			Transparent: cfg.Window.Transparent,
			PreferAlpha: cfg.Surface.PreferAlpha,
			MaxSamples:  cfg.Surface.MaxSamples,
		},
		SwapInterval:   cfg.Surface.SwapInterval,
		ClearColour:    colour,
		VertexShader:   vert,
		FragmentShader: frag,
		Observer:       observer,
	}, nil
}

// MakeWindowAndDraw runs the demo until the window is closed. It must be
// called from the main thread with the OS thread locked. The returned error
// is fatal.
func MakeWindowAndDraw(cfg *config.Config) error {
	st := stats.New()
	opts, err := Options(cfg, st)
	if err != nil {
		return err
	}

	err = platform.Init()
	if err != nil {
		return err
	}
	defer platform.Terminate()

	loop := platform.New()

	theApi := api.ServeInBackground(cfg.Api, loop, st)
	if theApi != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = theApi.Shutdown(ctx)
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Watch {
		startWatch(ctx, cfg.Path, loop)
	}

	driver := demo.New(loop, rendering.New(), opts)
	defer driver.Close()

	return loop.Run(driver.Handle)
}

func startWatch(ctx context.Context, path string, loop *platform.Platform) {
	if path == "" {
		slog.Warn("watch is enabled but there is no config file to watch", slog.String("module", "app"))
		return
	}
	go func() {
		err := watch.Config(ctx, path, func(c *config.Config) {
			colour, err := utils.ColourParse(c.ClearColour)
			if err != nil {
				return
			}
			loop.Post(event.Recolour(colour))
		})
		if err != nil {
			slog.Error("config watch stopped", slog.Any("err", err), slog.String("module", "app"))
		}
	}()
}

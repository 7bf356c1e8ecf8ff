package main

import (
	"flag"
	stdlog "log"
	"log/slog"
	"runtime"

	"github.com/fosdem/triangle/lib/app"
	"github.com/fosdem/triangle/lib/config"
	"github.com/fosdem/triangle/lib/log"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	configPtr := flag.String("config", "", "YAML config file; built-in defaults are used when empty")
	titlePtr := flag.String("title", "", "Window title")
	widthPtr := flag.Uint("width", 0, "Initial window width")
	heightPtr := flag.Uint("height", 0, "Initial window height")
	vsyncPtr := flag.Bool("vsync", false, "Wait for vblank when presenting")
	levelPtr := flag.String("log-level", "info", "One of debug, info, warn, error")
	flag.Parse()

	err := log.Setup(*levelPtr)
	if err != nil {
		stdlog.Fatal(err)
	}

	cfg := config.Default()
	if *configPtr != "" {
		cfg, err = config.Parse(*configPtr)
		if err != nil {
			log.Fatal("could not load config", err)
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			cfg.Window.Title = *titlePtr
		case "width":
			cfg.Window.Width = int(*widthPtr)
		case "height":
			cfg.Window.Height = int(*heightPtr)
		case "vsync":
			if *vsyncPtr {
				cfg.Surface.SwapInterval = 1
			} else {
				cfg.Surface.SwapInterval = 0
			}
		}
	})
	err = cfg.Validate()
	if err != nil {
		log.Fatal("invalid settings", err)
	}

	slog.Debug("starting with\n" + cfg.String())

	err = app.MakeWindowAndDraw(cfg)
	if err != nil {
		log.Fatal("fatal", err)
	}
}

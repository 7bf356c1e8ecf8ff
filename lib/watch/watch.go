package watch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fosdem/triangle/lib/config"
	"github.com/jhenstridge/go-inotify"
)

// settle is how long we wait after a write before reading the file back
const settle = 100 * time.Millisecond

// Config calls onChange with the re-parsed config every time the file at path
// is written. A file that fails to parse is logged and skipped. It returns
// when ctx is cancelled or the watch cannot be set up.
func Config(ctx context.Context, path string, onChange func(*config.Config)) error {
	logger := slog.Default().With(slog.String("module", "watch"))

	watcher, err := inotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create inotify watcher: %w", err)
	}
	defer func(watcher *inotify.Watcher) {
		err := watcher.Close()
		if err != nil {
			logger.Debug(fmt.Sprintf("could not close watcher: %s", err))
		}
	}(watcher)

	_, err = watcher.Watch(path)
	if err != nil {
		return fmt.Errorf("could not watch %s: %w", path, err)
	}
	logger.Info(fmt.Sprintf("watching %s for changes", path))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Event:
			if !ok {
				return nil
			}
			if ev.Mask&inotify.IN_CLOSE_WRITE == 0 {
				continue
			}
			logger.Debug("reloading config due to inotify event")
			time.Sleep(settle)

			cfg, err := config.Parse(path)
			if err != nil {
				logger.Error("ignoring invalid config", slog.Any("err", err))
				continue
			}
			onChange(cfg)
		}
	}
}

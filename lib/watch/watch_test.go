package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fosdem/triangle/lib/config"
	"github.com/jhenstridge/go-inotify"
)

func TestConfigReload(t *testing.T) {
	if w, err := inotify.NewWatcher(); err != nil {
		t.Skipf("inotify unavailable: %s", err)
	} else {
		_ = w.Close()
	}

	path := filepath.Join(t.TempDir(), "triangle.yaml")
	if err := os.WriteFile(path, []byte("clear_colour: \"#000000ff\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *config.Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Config(ctx, path, func(cfg *config.Config) {
			changes <- cfg
		})
	}()

	// give the watcher a moment to register before writing
	time.Sleep(50 * time.Millisecond)

	// broken first: it must be skipped, not delivered
	if err := os.WriteFile(path, []byte("clear_colour: \"nope\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(2 * settle)
	if err := os.WriteFile(path, []byte("clear_colour: \"#ff0000ff\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changes:
		if cfg.ClearColour != "#ff0000ff" {
			t.Errorf("clear colour = %s", cfg.ClearColour)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned %s", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestConfigStopsOnCancelAfterWrite(t *testing.T) {
	if w, err := inotify.NewWatcher(); err != nil {
		t.Skipf("inotify unavailable: %s", err)
	} else {
		_ = w.Close()
	}

	path := filepath.Join(t.TempDir(), "triangle.yaml")
	if err := os.WriteFile(path, []byte("clear_colour: \"#000000ff\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Config(ctx, path, func(*config.Config) {})
	}()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("clear_colour: \"#00ff00ff\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch returned %s", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestConfigMissingFile(t *testing.T) {
	if w, err := inotify.NewWatcher(); err != nil {
		t.Skipf("inotify unavailable: %s", err)
	} else {
		_ = w.Close()
	}

	err := Config(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), func(*config.Config) {
		t.Error("callback for a missing file")
	})
	if err == nil {
		t.Error("expected an error watching a missing file")
	}
}

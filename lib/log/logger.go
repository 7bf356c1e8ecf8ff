package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
)

type LogHandler struct {
	subHandler  slog.Handler
	buffer      *bytes.Buffer
	bufferMutex *sync.Mutex
	out         io.Writer
	colour      bool
}

const (
	reset = "\033[0m"

	darkGray    = 90
	lightRed    = 91
	lightYellow = 93
	cyan        = 36
	lightGray   = 37
)

func (h *LogHandler) colorize(colorCode int, v string) string {
	if !h.colour {
		return v
	}
	return fmt.Sprintf("\033[%sm%s%s", strconv.Itoa(colorCode), v, reset)
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.subHandler.Enabled(ctx, level)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.subHandler = h.subHandler.WithAttrs(attrs)
	return &c
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.subHandler = h.subHandler.WithGroup(name)
	return &c
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + " "

	switch {
	case r.Level >= slog.LevelError:
		level = h.colorize(lightRed, level)
	case r.Level >= slog.LevelWarn:
		level = h.colorize(lightYellow, level)
	case r.Level >= slog.LevelInfo:
		level = h.colorize(cyan, level)
	default:
		level = h.colorize(darkGray, level)
	}

	attrs, err := h.parseAttributes(ctx, r)
	if err != nil {
		return err
	}

	var line strings.Builder
	line.WriteString(h.colorize(lightGray, r.Time.Format("15:04:05.000 ")))
	line.WriteString(level)
	if attrs["module"] != nil {
		line.WriteString(h.colorize(lightGray, fmt.Sprintf("[%s] ", attrs["module"])))
	}
	line.WriteString(r.Message)
	if e, ok := attrs["err"]; ok {
		line.WriteString(fmt.Sprintf(": %v", e))
	}
	line.WriteString("\n")

	_, err = io.WriteString(h.out, line.String())
	return err
}

func (h *LogHandler) parseAttributes(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.bufferMutex.Lock()
	defer func() {
		h.buffer.Reset()
		h.bufferMutex.Unlock()
	}()
	if err := h.subHandler.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any
	err := json.Unmarshal(h.buffer.Bytes(), &attrs)
	if err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}
	return attrs, nil
}

// NewHandler writes one line per record to out. Colours are only used when
// out is a terminal.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	b := &bytes.Buffer{}
	return &LogHandler{
		buffer: b,
		subHandler: slog.NewJSONHandler(b, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: opts.ReplaceAttr,
		}),
		bufferMutex: &sync.Mutex{},
		out:         out,
		colour:      isTerminal(out),
	}
}

// Setup installs the handler on stdout as the default slog logger
func Setup(level string) error {
	var l slog.Level
	err := l.UnmarshalText([]byte(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(NewHandler(os.Stdout, &slog.HandlerOptions{Level: l})))
	return nil
}

// Fatal logs at error level and exits with status 1
func Fatal(msg string, err error, args ...any) {
	slog.Error(msg, append([]any{slog.Any("err", err)}, args...)...)
	os.Exit(1)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty(f.Fd())
}

package logger

import (
	"io"
	"os"
	"sort"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	mu   sync.RWMutex
	base = hclog.New(&hclog.LoggerOptions{
		Name:       "integration-service",
		Output:     os.Stdout,
		JSONFormat: true,
	})
)

// Init installs the process logger. An unknown level falls back to info.
func Init(level string) {
	set(New(os.Stdout, level))
	Info("logger initialized", map[string]any{"level": level})
}

// New builds a JSON logger writing to w.
func New(w io.Writer, level string) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "integration-service",
		Level:      lvl,
		Output:     w,
		JSONFormat: true,
	})
}

func set(l hclog.Logger) {
	mu.Lock()
	base = l
	mu.Unlock()
}

func get() hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func Debug(msg string, fields map[string]any) {
	get().Debug(msg, args(fields)...)
}

func Info(msg string, fields map[string]any) {
	get().Info(msg, args(fields)...)
}

func Warn(msg string, fields map[string]any) {
	get().Warn(msg, args(fields)...)
}

func Error(msg string, fields map[string]any) {
	get().Error(msg, args(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	get().Error(msg, args(fields)...)
	os.Exit(1)
}

// args flattens fields into hclog key/value pairs in key order.
func args(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}

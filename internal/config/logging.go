package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const logTimeLayout = "2006-01-02T15-04-05"

// NewLogger builds the process logger: JSON on stdout, debug level outside
// prod, teed into a rotated "<name>-<time>.log" file under LogDir when one
// is configured. The returned close func releases the log file.
func NewLogger(cfg *Config, name string) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stdout
	closeFn := func() error { return nil }
	if cfg.LogDir != "" {
		f, err := openLogFile(cfg.LogDir, name, time.Now())
		if err != nil {
			return nil, nil, err
		}
		if err := pruneLogFiles(cfg.LogDir, name, cfg.MaxLogFiles); err != nil {
			fmt.Fprintf(os.Stderr, "warning: prune old logs: %v\n", err)
		}
		out = io.MultiWriter(os.Stdout, f)
		closeFn = f.Close
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
	return logger.With("service", name), closeFn, nil
}

func openLogFile(dir, name string, now time.Time) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.log", name, now.Format(logTimeLayout)))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// pruneLogFiles keeps the keep newest log files of name. The timestamp
// layout sorts lexically in time order.
func pruneLogFiles(dir, name string, keep int) error {
	if keep <= 0 {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(dir, name+"-*.log"))
	if err != nil {
		return err
	}
	if len(files) <= keep {
		return nil
	}
	sort.Strings(files)
	for _, path := range files[:len(files)-keep] {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}

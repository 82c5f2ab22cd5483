package logsink

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Config selects where search-log lines are appended. A Redis URL wins
// over the file path.
type Config struct {
	Path     string
	RedisURL string
	RedisKey string
}

// Open returns the configured append-only sink.
func Open(cfg Config) (io.WriteCloser, error) {
	if cfg.RedisURL != "" {
		s, err := NewRedisSink(cfg.RedisURL, cfg.RedisKey)
		if err != nil {
			return nil, fmt.Errorf("open search log: %w", err)
		}
		return s, nil
	}

	f, err := OpenFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open search log: %w", err)
	}
	return f, nil
}

// OpenFile opens path for appending, creating it and its directory.
func OpenFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("search log path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir %q: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	return f, nil
}

// NewSearchLogger mirrors every line to stdout and the sink. A Logger
// issues one Write per line, so concurrent searches interleave whole lines.
func NewSearchLogger(sink io.Writer) *log.Logger {
	return log.New(io.MultiWriter(os.Stdout, sink), "", log.LstdFlags)
}

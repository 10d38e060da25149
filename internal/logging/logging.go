// Package logging builds the file logger. The TUI owns the terminal, so logs never go
// to stdout or stderr while it runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const fileName = "do-me.log"

type Options struct {
	// Path overrides the log file; empty means <DataDir>/do-me.log.
	Path    string
	DataDir string
	// Level is debug|info|warn|error; empty means info.
	Level string
}

// DefaultPath returns the log file inside a data dir.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, fileName)
}

// Open returns a logger writing to the configured file and a closer for it.
// When the file cannot be opened the logger discards everything.
func Open(opts Options) (*log.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	path := strings.TrimSpace(opts.Path)
	if path == "" && strings.TrimSpace(opts.DataDir) != "" {
		path = DefaultPath(opts.DataDir)
	}
	if path == "" {
		return Discard(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Discard(), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return Discard(), nopCloser{}, nil
	}
	return New(f, level), f, nil
}

// New returns a logfmt logger on w.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
}

func Discard() *log.Logger {
	return log.New(io.Discard)
}

func ParseLevel(s string) (log.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(s))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

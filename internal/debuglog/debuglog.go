// Package debuglog holds the process-wide zerolog logger. Logging is off by
// default; Init routes it to a file (for --debug) and optionally mirrors a
// human-readable stream to stderr.
package debuglog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// L returns the current logger.
func L() *zerolog.Logger { return &logger }

// Init enables logging. An empty path logs to the default data dir. The
// returned func closes the log file.
func Init(path string, verbose bool) (func(), error) {
	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}

	var w io.Writer = f
	if verbose {
		w = zerolog.MultiLevelWriter(f, zerolog.ConsoleWriter{Out: os.Stderr})
	}
	logger = zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()

	return func() {
		logger = zerolog.Nop()
		f.Close()
	}, nil
}

func defaultPath() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "underlords", "debug.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "underlords", "debug.log"), nil
}

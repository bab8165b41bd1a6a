package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Output formats accepted by New.
const (
	FormatAuto    = "auto"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New returns a logger for the given level, destination and format.
// If file is empty, logs are written to stderr.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
// The format parameter is json, console, or auto; auto picks console when
// writing to a terminal and json otherwise.
func New(level, file, format string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	var writer io.Writer = os.Stderr
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))
	if file != "" {
		logsDir := filepath.Dir(file)
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		osFile, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = osFile.Close() }
		writer = osFile
		isTTY = false
	}

	writer, err = wrapFormat(writer, format, isTTY)
	if err != nil {
		closer()
		return zerolog.Logger{}, func() {}, err
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}

func wrapFormat(w io.Writer, format string, isTTY bool) (io.Writer, error) {
	switch format {
	case "", FormatAuto:
		if isTTY {
			return zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}, nil
		}
		return w, nil
	case FormatJSON:
		return w, nil
	case FormatConsole:
		return zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTTY}, nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want auto, json or console)", format)
	}
}

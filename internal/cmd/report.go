package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// reportError prints err to w the way users see it on the terminal.
func reportError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprint(w, "error: ")
	_, _ = fmt.Fprintln(w, err)

	if h := hint(err); h != "" {
		_, _ = color.New(color.FgYellow).Fprint(w, "hint: ")
		_, _ = fmt.Fprintln(w, h)
	}
}

// newLogger returns a human readable logger writing to w.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    color.NoColor || w != os.Stderr,
		TimeFormat: time.TimeOnly,
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

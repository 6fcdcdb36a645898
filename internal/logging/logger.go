// Package logging provides leveled, optionally colored logging with an
// optional append-to-file sink. The Logger serializes writes with a mutex so
// workers can log concurrently without interleaving lines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"

	"jxlpress/internal/config"
)

// Level colors. fatih/color already honors NO_COLOR and non-TTY output;
// --no-color forces them off via color.NoColor.
var (
	infoColor    = color.New(color.FgBlue, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	debugColor   = color.New(color.FgCyan)
)

// Logger writes timestamped, leveled lines to stdout/stderr and, when
// configured, to a log file (always uncolored there).
type Logger struct {
	mu      sync.Mutex
	verbose bool
	file    *os.File
}

// NewLogger applies the color mode from cfg and opens the log file if one is
// configured. Call Close when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	if cfg.NoColor {
		color.NoColor = true
	}

	l := &Logger{verbose: cfg.Verbose}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level string, c *color.Color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")

	l.mu.Lock()
	defer l.mu.Unlock()

	out := os.Stdout
	if level == "ERROR" {
		out = os.Stderr
	}
	fmt.Fprintf(out, "%s %s %s\n", ts, c.Sprintf("[%s]", level), text)

	if l.file != nil {
		_, _ = io.WriteString(l.file, ts+" ["+level+"] "+text+"\n")
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", infoColor, fmt.Sprintf(format, args...))
}

// Success logs at OK level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("OK", successColor, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", warnColor, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", errorColor, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose mode is on.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", debugColor, fmt.Sprintf(format, args...))
}

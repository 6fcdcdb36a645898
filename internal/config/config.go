// Package config holds runtime configuration: defaults, validation, and the
// safety checks applied before any file is touched. A Config is populated
// once during flag parsing and is read-only afterwards; it is shared by
// pointer with every worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Worker pool bounds.
const (
	DefaultWorkers = 4
	MaxWorkers     = 32
)

// Encoder effort bounds (cjxl -e).
const (
	DefaultEffort = 7
	MinEffort     = 1
	MaxEffort     = 9
)

// Config holds all runtime settings. Populate with [DefaultConfig], apply CLI
// overrides, then call [Validate] before use.
type Config struct {
	// Target (set from the positional arg).
	TargetDir string

	// Behavior flags.
	InPlace         bool // Replace originals (atomic rename, then delete source).
	SkipHealthCheck bool
	Recursive       bool // Default: true. Cleared by --no-recursive.
	ForceLossless   bool // Force -d 0 for every eligible format, JPEG included.
	Verbose         bool
	DryRun          bool
	CheckOnly       bool // Run --check diagnostics and exit.

	// Encoder tuning.
	Workers  int     // Clamped to [1, MaxWorkers] by Validate.
	Effort   int     // cjxl -e, 1..9.
	Distance float64 // Explicit -d override; -1 means auto-select per mode.

	// Display and logging.
	NoColor bool
	LogFile string // Optional append-to log file path.
}

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() Config {
	return Config{
		Recursive: true,
		Workers:   DefaultWorkers,
		Effort:    DefaultEffort,
		Distance:  -1,
	}
}

// Validate clamps the worker count, checks effort bounds, and requires a
// target directory unless running in CheckOnly mode.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Workers > MaxWorkers {
		c.Workers = MaxWorkers
	}
	if c.Effort < MinEffort || c.Effort > MaxEffort {
		return fmt.Errorf("effort must be between %d and %d (got %d)", MinEffort, MaxEffort, c.Effort)
	}
	if c.CheckOnly {
		return nil
	}
	if c.TargetDir == "" {
		return errors.New("need a target directory")
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path. Any spelling
// of the filesystem root ("/", "//", ...) normalizes to "/" rather than the
// empty string.
func NormalizeDirArg(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" && path != "" {
		return "/"
	}
	return trimmed
}

// dangerousRoots are directories jxlpress refuses to modify in place.
var dangerousRoots = []string{
	"/",
	"/etc",
	"/bin",
	"/sbin",
	"/usr",
	"/var",
	"/System",
	"/Library",
	"/Applications",
	"/private",
}

// ValidateTarget verifies the target is an existing directory and, for
// in-place runs, refuses system roots and the user's home directory.
// The returned path is absolute with symlinks resolved.
func (c *Config) ValidateTarget() (string, error) {
	fi, err := os.Stat(c.TargetDir)
	if err != nil || !fi.IsDir() {
		return "", fmt.Errorf("directory does not exist: %s", c.TargetDir)
	}

	abs, err := filepath.Abs(c.TargetDir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve target path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("cannot resolve target path: %w", err)
	}

	if c.InPlace && isDangerous(resolved) {
		return "", fmt.Errorf("refusing to run in-place on protected directory: %s", resolved)
	}
	return resolved, nil
}

func isDangerous(resolved string) bool {
	for _, d := range dangerousRoots {
		if resolved == d {
			return true
		}
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" && resolved == home {
		return true
	}
	return false
}

// Package cjxl wraps the external JPEG XL tools. The encoder (cjxl) and the
// validating decoder (djxl) are invoked as black boxes through a small
// Runner interface so tests can substitute fakes without spawning processes.
//
// Invocations carry no timeout: a hung encoder blocks its worker until it
// exits. This matches the tool's historical behavior and is a documented
// limitation rather than an oversight.
package cjxl

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"jxlpress/internal/planner"
)

// Binary names looked up on PATH.
const (
	EncoderBin   = "cjxl"
	ValidatorBin = "djxl"
)

// Runner executes an external command and reports whether it exited zero.
// The returned error carries the exit status or start failure.
type Runner interface {
	Run(name string, args ...string) error
}

// execRunner is the production Runner. Output is discarded; cjxl progress
// noise is not useful under concurrent workers.
type execRunner struct{}

func (execRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}

// Tool invokes cjxl and djxl.
type Tool struct {
	runner       Runner
	hasValidator bool
}

// New probes PATH for the optional validator and returns a ready Tool.
// Encoder presence is checked separately by the startup dependency check.
func New() *Tool {
	_, err := exec.LookPath(ValidatorBin)
	return &Tool{runner: execRunner{}, hasValidator: err == nil}
}

// NewWithRunner builds a Tool around a custom runner, for tests.
func NewWithRunner(r Runner, hasValidator bool) *Tool {
	return &Tool{runner: r, hasValidator: hasValidator}
}

// BuildArgs assembles the cjxl argument list for one conversion.
// ModeTranscode asks for the reversible JPEG transcode; ModeLossless asks
// for a mathematically lossless re-encode at the given effort, where a
// non-negative distance overrides the -d 0 default.
func BuildArgs(input, output string, mode planner.Mode, effort int, distance float64) []string {
	args := []string{input, output}
	switch mode {
	case planner.ModeTranscode:
		args = append(args, "--lossless_jpeg=1")
	default:
		d := "0"
		if distance >= 0 {
			d = formatDistance(distance)
		}
		args = append(args, "-d", d, "-e", strconv.Itoa(effort))
	}
	// Modest internal parallelism; the worker pool provides the real fan-out.
	return append(args, "-j", "2")
}

func formatDistance(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// Encode converts input to output with the given mode and tuning. A non-zero
// exit or a missing/empty output file is an error; partial output is the
// caller's to clean up.
func (t *Tool) Encode(input, output string, mode planner.Mode, effort int, distance float64) error {
	if err := t.runner.Run(EncoderBin, BuildArgs(input, output, mode, effort, distance)...); err != nil {
		return fmt.Errorf("cjxl %s: %w", input, err)
	}
	fi, err := os.Stat(output)
	if err != nil {
		return fmt.Errorf("cjxl produced no output for %s", input)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("cjxl produced empty output for %s", input)
	}
	return nil
}

// HasValidator reports whether djxl is available for round-trip validation.
func (t *Tool) HasValidator() bool { return t.hasValidator }

// Validate round-trip-decodes path to the null device with djxl. Callers
// should skip this when HasValidator is false.
func (t *Tool) Validate(path string) error {
	if err := t.runner.Run(ValidatorBin, path, os.DevNull); err != nil {
		return fmt.Errorf("djxl %s: %w", path, err)
	}
	return nil
}

// Package check provides the startup dependency probe and the --check
// diagnostic mode. cjxl and exiftool are hard requirements; djxl is optional
// and its absence only limits the health check to a signature test.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"jxlpress/internal/cjxl"
	"jxlpress/internal/metadata"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrEncoderNotFound = errors.New("cjxl not found on PATH (install jpeg-xl)")
	ErrCopierNotFound  = errors.New("exiftool not found on PATH (install exiftool)")
)

// Logger is the minimal logging interface needed by RunCheck. Defined here
// rather than importing the logging package so check stays testable with a
// mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// CheckDeps is the pre-run validation: cjxl and exiftool must be on PATH.
// The validating decoder is probed separately by the encoder wrapper.
func CheckDeps() error {
	if _, err := exec.LookPath(cjxl.EncoderBin); err != nil {
		return ErrEncoderNotFound
	}
	if _, err := exec.LookPath(metadata.CopierBin); err != nil {
		return ErrCopierNotFound
	}
	return nil
}

// RunCheck runs the interactive --check flow: report availability and
// versions of cjxl, djxl, and exiftool. Informational only; returns false
// when a required tool is missing.
func RunCheck(log Logger) bool {
	ok := true

	if v := toolVersion(cjxl.EncoderBin, "--version"); v != "" {
		log.Success("cjxl: %s", v)
	} else {
		log.Error("cjxl not found")
		ok = false
	}

	if v := toolVersion(cjxl.ValidatorBin, "--version"); v != "" {
		log.Success("djxl: %s", v)
	} else {
		log.Warn("djxl not found; health check limited to signature test")
	}

	if v := toolVersion(metadata.CopierBin, "-ver"); v != "" {
		log.Success("exiftool: %s", v)
	} else {
		log.Error("exiftool not found")
		ok = false
	}

	return ok
}

// toolVersion returns the first line of a tool's version output, or "" when
// the tool is unavailable.
func toolVersion(name, versionFlag string) string {
	if _, err := exec.LookPath(name); err != nil {
		return ""
	}
	out, err := exec.Command(name, versionFlag).CombinedOutput()
	if err != nil {
		return name + " (version unavailable)"
	}
	first := strings.TrimSpace(string(out))
	if idx := strings.Index(first, "\n"); idx > 0 {
		first = first[:idx]
	}
	return first
}

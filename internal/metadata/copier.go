// Package metadata migrates side-channel metadata from a source image to its
// converted output: embedded tags via exiftool, filesystem timestamps, and
// platform extended attributes. Ordering matters: exiftool rewrites the
// destination, so timestamps are restored strictly after it, and extended
// attributes last.
package metadata

import (
	"fmt"
	"os"
	"os/exec"
)

// CopierBin is the external tag-copying tool.
const CopierBin = "exiftool"

// Runner executes an external command; mirrors cjxl.Runner so tests can
// substitute a fake exiftool.
type Runner interface {
	Run(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}

// Copier drives the metadata migration layers.
type Copier struct {
	runner Runner
}

// New returns a Copier using the real exiftool.
func New() *Copier { return &Copier{runner: execRunner{}} }

// NewWithRunner builds a Copier around a custom runner, for tests.
func NewWithRunner(r Runner) *Copier { return &Copier{runner: r} }

// Result reports which migration layers succeeded. Tag copying is
// best-effort; only the timestamp layer degrades a conversion's outcome.
type Result struct {
	TagsCopied bool
	Timestamps bool
	Xattrs     bool
}

// Migrate runs all layers in order and returns what succeeded. It never
// returns an error: metadata loss must not fail a conversion.
func (c *Copier) Migrate(source, dest string) Result {
	var res Result
	res.TagsCopied = c.copyTags(source, dest) == nil
	res.Timestamps = CopyTimestamps(source, dest) == nil
	res.Xattrs = copyXattrs(source, dest) == nil
	return res
}

// copyTags copies all embedded metadata (EXIF, IPTC, XMP, ICC profile) into
// dest. -overwrite_original keeps exiftool from leaving a backup file.
func (c *Copier) copyTags(source, dest string) error {
	err := c.runner.Run(CopierBin,
		"-tagsfromfile", source,
		"-all:all", "-icc_profile",
		"-overwrite_original",
		dest,
	)
	if err != nil {
		return fmt.Errorf("exiftool %s: %w", dest, err)
	}
	return nil
}

// CopyTimestamps mirrors the source's access and modification times onto
// dest. Must run after copyTags, which rewrites dest.
func CopyTimestamps(source, dest string) error {
	atime, mtime, err := fileTimes(source)
	if err != nil {
		return err
	}
	return os.Chtimes(dest, atime, mtime)
}

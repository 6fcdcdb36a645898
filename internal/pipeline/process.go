package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"jxlpress/internal/cjxl"
	"jxlpress/internal/config"
	"jxlpress/internal/display"
	"jxlpress/internal/logging"
	"jxlpress/internal/metadata"
	"jxlpress/internal/probe"
)

// Outcome is the terminal state of one work item.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailed
	OutcomeSkipped
)

// env bundles the collaborators a worker needs per item.
type env struct {
	cfg     *config.Config
	log     *logging.Logger
	encoder *cjxl.Tool
	copier  *metadata.Copier
	stats   *RunStats
}

// OutputPath resolves the destination for input: the extension is swapped
// for .jxl, or .jxl is appended when there is none.
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + ".jxl"
}

// tempPath is where the encoder writes before commit. In-place runs need a
// name distinct from the final output; otherwise the temp path is the final
// path and commit is a no-op.
func tempPath(input, output string, inPlace bool) string {
	if inPlace {
		return input + ".jxl.tmp"
	}
	return output
}

// processItem drives one file through the conversion state machine:
// resolve → exists-check → encode → rollback guard → health check →
// metadata → commit. Steps run strictly in that order; the source file is
// deleted only after a successful rename.
func processItem(e *env, item WorkItem) Outcome {
	output := OutputPath(item.Path)

	// Exists-check before any work. Only meaningful when not in place;
	// in-place conversion replaces the source by design.
	if !e.cfg.InPlace {
		if _, err := os.Stat(output); err == nil {
			e.log.Debug("Skip (exists): %s", output)
			e.stats.MarkSkippedExists()
			return OutcomeSkipped
		}
	}

	temp := tempPath(item.Path, output, e.cfg.InPlace)

	if e.cfg.Verbose {
		e.log.Info("Converting [%s → %s]: %s", item.Format, item.Mode, item.Path)
	}

	// Convert.
	if err := e.encoder.Encode(item.Path, temp, item.Mode, e.cfg.Effort, e.cfg.Distance); err != nil {
		e.log.Error("Conversion failed: %s (%v)", item.Path, err)
		os.Remove(temp)
		e.stats.MarkFailed(false)
		return OutcomeFailed
	}

	// Rollback guard: never commit an output larger than its source.
	outInfo, err := os.Stat(temp)
	if err != nil {
		e.log.Error("Output vanished after encode: %s", temp)
		e.stats.MarkFailed(false)
		return OutcomeFailed
	}
	if outInfo.Size() > item.Size {
		e.log.Debug("Rollback (output %s > input %s): %s",
			display.FormatBytes(outInfo.Size()), display.FormatBytes(item.Size), item.Path)
		os.Remove(temp)
		e.stats.MarkSkippedLarger()
		return OutcomeSkipped
	}

	// Health check before metadata, so a corrupt encode never reaches commit.
	healthRan := !e.cfg.SkipHealthCheck
	if healthRan {
		if err := healthCheck(e.encoder, temp); err != nil {
			e.log.Error("Health check failed: %s (%v)", temp, err)
			os.Remove(temp)
			e.stats.MarkFailed(true)
			return OutcomeFailed
		}
	}

	// Metadata migration, best-effort. Timestamp loss is the only layer
	// recorded as degradation.
	mres := e.copier.Migrate(item.Path, temp)
	if !mres.TagsCopied {
		e.log.Debug("Metadata migration partial: %s", temp)
	}
	if !mres.Timestamps {
		e.log.Debug("Timestamp preservation failed: %s", temp)
	}
	if e.cfg.Verbose {
		if pct, err := metadata.VerifyPreserved(item.Path, temp); err == nil {
			e.log.Debug("Metadata: %d%% preserved", pct)
		}
	}

	// Commit. In-place: rename onto the final path, then delete the source.
	// Delete strictly follows rename so a rename failure loses nothing.
	if e.cfg.InPlace {
		if err := os.Rename(temp, output); err != nil {
			e.log.Error("Rename failed: %s (%v)", temp, err)
			os.Remove(temp)
			e.stats.MarkFailed(false)
			return OutcomeFailed
		}
		if err := os.Remove(item.Path); err != nil {
			e.log.Warn("Could not delete original: %s", item.Path)
		}
	}

	// Size may have shifted during metadata injection.
	finalSize := outInfo.Size()
	if fi, err := os.Stat(output); err == nil {
		finalSize = fi.Size()
	}

	e.stats.MarkSuccess(item.Size, finalSize, healthRan, mres.Timestamps)
	if e.cfg.Verbose {
		e.log.Success("Done: %s (%s)", output, display.FormatReduction(item.Size, finalSize))
	}
	return OutcomeSuccess
}

// healthCheck verifies the output starts with a JXL signature and, when djxl
// is available, that it round-trip decodes.
func healthCheck(encoder *cjxl.Tool, path string) error {
	if err := checkSignature(path); err != nil {
		return err
	}
	if encoder.HasValidator() {
		return encoder.Validate(path)
	}
	return nil
}

// errNotJXL marks a health-check signature mismatch.
var errNotJXL = errors.New("output does not carry a JXL signature")

func checkSignature(path string) error {
	if probe.Detect(path) != probe.FormatJXL {
		return errNotJXL
	}
	return nil
}

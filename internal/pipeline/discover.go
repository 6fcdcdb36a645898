package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"jxlpress/internal/config"
	"jxlpress/internal/display"
	"jxlpress/internal/logging"
	"jxlpress/internal/planner"
	"jxlpress/internal/probe"
)

// MaxFiles bounds the work list; beyond it collection stops with a warning
// instead of failing the run.
const MaxFiles = 100000

// WorkItem is one eligible file. Immutable after collection; exactly one
// worker processes it.
type WorkItem struct {
	Path   string
	Size   int64
	Format probe.Format
	Mode   planner.Mode
}

// Collect walks root and returns the eligible work list in enumeration
// order. Hidden entries are skipped, every regular file is sniffed and
// classified, and collection-phase skips feed the discard counters. Runs
// single-threaded to completion so the pool can be partitioned statically.
func Collect(root string, cfg *config.Config, stats *RunStats, log *logging.Logger) ([]WorkItem, error) {
	var items []WorkItem
	full := collectDir(root, cfg, stats, log, &items, cfg.Recursive)
	if full {
		log.Warn("Maximum file limit reached (%d); remaining files ignored", MaxFiles)
	}
	return items, nil
}

// collectDir visits one directory level. Returns true when the item cap was
// hit, which stops enumeration at every level above.
func collectDir(dir string, cfg *config.Config, stats *RunStats, log *logging.Logger, items *[]WorkItem, recurse bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warn("Cannot read directory: %s", dir)
		return false
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if recurse && collectDir(path, cfg, stats, log, items, recurse) {
				return true
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			continue
		}

		format := probe.Detect(path)
		compression := probe.CompressionNone
		if format == probe.FormatTIFF {
			compression = probe.TIFFCompression(path)
		}

		decision := planner.Classify(format, compression, fi.Size(), cfg)
		if decision.Mode == planner.ModeSkip {
			stats.AddDiscard(decision.Reason)
			logDiscard(log, cfg, path, fi.Size(), decision.Reason)
			continue
		}

		if len(*items) >= MaxFiles {
			return true
		}
		*items = append(*items, WorkItem{
			Path:   path,
			Size:   fi.Size(),
			Format: format,
			Mode:   decision.Mode,
		})
		stats.AddEligible(format)
	}
	return false
}

func logDiscard(log *logging.Logger, cfg *config.Config, path string, size int64, reason planner.SkipReason) {
	if !cfg.Verbose {
		return
	}
	switch reason {
	case planner.SkipTooSmall:
		log.Debug("Skip (< %s): %s (%s)",
			display.FormatBytes(planner.MinLosslessSize), path, display.FormatBytes(size))
	case planner.SkipTIFFLossy:
		log.Debug("Skip TIFF (JPEG compressed): %s", path)
	case planner.SkipRAW:
		log.Debug("Skip RAW: %s", path)
	}
}

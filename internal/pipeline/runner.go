package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"jxlpress/internal/cjxl"
	"jxlpress/internal/config"
	"jxlpress/internal/display"
	"jxlpress/internal/logging"
	"jxlpress/internal/metadata"
	"jxlpress/internal/planner"
	"jxlpress/internal/probe"
)

// Constructors for the external tool wrappers; tests override these to run
// the pool without spawning real processes.
var (
	newEncoder = cjxl.New
	newCopier  = metadata.New
)

// Run executes the full batch: collect, partition, convert, summarize.
// Returns the final stats; callers decide the exit code from stats.Failed.
func Run(ctx context.Context, root string, cfg *config.Config, log *logging.Logger) *RunStats {
	stats := NewRunStats()

	log.Info("Scanning for images...")
	items, err := Collect(root, cfg, stats, log)
	if err != nil {
		log.Error("Scan failed: %v", err)
		return stats
	}

	if len(items) == 0 {
		log.Info("No suitable files found")
		return stats
	}
	stats.Total = len(items)
	log.Info("Found %d files to convert", len(items))

	if cfg.DryRun {
		log.Info("Files that would be converted:")
		for _, item := range items {
			tag := display.DimStyle.Render(fmt.Sprintf("[%s, %s]", item.Format, item.Mode))
			fmt.Printf("   %s %s\n", tag, item.Path)
		}
		return stats
	}

	e := &env{
		cfg:     cfg,
		log:     log,
		encoder: newEncoder(),
		copier:  newCopier(),
		stats:   stats,
	}

	runPool(ctx, e, items)
	logSummary(cfg, log, stats)
	return stats
}

// runPool statically partitions items into min(cfg.Workers, len(items))
// contiguous slices and runs one goroutine per slice. There is no shared
// queue: each item is owned by exactly one worker, so the only shared
// mutable state is the stats aggregator. The first slice's worker doubles
// as the progress reporter after each of its own items; this intentional
// asymmetry keeps concurrent workers from interleaving bar redraws.
func runPool(ctx context.Context, e *env, items []WorkItem) {
	workers := e.cfg.Workers
	if workers > len(items) {
		workers = len(items)
	}

	bar := newProgressBar(len(items))

	var g errgroup.Group
	for w, bounds := range partitionBounds(len(items), workers) {
		slice := items[bounds[0]:bounds[1]]
		reporter := w == 0

		g.Go(func() error {
			runSlice(ctx, e, slice, reporter, bar)
			return nil
		})
	}
	_ = g.Wait()

	_ = bar.Finish()
	fmt.Println()
}

// partitionBounds splits total items into contiguous, near-equal [start,end)
// ranges, one per worker, with the remainder spread over the first slices.
func partitionBounds(total, workers int) [][2]int {
	per := total / workers
	remainder := total % workers

	bounds := make([][2]int, workers)
	start := 0
	for w := 0; w < workers; w++ {
		end := start + per
		if w < remainder {
			end++
		}
		bounds[w] = [2]int{start, end}
		start = end
	}
	return bounds
}

// runSlice processes one worker's partition in order. The cancellation flag
// is observed only at item boundaries: an in-flight conversion always runs
// to completion so no file is abandoned half-done.
func runSlice(ctx context.Context, e *env, slice []WorkItem, reporter bool, bar *progressbar.ProgressBar) {
	for _, item := range slice {
		if ctx.Err() != nil {
			return
		}

		processItem(e, item)
		processed := e.stats.MarkProcessed()

		if reporter {
			_ = bar.Set(processed)
			bar.Describe(trimName(filepath.Base(item.Path)))
		}
	}
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func trimName(name string) string {
	const max = 40
	if len(name) <= max {
		return name
	}
	return name[:max-3] + "..."
}

// logSummary prints the end-of-run report. It runs after every worker has
// joined, so the stats fields are read without the lock.
func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	elapsed := time.Since(stats.Start).Round(time.Second)

	fmt.Println(display.HeadingStyle.Render("Conversion complete"))
	log.Info("Total: %d | Success: %d | Failed: %d | Skipped: %d | Time: %s",
		stats.Total, stats.Success, stats.Failed, stats.Skipped, elapsed)

	if stats.BytesIn > 0 {
		saved := stats.SpaceSaved()
		line := fmt.Sprintf("Input %s -> output %s (%s)",
			display.FormatBytes(stats.BytesIn),
			display.FormatBytes(stats.BytesOut),
			display.FormatReduction(stats.BytesIn, stats.BytesOut))
		if saved >= 0 {
			log.Success("%s", line)
			fmt.Println(display.GoodStyle.Render("  Saved " + display.FormatBytes(saved)))
		} else {
			log.Warn("%s", line)
			fmt.Println(display.BadStyle.Render("  Grew by " + display.FormatBytes(-saved)))
		}
	}

	logFormatCounts(log, stats)
	logDiscards(log, stats)

	if !cfg.SkipHealthCheck && stats.HealthPassed+stats.HealthFailed > 0 {
		log.Info("Health check: %d passed, %d failed", stats.HealthPassed, stats.HealthFailed)
	}
	if stats.TimestampDegraded > 0 {
		log.Warn("Timestamps not preserved on %d files", stats.TimestampDegraded)
	}
}

// Format display order for the summary.
var summaryFormats = []probe.Format{
	probe.FormatJPEG,
	probe.FormatPNG,
	probe.FormatBMP,
	probe.FormatTIFF,
	probe.FormatTGA,
	probe.FormatPNM,
}

func logFormatCounts(log *logging.Logger, stats *RunStats) {
	for _, f := range summaryFormats {
		if n := stats.Formats[f]; n > 0 {
			mode := "lossless"
			if f == probe.FormatJPEG {
				mode = "reversible"
			}
			log.Info("  %s (%s): %d", f, mode, n)
		}
	}
}

// Discard reasons worth surfacing in the summary, with display labels.
var summaryDiscards = []struct {
	reason planner.SkipReason
	label  string
}{
	{planner.SkipRAW, "RAW files (preserve flexibility)"},
	{planner.SkipTooSmall, "small files (< 2 MiB threshold)"},
	{planner.SkipTIFFLossy, "TIFF (already lossy)"},
}

func logDiscards(log *logging.Logger, stats *RunStats) {
	for _, d := range summaryDiscards {
		if n := stats.Discards[d.reason]; n > 0 {
			log.Info("  Skipped %s: %d", d.label, n)
		}
	}
	if stats.SkippedLarger > 0 {
		log.Info("  Skipped JXL larger than source (rollback): %d", stats.SkippedLarger)
	}
	if stats.SkippedExists > 0 {
		log.Info("  Skipped output already present: %d", stats.SkippedExists)
	}
}

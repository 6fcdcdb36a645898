// Command jxlpress batch-converts static images under a directory to JPEG XL.
// JPEG sources get a reversible transcode; lossless sources above the size
// floor get a mathematically lossless re-encode. It parses flags, validates
// the target and external dependencies, and runs the conversion pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"jxlpress/internal/check"
	"jxlpress/internal/config"
	"jxlpress/internal/display"
	"jxlpress/internal/logging"
	"jxlpress/internal/pipeline"
)

// version is injected at build time via -ldflags.
var version = "1.0.0"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.DefaultConfig()

	root := &cobra.Command{
		Use:   "jxlpress [flags] <directory>",
		Short: "Convert static images to JPEG XL with smart mode selection",
		Long: `jxlpress converts static images to JPEG XL:
  JPEG                      -> reversible transcode (--lossless_jpeg=1)
  PNG/BMP/TGA/PPM >= 2 MiB  -> mathematically lossless (-d 0)
  TIFF (none/lzw/deflate)   -> mathematically lossless (-d 0), same floor
  Camera RAW                -> skipped, preserving raw-processing flexibility`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.TargetDir = config.NormalizeDirArg(args[0])
			}
			return nil
		},
	}

	fl := root.Flags()
	fl.BoolVarP(&cfg.InPlace, "in-place", "i", false, "Replace original files after a safe commit")
	fl.BoolVar(&cfg.SkipHealthCheck, "skip-health-check", false, "Skip output validation")
	fl.BoolVar(&cfg.ForceLossless, "force-lossless", false, "Force lossless re-encode for all formats, JPEG included")
	fl.BoolVar(&cfg.DryRun, "dry-run", false, "Preview the work list without converting")
	fl.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Show per-file detail")
	fl.IntVarP(&cfg.Workers, "jobs", "j", config.DefaultWorkers, "Parallel workers")
	fl.IntVarP(&cfg.Effort, "effort", "e", config.DefaultEffort, "cjxl effort (1-9)")
	fl.Float64VarP(&cfg.Distance, "distance", "d", -1, "Override cjxl distance (-1 = auto per mode)")
	fl.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fl.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	fl.BoolVarP(&cfg.CheckOnly, "check", "c", false, "Check external tools and exit")

	var noRecursive bool
	fl.BoolVar(&noRecursive, "no-recursive", false, "Do not process subdirectories")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jxlpress: %v\n", err)
		return 1
	}
	if helpOrVersionRequested(root) {
		return 0
	}
	cfg.Recursive = !noRecursive

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "jxlpress: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jxlpress: %v\n", err)
		return 1
	}
	defer log.Close()

	display.PrintBanner(version)

	if cfg.CheckOnly {
		if !check.RunCheck(log) {
			return 1
		}
		return 0
	}

	target, err := cfg.ValidateTarget()
	if err != nil {
		log.Error("%v", err)
		return 1
	}

	if err := check.CheckDeps(); err != nil {
		log.Error("%v", err)
		return 1
	}

	log.Info("Target: %s", target)
	log.Info("Mode: JPEG -> reversible transcode, others -> lossless -d 0 (>= 2 MiB)")
	log.Info("Workers: %d, effort: %d", cfg.Workers, cfg.Effort)
	if cfg.InPlace {
		log.Warn("In-place mode: originals will be replaced")
	}
	if cfg.DryRun {
		log.Warn("Dry-run mode: no files will be modified")
	}

	// SIGINT/SIGTERM cancel the context; workers finish their in-flight
	// item and stop, and the summary still prints.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stats := pipeline.Run(ctx, target, &cfg, log)

	if ctx.Err() != nil {
		log.Warn("Interrupted; partial results above")
	}
	if stats.Failed > 0 {
		return 1
	}
	return 0
}

// helpOrVersionRequested reports whether Execute already handled the run via
// cobra's built-in help/version flags.
func helpOrVersionRequested(cmd *cobra.Command) bool {
	help, _ := cmd.Flags().GetBool("help")
	ver, _ := cmd.Flags().GetBool("version")
	return help || ver
}

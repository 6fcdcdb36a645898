// Package planner decides, per file, whether and how to convert. Classify is
// a pure function of the probe results, the file size, and the run
// configuration, so the policy is testable in isolation and identical
// inputs always produce the same decision.
package planner

import (
	"jxlpress/internal/config"
	"jxlpress/internal/probe"
)

// Mode is the conversion mode selected for a file.
type Mode int

const (
	ModeSkip Mode = iota
	// ModeTranscode is the reversible JPEG transcode (--lossless_jpeg=1).
	// It preserves the DCT coefficients exactly, so the original JPEG can
	// be reconstructed byte for byte.
	ModeTranscode
	// ModeLossless re-encodes decoded pixels mathematically losslessly (-d 0).
	ModeLossless
)

func (m Mode) String() string {
	switch m {
	case ModeTranscode:
		return "reversible transcode"
	case ModeLossless:
		return "lossless"
	default:
		return "skip"
	}
}

// SkipReason categorizes why a file was left alone. Skips are never failures.
type SkipReason int

const (
	SkipNone       SkipReason = iota
	SkipUnknown               // Unrecognized content.
	SkipRAW                   // Camera raw, skipped to preserve raw-processing flexibility.
	SkipAlreadyJXL            // Nothing to do.
	SkipTIFFLossy             // JPEG-compressed or unparseable TIFF.
	SkipTooSmall              // Below the lossless size floor.
)

func (r SkipReason) String() string {
	switch r {
	case SkipUnknown:
		return "unsupported"
	case SkipRAW:
		return "raw"
	case SkipAlreadyJXL:
		return "already jxl"
	case SkipTIFFLossy:
		return "tiff (jpeg compressed)"
	case SkipTooSmall:
		return "too small"
	default:
		return "none"
	}
}

// MinLosslessSize is the size floor for lossless re-encoding. Below 2 MiB a
// -d 0 re-encode rarely wins enough bytes to justify the cost.
const MinLosslessSize = 2 * 1024 * 1024

// Decision pairs the selected mode with the skip reason when ModeSkip.
type Decision struct {
	Mode   Mode
	Reason SkipReason
}

// Classify applies the eligibility policy in order:
//
//  1. Unknown, RAW, and already-JXL files are skipped outright.
//  2. TIFFs whose container is JPEG-compressed (already lossy) or whose
//     directory could not be parsed are skipped.
//  3. With --force-lossless every remaining format, JPEG included, gets a
//     lossless re-encode.
//  4. JPEG gets the reversible transcode.
//  5. Everything else (lossless sources and suitable TIFFs) gets a lossless
//     re-encode when size ≥ MinLosslessSize; the comparison is inclusive.
func Classify(format probe.Format, compression probe.Compression, size int64, cfg *config.Config) Decision {
	switch format {
	case probe.FormatUnknown:
		return Decision{Mode: ModeSkip, Reason: SkipUnknown}
	case probe.FormatRAW:
		return Decision{Mode: ModeSkip, Reason: SkipRAW}
	case probe.FormatJXL:
		return Decision{Mode: ModeSkip, Reason: SkipAlreadyJXL}
	}

	if format == probe.FormatTIFF &&
		(compression == probe.CompressionJPEG || compression == probe.CompressionUnknown) {
		return Decision{Mode: ModeSkip, Reason: SkipTIFFLossy}
	}

	if cfg.ForceLossless {
		return Decision{Mode: ModeLossless}
	}

	if format == probe.FormatJPEG {
		return Decision{Mode: ModeTranscode}
	}

	if format.LosslessSource() || format == probe.FormatTIFF {
		if size >= MinLosslessSize {
			return Decision{Mode: ModeLossless}
		}
		return Decision{Mode: ModeSkip, Reason: SkipTooSmall}
	}
	return Decision{Mode: ModeSkip, Reason: SkipUnknown}
}

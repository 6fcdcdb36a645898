package display

import "fmt"

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, ...).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatReduction returns the size change as a percentage string, e.g.
// "38.2% smaller". Outputs larger than the input read "x% larger".
func FormatReduction(in, out int64) string {
	if in <= 0 {
		return "n/a"
	}
	ratio := (1 - float64(out)/float64(in)) * 100
	if ratio < 0 {
		return fmt.Sprintf("%.1f%% larger", -ratio)
	}
	return fmt.Sprintf("%.1f%% smaller", ratio)
}

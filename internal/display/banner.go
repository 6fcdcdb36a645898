// Package display holds output formatting shared by the CLI and the
// pipeline: byte/ratio formatting and the lipgloss styles used for the
// banner and the end-of-run summary.
package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("135")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)

	// HeadingStyle renders summary section headings.
	HeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

	// GoodStyle and BadStyle color summary values.
	GoodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	BadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	// DimStyle renders secondary detail lines.
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// PrintBanner prints the startup banner box.
func PrintBanner(version string) {
	fmt.Fprintln(os.Stdout, bannerStyle.Render("jxlpress v"+version+" — static image → JPEG XL"))
}

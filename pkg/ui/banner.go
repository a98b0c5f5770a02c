package ui

import "strings"

const (
	reset       = "\033[0m"
	bold        = "\033[1m"
	outlineGray = "\033[38;5;244m"
	mint        = "\033[38;5;121m"
	cobalt      = "\033[38;5;33m"
	flame       = "\033[38;5;208m"
	alertRed    = "\033[38;5;196m"
)

const (
	bannerTitle = " SYSTEM MONITOR "
	bannerWidth = 56
)

// Banner renders the title rule shown above the system metrics. With color
// disabled it is plain ASCII.
func Banner(color bool) string {
	side := (bannerWidth - len(bannerTitle)) / 2
	left := strings.Repeat("=", side)
	right := strings.Repeat("=", bannerWidth-side-len(bannerTitle))
	if !color {
		return left + bannerTitle + right + "\n"
	}
	return outlineGray + left + reset + bold + cobalt + bannerTitle + reset + outlineGray + right + reset + "\n"
}

// Rule renders the closing rule under the system metrics.
func Rule(color bool) string {
	line := strings.Repeat("=", bannerWidth)
	if !color {
		return line + "\n"
	}
	return outlineGray + line + reset + "\n"
}

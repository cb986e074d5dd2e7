// Package ui renders CLI output with optional ANSI colors.
package ui

import "fmt"

// ANSI256 color codes.
const (
	colorHeader = 74  // blue
	colorAmount = 114 // green
	colorWarn   = 214 // orange
	colorMuted  = 245 // medium gray
)

var noColor bool

func paint(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderHeader returns s styled as a table header.
func RenderHeader(s string) string { return paint(colorHeader, s) }

// RenderAmount returns s styled as a currency figure.
func RenderAmount(s string) string { return paint(colorAmount, s) }

// RenderWarn returns s styled as a warning.
func RenderWarn(s string) string { return paint(colorWarn, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return paint(colorMuted, s) }

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

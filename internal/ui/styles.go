// Package ui provides terminal color styling for CLI output.
package ui

import (
	"fmt"

	"github.com/alfredjeanlab/corpnet/internal/model"
)

// ANSI256 color codes matching the Ayu palette.
const (
	colorAccent = 74  // blue
	colorCmd    = 250 // light gray
	colorMuted  = 245 // medium gray
	colorGood   = 114 // green
	colorBad    = 203 // red
	colorWarn   = 215 // orange
)

var noColor bool

func paint(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return paint(colorAccent, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return paint(colorMuted, s) }

// RenderCommand returns s styled as a command name (light gray).
func RenderCommand(s string) string { return paint(colorCmd, s) }

// RenderStatus colors a company status: green for active, red for dissolved
// or liquidation, orange for the other insolvency states.
func RenderStatus(s model.CompanyStatus) string {
	switch s {
	case model.StatusActive:
		return paint(colorGood, string(s))
	case model.StatusDissolved, model.StatusLiquidation:
		return paint(colorBad, string(s))
	case "":
		return paint(colorMuted, "unknown")
	default:
		return paint(colorWarn, string(s))
	}
}

// RenderResigned marks a resignation date in red; empty dates render as a
// muted dash.
func RenderResigned(date string) string {
	if date == "" {
		return paint(colorMuted, "-")
	}
	return paint(colorBad, date)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

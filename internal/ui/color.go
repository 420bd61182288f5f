// Package ui provides terminal output helpers for placesync.
package ui

import (
	"github.com/fatih/color"
)

// Color function types for styled output.
var (
	// Success is used for written targets (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for failed targets (red).
	Error = color.New(color.FgRed).SprintFunc()
	// Warning is used for skipped entries (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Dim is used for secondary information (faint).
	Dim = color.New(color.Faint).SprintFunc()
)

// Status symbols with colors.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolSkipped = "-"
)

// StatusSuccess returns a green checkmark with optional message.
func StatusSuccess(msg string) string {
	if msg == "" {
		return Success(SymbolSuccess)
	}
	return Success(SymbolSuccess) + " " + msg
}

// StatusError returns a red X with optional message.
func StatusError(msg string) string {
	if msg == "" {
		return Error(SymbolError)
	}
	return Error(SymbolError) + " " + msg
}

// StatusWarning returns a yellow warning with optional message.
func StatusWarning(msg string) string {
	if msg == "" {
		return Warning(SymbolWarning)
	}
	return Warning(SymbolWarning) + " " + msg
}

// StatusSkipped returns a dimmed skip symbol with optional message.
func StatusSkipped(msg string) string {
	if msg == "" {
		return Dim(SymbolSkipped)
	}
	return Dim(SymbolSkipped) + " " + msg
}

// DisableColors disables all color output.
func DisableColors() {
	color.NoColor = true
}

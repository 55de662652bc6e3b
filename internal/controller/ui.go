// Package controller provides output adapters for displaying validation results.
package controller

import (
	m "github.com/mouse-blink/pedant/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeSummary StartMode = iota
	ModeBrowse
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithSummaryMode sets the UI to per-file summary mode.
func WithSummaryMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeSummary
	}
}

// WithBrowseMode sets the UI to interactive diagnostic browsing.
func WithBrowseMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeBrowse
	}
}

// UI defines the interface for displaying validation results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayScanInfo(files int, workers int)
	DisplayReport(report *m.RunReport) error
}

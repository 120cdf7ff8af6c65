package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutSidePanelWidth is the minimum width to show the up next panel
	// beside the watch page.
	LayoutSidePanelWidth = 110
)

// Log display limits.
const (
	// LogBufferLimit is the maximum number of log lines kept in memory.
	LogBufferLimit = 2000
)

// Timing constants.
const (
	// DefaultUIInterval is how often the model re-reads shared state.
	DefaultUIInterval = 500 * time.Millisecond

	// StatusMessageTTL is how long a transient status message stays.
	StatusMessageTTL = 4 * time.Second
)

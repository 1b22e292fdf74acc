// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init opens the stream from the navigation state, fetches the catalog and starts the timers.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(
		b.spinnerC.Tick,
		b.start(),
		b.pollTick(),
		b.refreshTick(),
		b.waitForSession(),
		b.waitForNavigation(),
		b.syncSession(),
	)
}

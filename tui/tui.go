// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/aceplay/aceplay/controller"
	"github.com/aceplay/aceplay/log"
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Link is a stream link, #fragment or id to open on start.
	Link string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	ctrl, err := controller.FromConfig(options.Link)
	if err != nil {
		return err
	}

	bubble := newBubble(ctrl)
	defer bubble.close()

	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	if err != nil {
		log.Error(err)
	}
	return err
}

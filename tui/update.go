// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"strings"

	"github.com/aceplay/aceplay/internal/ui"
	"github.com/aceplay/aceplay/nav"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Ephemeral notifications arrive as plain strings
	if uiCmd := b.notifier.Update(msg); uiCmd != nil {
		cmds = append(cmds, uiCmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case catalogMsg:
		b.loaded = true
		b.setRows()
		if b.state == loadingState {
			b.setState(listState)
		}
		if b.ctrl.Listing().HeadingFlashing(b.now()) {
			cmds = append(cmds, b.flashTick())
		}
		return b, tea.Batch(cmds...)
	case refreshTickMsg:
		return b, tea.Batch(append(cmds, b.refresh(), b.refreshTick())...)
	case pollTickMsg:
		return b, tea.Batch(append(cmds, b.poll())...)
	case polledMsg:
		return b, tea.Batch(append(cmds, b.pollTick())...)
	case sessionChangedMsg:
		return b, tea.Batch(append(cmds, b.syncSession(), b.waitForSession())...)
	case sessionClosedMsg:
		return b, tea.Quit
	case navigatedMsg:
		b.ctrl.Navigated(nav.Location(msg))
		return b, tea.Batch(append(cmds, b.waitForNavigation())...)
	case flashDoneMsg:
		return b, tea.Batch(cmds...)
	case spinner.TickMsg:
		if b.loaded {
			return b, tea.Batch(cmds...)
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, tea.Batch(append(cmds, cmd)...)
	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			return b, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch b.state {
	case loadingState:
		cmd = b.updateLoading(msg)
	case listState:
		cmd = b.updateList(msg)
	case inputState:
		cmd = b.updateInput(msg)
	}

	return b, tea.Batch(append(cmds, cmd)...)
}

func (b *statefulBubble) updateLoading(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.quit):
			return tea.Quit
		case key.Matches(msg, b.keymap.input):
			b.setState(inputState)
			return nil
		}
	}
	return nil
}

func (b *statefulBubble) updateList(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && b.streamsC.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, b.keymap.play):
			item, ok := b.streamsC.SelectedItem().(*listItem)
			if !ok {
				return nil
			}
			if err := b.ctrl.Choose(item.index); err != nil {
				return ui.Notify(err.Error())
			}
			return nil
		case key.Matches(msg, b.keymap.input):
			b.inputC.SetValue("")
			b.setState(inputState)
			return nil
		case key.Matches(msg, b.keymap.refresh):
			return b.refresh()
		case key.Matches(msg, b.keymap.fullscreen):
			return b.toggleFullscreen()
		case key.Matches(msg, b.keymap.copyLink):
			return b.copyLink()
		case key.Matches(msg, b.keymap.openURL):
			return b.openLink()
		}
	}

	var cmd tea.Cmd
	b.streamsC, cmd = b.streamsC.Update(msg)
	return cmd
}

func (b *statefulBubble) updateInput(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, b.keymap.back):
			b.inputC.SetValue("")
			b.setState(b.restingState())
			return nil
		case key.Matches(msg, b.keymap.confirm):
			raw := strings.TrimSpace(b.inputC.Value())
			if raw == "" {
				return nil
			}
			b.inputC.SetValue("")
			b.setState(b.restingState())
			b.ctrl.Submit(raw)
			return nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	return cmd
}

// restingState is the state to return to from the input prompt.
func (b *statefulBubble) restingState() state {
	if !b.loaded {
		return loadingState
	}
	return listState
}

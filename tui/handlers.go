// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"errors"
	"time"

	"github.com/aceplay/aceplay/controller"
	"github.com/aceplay/aceplay/internal/ui"
	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/nav"
	"github.com/aceplay/aceplay/open"
	"github.com/aceplay/aceplay/player"
	"github.com/aceplay/aceplay/status"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

type (
	// catalogMsg carries the outcome of a catalog fetch; the rows live in the listing.
	catalogMsg        struct{ err error }
	pollTickMsg       time.Time
	polledMsg         struct{}
	refreshTickMsg    time.Time
	flashDoneMsg      struct{}
	sessionChangedMsg struct{}
	sessionClosedMsg  struct{}
	navigatedMsg      nav.Location
)

func (b *statefulBubble) start() tea.Cmd {
	return func() tea.Msg {
		return catalogMsg{err: b.ctrl.Start(b.ctx)}
	}
}

func (b *statefulBubble) refresh() tea.Cmd {
	return func() tea.Msg {
		return catalogMsg{err: b.ctrl.Refresh(b.ctx)}
	}
}

// poll observes the player off the update loop; mpv may be slow to answer.
func (b *statefulBubble) poll() tea.Cmd {
	return func() tea.Msg {
		b.ctrl.Poll()
		return polledMsg{}
	}
}

func (b *statefulBubble) pollTick() tea.Cmd {
	return tea.Tick(controller.PollInterval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// refreshTick schedules the next catalog refresh. A zero period fetches only once.
func (b *statefulBubble) refreshTick() tea.Cmd {
	period := b.ctrl.Options().Refresh
	if period <= 0 {
		return nil
	}
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

// flashTick re-renders once the highlight window has passed.
func (b *statefulBubble) flashTick() tea.Cmd {
	return tea.Tick(status.FlashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{}
	})
}

func (b *statefulBubble) waitForSession() tea.Cmd {
	changes := b.ctrl.Session().Changes()
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return sessionClosedMsg{}
		}
		return sessionChangedMsg{}
	}
}

func (b *statefulBubble) waitForNavigation() tea.Cmd {
	updates := b.navUpdates
	return func() tea.Msg {
		loc, ok := <-updates
		if !ok {
			return nil
		}
		return navigatedMsg(loc)
	}
}

// syncSession pulls the session snapshot into the indicator and the list marks.
func (b *statefulBubble) syncSession() tea.Cmd {
	snap := b.ctrl.Session().Snapshot()
	b.markSelection(snap.Selection)

	if b.indicator.Update(snap.Health, b.now()) && b.indicator.Flashing {
		return b.flashTick()
	}
	return nil
}

func (b *statefulBubble) toggleFullscreen() tea.Cmd {
	return func() tea.Msg {
		fs, ok := b.ctrl.Session().Sink().(player.Fullscreener)
		if !ok {
			return "Fullscreen is not supported by this player"
		}

		err := fs.ToggleFullscreen()
		switch {
		case errors.Is(err, player.ErrNotRunning):
			return "Player is not running"
		case err != nil:
			log.Warnf("fullscreen: %v", err)
			return "Fullscreen failed"
		}
		return nil
	}
}

func (b *statefulBubble) currentLink() (string, bool) {
	loc := b.ctrl.Navigator().Location()
	if loc.Fragment == "" {
		return "", false
	}
	return loc.String(), true
}

func (b *statefulBubble) copyLink() tea.Cmd {
	link, ok := b.currentLink()
	if !ok {
		return ui.Notify("No stream loaded")
	}

	return func() tea.Msg {
		if err := clipboard.WriteAll(link); err != nil {
			log.Warnf("copy %s: %v", link, err)
			return "Clipboard unavailable"
		}
		return "Link copied"
	}
}

func (b *statefulBubble) openLink() tea.Cmd {
	link, ok := b.currentLink()
	if !ok {
		return ui.Notify("No stream loaded")
	}

	return func() tea.Msg {
		if err := open.Start(link); err != nil {
			log.Warnf("open %s: %v", link, err)
			return "Could not open browser"
		}
		return nil
	}
}

// Package mini implements a line-oriented interface: a stream menu, then status lines while watching.
package mini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

		"github.com/aceplay/aceplay/listing"
	"github.com/aceplay/aceplay/player"
	"github.com/aceplay/aceplay/status"
	"github.com/samber/lo"
)

type state int

const (
	selectState state = iota + 1
	linkInputState
	watchState
	quitState
)

func (m *mini) handleSelectState(ctx context.Context) error {
	rows := m.ctrl.Listing().Rows()

	m.title(fmt.Sprintf("Select Stream (%d)", len(rows)))
	options := lo.Map(rows, func(r listing.Row, _ int) string {
		return rowLine(r)
	})
	options = append(options, refresh.String(), link.String(), quit.String())

	i, err := m.prompt.Select("Streams", options)
	if err != nil {
		if errors.Is(err, errInterrupted) {
			m.newState(quitState)
			return nil
		}
		return err
	}

	switch b := i - len(rows); {
	case b < 0:
		if err := m.ctrl.Choose(i); err != nil {
			return err
		}
		m.newState(watchState)
	case refresh.eq(binds[b]):
		erase := m.progress("Refreshing..")
		err := m.ctrl.Refresh(ctx)
		erase()
		if err != nil {
			m.fail(listing.FailureMessage(err))
		}
	case link.eq(binds[b]):
		m.newState(linkInputState)
	case quit.eq(binds[b]):
		m.newState(quitState)
	}

	return nil
}

func (m *mini) handleLinkInputState(ctx context.Context) error {
	raw, err := m.prompt.Input("Stream link or id")
	if err != nil {
		if errors.Is(err, errInterrupted) {
			m.previousState()
			return nil
		}
		return err
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		m.previousState()
		return nil
	}

	if !m.submit(ctx, raw) {
		return nil
	}

	m.setState(watchState)
	return nil
}

// handleWatchState reads one command line: a link or id opens it, empty goes
// back to the menu, f toggles fullscreen, q quits.
func (m *mini) handleWatchState(ctx context.Context) error {
	m.printStatus()

	line, err := m.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return err
		}
		if strings.TrimSpace(line) == "" {
			m.newState(quitState)
			return nil
		}
	}

	switch cmd := strings.TrimSpace(line); cmd {
	case "":
		m.previousState()
	case "q":
		m.newState(quitState)
	case "f":
		m.fullscreen()
	default:
		m.submit(ctx, cmd)
	}

	return nil
}

// submit hands raw to the controller loop.
func (m *mini) submit(ctx context.Context, raw string) bool {
	select {
	case m.intents <- raw:
		return true
	case <-ctx.Done():
		return false
	}
}

func (m *mini) fullscreen() {
	fs, ok := m.ctrl.Session().Sink().(player.Fullscreener)
	if !ok {
		m.fail("Fullscreen is not supported by this player")
		return
	}
	if err := fs.ToggleFullscreen(); err != nil {
		m.fail(err.Error())
	}
}

func rowLine(r listing.Row) string {
	name := r.Title
	if name == "" {
		name = r.ID
	}
	line := strings.TrimLeft(fmt.Sprintf("%s %-3s %s", status.Icon(r.Class.State()), r.Label, name), " ")
	if r.Source != "" {
		line += " (" + r.Source + ")"
	}
	return line
}

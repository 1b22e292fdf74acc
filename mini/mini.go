// Package mini implements a line-oriented interface: a stream menu, then status lines while watching.
package mini

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/aceplay/aceplay/controller"
	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/util"
	"github.com/samber/lo"
)

var (
	truncateAt = 100
)

type Options struct {
	// Link is a stream link, #fragment or id to open on start.
	Link string
}

type mini struct {
	state         state
	statesHistory util.Stack[state]

	ctrl    *controller.Controller
	prompt  prompter
	in      *bufio.Reader
	out     io.Writer
	intents chan string

	// watching gates the status printer while a menu owns the terminal.
	watching atomic.Bool
	outMu    sync.Mutex
	lastLine string
}

func newMini(ctrl *controller.Controller, p prompter, in io.Reader, out io.Writer) *mini {
	return &mini{
		statesHistory: util.Stack[state]{},
		ctrl:          ctrl,
		prompt:        p,
		in:            bufio.NewReader(in),
		out:           out,
		intents:       make(chan string),
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
	m.watching.Store(s == watchState)

	if s != watchState {
		m.outMu.Lock()
		m.lastLine = ""
		m.outMu.Unlock()
	}
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{linkInputState, quitState}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

func Run(options *Options) error {
	ctrl, err := controller.FromConfig(options.Link)
	if err != nil {
		return err
	}

	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w
	}

	return newMini(ctrl, surveyPrompter{}, os.Stdin, os.Stdout).run(context.Background())
}

// run drives the state machine until the user quits. The controller loop
// and the status printer run alongside it.
func (m *mini) run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancel(ctx)

	erase := m.progress("Fetching streams..")
	startErr := m.ctrl.Start(ctx)
	erase()
	if startErr != nil {
		m.fail(startErr.Error())
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = m.ctrl.Run(ctx, m.intents)
	}()
	go func() {
		defer wg.Done()
		m.printChanges(ctx)
	}()

	defer func() {
		cancel()
		wg.Wait()
		if closeErr := m.ctrl.Close(); closeErr != nil {
			log.Warnf("close: %v", closeErr)
		}
	}()

	if m.ctrl.Navigator().Fragment() != "" {
		m.setState(watchState)
		m.statesHistory.Push(selectState)
	} else {
		m.setState(selectState)
	}

	for m.state != quitState {
		if err = m.handleState(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (m *mini) handleState(ctx context.Context) error {
	switch m.state {
	case selectState:
		return m.handleSelectState(ctx)
	case linkInputState:
		return m.handleLinkInputState(ctx)
	case watchState:
		return m.handleWatchState(ctx)
	}

	return nil
}

package mini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/aceplay/aceplay/icon"
	"github.com/aceplay/aceplay/key"
	"github.com/aceplay/aceplay/status"
	"github.com/aceplay/aceplay/style"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/viper"
)

var errInterrupted = errors.New("interrupted")

type prompter interface {
	Select(message string, options []string) (int, error)
	Input(message string) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Select(message string, options []string) (int, error) {
	var idx int
	err := survey.AskOne(&survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}, &idx)
	return idx, interrupted(err)
}

func (surveyPrompter) Input(message string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: message}, &answer)
	return answer, interrupted(err)
}

func interrupted(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errInterrupted
	}
	return err
}

type bind struct {
	label string
}

func (b *bind) eq(other *bind) bool {
	return b == other
}

func (b *bind) String() string {
	return b.label
}

var (
	refresh = &bind{label: "Refresh"}
	link    = &bind{label: "Open link.."}
	quit    = &bind{label: "Quit"}

	// binds follow the streams in the menu, in this order.
	binds = []*bind{refresh, link, quit}
)

func (m *mini) colored(c func(string) string, s string) string {
	if !viper.GetBool(key.CliColored) {
		return s
	}
	return c(s)
}

func (m *mini) println(s string) {
	m.outMu.Lock()
	defer m.outMu.Unlock()
	fmt.Fprintln(m.out, s)
}

func (m *mini) title(s string) {
	m.println(m.colored(style.Bold, s))
}

func (m *mini) fail(s string) {
	m.println(m.colored(style.Fg(style.ErrorColor), icon.Get(icon.Fail)+" "+s))
}

// progress prints msg without a newline and returns a func that erases it.
func (m *mini) progress(msg string) (erase func()) {
	msg = icon.Get(icon.Progress) + " " + msg

	m.outMu.Lock()
	fmt.Fprintf(m.out, "\r%s", msg)
	m.outMu.Unlock()

	return func() {
		m.outMu.Lock()
		defer m.outMu.Unlock()
		fmt.Fprintf(m.out, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// printStatus prints the session health when it differs from the last printed line.
func (m *mini) printStatus() {
	if !m.watching.Load() {
		return
	}

	h := m.ctrl.Session().Snapshot().Health
	line := status.Line(h)
	if truncateAt > 0 {
		line = truncate.String(line, uint(truncateAt))
	}

	m.outMu.Lock()
	defer m.outMu.Unlock()
	if line == m.lastLine {
		return
	}
	m.lastLine = line

	if viper.GetBool(key.CliColored) {
		line = style.Fg(status.Color(h.State))(line)
	}
	fmt.Fprintln(m.out, line)
}

func (m *mini) printChanges(ctx context.Context) {
	changes := m.ctrl.Session().Changes()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			m.printStatus()
		}
	}
}

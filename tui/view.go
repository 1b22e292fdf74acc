// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/aceplay/aceplay/color"
	"github.com/aceplay/aceplay/constant"
	"github.com/aceplay/aceplay/icon"
	"github.com/aceplay/aceplay/key"
	"github.com/aceplay/aceplay/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)

	headingStyle        = lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1)
	headingFlashedStyle = lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case listState:
		output = b.viewList()
	case inputState:
		output = b.viewInput()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

// header renders the now-playing block shared by every state.
func (b *statefulBubble) header() []string {
	snap := b.ctrl.Session().Snapshot()

	title := style.Title(constant.Aceplay) + " " + style.Faint("v"+constant.Version)

	var playing string
	if snap.Selection != "" {
		name := snap.Title
		if name == "" {
			name = snap.Selection
		}
		playing = fmt.Sprintf("%s %s", icon.Get(icon.Play), style.Fg(color.Purple)(name))
	}

	var link string
	if snap.Source != "" && viper.GetBool(key.TUIShowURLs) {
		link = style.Faint(icon.Get(icon.Stream) + " " + snap.Source)
	}

	indicator := b.indicator.View(b.now())
	if b.width > 0 {
		indicator = wrap.String(indicator, b.width)
	}

	return []string{
		title,
		"",
		style.Truncate(b.width)(playing),
		style.Truncate(b.width)(link),
		indicator,
	}
}

func (b *statefulBubble) viewLoading() string {
	lines := append(b.header(), "", b.spinnerC.View()+" Loading streams")
	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewList() string {
	if b.ctrl.Listing().HeadingFlashing(b.now()) {
		b.streamsC.Styles.Title = headingFlashedStyle
	} else {
		b.streamsC.Styles.Title = headingStyle
	}

	head := paddingStyle.PaddingBottom(0).Render(strings.Join(b.header(), "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, head, listExtraPaddingStyle.Render(b.streamsC.View()))
}

func (b *statefulBubble) viewInput() string {
	lines := append(b.header(),
		"",
		style.Title("Open Stream"),
		"",
		b.inputC.View(),
		"",
		style.Faint("(Enter to open, Esc to cancel)"),
	)

	return b.renderLines(false, lines)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

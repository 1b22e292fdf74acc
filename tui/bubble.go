// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/aceplay/aceplay/constant"
	"github.com/aceplay/aceplay/controller"
	"github.com/aceplay/aceplay/internal/ui"
	"github.com/aceplay/aceplay/key"
	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/nav"
	"github.com/aceplay/aceplay/status"
	"github.com/aceplay/aceplay/style"
	"github.com/aceplay/aceplay/util"
	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// headerHeight is the number of lines rendered above the stream list.
const headerHeight = 6

// statefulBubble encapsulates the application state and the component models.
type statefulBubble struct {
	state  state
	loaded bool

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	inputC    textinput.Model
	streamsC  list.Model
	helpC     help.Model
	indicator *status.Indicator
	notifier  *ui.Model

	ctrl *controller.Controller

	ctx    context.Context
	cancel context.CancelFunc

	navUpdates     <-chan nav.Location
	navUnsubscribe func()

	// now is replaced in tests.
	now func() time.Time

	width, height int
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)

	if s == inputState {
		b.inputC.Focus()
	} else {
		b.inputC.Blur()
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy - headerHeight

	b.streamsC.SetSize(listWidth, util.Max(listHeight, 0))
	b.streamsC.Help.Width = listWidth

	b.inputC.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

// setRows replaces the list items with the current listing, keeping the cursor on the same stream.
func (b *statefulBubble) setRows() {
	var current string
	if item, ok := b.streamsC.SelectedItem().(*listItem); ok {
		current = item.row.ID
	}

	snap := b.ctrl.Session().Snapshot()
	items := newItems(b.ctrl.Listing().Rows(), b.ctrl.Navigator().Location().Base, snap.Selection)

	b.streamsC.SetItems(lo.Map(items, func(item *listItem, _ int) list.Item { return item }))
	b.streamsC.Title = fmt.Sprintf("Streams (%s)", util.Quantify(len(items), "stream", "streams"))

	if _, i, ok := lo.FindIndexOf(items, func(item *listItem) bool { return item.row.ID == current }); ok {
		b.streamsC.Select(i)
	}
}

// markSelection moves the play mark to the stream the session holds.
func (b *statefulBubble) markSelection(selection string) {
	for _, it := range b.streamsC.Items() {
		if item, ok := it.(*listItem); ok {
			item.marked = item.row.ID == selection
		}
	}
}

func (b *statefulBubble) close() {
	b.cancel()
	b.navUnsubscribe()
	if err := b.ctrl.Close(); err != nil {
		log.Warnf("close: %v", err)
	}
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(ctrl *controller.Controller) *statefulBubble {
	keymap := newStatefulKeymap()
	ctx, cancel := context.WithCancel(context.Background())
	updates, unsubscribe := ctrl.Navigator().Subscribe()

	bubble := statefulBubble{
		keymap:         keymap,
		ctrl:           ctrl,
		ctx:            ctx,
		cancel:         cancel,
		navUpdates:     updates,
		navUnsubscribe: unsubscribe,
		notifier:       &ui.Model{},
		indicator:      status.NewIndicator(),
		now:            time.Now,
	}

	bubble.indicator.Flashing = viper.GetBool(key.TUIFlash)

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.streamsC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.streamsC.KeyMap = keymap.forList()
	bubble.streamsC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.streamsC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.streamsC.Title = "Streams"
	bubble.streamsC.Styles.NoItems = paddingStyle
	bubble.streamsC.Styles.Title = headingStyle
	bubble.streamsC.SetStatusBarItemName("stream", "streams")
	bubble.streamsC.SetShowPagination(false)
	bubble.streamsC.SetShowStatusBar(false)

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Stream link or id (v%s)", constant.Version)
	bubble.inputC.CharLimit = 512
	bubble.inputC.Prompt = viper.GetString(key.TUIInputPromptString)

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(loadingState)
	return &bubble
}

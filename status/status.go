// Package status holds the single health value shown to the user and renders it.
package status

import (
	"time"

	"github.com/aceplay/aceplay/icon"
	"github.com/aceplay/aceplay/style"
	"github.com/charmbracelet/lipgloss"
)

// State is the tri-state health classification.
type State int

const (
	Neutral State = iota
	Good
	Bad
)

func (s State) String() string {
	switch s {
	case Good:
		return "good"
	case Bad:
		return "bad"
	default:
		return "neutral"
	}
}

// Health is the current state and its message. Zero value is neutral and empty.
type Health struct {
	State   State  `json:"state"`
	Message string `json:"message"`
}

// Reporter accepts health writes. The last write wins.
type Reporter interface {
	Report(state State, message string)
}

// FlashDuration is how long a changed indicator stays highlighted.
const FlashDuration = 200 * time.Millisecond

// Flash tracks a short highlight window.
type Flash struct {
	until time.Time
}

// Start opens the highlight window at now.
func (f *Flash) Start(now time.Time, d time.Duration) {
	f.until = now.Add(d)
}

// Active reports whether now falls inside the window.
func (f *Flash) Active(now time.Time) bool {
	return now.Before(f.until)
}

// Indicator renders a Health and highlights it briefly whenever it changes.
type Indicator struct {
	health Health
	flash  Flash

	// Flashing can be disabled from config.
	Flashing bool
}

// NewIndicator returns an indicator showing neutral with no message.
func NewIndicator() *Indicator {
	return &Indicator{Flashing: true}
}

// Update stores h and reports whether it differs from what was shown,
// in which case the flash window starts at now.
func (i *Indicator) Update(h Health, now time.Time) bool {
	if h == i.health {
		return false
	}
	i.health = h
	if i.Flashing {
		i.flash.Start(now, FlashDuration)
	}
	return true
}

// Health returns the value currently displayed.
func (i *Indicator) Health() Health {
	return i.health
}

// Highlighted reports whether the flash window is open at now.
func (i *Indicator) Highlighted(now time.Time) bool {
	return i.flash.Active(now)
}

// Color returns the foreground used for a state.
func Color(s State) lipgloss.Color {
	switch s {
	case Good:
		return style.SuccessColor
	case Bad:
		return style.ErrorColor
	default:
		return style.WarningColor
	}
}

// Icon returns the symbol used for a state.
func Icon(s State) string {
	switch s {
	case Good:
		return icon.Get(icon.Good)
	case Bad:
		return icon.Get(icon.Bad)
	default:
		return icon.Get(icon.Neutral)
	}
}

// View renders the indicator as it should look at now.
func (i *Indicator) View(now time.Time) string {
	if i.health.Message == "" {
		return ""
	}

	s := style.New().Foreground(Color(i.health.State)).Bold(true)
	if i.Highlighted(now) {
		s = s.Background(style.Surface)
	}
	return s.Render(Line(i.health))
}

// Line is the plain text form used by line-oriented output.
func Line(h Health) string {
	if ic := Icon(h.State); ic != "" {
		return ic + " " + h.Message
	}
	return h.Message
}

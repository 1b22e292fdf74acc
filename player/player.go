// Package player drives the external playback engine that decodes the HLS source.
//
// An Engine is a per-selection handle: it is given a source URL, attached to a
// Sink (the long-lived output window) and reports lifecycle and error events.
// The Sink starts playback on request and can be observed for liveness.
package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// EventType classifies engine events.
type EventType int

const (
	ManifestParsed EventType = iota + 1
	NetworkError
	MediaError
	MuxError
	OtherError
)

func (t EventType) String() string {
	switch t {
	case ManifestParsed:
		return "manifest parsed"
	case NetworkError:
		return "network error"
	case MediaError:
		return "media error"
	case MuxError:
		return "mux error"
	default:
		return "other error"
	}
}

// Event is emitted by an Engine. Fatal errors end playback of the current source.
type Event struct {
	Type   EventType
	Fatal  bool
	Detail string
}

// IsError reports whether the event carries an error.
func (e Event) IsError() bool {
	return e.Type != ManifestParsed
}

// Observation is a liveness sample taken from the Sink.
type Observation struct {
	Position float64
	Paused   bool
	Ended    bool
	// ReadyState follows the media element scale: 0 nothing, 1 metadata,
	// 2 current frame, 3 future data, 4 enough data to play through.
	ReadyState int
}

// Sink is the output the engine renders into.
type Sink interface {
	Play(ctx context.Context) error
	Observe() (Observation, error)
}

// Titler is implemented by sinks that show the stream title.
type Titler interface {
	SetTitle(title string) error
}

// Fullscreener is implemented by sinks with a window that can go fullscreen.
type Fullscreener interface {
	ToggleFullscreen() error
}

// Engine is a playback handle for one source. Events are delivered from engine
// goroutines, never from inside a call to one of its methods.
type Engine interface {
	Supported() bool
	Subscribe(fn func(Event)) (unsubscribe func())
	LoadSource(url string) error
	Attach(sink Sink) error
	Destroy() error
}

// Factory builds a fresh Engine for each selection.
type Factory func() Engine

// ErrNotRunning is returned by Observe before the sink has started.
var ErrNotRunning = errors.New("player is not running")

// Available engine names for player.default.
const (
	NameMPV    = "mpv"
	NameIINA   = "iina"
	NameSystem = "system"
)

// Names lists the accepted values of player.default.
func Names() []string {
	return []string{NameMPV, NameIINA, NameSystem}
}

// New returns the sink and engine factory for the named player.
func New(name string) (Sink, Factory, error) {
	switch strings.ToLower(name) {
	case NameMPV:
		m := NewMPV()
		return m, func() Engine { return NewStream() }, nil
	case NameIINA:
		n := NewNative("IINA")
		return n, func() Engine { return n.handle() }, nil
	case NameSystem:
		n := NewNative("")
		return n, func() Engine { return n.handle() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown player %q, expected one of %s", name, strings.Join(Names(), ", "))
	}
}

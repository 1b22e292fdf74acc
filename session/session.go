// Package session owns the active stream selection and the engine playing it.
//
// Every Select issues a new Token. Work that finishes later (a metadata
// lookup, a play request, an engine event) carries the token it was started
// under and is dropped when a newer selection has been made since.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/player"
	"github.com/aceplay/aceplay/status"
)

// State of the playback state machine.
type State int

const (
	Idle State = iota
	Loading
	Playing
	Error
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Playing:
		return "playing"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// Token identifies one selection.
type Token uint64

// Indicator messages.
const (
	MsgReady       = "Ready to load a stream"
	MsgLoaded      = "Stream loaded."
	MsgPlaying     = "Playing"
	MsgPlayFailed  = "Error playing video"
	MsgUnsupported = "This player does not support HLS playback."
	MsgNoStream    = "No stream loaded."
)

// FailureMessage is the indicator text for a fatal engine error.
func FailureMessage(t player.EventType) string {
	switch t {
	case player.NetworkError:
		return "Network error: Ace doesn't have the stream segment"
	case player.MediaError:
		return "Media error: Stream not ready"
	case player.MuxError:
		return "Stream parsing error"
	default:
		return "Stream loading failed"
	}
}

// Navigator records the selected stream in the navigation state.
type Navigator interface {
	SetFragment(id string)
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	State     State
	Token     Token
	Selection string
	Title     string
	Source    string
	Health    status.Health
	// Failure is the engine error that put the session in Error.
	Failure player.EventType
}

// Config wires a Session to its collaborators.
type Config struct {
	Sink      player.Sink
	Engines   player.Factory
	SourceURL func(id string) string
	Navigator Navigator
}

// Session is safe for concurrent use; engine callbacks may arrive on any goroutine.
type Session struct {
	cfg Config

	mu          sync.Mutex
	snap        Snapshot
	engine      player.Engine
	unsubscribe func()
	lastPos     float64
	closed      bool
	changes     chan struct{}
}

// New returns an idle session showing the ready message.
func New(cfg Config) *Session {
	return &Session{
		cfg: cfg,
		snap: Snapshot{
			Health: status.Health{State: status.Neutral, Message: MsgReady},
		},
		changes: make(chan struct{}, 1),
	}
}

// Changes signals after every change. Signals coalesce; read Snapshot for the
// state. The channel is closed by Close.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// Sink returns the output the session plays into.
func (s *Session) Sink() player.Sink {
	return s.cfg.Sink
}

func (s *Session) notifyLocked() {
	if s.closed {
		return
	}
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func (s *Session) setHealthLocked(state status.State, msg string) {
	s.snap.Health = status.Health{State: state, Message: msg}
	s.notifyLocked()
}

func (s *Session) logger() *log.Entry {
	return log.With(log.Fields{"token": s.snap.Token, "stream": s.snap.Selection})
}

// Select makes id the active stream, replacing any engine handle, and returns its token.
func (s *Session) Select(id, title string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.snap.Token
	}

	s.snap.Token++
	tok := s.snap.Token
	s.teardownLocked()

	s.snap.Selection = id
	s.snap.Title = title
	s.snap.Source = s.cfg.SourceURL(id)
	s.snap.Failure = 0
	s.lastPos = 0

	if s.cfg.Navigator != nil {
		s.cfg.Navigator.SetFragment(id)
	}
	if titler, ok := s.cfg.Sink.(player.Titler); ok {
		if err := titler.SetTitle(title); err != nil {
			s.logger().Warnf("set title: %v", err)
		}
	}

	engine := s.cfg.Engines()
	if !engine.Supported() {
		s.snap.State = Error
		s.snap.Failure = player.OtherError
		s.logger().Warnf("engine not supported")
		s.setHealthLocked(status.Bad, MsgUnsupported)
		return tok
	}

	unsubscribe := engine.Subscribe(func(ev player.Event) { s.handle(tok, ev) })
	if err := s.startLocked(engine); err != nil {
		unsubscribe()
		_ = engine.Destroy()
		s.snap.State = Error
		s.snap.Failure = player.OtherError
		s.logger().Errorf("start engine: %v", err)
		s.setHealthLocked(status.Bad, FailureMessage(player.OtherError))
		return tok
	}

	s.engine, s.unsubscribe = engine, unsubscribe
	s.snap.State = Loading
	s.logger().Infof("loading %s", s.snap.Source)
	s.setHealthLocked(status.Neutral, MsgLoaded)
	return tok
}

func (s *Session) startLocked(engine player.Engine) error {
	if err := engine.LoadSource(s.snap.Source); err != nil {
		return fmt.Errorf("load source: %w", err)
	}
	if err := engine.Attach(s.cfg.Sink); err != nil {
		return fmt.Errorf("attach: %w", err)
	}
	return nil
}

func (s *Session) teardownLocked() {
	if s.engine == nil {
		return
	}

	s.unsubscribe()
	if err := s.engine.Destroy(); err != nil {
		s.logger().Warnf("destroy engine: %v", err)
	}
	s.engine, s.unsubscribe = nil, nil
}

func (s *Session) handle(tok Token, ev player.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok != s.snap.Token || s.closed {
		log.Debugf("dropping %s event of superseded selection %d", ev.Type, tok)
		return
	}

	switch {
	case ev.Type == player.ManifestParsed:
		s.logger().Infof("manifest parsed")
	case !ev.Fatal:
		s.logger().Warnf("non-fatal %s: %s", ev.Type, ev.Detail)
	default:
		s.logger().Errorf("fatal %s: %s", ev.Type, ev.Detail)
		s.snap.State = Error
		s.snap.Failure = ev.Type
		s.setHealthLocked(status.Bad, FailureMessage(ev.Type))
	}
}

// Current returns the token of the active selection.
func (s *Session) Current() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Token
}

// Play asks the sink to start playback. A rejection is reported only while tok is current.
func (s *Session) Play(ctx context.Context, tok Token) error {
	s.mu.Lock()
	if tok != s.snap.Token || s.engine == nil || s.closed {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := s.cfg.Sink.Play(ctx); err != nil {
		s.ReportFor(tok, status.Bad, MsgPlayFailed)
		return fmt.Errorf("play: %w", err)
	}
	return nil
}

// Poll samples the sink and reports Playing once the position advances.
// It never starts playback and never leaves Error.
func (s *Session) Poll() {
	s.mu.Lock()
	tok, state := s.snap.Token, s.snap.State
	s.mu.Unlock()

	if state != Loading && state != Playing {
		return
	}

	obs, err := s.cfg.Sink.Observe()
	if err != nil {
		log.Debugf("observe: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if tok != s.snap.Token || (s.snap.State != Loading && s.snap.State != Playing) {
		return
	}

	advancing := obs.Position > s.lastPos
	s.lastPos = obs.Position

	if !advancing || obs.Position <= 0 || obs.Paused || obs.Ended || obs.ReadyState <= 2 {
		return
	}
	if s.snap.State == Playing && s.snap.Health.Message == MsgPlaying {
		return
	}

	s.snap.State = Playing
	s.setHealthLocked(status.Good, MsgPlaying)
}

// SetTitle replaces the displayed title while tok is current.
func (s *Session) SetTitle(tok Token, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok != s.snap.Token || s.closed {
		return false
	}
	s.snap.Title = title
	if titler, ok := s.cfg.Sink.(player.Titler); ok {
		if err := titler.SetTitle(title); err != nil {
			s.logger().Warnf("set title: %v", err)
		}
	}
	s.notifyLocked()
	return true
}

// ReportFor writes health while tok is current.
func (s *Session) ReportFor(tok Token, state status.State, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tok != s.snap.Token || s.closed {
		return false
	}
	s.setHealthLocked(state, msg)
	return true
}

// Report writes health unconditionally; catalog failures use it.
func (s *Session) Report(state status.State, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.setHealthLocked(state, msg)
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Close destroys the engine handle and closes the sink if it can be closed.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.snap.Token++
	s.teardownLocked()
	s.snap.State = Idle
	s.closed = true
	close(s.changes)
	s.mu.Unlock()

	// outside the lock: closing mpv waits for its event loop, which may be
	// blocked on a callback into this session
	if closer, ok := s.cfg.Sink.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

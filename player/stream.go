package player

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/aceplay/aceplay/log"
)

// Stream is the mpv-backed adaptive streaming Engine. It loads its source
// into the attached MPV sink and turns mpv's file events into Events.
type Stream struct {
	mu        sync.Mutex
	sink      *MPV
	src       string
	entry     int64
	ticket    *ticket
	handlers  map[int]func(Event)
	next      int
	unwatch   func()
	ctx       context.Context
	cancel    context.CancelFunc
	destroyed bool

	lookPath func(string) (string, error)
}

// NewStream returns an unattached engine.
func NewStream() *Stream {
	ctx, cancel := context.WithCancel(context.Background())
	return &Stream{
		handlers: make(map[int]func(Event)),
		ticket:   &ticket{},
		ctx:      ctx,
		cancel:   cancel,
		lookPath: exec.LookPath,
	}
}

// Supported reports whether mpv is installed.
func (s *Stream) Supported() bool {
	_, err := s.lookPath("mpv")
	return err == nil
}

func (s *Stream) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.handlers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, id)
	}
}

// LoadSource sets the source. When already attached the load starts at once.
func (s *Stream) LoadSource(url string) error {
	if _, err := sanitizeMediaTarget(url); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return errors.New("engine destroyed")
	}
	s.src = url
	if s.sink != nil {
		s.loadLocked()
	}
	return nil
}

// Attach binds the engine to an MPV sink and loads the pending source.
func (s *Stream) Attach(sink Sink) error {
	m, ok := sink.(*MPV)
	if !ok {
		return fmt.Errorf("stream engine needs an mpv sink, got %T", sink)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.destroyed {
		return errors.New("engine destroyed")
	}
	if s.sink != nil {
		return errors.New("engine already attached")
	}

	s.sink = m
	s.unwatch = m.Subscribe(s.onMPVEvent)
	if s.src != "" {
		s.loadLocked()
	}
	return nil
}

// loadLocked starts mpv if needed and loads the source in the background,
// so attaching never waits for the window to appear. The load is skipped
// once the engine is destroyed.
func (s *Stream) loadLocked() {
	src, sink, ctx, t := s.src, s.sink, s.ctx, s.ticket
	go func() {
		// the window is shared by later engines, so its startup is not tied to ctx
		if err := sink.Start(context.Background()); err != nil {
			if ctx.Err() == nil {
				s.emit(Event{Type: OtherError, Fatal: true, Detail: err.Error()})
			}
			return
		}

		entry, err := sink.load(src, t)
		switch {
		case errors.Is(err, errCancelled):
			return
		case err != nil:
			s.emit(Event{Type: NetworkError, Fatal: true, Detail: err.Error()})
			return
		}

		s.mu.Lock()
		s.entry = entry
		s.mu.Unlock()
	}()
}

// Destroy detaches every listener and cancels pending loads before it
// returns; nothing is emitted afterwards. Unloading the file from mpv
// happens in the background and is skipped when a newer engine has loaded.
func (s *Stream) Destroy() error {
	s.cancel()
	s.ticket.cancelled.Store(true)

	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return nil
	}
	s.destroyed = true
	s.handlers = make(map[int]func(Event))
	unwatch, sink := s.unwatch, s.sink
	s.mu.Unlock()

	if unwatch != nil {
		unwatch()
	}
	if sink != nil {
		sink.release(s.ticket)
	}
	return nil
}

func (s *Stream) emit(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.handlers))
	for _, fn := range s.handlers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (s *Stream) onMPVEvent(name string, data any) {
	ev, ok := translate(name, data)
	if !ok {
		return
	}

	s.mu.Lock()
	entry := s.entry
	s.mu.Unlock()

	if raw, isMap := data.(map[string]any); isMap && entry != 0 {
		if id, has := raw["playlist_entry_id"].(float64); has && int64(id) != entry {
			return
		}
	}
	s.emit(ev)
}

// translate maps an mpv event onto an Event.
func translate(name string, data any) (Event, bool) {
	switch name {
	case "file-loaded":
		return Event{Type: ManifestParsed}, true
	case "end-file":
		raw, _ := data.(map[string]any)
		if reason, _ := raw["reason"].(string); reason != "error" {
			return Event{}, false
		}
		detail, _ := raw["file_error"].(string)
		return Event{Type: classifyFileError(detail), Fatal: true, Detail: detail}, true
	default:
		return Event{}, false
	}
}

func classifyFileError(detail string) EventType {
	d := strings.ToLower(detail)
	switch {
	case strings.Contains(d, "loading failed"), strings.Contains(d, "network"), strings.Contains(d, "http"):
		return NetworkError
	case strings.Contains(d, "unrecognized file format"), strings.Contains(d, "demux"):
		return MuxError
	case strings.Contains(d, "no audio or video"), strings.Contains(d, "output initialization"), strings.Contains(d, "decod"):
		return MediaError
	default:
		log.Debugf("unclassified mpv file error %q", detail)
		return OtherError
	}
}

package player

import (
	"context"
	"errors"
	"sync"

	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/open"
)

// ErrUnobservable is returned by sinks that cannot report playback progress.
var ErrUnobservable = errors.New("player does not report playback progress")

// Native hands the source to an external application (IINA, or the system
// default handler when app is empty). It cannot be observed or controlled
// after launch, so the liveness poll never reports it as playing.
type Native struct {
	app   string
	start func(input, app string) error
	avail func(app string) bool
}

// NewNative returns a sink that opens sources with app.
func NewNative(app string) *Native {
	return &Native{app: app, start: open.StartWith, avail: open.Available}
}

// Play is accepted; the external application starts playing on its own.
func (n *Native) Play(context.Context) error {
	return nil
}

func (n *Native) Observe() (Observation, error) {
	return Observation{}, ErrUnobservable
}

func (n *Native) handle() *nativeHandle {
	return &nativeHandle{native: n, handlers: make(map[int]func(Event))}
}

type nativeHandle struct {
	native *Native

	mu        sync.Mutex
	src       string
	attached  bool
	destroyed bool
	handlers  map[int]func(Event)
	next      int
}

func (h *nativeHandle) Supported() bool {
	return h.native.avail(h.native.app)
}

func (h *nativeHandle) Subscribe(fn func(Event)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	h.handlers[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.handlers, id)
	}
}

func (h *nativeHandle) LoadSource(url string) error {
	if _, err := sanitizeMediaTarget(url); err != nil {
		return err
	}

	h.mu.Lock()
	h.src = url
	launch := h.attached && !h.destroyed
	h.mu.Unlock()

	if launch {
		go h.launch(url)
	}
	return nil
}

func (h *nativeHandle) Attach(sink Sink) error {
	if sink != h.native {
		return errors.New("native engine must be attached to its own sink")
	}

	h.mu.Lock()
	if h.destroyed {
		h.mu.Unlock()
		return errors.New("engine destroyed")
	}
	h.attached = true
	src := h.src
	h.mu.Unlock()

	if src != "" {
		go h.launch(src)
	}
	return nil
}

func (h *nativeHandle) launch(src string) {
	if err := h.native.start(src, h.native.app); err != nil {
		log.Errorf("open %s: %v", src, err)
		h.emit(Event{Type: OtherError, Fatal: true, Detail: err.Error()})
		return
	}
	h.emit(Event{Type: ManifestParsed})
}

func (h *nativeHandle) emit(ev Event) {
	h.mu.Lock()
	fns := make([]func(Event), 0, len(h.handlers))
	for _, fn := range h.handlers {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func (h *nativeHandle) Destroy() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.destroyed = true
	h.handlers = make(map[int]func(Event))
	return nil
}

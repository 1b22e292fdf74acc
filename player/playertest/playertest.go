// Package playertest provides in-memory player.Engine and player.Sink fakes.
package playertest

import (
	"context"
	"sync"

	"github.com/aceplay/aceplay/player"
)

// Sink is a controllable player.Sink.
type Sink struct {
	mu      sync.Mutex
	obs     player.Observation
	obsErr  error
	playErr error
	plays   int
	title   string
}

func (s *Sink) Play(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plays++
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.playErr
}

func (s *Sink) Observe() (player.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.obs, s.obsErr
}

func (s *Sink) SetTitle(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	return nil
}

// SetObservation sets what the next Observe returns.
func (s *Sink) SetObservation(obs player.Observation, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.obs, s.obsErr = obs, err
}

// RejectPlay makes Play fail with err.
func (s *Sink) RejectPlay(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playErr = err
}

// Plays counts Play calls.
func (s *Sink) Plays() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.plays
}

// Title is the last title set.
func (s *Sink) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// Engine is a controllable player.Engine.
type Engine struct {
	Unsupported bool

	mu        sync.Mutex
	src       string
	sink      player.Sink
	handlers  map[int]func(player.Event)
	next      int
	destroyed bool
}

func (e *Engine) Supported() bool {
	return !e.Unsupported
}

func (e *Engine) Subscribe(fn func(player.Event)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handlers == nil {
		e.handlers = make(map[int]func(player.Event))
	}
	id := e.next
	e.next++
	e.handlers[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.handlers, id)
	}
}

func (e *Engine) LoadSource(url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.src = url
	return nil
}

func (e *Engine) Attach(sink player.Sink) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sink = sink
	return nil
}

func (e *Engine) Destroy() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.destroyed = true
	e.handlers = nil
	return nil
}

// Emit delivers ev to the current subscribers, as an engine goroutine would.
func (e *Engine) Emit(ev player.Event) {
	e.mu.Lock()
	fns := make([]func(player.Event), 0, len(e.handlers))
	for _, fn := range e.handlers {
		fns = append(fns, fn)
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Source is the loaded source URL.
func (e *Engine) Source() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.src
}

// Attached reports whether the engine was attached to a sink.
func (e *Engine) Attached() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sink != nil
}

// Destroyed reports whether Destroy was called.
func (e *Engine) Destroyed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.destroyed
}

// Listeners counts live subscriptions.
func (e *Engine) Listeners() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

// Factory records every engine it builds.
type Factory struct {
	Unsupported bool

	mu      sync.Mutex
	engines []*Engine
}

// New is a player.Factory.
func (f *Factory) New() player.Engine {
	f.mu.Lock()
	defer f.mu.Unlock()
	e := &Engine{Unsupported: f.Unsupported}
	f.engines = append(f.engines, e)
	return e
}

// Engines returns every engine built so far.
func (f *Factory) Engines() []*Engine {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Engine(nil), f.engines...)
}

// Last returns the most recent engine, or nil.
func (f *Factory) Last() *Engine {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.engines) == 0 {
		return nil
	}
	return f.engines[len(f.engines)-1]
}

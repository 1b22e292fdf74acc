// Package controller ties the catalog, the listing, the navigation state and
// the playback session together and runs their timers.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/aceplay/aceplay/catalog"
	"github.com/aceplay/aceplay/listing"
	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/nav"
	"github.com/aceplay/aceplay/session"
	"github.com/aceplay/aceplay/status"
)

// PollInterval is the liveness poll period.
const PollInterval = time.Second

// playTimeout bounds a play request, which may have to wait for the player window.
const playTimeout = 10 * time.Second

// Catalog is the part of catalog.Client the controller needs.
type Catalog interface {
	FetchCatalog(ctx context.Context) (catalog.Catalog, error)
	FetchStream(ctx context.Context, id string) (catalog.StreamInfo, error)
}

// Options tune the controller.
type Options struct {
	// Refresh is the catalog refresh period; 0 fetches once.
	Refresh time.Duration
	// Autoplay requests playback right after a stream is attached.
	Autoplay bool
}

// Controller dispatches user intents, navigation changes and timer ticks.
type Controller struct {
	client  Catalog
	session *session.Session
	listing *listing.View
	nav     *nav.Navigator
	opts    Options

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex // guards closed against wg.Add
	closed bool
	wg     sync.WaitGroup
}

// New wires the components and routes listing activations to the controller.
func New(client Catalog, sess *session.Session, view *listing.View, navigator *nav.Navigator, opts Options) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		client:  client,
		session: sess,
		listing: view,
		nav:     navigator,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
	}
	view.OnSelect(c)
	return c
}

// Session returns the playback session the controller drives.
func (c *Controller) Session() *session.Session {
	return c.session
}

// Listing returns the catalog view rendered on every refresh.
func (c *Controller) Listing() *listing.View {
	return c.listing
}

// Navigator returns the navigation state the selection is written to.
func (c *Controller) Navigator() *nav.Navigator {
	return c.nav
}

// Options returns the options the controller was built with.
func (c *Controller) Options() Options {
	return c.opts
}

// Start opens the stream in the navigation state, if any, and fetches the catalog.
func (c *Controller) Start(ctx context.Context) error {
	if id := c.nav.Fragment(); id != "" {
		c.Open(id)
	} else {
		c.session.Report(status.Neutral, session.MsgReady)
	}
	return c.Refresh(ctx)
}

// Open loads a stream by id. The raw id is shown until the title lookup
// returns. An empty id reports that nothing is loaded.
func (c *Controller) Open(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" {
		c.session.Report(status.Bad, session.MsgNoStream)
		return false
	}

	tok := c.session.Select(id, id)
	c.spawn(func(ctx context.Context) { c.resolve(ctx, tok, id) })
	c.autoplay(tok)
	return true
}

// Submit opens whatever the user typed: a link, a #fragment or an id.
func (c *Controller) Submit(raw string) bool {
	loc, err := nav.Parse(raw, c.nav.Location().Base)
	if err != nil {
		log.Warnf("submit %q: %v", raw, err)
		c.session.Report(status.Bad, "Invalid stream link")
		return false
	}
	if loc.Base != c.nav.Location().Base {
		log.Warnf("link points at %s, streams are loaded from %s", loc.Base, c.nav.Location().Base)
	}
	return c.Open(loc.Fragment)
}

// SelectStream loads a stream picked from the listing.
func (c *Controller) SelectStream(id, title string) {
	c.autoplay(c.session.Select(id, title))
}

// Choose activates row i of the listing.
func (c *Controller) Choose(i int) error {
	return c.listing.Activate(i)
}

// Navigated handles a navigation change. Updates that were overtaken by a
// later change, and changes that point at the active selection (the
// session's own writes), are ignored.
func (c *Controller) Navigated(loc nav.Location) bool {
	if loc.Fragment == "" || loc != c.nav.Location() {
		return false
	}
	snap := c.session.Snapshot()
	if snap.Selection == loc.Fragment && snap.Token != 0 {
		return false
	}
	return c.Open(loc.Fragment)
}

// Refresh fetches the catalog and renders it.
func (c *Controller) Refresh(ctx context.Context) error {
	cat, err := c.client.FetchCatalog(ctx)
	c.listing.Render(cat, err)
	if err != nil {
		log.Warnf("refresh catalog: %v", err)
	}
	return err
}

// Poll runs one liveness observation.
func (c *Controller) Poll() {
	c.session.Poll()
}

// Wait blocks until every pending lookup and play request has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels pending work and closes the session. Work requested
// afterwards is not started.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	return c.session.Close()
}

func (c *Controller) spawn(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn(c.ctx)
	}()
}

func (c *Controller) autoplay(tok session.Token) {
	if !c.opts.Autoplay {
		return
	}
	c.spawn(func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, playTimeout)
		defer cancel()
		if err := c.session.Play(ctx, tok); err != nil {
			log.Warnf("selection %d: %v", tok, err)
		}
	})
}

func (c *Controller) resolve(ctx context.Context, tok session.Token, id string) {
	info, err := c.client.FetchStream(ctx, id)
	if err != nil {
		log.Warnf("lookup %s: %v", id, err)
		c.session.ReportFor(tok, status.Bad, LookupMessage(err))
		return
	}
	if info.Title != "" {
		c.session.SetTitle(tok, info.Title)
	}
}

// LookupMessage is the indicator text for a failed title lookup.
func LookupMessage(err error) string {
	var f *catalog.Failure
	if !errors.As(err, &f) {
		return "Stream info unavailable"
	}
	switch f.Kind {
	case catalog.Timeout:
		return "Stream info unavailable: Fetch Timeout"
	case catalog.ServerError:
		return "Stream info unavailable: HTTP " + f.Reason()
	default:
		return "Stream info unavailable: " + f.Reason()
	}
}

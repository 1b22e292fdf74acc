package nav

import (
	"sync"

	"github.com/aceplay/aceplay/filesystem"
	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/where"
	"github.com/metafates/gache"
)

// Store persists the last location between runs.
type Store interface {
	Get() (*Location, bool, error)
	Set(*Location) error
}

// NewStore returns the gache-backed store under where.Location.
func NewStore() Store {
	return gache.New[*Location](&gache.Options{
		Path:       where.Location(),
		FileSystem: &filesystem.GacheFs{},
	})
}

// Navigator owns the current Location and notifies subscribers of every change.
// Setting the fragment never reloads anything.
type Navigator struct {
	mu    sync.Mutex
	loc   Location
	subs  map[int]chan Location
	next  int
	store Store
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithStore remembers every change in s and restores the remembered
// fragment at construction when it was saved for the same base.
func WithStore(s Store) Option {
	return func(n *Navigator) { n.store = s }
}

// New returns a navigator at base with no fragment.
func New(base string, opts ...Option) *Navigator {
	n := &Navigator{
		loc:  Location{Base: base},
		subs: make(map[int]chan Location),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.restore()
	return n
}

func (n *Navigator) restore() {
	if n.store == nil {
		return
	}

	saved, expired, err := n.store.Get()
	if err != nil {
		log.Warnf("restore location: %v", err)
		return
	}
	if expired || saved == nil || saved.Base != n.loc.Base {
		return
	}
	n.loc.Fragment = saved.Fragment
}

// Location returns the current location.
func (n *Navigator) Location() Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loc
}

// Fragment returns the selected stream id, empty when none.
func (n *Navigator) Fragment() string {
	return n.Location().Fragment
}

// SetFragment points the location at id.
func (n *Navigator) SetFragment(id string) {
	n.mu.Lock()
	loc := n.loc
	n.mu.Unlock()

	loc.Fragment = id
	n.Navigate(loc)
}

// Navigate replaces the location, e.g. after a link was pasted.
func (n *Navigator) Navigate(loc Location) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if loc == n.loc {
		return
	}
	n.loc = loc

	if n.store != nil {
		if err := n.store.Set(&loc); err != nil {
			log.Warnf("remember location: %v", err)
		}
	}

	for _, ch := range n.subs {
		select {
		case ch <- loc:
		default:
			// subscriber is behind; replace its pending value with the newest
			select {
			case <-ch:
			default:
			}
			ch <- loc
		}
	}
}

// Subscribe returns a channel receiving the latest location after each change.
// A slow reader only ever sees the newest value. Call cancel to stop.
func (n *Navigator) Subscribe() (updates <-chan Location, cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan Location, 1)
	id := n.next
	n.next++
	n.subs[id] = ch

	return ch, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if _, ok := n.subs[id]; ok {
			delete(n.subs, id)
			close(ch)
		}
	}
}

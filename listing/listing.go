// Package listing keeps the rows of the last successfully fetched catalog.
package listing

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aceplay/aceplay/catalog"
	"github.com/aceplay/aceplay/status"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Row is one rendered stream.
type Row struct {
	catalog.Stream
	Class catalog.Quality
	Label string
}

// FilterValue is the text matched by Filter.
func (r Row) FilterValue() string {
	return r.Title + " " + r.Source
}

// Selector receives row activations.
type Selector interface {
	SelectStream(id, title string)
}

// View is the rendered catalog. It is safe for concurrent use.
type View struct {
	mu       sync.RWMutex
	rows     []Row
	rendered time.Time
	heading  status.Flash

	reporter status.Reporter
	selector Selector
	now      func() time.Time
}

// New returns an empty view that reports fetch failures to reporter.
func New(reporter status.Reporter) *View {
	return &View{reporter: reporter, now: time.Now}
}

// OnSelect routes Activate to s.
func (v *View) OnSelect(s Selector) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selector = s
}

// Render replaces the rows with cat, or on err keeps them and reports the failure.
func (v *View) Render(cat catalog.Catalog, err error) {
	if err != nil {
		v.reporter.Report(status.Bad, FailureMessage(err))
		return
	}

	rows := lo.Map(catalog.Sort(cat), func(s catalog.Stream, _ int) Row {
		return Row{Stream: s, Class: catalog.Classify(s.Quality), Label: catalog.Label(s.Quality)}
	})

	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = rows
	v.rendered = v.now()
	v.heading.Start(v.rendered, status.FlashDuration)
}

// FailureMessage is the indicator text for a failed catalog fetch.
func FailureMessage(err error) string {
	var f *catalog.Failure
	if errors.As(err, &f) {
		return f.Message()
	}
	return "API FAILURE: " + err.Error()
}

// Rows returns a copy of the current rows in display order.
func (v *View) Rows() []Row {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]Row(nil), v.rows...)
}

func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.rows)
}

// Rendered is the time of the last successful render; zero if none.
func (v *View) Rendered() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.rendered
}

// HeadingFlashing reports whether the heading highlight is still on.
func (v *View) HeadingFlashing(now time.Time) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.heading.Active(now)
}

// Find looks a row up by stream id.
func (v *View) Find(id string) (Row, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return lo.Find(v.rows, func(r Row) bool { return r.ID == id })
}

// Filter returns the rows whose title or source fuzzy-match query, in display order.
func (v *View) Filter(query string) []Row {
	rows := v.Rows()
	if query == "" {
		return rows
	}
	return lo.Filter(rows, func(r Row, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, r.FilterValue())
	})
}

// Activate selects the stream in row i.
func (v *View) Activate(i int) error {
	v.mu.RLock()
	if i < 0 || i >= len(v.rows) {
		n := len(v.rows)
		v.mu.RUnlock()
		return fmt.Errorf("row %d out of range [0,%d)", i, n)
	}
	row, sel := v.rows[i], v.selector
	v.mu.RUnlock()

	if sel == nil {
		return errors.New("no selector attached")
	}
	sel.SelectStream(row.ID, row.Title)
	return nil
}

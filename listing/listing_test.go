package listing

import (
	"testing"
	"time"

	"github.com/aceplay/aceplay/catalog"
	"github.com/aceplay/aceplay/status"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

type recorder struct {
	reports []status.Health
}

func (r *recorder) Report(state status.State, message string) {
	r.reports = append(r.reports, status.Health{State: state, Message: message})
}

type selection struct {
	id, title string
}

type selector struct {
	got []selection
}

func (s *selector) SelectStream(id, title string) {
	s.got = append(s.got, selection{id, title})
}

var fixture = catalog.Catalog{
	{ID: "low", Title: "Low Channel", Quality: 10, Source: "alpha"},
	{ID: "unk", Title: "Mystery", Quality: -1, Source: "beta"},
	{ID: "top", Title: "Demo Channel", Quality: 95, Source: "alpha"},
	{ID: "mid", Title: "Sports One", Quality: 50, Source: "gamma"},
}

func TestRender(t *testing.T) {
	Convey("Given an empty view", t, func() {
		rec := &recorder{}
		v := New(rec)
		now := time.Unix(1_700_000_000, 0)
		v.now = func() time.Time { return now }

		Convey("Rendering a catalog sorts and classifies the rows", func() {
			v.Render(fixture, nil)

			rows := v.Rows()
			So(lo.Map(rows, func(r Row, _ int) string { return r.ID }), ShouldResemble, []string{"top", "mid", "low", "unk"})
			So(rows[0].Class, ShouldEqual, catalog.QualityGood)
			So(rows[3].Label, ShouldEqual, "?")
			So(rows[3].Class, ShouldEqual, catalog.QualityUnknown)
			So(rec.reports, ShouldBeEmpty)

			Convey("and flashes the heading", func() {
				So(v.HeadingFlashing(now), ShouldBeTrue)
				So(v.HeadingFlashing(now.Add(status.FlashDuration)), ShouldBeFalse)
			})

			Convey("Rendering the same catalog again yields the same rows", func() {
				v.Render(fixture, nil)
				So(v.Rows(), ShouldResemble, rows)
			})

			Convey("A failure keeps the rows and reports bad", func() {
				v.Render(nil, &catalog.Failure{Kind: catalog.ServerError, Code: 500})
				So(v.Rows(), ShouldResemble, rows)
				So(rec.reports, ShouldHaveLength, 1)
				So(rec.reports[0].State, ShouldEqual, status.Bad)
				So(rec.reports[0].Message, ShouldContainSubstring, "500")
			})

			Convey("A timeout reports the timeout text", func() {
				v.Render(nil, &catalog.Failure{Kind: catalog.Timeout})
				So(rec.reports[0].Message, ShouldEqual, "API FAILURE: Fetch Timeout")
			})
		})

		Convey("A failure before any success leaves the view empty", func() {
			v.Render(nil, &catalog.Failure{Kind: catalog.NetworkError, Detail: "connection refused"})
			So(v.Len(), ShouldEqual, 0)
			So(v.Rendered().IsZero(), ShouldBeTrue)
			So(rec.reports[0].Message, ShouldEqual, "API FAILURE: connection refused")
		})
	})
}

func TestLookup(t *testing.T) {
	Convey("Given a rendered view", t, func() {
		v := New(&recorder{})
		v.Render(fixture, nil)

		Convey("Find locates a row by id", func() {
			row, ok := v.Find("mid")
			So(ok, ShouldBeTrue)
			So(row.Title, ShouldEqual, "Sports One")

			_, ok = v.Find("missing")
			So(ok, ShouldBeFalse)
		})

		Convey("Filter matches title and source", func() {
			So(lo.Map(v.Filter("demo"), func(r Row, _ int) string { return r.ID }), ShouldResemble, []string{"top"})
			So(lo.Map(v.Filter("alpha"), func(r Row, _ int) string { return r.ID }), ShouldResemble, []string{"top", "low"})
			So(v.Filter(""), ShouldHaveLength, 4)
		})

		Convey("Activate hands the row to the selector", func() {
			sel := &selector{}
			v.OnSelect(sel)

			So(v.Activate(0), ShouldBeNil)
			So(sel.got, ShouldResemble, []selection{{"top", "Demo Channel"}})
			So(v.Activate(9), ShouldNotBeNil)
		})

		Convey("Activate without a selector fails", func() {
			So(v.Activate(0), ShouldNotBeNil)
		})
	})
}

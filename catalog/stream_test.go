package catalog

import (
	"testing"

	"github.com/aceplay/aceplay/status"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestClassify(t *testing.T) {
	Convey("Quality thresholds", t, func() {
		cases := map[int]Quality{
			-1:  QualityUnknown,
			0:   QualityBad,
			19:  QualityBad,
			20:  QualityNeutral,
			80:  QualityNeutral,
			81:  QualityGood,
			100: QualityGood,
		}
		for score, want := range cases {
			So(Classify(score), ShouldEqual, want)
		}

		Convey("Unknown is labelled ? and rendered neutral", func() {
			So(Label(-1), ShouldEqual, "?")
			So(Label(42), ShouldEqual, "42")
			So(QualityUnknown.State(), ShouldEqual, status.Neutral)
			So(QualityGood.State(), ShouldEqual, status.Good)
			So(QualityBad.State(), ShouldEqual, status.Bad)
		})
	})
}

func TestSort(t *testing.T) {
	Convey("Given a catalog in server order", t, func() {
		cat := Catalog{
			{ID: "a", Quality: 50},
			{ID: "b", Quality: -1},
			{ID: "c", Quality: 90},
			{ID: "d", Quality: 50},
			{ID: "e", Quality: 10},
		}

		sorted := Sort(cat)
		ids := lo.Map(sorted, func(s Stream, _ int) string { return s.ID })

		Convey("It orders by descending quality with unknown last and ties stable", func() {
			So(ids, ShouldResemble, []string{"c", "a", "d", "e", "b"})
		})

		Convey("It leaves the input untouched", func() {
			So(cat[0].ID, ShouldEqual, "a")
		})

		Convey("It is deterministic", func() {
			So(Sort(cat), ShouldResemble, sorted)
			So(Sort(sorted), ShouldResemble, sorted)
		})
	})
}

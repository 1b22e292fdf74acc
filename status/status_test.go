package status

import (
	"testing"
	"time"

	"github.com/aceplay/aceplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestIndicator(t *testing.T) {
	Convey("Given a fresh indicator", t, func() {
		viper.Set(key.IconsVariant, "plain")
		ind := NewIndicator()
		now := time.Unix(1_700_000_000, 0)

		Convey("It starts neutral and renders nothing", func() {
			So(ind.Health(), ShouldResemble, Health{})
			So(ind.View(now), ShouldBeEmpty)
		})

		Convey("A new value is stored and flashes for the flash window", func() {
			changed := ind.Update(Health{State: Bad, Message: "API FAILURE 500"}, now)
			So(changed, ShouldBeTrue)
			So(ind.Health().State, ShouldEqual, Bad)
			So(ind.Highlighted(now.Add(FlashDuration/2)), ShouldBeTrue)
			So(ind.Highlighted(now.Add(FlashDuration)), ShouldBeFalse)
			So(ind.View(now), ShouldContainSubstring, "API FAILURE 500")
		})

		Convey("Writing the same value again does not flash", func() {
			h := Health{State: Good, Message: "Playing"}
			ind.Update(h, now)
			later := now.Add(time.Second)
			So(ind.Update(h, later), ShouldBeFalse)
			So(ind.Highlighted(later), ShouldBeFalse)
		})

		Convey("The last write wins", func() {
			ind.Update(Health{State: Neutral, Message: "Stream loaded."}, now)
			ind.Update(Health{State: Good, Message: "Playing"}, now)
			So(ind.Health(), ShouldResemble, Health{State: Good, Message: "Playing"})
		})

		Convey("Flashing can be turned off", func() {
			ind.Flashing = false
			ind.Update(Health{State: Good, Message: "Playing"}, now)
			So(ind.Highlighted(now), ShouldBeFalse)
		})
	})
}

func TestLine(t *testing.T) {
	Convey("Line prefixes the state icon", t, func() {
		viper.Set(key.IconsVariant, "plain")
		So(Line(Health{State: Good, Message: "Playing"}), ShouldEqual, "+ Playing")
		So(Line(Health{State: Bad, Message: "x"}), ShouldEqual, "- x")
		So(State(Neutral).String(), ShouldEqual, "neutral")
	})
}

package cmd

import (
	"testing"

	"github.com/aceplay/aceplay/config"
	"github.com/aceplay/aceplay/key"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseValue(t *testing.T) {
	Convey("Given the registered defaults", t, func() {
		Convey("A bool field takes true or false", func() {
			v, err := parseValue(config.Default[key.PlayerAutoplay], []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			_, err = parseValue(config.Default[key.PlayerAutoplay], []string{"sometimes"})
			So(err, ShouldNotBeNil)
		})

		Convey("A string field keeps the first value", func() {
			v, err := parseValue(config.Default[key.Player], []string{"iina", "ignored"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "iina")
		})

		Convey("A missing value is rejected", func() {
			_, err := parseValue(config.Default[key.Player], nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestValidateValue(t *testing.T) {
	Convey("Given values for checked keys", t, func() {
		for _, tc := range []struct {
			name  string
			value any
			ok    bool
		}{
			{key.ServerAddress, "http://127.0.0.1:6878", true},
			{key.ServerAddress, "127.0.0.1", false},
			{key.CatalogSchema, "grouped", true},
			{key.CatalogSchema, "nested", false},
			{key.CatalogRefreshInterval, "0", true},
			{key.CatalogRefreshInterval, "-1m", false},
			{key.CatalogRefreshInterval, "often", false},
			{key.Player, "MPV", true},
			{key.Player, "vlc", false},
			{key.IconsVariant, "nerd", true},
			{key.IconsVariant, "ascii", false},
			{key.PlayerAutoplay, false, true},
		} {
			err := validateValue(tc.name, tc.value)
			if tc.ok {
				So(err, ShouldBeNil)
			} else {
				So(err, ShouldNotBeNil)
			}
		}
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("A mistyped key suggests the closest one", t, func() {
		So(errUnknownKey("player.defualt").Error(), ShouldContainSubstring, key.Player)
	})
}

package version

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Given two versions", t, func() {
		for _, tc := range []struct {
			a, b string
			want int
		}{
			{"0.3.0", "0.3.0", 0},
			{"v0.4.0", "0.3.9", 1},
			{"0.3.1", "0.10.0", -1},
			{"1.0.0", "0.99.99", 1},
			{"0.4", "0.4.0", 0},
			{"v0.5.0-rc1", "0.4.9", 1},
		} {
			got, err := Compare(tc.a, tc.b)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, tc.want)
		}

		_, err := Compare("latest", "0.3.0")
		So(err, ShouldNotBeNil)
		_, err = Compare("0.3.0", "1.2.3.4")
		So(err, ShouldNotBeNil)
	})
}

func TestFetch(t *testing.T) {
	Convey("Given a releases endpoint", t, func() {
		tag := "v0.4.1"
		r := chi.NewRouter()
		r.Get("/releases/latest", func(w http.ResponseWriter, r *http.Request) {
			if tag == "" {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`{"tag_name":"` + tag + `"}`))
		})
		srv := httptest.NewServer(r)
		defer srv.Close()

		Convey("Then the tag is returned without its v prefix", func() {
			ver, err := fetch(context.Background(), srv.Client(), srv.URL+"/releases/latest")
			So(err, ShouldBeNil)
			So(ver, ShouldEqual, "0.4.1")
		})

		Convey("Then a missing release is an error", func() {
			tag = ""
			_, err := fetch(context.Background(), srv.Client(), srv.URL+"/releases/latest")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNotify(t *testing.T) {
	Convey("Given the running version", t, func() {
		var buf bytes.Buffer

		Convey("When a newer release exists", func() {
			notify(&buf, "0.4.0", "0.3.0")

			Convey("Then the notice names it", func() {
				So(buf.String(), ShouldContainSubstring, "0.4.0")
				So(buf.String(), ShouldContainSubstring, "releases/tag/v0.4.0")
			})
		})

		Convey("When the release is not newer", func() {
			notify(&buf, "0.3.0", "0.3.0")

			Convey("Then nothing is written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})
}

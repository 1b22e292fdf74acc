package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aceplay/aceplay/catalog"
	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

const base = "http://127.0.0.1:5100"

type memCatalog struct {
	err error
}

func (m memCatalog) FetchCatalog(context.Context) (catalog.Catalog, error) {
	if m.err != nil {
		return nil, m.err
	}
	return catalog.Catalog{
		{ID: "a1", Title: "Arena Sports", Quality: 55, Source: "siteA"},
		{ID: "b2", Title: "Boxing Live", Quality: 95, Source: "siteB"},
		{ID: "c3", Title: "Cricket HD", Quality: 5, Source: "siteA"},
		{ID: "d4", Title: "Darts", Quality: -1, Source: "siteC"},
	}, nil
}

func (m memCatalog) FetchStream(_ context.Context, id string) (catalog.StreamInfo, error) {
	if m.err != nil {
		return catalog.StreamInfo{}, m.err
	}
	return catalog.StreamInfo{ID: id, Title: "Stream " + id}, nil
}

func (memCatalog) Base() string {
	return base
}

func (memCatalog) SourceURL(id string) string {
	return base + "/hls/" + id
}

func run(options *Options) (string, error) {
	var buf bytes.Buffer
	options.Out = &buf
	if options.Client == nil {
		options.Client = memCatalog{}
	}
	err := Run(context.Background(), options)
	return buf.String(), err
}

func TestRun(t *testing.T) {
	Convey("Given a catalog of four streams", t, func() {
		Convey("When listed as text", func() {
			out, err := run(&Options{})

			Convey("Then every HLS URL is printed best first", func() {
				So(err, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(out), "\n")
				So(lines, ShouldResemble, []string{
					base + "/hls/b2",
					base + "/hls/a1",
					base + "/hls/c3",
					base + "/hls/d4",
				})
			})
		})

		Convey("When listed as links with a query", func() {
			out, err := run(&Options{Links: true, Query: "sitea"})

			Convey("Then only matching page links are printed", func() {
				So(err, ShouldBeNil)
				So(strings.TrimSpace(out), ShouldEqual, base+"/stream#a1\n"+base+"/stream#c3")
			})
		})

		Convey("When listed as JSON with a quality filter", func() {
			filter := lo.Must(ParseQualityFilter("good"))
			out, err := run(&Options{Json: true, Quality: mo.Some(filter)})

			Convey("Then the output holds the good streams", func() {
				So(err, ShouldBeNil)
				var output Output
				So(json.Unmarshal([]byte(out), &output), ShouldBeNil)
				So(output.Server, ShouldEqual, base)
				So(output.Result, ShouldHaveLength, 1)
				So(output.Result[0].ID, ShouldEqual, "b2")
				So(output.Result[0].Class, ShouldEqual, "good")
				So(output.Result[0].Link, ShouldEqual, base+"/stream#b2")
			})
		})

		Convey("When a picker narrows the list", func() {
			picker := lo.Must(ParseStreamPicker("last", ""))
			out, err := run(&Options{Picker: mo.Some(picker)})

			Convey("Then one stream is printed", func() {
				So(err, ShouldBeNil)
				So(strings.TrimSpace(out), ShouldEqual, base+"/hls/d4")
			})
		})

		Convey("When nothing matches in JSON mode", func() {
			out, err := run(&Options{Json: true, Query: "zzzz"})

			Convey("Then the result is an empty list", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, `"result":[]`)
			})
		})

		Convey("When the server fails", func() {
			_, err := run(&Options{Client: memCatalog{err: &catalog.Failure{Kind: catalog.ServerError, Code: 500}}})

			Convey("Then the failure message is returned", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "API FAILURE 500")
				So(errors.Is(err, catalog.ErrServer), ShouldBeTrue)
			})
		})
	})
}

func TestDescribe(t *testing.T) {
	Convey("Given a stream lookup", t, func() {
		var buf bytes.Buffer

		Convey("When printed as text", func() {
			err := Describe(context.Background(), &Options{Out: &buf, Client: memCatalog{}}, "a1")

			Convey("Then title, link and HLS URL are printed", func() {
				So(err, ShouldBeNil)
				So(buf.String(), ShouldEqual, "Stream a1\n"+base+"/stream#a1\n"+base+"/hls/a1\n")
			})
		})

		Convey("When printed as JSON", func() {
			err := Describe(context.Background(), &Options{Out: &buf, Client: memCatalog{}, Json: true}, "a1")

			Convey("Then the fields are encoded", func() {
				So(err, ShouldBeNil)
				var info Info
				So(json.Unmarshal(buf.Bytes(), &info), ShouldBeNil)
				So(info.Title, ShouldEqual, "Stream a1")
				So(info.HLS, ShouldEqual, base+"/hls/a1")
			})
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given the filter parsers", t, func() {
		Convey("Then known pickers parse and unknown ones fail", func() {
			for _, kind := range []string{"first", "best", "last", "exact", "3"} {
				_, err := ParseStreamPicker(kind, "x")
				So(err, ShouldBeNil)
			}
			_, err := ParseStreamPicker("middle", "")
			So(err, ShouldNotBeNil)
		})

		Convey("Then quality filters accept classes, ranges and minimums", func() {
			for _, d := range []string{"all", "good", "neutral", "bad", "unknown", "20-80", "60"} {
				_, err := ParseQualityFilter(d)
				So(err, ShouldBeNil)
			}
			for _, d := range []string{"excellent", "80-20", "a-b"} {
				_, err := ParseQualityFilter(d)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	. "github.com/smartystreets/goconvey/convey"
)

func newBackend() (*httptest.Server, *chi.Mux) {
	r := chi.NewRouter()
	return httptest.NewServer(r), r
}

func TestFetchCatalog(t *testing.T) {
	Convey("Given a stream server", t, func() {
		srv, r := newBackend()
		defer srv.Close()

		Convey("The flat schema decodes every field", func() {
			r.Get("/api/streams/flat", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[{"ace_id":"abc123","title":"Demo Channel","quality":85,"site_name":"demo"}]`))
			})
			c, err := New(srv.URL)
			So(err, ShouldBeNil)

			cat, err := c.FetchCatalog(context.Background())
			So(err, ShouldBeNil)
			So(cat, ShouldResemble, Catalog{{ID: "abc123", Title: "Demo Channel", Quality: 85, Source: "demo"}})
		})

		Convey("The grouped schema is flattened with unknown quality", func() {
			r.Get("/api/v1/streams", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`[{"site_name":"one","stream_list":[{"ace_id":"a","title":"A"},{"ace_id":"b","title":"B"}]},{"site_name":"two","stream_list":[{"ace_id":"c","title":"C"}]}]`))
			})
			c, err := New(srv.URL, WithSchema(SchemaGrouped))
			So(err, ShouldBeNil)

			cat, err := c.FetchCatalog(context.Background())
			So(err, ShouldBeNil)
			So(len(cat), ShouldEqual, 3)
			So(cat[2], ShouldResemble, Stream{ID: "c", Title: "C", Quality: UnknownQuality, Source: "two"})
		})

		Convey("A 500 is a ServerError carrying the code", func() {
			r.Get("/api/streams/flat", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			})
			c, _ := New(srv.URL)

			_, err := c.FetchCatalog(context.Background())
			So(errors.Is(err, ErrServer), ShouldBeTrue)
			So(errors.Is(err, &Failure{Kind: ServerError, Code: 500}), ShouldBeTrue)
			So(errors.Is(err, &Failure{Kind: ServerError, Code: 404}), ShouldBeFalse)

			var f *Failure
			So(errors.As(err, &f), ShouldBeTrue)
			So(f.Message(), ShouldEqual, "API FAILURE 500")
		})

		Convey("A slow server yields Timeout after the deadline", func() {
			r.Get("/api/streams/flat", func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			})
			c, _ := New(srv.URL)

			start := time.Now()
			_, err := c.FetchCatalog(context.Background())
			So(errors.Is(err, ErrTimeout), ShouldBeTrue)
			So(time.Since(start), ShouldBeLessThan, 1900*time.Millisecond)

			var f *Failure
			So(errors.As(err, &f), ShouldBeTrue)
			So(f.Message(), ShouldEqual, "API FAILURE: Fetch Timeout")
		})

		Convey("A malformed body is a NetworkError", func() {
			r.Get("/api/streams/flat", func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			})
			c, _ := New(srv.URL)

			_, err := c.FetchCatalog(context.Background())
			So(errors.Is(err, ErrNetwork), ShouldBeTrue)
		})
	})

	Convey("An unreachable server is a NetworkError", t, func() {
		srv, _ := newBackend()
		addr := srv.URL
		srv.Close()

		c, _ := New(addr)
		_, err := c.FetchCatalog(context.Background())
		So(errors.Is(err, ErrNetwork), ShouldBeTrue)

		var f *Failure
		So(errors.As(err, &f), ShouldBeTrue)
		So(f.Message(), ShouldStartWith, "API FAILURE: ")
	})
}

func TestFetchStream(t *testing.T) {
	Convey("Given a stream server", t, func() {
		srv, r := newBackend()
		defer srv.Close()
		r.Get("/api/stream/{id}", func(w http.ResponseWriter, r *http.Request) {
			switch chi.URLParam(r, "id") {
			case "abc123":
				_, _ = w.Write([]byte(`{"ace_id":"abc123","title":"Demo Channel"}`))
			case "short":
				_, _ = w.Write([]byte(`{"title":"No Id"}`))
			default:
				http.NotFound(w, r)
			}
		})
		c, _ := New(srv.URL, WithDeadline(200*time.Millisecond))

		Convey("It resolves the title", func() {
			info, err := c.FetchStream(context.Background(), "abc123")
			So(err, ShouldBeNil)
			So(info, ShouldResemble, StreamInfo{ID: "abc123", Title: "Demo Channel"})
		})

		Convey("A missing id falls back to the requested one", func() {
			info, err := c.FetchStream(context.Background(), "short")
			So(err, ShouldBeNil)
			So(info.ID, ShouldEqual, "short")
		})

		Convey("An unknown stream is a ServerError", func() {
			_, err := c.FetchStream(context.Background(), "nope")
			So(errors.Is(err, &Failure{Kind: ServerError, Code: 404}), ShouldBeTrue)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("New validates its inputs", t, func() {
		_, err := New("not a url")
		So(err, ShouldNotBeNil)

		_, err = New("http://host", WithSchema("nested"))
		So(err, ShouldNotBeNil)

		c, err := New("http://host:5100/")
		So(err, ShouldBeNil)
		So(c.Base(), ShouldEqual, "http://host:5100")
		So(c.SourceURL("abc123"), ShouldEqual, "http://host:5100/hls/abc123")
	})
}

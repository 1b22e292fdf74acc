// Package inline provides the application's non-interactive, scriptable mode.
package inline

import (
	"encoding/json"

	"github.com/aceplay/aceplay/catalog"
	"github.com/aceplay/aceplay/listing"
	"github.com/aceplay/aceplay/nav"
)

type Stream struct {
	catalog.Stream
	// Class is the quality class: good, neutral, bad or unknown.
	Class string `json:"class" jsonschema:"enum=good,enum=neutral,enum=bad,enum=unknown"`
	// Link is the shareable page link.
	Link string `json:"link" jsonschema:"description=Shareable page link of the stream"`
	// HLS is the playlist URL handed to the player.
	HLS string `json:"hls" jsonschema:"description=HLS playlist URL of the stream"`
}

type Output struct {
	Server string    `json:"server"`
	Query  string    `json:"query"`
	Result []*Stream `json:"result"`
}

// Info is the result of a single stream lookup.
type Info struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
	HLS   string `json:"hls"`
}

func newStream(r listing.Row, client Catalog) *Stream {
	return &Stream{
		Stream: r.Stream,
		Class:  r.Class.String(),
		Link:   nav.Location{Base: client.Base(), Fragment: r.ID}.String(),
		HLS:    client.SourceURL(r.ID),
	}
}

func asJson(rows []listing.Row, options *Options) ([]byte, error) {
	result := make([]*Stream, len(rows))
	for i, r := range rows {
		result[i] = newStream(r, options.Client)
	}

	return json.Marshal(&Output{
		Server: options.Client.Base(),
		Query:  options.Query,
		Result: result,
	})
}

// Package catalog talks to the stream server: it fetches the stream catalog and
// single-stream metadata, and classifies and orders what it gets back.
package catalog

import (
	"strconv"

	"github.com/aceplay/aceplay/status"
	"golang.org/x/exp/slices"
)

// UnknownQuality marks a stream whose quality score the server does not know.
const UnknownQuality = -1

// Stream describes one playable stream as listed by the server.
type Stream struct {
	ID      string `json:"ace_id" jsonschema:"description=Opaque stream identifier used in the HLS path"`
	Title   string `json:"title" jsonschema:"description=Display title"`
	Quality int    `json:"quality" jsonschema:"minimum=-1,maximum=100,description=Quality score; -1 when unknown"`
	Source  string `json:"site_name" jsonschema:"description=Name of the site the stream was scraped from"`
}

// Catalog is the list of streams from one successful fetch, in server order until sorted.
type Catalog []Stream

// StreamInfo is the metadata returned by the single-stream endpoint.
type StreamInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Quality is the coarse class of a quality score.
type Quality int

const (
	QualityUnknown Quality = iota
	QualityBad
	QualityNeutral
	QualityGood
)

func (q Quality) String() string {
	switch q {
	case QualityBad:
		return "bad"
	case QualityNeutral:
		return "neutral"
	case QualityGood:
		return "good"
	default:
		return "unknown"
	}
}

// State maps the class onto the indicator palette. Unknown renders neutral.
func (q Quality) State() status.State {
	switch q {
	case QualityBad:
		return status.Bad
	case QualityGood:
		return status.Good
	default:
		return status.Neutral
	}
}

// Classify buckets a score: below 0 unknown, [0,20) bad, [20,80] neutral, above 80 good.
func Classify(score int) Quality {
	switch {
	case score < 0:
		return QualityUnknown
	case score < 20:
		return QualityBad
	case score <= 80:
		return QualityNeutral
	default:
		return QualityGood
	}
}

// Label is the text shown in the quality column.
func Label(score int) string {
	if score < 0 {
		return "?"
	}
	return strconv.Itoa(score)
}

// Sort returns a copy ordered by descending quality. Unknown scores sort last
// and equal scores keep their server order.
func Sort(c Catalog) Catalog {
	sorted := slices.Clone(c)
	slices.SortStableFunc(sorted, func(a, b Stream) int {
		return b.Quality - a.Quality
	})
	return sorted
}

// Package inline provides the application's non-interactive, scriptable mode.
package inline

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aceplay/aceplay/catalog"
	"github.com/aceplay/aceplay/listing"
	"github.com/aceplay/aceplay/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Catalog is the part of catalog.Client inline mode reads from.
type Catalog interface {
	FetchCatalog(ctx context.Context) (catalog.Catalog, error)
	FetchStream(ctx context.Context, id string) (catalog.StreamInfo, error)
	Base() string
	SourceURL(id string) string
}

type (
	StreamPicker  func([]listing.Row) []listing.Row
	QualityFilter func([]listing.Row) []listing.Row
)

type Options struct {
	Out     io.Writer
	Client  Catalog
	Json    bool
	Query   string
	Picker  mo.Option[StreamPicker]
	Quality mo.Option[QualityFilter]
	// Links prints page links instead of HLS source URLs.
	Links bool
}

// ParseStreamPicker builds a picker. Rows arrive sorted best first.
func ParseStreamPicker(kind, value string) (StreamPicker, error) {
	one := func(rows []listing.Row, i int) []listing.Row {
		if i < 0 || i >= len(rows) {
			return nil
		}
		return rows[i : i+1]
	}

	switch kind {
	case "first", "best":
		return func(rows []listing.Row) []listing.Row {
			return one(rows, 0)
		}, nil
	case "last":
		return func(rows []listing.Row) []listing.Row {
			return one(rows, len(rows)-1)
		}, nil
	case "exact":
		return func(rows []listing.Row) []listing.Row {
			_, i, ok := lo.FindIndexOf(rows, func(r listing.Row) bool {
				return strings.EqualFold(r.Title, value) || r.ID == value
			})
			if !ok {
				return nil
			}
			return one(rows, i)
		}, nil
	default:
		idx, err := strconv.ParseUint(kind, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unknown picker: %s", kind)
		}
		return func(rows []listing.Row) []listing.Row {
			if len(rows) == 0 {
				return nil
			}
			return one(rows, int(util.Min(idx, uint64(len(rows)-1))))
		}, nil
	}
}

// ParseQualityFilter reads a class name (good, neutral, bad, unknown, all),
// a score range "20-80" or a minimum score "60".
func ParseQualityFilter(description string) (QualityFilter, error) {
	byClass := func(q catalog.Quality) QualityFilter {
		return func(rows []listing.Row) []listing.Row {
			return lo.Filter(rows, func(r listing.Row, _ int) bool { return r.Class == q })
		}
	}

	switch description {
	case "all":
		return func(rows []listing.Row) []listing.Row { return rows }, nil
	case catalog.QualityGood.String():
		return byClass(catalog.QualityGood), nil
	case catalog.QualityNeutral.String():
		return byClass(catalog.QualityNeutral), nil
	case catalog.QualityBad.String():
		return byClass(catalog.QualityBad), nil
	case catalog.QualityUnknown.String():
		return byClass(catalog.QualityUnknown), nil
	}

	between := func(from, to int) QualityFilter {
		return func(rows []listing.Row) []listing.Row {
			return lo.Filter(rows, func(r listing.Row, _ int) bool {
				return r.Quality >= from && r.Quality <= to
			})
		}
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		a, err1 := strconv.Atoi(from)
		b, err2 := strconv.Atoi(to)
		if err1 == nil && err2 == nil && a <= b {
			return between(a, b), nil
		}
	}

	if floor, err := strconv.Atoi(description); err == nil {
		return between(floor, 100), nil
	}

	return nil, fmt.Errorf("invalid quality filter: %s", description)
}

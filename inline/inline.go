// Package inline provides the application's non-interactive, scriptable mode.
package inline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/aceplay/aceplay/listing"
	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/nav"
	"github.com/aceplay/aceplay/status"
)

// failureReporter keeps the last failure reported by the listing.
type failureReporter struct {
	message string
}

func (f *failureReporter) Report(state status.State, message string) {
	if state == status.Bad {
		f.message = message
	}
}

// Run fetches the catalog once, narrows it and writes the result.
func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	reporter := &failureReporter{}
	view := listing.New(reporter)

	cat, err := options.Client.FetchCatalog(ctx)
	view.Render(cat, err)
	if err != nil {
		return fmt.Errorf("%s: %w", reporter.message, err)
	}

	// Step 1: fuzzy match on title and source.
	rows := view.Filter(options.Query)

	// Step 2: quality class or score range.
	if filter, ok := options.Quality.Get(); ok {
		rows = filter(rows)
	}

	// Step 3: narrow to a single stream.
	if picker, ok := options.Picker.Get(); ok {
		rows = picker(rows)
	}

	log.Infof("inline: %d of %d streams", len(rows), view.Len())

	if options.Json {
		data, err := asJson(rows, options)
		if err != nil {
			return err
		}
		_, err = options.Out.Write(data)
		return err
	}

	for _, r := range rows {
		if options.Links {
			fmt.Fprintln(options.Out, nav.Location{Base: options.Client.Base(), Fragment: r.ID})
		} else {
			fmt.Fprintln(options.Out, options.Client.SourceURL(r.ID))
		}
	}

	return nil
}

// Describe looks up a single stream and writes its title and links.
func Describe(ctx context.Context, options *Options, id string) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	info, err := options.Client.FetchStream(ctx, id)
	if err != nil {
		return err
	}

	out := &Info{
		ID:    info.ID,
		Title: info.Title,
		Link:  nav.Location{Base: options.Client.Base(), Fragment: info.ID}.String(),
		HLS:   options.Client.SourceURL(info.ID),
	}

	if options.Json {
		return writeJson(options.Out, out)
	}

	_, err = fmt.Fprintf(options.Out, "%s\n%s\n%s\n", out.Title, out.Link, out.HLS)
	return err
}

func writeJson(out io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

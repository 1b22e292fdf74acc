// Package cmd implements the aceplay command-line interface.
package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aceplay/aceplay/catalog"
	"github.com/aceplay/aceplay/filesystem"
	"github.com/aceplay/aceplay/inline"
	"github.com/aceplay/aceplay/key"
	"github.com/aceplay/aceplay/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCatalogClient() *catalog.Client {
	client, err := catalog.New(
		viper.GetString(key.ServerAddress),
		catalog.WithSchema(catalog.Schema(viper.GetString(key.CatalogSchema))),
	)
	handleErr(err)
	return client
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("query", "q", "", "Fuzzy filter on stream title and source site")
	listCmd.Flags().StringP("pick", "P", "", "Narrow the result to one stream: first, best, last, exact or an index")
	listCmd.Flags().StringP("quality", "Q", "", "Quality filter: good, neutral, bad, unknown, all, a range like 20-80 or a minimum score")
	listCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	listCmd.Flags().BoolP("links", "l", false, "Print page links instead of HLS URLs")
	listCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(listCmd.RegisterFlagCompletionFunc("quality", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"good", "neutral", "bad", "unknown", "all"}, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(listCmd.RegisterFlagCompletionFunc("pick", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"first", "best", "last", "exact"}, cobra.ShellCompDirectiveNoFileComp
	}))
}

// listCmd prints the catalog for scripts.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the stream catalog without the interactive interface",
	Long: `Fetch the catalog once and print one HLS URL (or page link) per stream, best quality first.

Pickers:
  first, best - the highest quality stream
  last - the lowest quality stream
  exact - the stream whose title or id equals the query
  [number] - select stream by index (starting from 0)

Quality filters:
  good, neutral, bad, unknown, all
  [from]-[to] - scores within the range
  [number] - scores at or above the number`,
	Example: "  aceplay list -q sports -Q good --json",
	Run: func(cmd *cobra.Command, args []string) {
		query := lo.Must(cmd.Flags().GetString("query"))

		picker := mo.None[inline.StreamPicker]()
		if pick := lo.Must(cmd.Flags().GetString("pick")); pick != "" {
			fn, err := inline.ParseStreamPicker(pick, query)
			handleErr(err)
			picker = mo.Some(fn)
		}

		quality := mo.None[inline.QualityFilter]()
		if q := lo.Must(cmd.Flags().GetString("quality")); q != "" {
			fn, err := inline.ParseQualityFilter(q)
			handleErr(err)
			quality = mo.Some(fn)
		}

		// exact matches against the whole catalog, not a fuzzy subset
		if lo.Must(cmd.Flags().GetString("pick")) == "exact" {
			query = ""
		}

		writer, closer := outputWriter(cmd)
		defer closer()

		options := &inline.Options{
			Out:     writer,
			Client:  newCatalogClient(),
			Json:    lo.Must(cmd.Flags().GetBool("json")),
			Query:   query,
			Picker:  picker,
			Quality: quality,
			Links:   lo.Must(cmd.Flags().GetBool("links")),
		}

		handleErr(inline.Run(context.Background(), options))
	},
}

// outputWriter returns the --output file, or stdout when it is not set.
func outputWriter(cmd *cobra.Command) (io.Writer, func()) {
	output := lo.Must(cmd.Flags().GetString("output"))
	if output == "" {
		return os.Stdout, func() {}
	}

	file, err := filesystem.API().Create(output)
	handleErr(err)
	return file, func() { util.Ignore(file.Close) }
}

func init() {
	listCmd.AddCommand(listSchemaCmd)

	listSchemaCmd.Flags().BoolP("info", "i", false, "Generate the JSON Schema for the info command output")
}

// listSchemaCmd prints the JSON schema of the structured outputs.
var listSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the list --json output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "stream", "output", "info":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		var schema *jsonschema.Schema

		switch {
		case lo.Must(cmd.Flags().GetBool("info")):
			schema = reflector.Reflect(&inline.Info{})
		default:
			schema = reflector.Reflect(&inline.Output{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}

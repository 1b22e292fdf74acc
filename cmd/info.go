// Package cmd implements the aceplay command-line interface.
package cmd

import (
	"context"
	"fmt"

	"github.com/aceplay/aceplay/catalog"
	"github.com/aceplay/aceplay/inline"
	"github.com/aceplay/aceplay/key"
	"github.com/aceplay/aceplay/nav"
	"github.com/aceplay/aceplay/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	infoCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
}

// infoCmd looks up the title of a single stream.
var infoCmd = &cobra.Command{
	Use:     "info [link|id]",
	Short:   "Look up a stream's title and links",
	Long:    "Look up a stream's title and print it with its page link and HLS URL. Without an argument the remembered stream is used.",
	Args:    cobra.MaximumNArgs(1),
	Example: "  aceplay info abc123 --json",
	Run: func(cmd *cobra.Command, args []string) {
		client := newCatalogClient()

		var id string
		if len(args) == 1 {
			loc, err := nav.Parse(args[0], client.Base())
			handleErr(err)
			if loc.Base != client.Base() {
				client, err = catalog.New(loc.Base, catalog.WithSchema(catalog.Schema(viper.GetString(key.CatalogSchema))))
				handleErr(err)
			}
			id = loc.Fragment
		} else {
			id = nav.New(client.Base(), nav.WithStore(nav.NewStore())).Fragment()
		}

		if id == "" {
			handleErr(fmt.Errorf("no stream given and none remembered in %s", where.Location()))
		}

		writer, closer := outputWriter(cmd)
		defer closer()

		handleErr(inline.Describe(context.Background(), &inline.Options{
			Out:    writer,
			Client: client,
			Json:   lo.Must(cmd.Flags().GetBool("json")),
		}, id))
	},
}

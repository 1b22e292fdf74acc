// Package cmd implements the aceplay command-line interface.
package cmd

import (
	"github.com/aceplay/aceplay/mini"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(miniCmd)
}

// miniCmd launches the line-oriented interface.
var miniCmd = &cobra.Command{
	Use:   "mini [link|id]",
	Short: "Launch the line-oriented interface",
	Long:  `Pick a stream from a menu, then follow its status as plain lines. While watching, type a link or id to switch streams, f for fullscreen, an empty line for the menu or q to quit.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		options := mini.Options{
			Link: linkArg(args),
		}
		handleErr(mini.Run(&options))
	},
}

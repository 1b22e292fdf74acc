// Package cmd implements the aceplay command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aceplay/aceplay/color"
	"github.com/aceplay/aceplay/constant"
	"github.com/aceplay/aceplay/icon"
	"github.com/aceplay/aceplay/key"
	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/player"
	"github.com/aceplay/aceplay/style"
	"github.com/aceplay/aceplay/tui"
	"github.com/aceplay/aceplay/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("server", "s", "", "Base address of the stream server")
	lo.Must0(viper.BindPFlag(key.ServerAddress, rootCmd.PersistentFlags().Lookup("server")))

	rootCmd.PersistentFlags().StringP("player", "p", "", "Playback engine to use")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("player", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return player.Names(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.Player, rootCmd.PersistentFlags().Lookup("player")))

	rootCmd.PersistentFlags().Bool("autoplay", true, "Start playback right after a stream is selected")
	lo.Must0(viper.BindPFlag(key.PlayerAutoplay, rootCmd.PersistentFlags().Lookup("autoplay")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(context.Background(), cmd.OutOrStdout())
	})
}

// rootCmd opens the interactive interface, optionally on a stream link.
var rootCmd = &cobra.Command{
	Use:   constant.Aceplay + " [link|id]",
	Short: "A terminal player for Ace-stream HLS catalogs",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal player for Ace-stream HLS catalogs"),
	Args: cobra.MaximumNArgs(1),
	Example: strings.Join([]string{
		"  " + constant.Aceplay,
		"  " + constant.Aceplay + " http://127.0.0.1:5100/stream#abc123",
		"  " + constant.Aceplay + " abc123 --player iina",
	}, "\n"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{
			Link: linkArg(args),
		}
		handleErr(tui.Run(&options))
	},
}

func linkArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

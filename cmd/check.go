// Package cmd implements the aceplay command-line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/aceplay/aceplay/catalog"
	"github.com/aceplay/aceplay/constant"
	"github.com/aceplay/aceplay/icon"
	"github.com/aceplay/aceplay/key"
	"github.com/aceplay/aceplay/listing"
	"github.com/aceplay/aceplay/open"
	"github.com/aceplay/aceplay/player"
	"github.com/aceplay/aceplay/style"
	"github.com/aceplay/aceplay/util"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

// checkCmd reports whether the configured player and the stream server are usable.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the configured player and the stream server",
	Run: func(cmd *cobra.Command, args []string) {
		ok := true

		name := viper.GetString(key.Player)
		if dep, found := playerDependency(name); found {
			cmd.Printf("%s player %s\n", icon.Get(icon.Success), style.Bold(name))
		} else {
			ok = false
			cmd.Printf("%s player %s: %s not found\n", icon.Get(icon.Fail), style.Bold(name), dep)
		}

		server := viper.GetString(key.ServerAddress)
		client, err := catalog.New(server, catalog.WithSchema(catalog.Schema(viper.GetString(key.CatalogSchema))))
		handleErr(err)

		erase := util.PrintErasable(fmt.Sprintf("%s Fetching catalog from %s..", icon.Get(icon.Progress), server))
		cat, err := client.FetchCatalog(context.Background())
		erase()

		if err != nil {
			ok = false
			cmd.Printf("%s server %s: %s\n", icon.Get(icon.Fail), style.Bold(server), listing.FailureMessage(err))
		} else {
			cmd.Printf("%s server %s: %s\n", icon.Get(icon.Success), style.Bold(server), util.Quantify(len(cat), "stream", "streams"))
		}

		if !ok {
			os.Exit(1)
		}
	},
}

// playerDependency names what the player needs and whether it is present.
func playerDependency(name string) (string, bool) {
	switch strings.ToLower(name) {
	case player.NameMPV:
		_, err := exec.LookPath("mpv")
		return "mpv", err == nil
	case player.NameIINA:
		return "IINA", open.Available("IINA")
	case player.NameSystem:
		return "default URL handler", open.Available("")
	default:
		return name, false
	}
}

// CheckDependencies exits with install instructions when the configured player is missing.
func CheckDependencies() {
	name := viper.GetString(key.Player)
	if dep, ok := playerDependency(name); !ok {
		printMissingDependencyError(dep)
		os.Exit(1)
	}
}

func printMissingDependencyError(dep string) {
	var installCmd string
	if dep == "mpv" {
		switch runtime.GOOS {
		case constant.Darwin:
			installCmd = "brew install mpv"
		case constant.Linux:
			installCmd = "sudo apt install mpv"
		case constant.Windows:
			installCmd = "scoop install mpv"
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The player dependency '%s' was not found.", dep))

	suggestion := fmt.Sprintf("\n\nPick another player with:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(constant.Aceplay+" config set "+key.Player+" system"))
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

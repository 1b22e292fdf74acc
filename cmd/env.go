package cmd

import (
	"fmt"
	"os"

	"github.com/aceplay/aceplay/color"
	"github.com/aceplay/aceplay/config"
	"github.com/aceplay/aceplay/style"
	"github.com/aceplay/aceplay/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only show variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only show variables that are not set")
	envCmd.Flags().BoolP("defaults", "d", false, "Show the default next to unset variables")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

type envVar struct {
	name  string
	field *config.Field
}

func envVars() []envVar {
	keys := lo.Keys(config.Default)
	slices.Sort(keys)

	vars := lo.Map(keys, func(k string, _ int) envVar {
		field := config.Default[k]
		return envVar{name: field.Env(), field: &field}
	})

	return append([]envVar{{name: where.EnvConfigPath}}, vars...)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show environment variables aceplay reads",
	Long:  `Show every environment variable aceplay reads together with its value in the current process.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))
		defaults := lo.Must(cmd.Flags().GetBool("defaults"))

		for _, v := range envVars() {
			value, present := os.LookupEnv(v.name)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(v.name))
			cmd.Print("=")

			switch {
			case present:
				cmd.Println(style.Fg(color.Green)(value))
			case defaults && v.field != nil:
				cmd.Println(style.Fg(color.Red)("unset"), style.Faint(fmt.Sprintf("(default %v)", v.field.Value)))
			default:
				cmd.Println(style.Fg(color.Red)("unset"))
			}
		}
	},
}

package version

import (
	"context"
	"fmt"
	"io"

	"github.com/aceplay/aceplay/color"
	"github.com/aceplay/aceplay/constant"
	"github.com/aceplay/aceplay/key"
	"github.com/aceplay/aceplay/log"
	"github.com/aceplay/aceplay/style"
	"github.com/spf13/viper"
)

// Notify writes a notice to w when a release newer than the running one exists.
func Notify(ctx context.Context, w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	latest, err := Latest(ctx)
	if err != nil {
		log.Debugf("version check: %v", err)
		return
	}

	notify(w, latest, constant.Version)
}

func notify(w io.Writer, latest, current string) {
	comp, err := Compare(latest, current)
	if err != nil || comp <= 0 {
		return
	}

	fmt.Fprintf(w, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", current)),
		style.Faint("https://github.com/aceplay/aceplay/releases/tag/v"+latest),
	)
}

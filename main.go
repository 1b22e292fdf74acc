// Package main is the entry point for aceplay.
package main

import (
	"github.com/aceplay/aceplay/cmd"
	"github.com/aceplay/aceplay/config"
	"github.com/aceplay/aceplay/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}

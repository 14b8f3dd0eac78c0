package main

import (
	"os"

	"github.com/denizbek-commits/stat-arb-preferreds/cmd"

	"go.uber.org/zap"
)

func main() {
	defer zap.S().Sync()

	if err := cmd.NewRootCommand(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/vsinha/vendorrisk/pkg/infrastructure/metrics"
	"github.com/vsinha/vendorrisk/pkg/interfaces/cli/commands"
)

var (
	// Set by LDFLAGS
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	metrics.BuildInfo.WithLabelValues(version, commit, date).Set(1)
	os.Exit(int(commands.Run(os.Args[1:])))
}

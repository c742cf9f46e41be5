// Command termlog demonstrates the termlog engine: it builds a logger from
// a YAML file and flags, attaches the file, zap and Prometheus plugins on
// request, logs sample traffic and exports the resulting history.
package main

import (
	"os"
)

// version can be set during build with -ldflags
var version = "dev"

func main() {
	if err := newRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}

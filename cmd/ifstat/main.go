// Command ifstat periodically reports network interface throughput.
package main

import (
	"os"

	"github.com/danpilch/ifstat/pkg/version"
)

// Set at link time with -ldflags "-X main.buildVersion=... -X main.buildCommit=...".
var (
	buildVersion = "0.1.0"
	buildCommit  = ""
	buildTime    = ""
)

func main() {
	info := version.New("ifstat", buildVersion, buildCommit, buildTime)
	if err := newApp(info, os.Stdout, os.Stderr).command().Execute(); err != nil {
		os.Exit(1)
	}
}

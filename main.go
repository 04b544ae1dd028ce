package main

import (
	"github.com/chaitanya2108/Google-Workspace/cmd"
)

// version is set by goreleaser during build.
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}

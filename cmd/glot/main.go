// Package main provides the glot CLI entry point.
package main

import (
	"os"

	"github.com/glotlabs/glot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

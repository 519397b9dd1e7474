// Package main is the entry point for the ecda CLI.
package main

import (
	"os"

	"github.com/chuawjk/ecda/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

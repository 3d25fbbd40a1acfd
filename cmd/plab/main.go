// Package main is the entry point for the plab CLI.
package main

import (
	"os"

	"github.com/f3rmion/plab/cmd/plab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for the etuovi-import CLI.
package main

import (
	"os"

	"github.com/asuntosalkku/etuovi-import/cmd/etuovi-import/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main is the entry point for cdeck.
package main

import (
	"fmt"
	"os"

	"github.com/abdullathedruid/cdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cdeck: %v\n", err)
		os.Exit(1)
	}
}

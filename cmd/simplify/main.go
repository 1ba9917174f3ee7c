// Package main provides the simplify binary: it loads type declarations from
// a schema file and validates, converts or describes documents against them.
package main

import (
	"fmt"
	"os"
)

const (
	Version = "0.1.0"
	appName = "simplify"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

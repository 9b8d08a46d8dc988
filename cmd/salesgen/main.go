// Package main is the entry point for salesgen.
package main

import (
	"fmt"
	"os"

	"github.com/meridiandata/salesgen/internal/cli"

	// Register applications
	_ "github.com/meridiandata/salesgen/internal/apps/auth"
	_ "github.com/meridiandata/salesgen/internal/apps/sales"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Package main provides the viewdock CLI: loading docking-result files into a
// persistent session and inspecting, filtering and exporting the docked
// entries.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}

// Version command for the viewdock CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unizar-flav/viewdock/pkg/docked"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the viewdock version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("viewdock", docked.Version)
	},
}

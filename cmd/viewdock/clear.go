// Clear command: reset the session.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every entry and its objects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}

		if err := sess.registry.Clear(); err != nil {
			sess.close()
			return err
		}

		if err := sess.saveAndClose(); err != nil {
			return err
		}
		fmt.Println("Session cleared")
		return nil
	},
}

// Sort command: reorder the session's entries.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sortDesc bool

var sortCmd = &cobra.Command{
	Use:   "sort <remark>",
	Short: "Sort the docked entries by a remark",
	Long: `Sort stably reorders the session's entries by the named remark.
Null values sort before numbers and numbers before strings.

Example:
  viewdock sort deltaG
  viewdock sort Affinity --desc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}

		if err := sess.registry.Sort(args[0], sortDesc); err != nil {
			sess.close()
			return err
		}

		if err := sess.saveAndClose(); err != nil {
			return err
		}
		fmt.Printf("Sorted %d entries by %q\n", sess.registry.Len(), args[0])
		return nil
	},
}

func init() {
	sortCmd.Flags().BoolVar(&sortDesc, "desc", false, "sort descending")
}

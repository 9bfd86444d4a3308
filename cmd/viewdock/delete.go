// Delete command: remove entries by row index or criteria.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deleteIndex int
	deleteAny   bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete [key=value ...]",
	Short: "Delete docked entries",
	Long: `Delete removes entries either by row index (--index, as shown by
"list --objects") or by key=value criteria matched against the remark values
and the reserved "object" and "state" keys. Criteria must all match unless
--any is given. State numbering of the affected objects stays contiguous.

Example:
  viewdock delete --index 3
  viewdock delete Cluster=2
  viewdock delete object=docking state=1
  viewdock delete Cluster=2 RANK=1 --any`,
	RunE: func(cmd *cobra.Command, args []string) error {
		byIndex := cmd.Flags().Changed("index")
		if byIndex == (len(args) > 0) {
			return fmt.Errorf("give either --index or key=value criteria")
		}

		sess, err := openSession()
		if err != nil {
			return err
		}

		removed := 0
		if byIndex {
			if err := sess.registry.RemoveAt(deleteIndex, true); err != nil {
				sess.close()
				return err
			}
			removed = 1
		} else {
			criteria, err := parseCriteria(args)
			if err != nil {
				sess.close()
				return err
			}
			before := sess.registry.Len()
			if err := sess.registry.RemoveMatching(criteria, !deleteAny); err != nil {
				sess.close()
				return err
			}
			removed = before - sess.registry.Len()
		}

		if err := sess.saveAndClose(); err != nil {
			return err
		}
		fmt.Printf("Deleted %d entries (%d left)\n", removed, sess.registry.Len())
		return nil
	},
}

func init() {
	deleteCmd.Flags().IntVar(&deleteIndex, "index", 0, "row index of the entry to delete")
	deleteCmd.Flags().BoolVar(&deleteAny, "any", false, "match any criterion instead of all")
}

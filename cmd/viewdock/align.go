// Align command: superpose a mobile object onto a multi-state target.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/unizar-flav/viewdock/internal/align"
)

var (
	alignName         string
	alignInitialState int
	alignFinalState   int
	alignSourceState  int
)

var alignCmd = &cobra.Command{
	Use:   "align <mobile> <target>",
	Short: "Align an object onto every state of a multi-state target",
	Long: `Align superposes the mobile object onto each state of the target
(Kabsch fit over all atoms, which must correspond one to one) and collects
the aligned copies as consecutive states of a new object. The per-state RMSD
is reported.

Example:
  viewdock align ligand poses
  viewdock align ligand poses --name fitted --initial-state 2 --final-state 5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mobile, target := args[0], args[1]

		sess, err := openSession()
		if err != nil {
			return err
		}

		name := alignName
		if name == "" {
			name = mobile + "_aligned"
		}
		name = sess.scene.NonRepeatedName(name)

		results, err := align.Multi(sess.scene, mobile, target, name,
			alignInitialState, alignFinalState, alignSourceState)
		if err != nil {
			sess.close()
			return err
		}

		if err := sess.saveAndClose(); err != nil {
			return err
		}
		fmt.Printf("Aligned %q onto %d states of %q as %q\n", mobile, len(results), target, name)
		for _, r := range results {
			fmt.Printf("  state %d: RMSD %.3f\n", r.TargetState, r.RMSD)
		}
		return nil
	},
}

func init() {
	alignCmd.Flags().StringVar(&alignName, "name", "", "name of the aligned object (default: <mobile>_aligned)")
	alignCmd.Flags().IntVar(&alignInitialState, "initial-state", 1, "first target state to align onto")
	alignCmd.Flags().IntVar(&alignFinalState, "final-state", 0, "last target state to align onto (0 = last)")
	alignCmd.Flags().IntVar(&alignSourceState, "source-state", 1, "mobile state used as the template")
}

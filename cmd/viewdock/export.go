// Export command: write entry data to a delimited-text file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the docked entry data to a csv or txt file",
	Long: `Export writes one header line and one line per entry. Fields are
joined by ";" in csv and by two spaces in txt, where the header is prefixed
with "#". The format is guessed from the file suffix unless --format is
given; unrecognized suffixes default to csv.

Example:
  viewdock export results.csv
  viewdock export results.txt
  viewdock export results.dat --format txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.close()

		if err := sess.registry.ExportFile(args[0], exportFormat); err != nil {
			return fmt.Errorf("export %q: %w", args[0], err)
		}
		fmt.Printf("Exported %d entries to %q\n", sess.registry.Len(), args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: csv or txt (default: from suffix)")
}

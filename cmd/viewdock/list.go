// List command: tabular view of the docked entries.
package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	exprlang "github.com/expr-lang/expr"
	"github.com/spf13/cobra"

	"github.com/unizar-flav/viewdock/pkg/docked"
)

var (
	listColumns []string
	listObjects bool
	listWhere   string
	listSort    string
	listDesc    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the docked entries of the session",
	Long: `List prints one row per docked entry with its remark values. The
row number, object and state columns are hidden by default; --objects shows
them. --where filters rows with an expression over the remark values plus
"object", "state" and "row".

Example:
  viewdock list
  viewdock list --objects
  viewdock list --columns deltaG,Cluster --sort deltaG
  viewdock list --where 'deltaG < -7.0 and Cluster != nil'
  viewdock list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringSliceVar(&listColumns, "columns", nil, "remark columns to show (default: all)")
	listCmd.Flags().BoolVar(&listObjects, "objects", false, "show row, object and state columns")
	listCmd.Flags().StringVar(&listWhere, "where", "", "filter expression over remark values")
	listCmd.Flags().StringVar(&listSort, "sort", "", "sort by this remark")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "sort descending")
}

// listRow is one presentation row: the entry plus its original index.
type listRow struct {
	Row     int                      `json:"row"`
	Object  string                   `json:"object"`
	State   int                      `json:"state"`
	Remarks map[string]docked.Remark `json:"remarks"`
}

func runList(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.close()

	rows := make([]listRow, 0, sess.registry.Len())
	for i, e := range sess.registry.Entries() {
		rows = append(rows, listRow{Row: i, Object: e.Object, State: e.State, Remarks: e.Remarks})
	}

	if listWhere != "" {
		rows, err = filterRows(rows, listWhere)
		if err != nil {
			return fmt.Errorf("--where: %w", err)
		}
	}

	if listSort != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			a := rows[i].Remarks[listSort]
			b := rows[j].Remarks[listSort]
			if listDesc {
				return b.Less(a)
			}
			return a.Less(b)
		})
	}

	columns := sess.registry.RemarkKeys()
	if len(listColumns) > 0 {
		columns = listColumns
	}

	if flagJSON {
		output, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal entries: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	printEntryTable(rows, columns)
	return nil
}

// filterRows keeps the rows for which the expression evaluates to true. The
// environment exposes every remark by name plus "row", "object" and "state";
// null remarks appear as nil.
func filterRows(rows []listRow, expression string) ([]listRow, error) {
	kept := rows[:0]
	for _, r := range rows {
		env := make(map[string]any, len(r.Remarks)+3)
		for k, v := range r.Remarks {
			env[k] = v.Value()
		}
		env["row"] = r.Row
		env["object"] = r.Object
		env["state"] = r.State

		result, err := exprlang.Eval(expression, env)
		if err != nil {
			return nil, err
		}
		match, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("expression %q is not a boolean", expression)
		}
		if match {
			kept = append(kept, r)
		}
	}
	return kept, nil
}

// printEntryTable prints entries in a human-readable table format.
func printEntryTable(rows []listRow, columns []string) {
	if len(rows) == 0 {
		fmt.Println("No entries found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	header := make([]string, 0, len(columns)+3)
	if listObjects {
		header = append(header, "ROW", "OBJECT", "STATE")
	}
	for _, c := range columns {
		header = append(header, strings.ToUpper(c))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	underline := make([]string, len(header))
	for i, h := range header {
		underline[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(underline, "\t"))

	for _, r := range rows {
		fields := make([]string, 0, len(header))
		if listObjects {
			fields = append(fields, fmt.Sprint(r.Row), r.Object, fmt.Sprint(r.State))
		}
		for _, c := range columns {
			fields = append(fields, r.Remarks[c].String())
		}
		fmt.Fprintln(w, strings.Join(fields, "\t"))
	}
	w.Flush()

	// Print output, trimming trailing whitespace from each line
	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d entries\n", len(rows))
}

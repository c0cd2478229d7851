package main

import (
	"fmt"
	"strings"

	"github.com/adamnemecek/lispkit/lisp"
	"github.com/spf13/cobra"
)

var (
	tableEntries string
	tableEquiv   string
)

func init() {
	cmd := newTableCmd()
	cmd.Flags().StringVar(&tableEntries, "entries", "", "comma-separated key=value pairs")
	cmd.Flags().StringVar(&tableEquiv, "equiv", "equal", "equivalence relation: eq, eqv, or equal")
	rootCmd.AddCommand(cmd)
}

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Build a hash table from key=value pairs and report its state",
		Long: `table inserts each key=value pair (keys and values are both stored as
strings) into a HashTable dispatching through the chosen equivalence
relation, then prints the table's write form and bucket statistics.

Example:
  lispcore table --entries name=ringo,city=tokyo --equiv equal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable()
		},
	}
}

func runTable() error {
	equiv, err := parseEquiv(tableEquiv)
	if err != nil {
		return err
	}
	ht := lisp.NewHashTable(equiv, 0, lisp.CustomProcs{})
	for _, pair := range splitNonEmpty(tableEntries) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("malformed entry %q, want key=value", pair)
		}
		ht.Set(lisp.NewString(k), lisp.NewString(v))
	}

	out, err := lisp.Write(nil, ht)
	if err != nil {
		return err
	}
	printInfo("%s\n", out)
	printInfo("buckets: %d  entries: %d\n", ht.BucketCount(), ht.Count())
	return nil
}

func parseEquiv(s string) (lisp.Equiv, error) {
	switch s {
	case "eq":
		return lisp.EqEquiv, nil
	case "eqv":
		return lisp.EqvEquiv, nil
	case "equal":
		return lisp.EqualEquiv, nil
	default:
		return 0, fmt.Errorf("unknown equivalence relation %q (want eq, eqv, or equal)", s)
	}
}

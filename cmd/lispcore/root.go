package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	quiet bool
)

var rootCmd = &cobra.Command{
	Use:   "lispcore",
	Short: "Drive the lisp core runtime from the command line",
	Long: `lispcore is a thin embedding host for the lisp package: it builds
value graphs, hash tables, and managed-object-pool cycles directly
from flags, then renders the result with the core's own write/display
formatter. It does not parse or evaluate Scheme source — the
parser/compiler/VM are a separate layer this core does not implement.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
}

func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

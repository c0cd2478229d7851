// Command lispcore is a small embedding host that exercises the lisp
// package from three subcommands: build a value graph from plain
// command-line data and render it (no reader/parser — that belongs to
// a compiler this core does not include), fill a hash table from
// key=value pairs, and run a managed-object-pool collection cycle.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

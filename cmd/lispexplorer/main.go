package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "0.1.0"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("lispexplorer %s\n", version)
			os.Exit(0)
		}
	}

	p := tea.NewProgram(
		NewModel(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("lispexplorer - interactive explorer for a lisp HashTable and ManagedObjectPool")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  lispexplorer [options]")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Launches a TUI seeded with a small hash table and watches it through")
	fmt.Println("  a managed object pool. Entries can be inserted and deleted live, a")
	fmt.Println("  collection cycle can be stepped by hand, and the write form of any")
	fmt.Println("  entry can be yanked to the system clipboard.")
	fmt.Println()
	fmt.Println("  Keys:")
	fmt.Println("    ↑/k, ↓/j    Move the cursor")
	fmt.Println("    i           Insert a sample entry")
	fmt.Println("    d           Delete the entry under the cursor")
	fmt.Println("    y           Yank the entry under the cursor to the clipboard")
	fmt.Println("    g           Run a collection cycle")
	fmt.Println("    ?           Toggle the key help overlay")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("For non-interactive, scriptable use, see the 'lispcore' command.")
}

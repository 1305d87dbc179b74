package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/domino14/fishderby/arena"
	"github.com/domino14/fishderby/config"
	"github.com/domino14/fishderby/viewer"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	path := cfg.GetString(config.ConfigArenaOut)
	if args := cfg.Args(); len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: viewer <matches.parquet>")
		os.Exit(1)
	}
	records, err := arena.ReadRecords(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read %s: %v\n", path, err)
		os.Exit(1)
	}
	if _, err := tea.NewProgram(viewer.NewModel(records), tea.WithAltScreen()).Run(); err != nil {
		fmt.Printf("Could not start program :(\n%v\n", err)
		os.Exit(1)
	}
}

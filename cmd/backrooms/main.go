package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"backrooms/internal/config"
	"backrooms/internal/db"
	"backrooms/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	store, err := db.Open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Database error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	p := tea.NewProgram(ui.New(cfg, store), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

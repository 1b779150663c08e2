package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinser/gridwalker/internal/app"
	"github.com/vinser/gridwalker/internal/flags"
)

var version = "dev"

func main() {
	fl, err := flags.Parse(filepath.Base(os.Args[0]), os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
	if fl.Version {
		fmt.Println("gridwalker", version)
		return
	}

	m, err := app.New(fl)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	// The alternate screen owns the terminal from here on.
	if f, err := tea.LogToFile(filepath.Join(os.TempDir(), "gridwalker.log"), "gridwalker"); err == nil {
		defer f.Close()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

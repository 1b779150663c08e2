// Command pathfind is the external search engine. It reads grid_state.csv,
// finds the shortest path from the player to the goal and writes path.csv
// and priority_queue.csv. The number of expanded cells goes to stdout.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/vinser/gridwalker/internal/exchange"
	"github.com/vinser/gridwalker/internal/flags"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("pathfind: ")

	if err := run(filepath.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(name string, args []string, stdout, stderr io.Writer) error {
	fl, err := flags.ParsePathfind(name, args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	gridPath := orDefault(fl.Grid, fl.Dir, exchange.GridFile)
	pathPath := orDefault(fl.Path, fl.Dir, exchange.PathFile)
	tracePath := orDefault(fl.Trace, fl.Dir, exchange.TraceFile)
	if fl.Trace == "-" {
		tracePath = ""
	}

	res, err := exchange.SolveFiles(gridPath, pathPath, tracePath, fl.Mode, fl.Reconstruction)
	if err != nil {
		return err
	}
	if !res.Found {
		log.Printf("no path, %d cells expanded", res.Expanded)
	}
	return exchange.WriteSummary(stdout, res)
}

// orDefault returns name, or file inside dir when name is empty.
func orDefault(name, dir, file string) string {
	if name != "" {
		return name
	}
	return filepath.Join(dir, file)
}

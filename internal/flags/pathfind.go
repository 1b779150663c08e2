package flags

import (
	"fmt"
	"io"

	"github.com/vinser/gridwalker/internal/exchange"
	"github.com/vinser/gridwalker/internal/search"
)

// PathfindFlags are the options of the external engine binary.
type PathfindFlags struct {
	Dir            string
	Grid           string
	Path           string
	Trace          string
	Mode           search.Mode
	Reconstruction search.Reconstruction
}

// ParsePathfind parses the engine command line. The mode may also be given
// as a single positional argument, e.g. "pathfind 1".
func ParsePathfind(name string, args []string, out io.Writer) (*PathfindFlags, error) {
	var mode, rec string
	f := &PathfindFlags{}
	fsv := NewFlagSetWithVisit(name, out)
	fsv.StringVar(&f.Dir, "dir", "d", ".", "Exchange directory")
	fsv.StringVar(&f.Grid, "grid", "", "", "Grid file (default <dir>/"+exchange.GridFile+")")
	fsv.StringVar(&f.Path, "path", "", "", "Path output file (default <dir>/"+exchange.PathFile+")")
	fsv.StringVar(&f.Trace, "trace", "", "", "Trace output file (default <dir>/"+exchange.TraceFile+", \"-\" to skip)")
	fsv.StringVar(&mode, "mode", "m", "uniform", "Search mode: uniform, best-first, or a boolean (true = best-first)")
	fsv.StringVar(&rec, "reconstruction", "r", "predecessor", "Path reconstruction: predecessor or cheapest-neighbor")
	if err := fsv.Parse(args); err != nil {
		return nil, err
	}

	switch rest := fsv.Args(); {
	case len(rest) == 1 && !fsv.IsCustom("mode"):
		mode = rest[0]
	case len(rest) > 0:
		return nil, fmt.Errorf("unexpected arguments: %v", rest)
	}

	var err error
	if f.Mode, err = exchange.ParseModeFlag(mode); err != nil {
		return nil, err
	}
	if f.Reconstruction, err = search.ParseReconstruction(rec); err != nil {
		return nil, err
	}
	return f, nil
}

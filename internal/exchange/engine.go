package exchange

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/vinser/gridwalker/internal/grid"
	"github.com/vinser/gridwalker/internal/search"
)

// Request is one search job. Grid carries the PLAYER and GOAL overlays that
// mark Start and Goal when it is written to a file.
type Request struct {
	Grid  *grid.Grid
	Start grid.Position
	Goal  grid.Position
	Mode  search.Mode
	Trace bool
}

// Response holds the path (empty when unreachable) and the exploration trace.
type Response struct {
	Path     []grid.Position
	Trace    [][]grid.Position
	Expanded int // cells finalized by the search
}

// Engine solves search requests.
type Engine interface {
	Solve(ctx context.Context, req Request) (Response, error)
	Name() string
}

// InProcess runs the search in the calling goroutine.
type InProcess struct {
	Reconstruction search.Reconstruction
}

func (e InProcess) Name() string { return "inprocess" }

func (e InProcess) Solve(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	opts := []search.Option{search.WithMode(req.Mode), search.WithReconstruction(e.Reconstruction)}
	if req.Trace {
		opts = append(opts, search.WithTrace())
	}
	res, err := search.Search(req.Grid, req.Start, req.Goal, opts...)
	if err != nil {
		return Response{}, err
	}
	return Response{Path: res.Path, Trace: res.Trace, Expanded: res.Expanded}, nil
}

// DefaultTimeout bounds a Subprocess run when Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Subprocess runs an external engine executable in a fresh temp directory.
type Subprocess struct {
	Executable     string
	Reconstruction search.Reconstruction
	Timeout        time.Duration
	// Env is appended to the child environment.
	Env []string
}

func (e Subprocess) Name() string { return "external" }

func (e Subprocess) Solve(ctx context.Context, req Request) (Response, error) {
	if req.Grid == nil {
		return Response{}, fmt.Errorf("%w: nil grid", search.ErrInvalidInput)
	}
	if !req.Grid.InBounds(req.Start) || !req.Grid.InBounds(req.Goal) {
		return Response{}, fmt.Errorf("start %v, goal %v: %w", req.Start, req.Goal, search.ErrOutOfBounds)
	}
	// The file format cannot hold player and goal on one cell.
	if req.Start == req.Goal {
		return Response{Path: []grid.Position{req.Start}}, nil
	}
	if e.Executable == "" {
		return Response{}, errors.New("no engine executable configured")
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dir, err := os.MkdirTemp("", "gridwalker-*")
	if err != nil {
		return Response{}, fmt.Errorf("create exchange dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if err := writeFile(filepath.Join(dir, GridFile), func(b *bytes.Buffer) error {
		return WriteGrid(b, withOverlays(req.Grid, req.Start, req.Goal))
	}); err != nil {
		return Response{}, err
	}

	args := []string{"-dir", dir, "-mode", ModeFlag(req.Mode), "-reconstruction", e.Reconstruction.String()}
	if !req.Trace {
		args = append(args, "-trace", "-")
	}
	cmd := exec.CommandContext(ctx, e.Executable, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), e.Env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return Response{}, fmt.Errorf("engine %s: %w", e.Executable, ctx.Err())
		}
		return Response{}, fmt.Errorf("engine %s: %w: %s", e.Executable, err, bytes.TrimSpace(stderr.Bytes()))
	}

	var resp Response
	if data, err := readOptional(filepath.Join(dir, PathFile)); err != nil {
		return Response{}, err
	} else if resp.Path, err = ReadPath(bytes.NewReader(data)); err != nil {
		return Response{}, fmt.Errorf("%s: %w", PathFile, err)
	}
	if req.Trace {
		data, err := readOptional(filepath.Join(dir, TraceFile))
		if err != nil {
			return Response{}, err
		}
		if resp.Trace, err = ReadTrace(bytes.NewReader(data)); err != nil {
			return Response{}, fmt.Errorf("%s: %w", TraceFile, err)
		}
		// One trace line per expansion.
		resp.Expanded = len(resp.Trace)
	}
	if n, ok := ReadSummary(stdout.Bytes()); ok {
		resp.Expanded = n
	}
	return resp, nil
}

// withOverlays marks start and goal in a copy of g, so the engine on the
// other side can find them.
func withOverlays(g *grid.Grid, start, goal grid.Position) *grid.Grid {
	cells := g.Cells()
	for y, row := range cells {
		for x, c := range row {
			if c == grid.Player || c == grid.Goal {
				cells[y][x] = grid.Empty
			}
		}
	}
	cells[goal.Y][goal.X] = grid.Goal
	cells[start.Y][start.X] = grid.Player
	return grid.MustNew(cells)
}

func writeFile(name string, fill func(*bytes.Buffer) error) error {
	var b bytes.Buffer
	if err := fill(&b); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(name), err)
	}
	if err := os.WriteFile(name, b.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(name), err)
	}
	return nil
}

// readOptional returns nil data for a missing file.
func readOptional(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(name), err)
	}
	return data, nil
}

// SolveDir runs the engine side of the protocol over dir: it reads the grid
// file, searches and writes the path and trace files.
func SolveDir(dir string, mode search.Mode, rec search.Reconstruction) (search.Result, error) {
	return SolveFiles(filepath.Join(dir, GridFile), filepath.Join(dir, PathFile), filepath.Join(dir, TraceFile), mode, rec)
}

// SolveFiles is SolveDir with explicit file names. An empty tracePath skips the trace.
func SolveFiles(gridPath, pathPath, tracePath string, mode search.Mode, rec search.Reconstruction) (search.Result, error) {
	f, err := os.Open(gridPath)
	if err != nil {
		return search.Result{}, err
	}
	g, start, goal, err := ReadGrid(f)
	f.Close()
	if err != nil {
		return search.Result{}, fmt.Errorf("%s: %w", filepath.Base(gridPath), err)
	}

	opts := []search.Option{search.WithMode(mode), search.WithReconstruction(rec)}
	if tracePath != "" {
		opts = append(opts, search.WithTrace())
	}
	res, err := search.Search(g, start, goal, opts...)
	if err != nil {
		return res, err
	}
	if err := writeFile(pathPath, func(b *bytes.Buffer) error { return WritePath(b, res.Path) }); err != nil {
		return res, err
	}
	if tracePath != "" {
		if err := writeFile(tracePath, func(b *bytes.Buffer) error { return WriteTrace(b, res.Trace) }); err != nil {
			return res, err
		}
	}
	return res, nil
}

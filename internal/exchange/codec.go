// Package exchange implements the file protocol between the explorer and an
// out-of-process search engine: grid_state.csv in, path.csv and
// priority_queue.csv out.
package exchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vinser/gridwalker/internal/grid"
	"github.com/vinser/gridwalker/internal/search"
)

// File names used inside an exchange directory.
const (
	GridFile  = "grid_state.csv"
	PathFile  = "path.csv"
	TraceFile = "priority_queue.csv"
)

var ErrMalformed = errors.New("malformed exchange file")

// SyntaxError reports where a file failed to parse. Line and Column are 1-based;
// Column is 0 when the whole line is at fault.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrMalformed }

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}

func readErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &SyntaxError{Line: pe.Line, Column: pe.Column, Msg: pe.Err.Error()}
	}
	return fmt.Errorf("read: %w", err)
}

func atoi(cr *csv.Reader, field string, i int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		line, col := cr.FieldPos(i)
		return 0, &SyntaxError{Line: line, Column: col, Msg: fmt.Sprintf("%q is not an integer", field)}
	}
	return n, nil
}

// WriteGrid writes g row by row as comma separated cell codes.
func WriteGrid(w io.Writer, g *grid.Grid) error {
	cw := csv.NewWriter(w)
	record := make([]string, g.Cols())
	for _, row := range g.Cells() {
		for x, c := range row {
			record[x] = strconv.Itoa(int(c))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadGrid parses a grid file and locates the player (start) and goal codes.
// When a code appears more than once the last one in row-major order wins.
func ReadGrid(r io.Reader) (g *grid.Grid, start, goal grid.Position, err error) {
	cr := newReader(r)
	var rows [][]grid.Cell
	var haveStart, haveGoal bool
	for {
		record, rerr := cr.Read()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, start, goal, readErr(rerr)
		}
		y := len(rows)
		if y > 0 && len(record) != len(rows[0]) {
			line, _ := cr.FieldPos(0)
			return nil, start, goal, &SyntaxError{Line: line, Msg: fmt.Sprintf("%d cells, want %d", len(record), len(rows[0]))}
		}
		row := make([]grid.Cell, len(record))
		for x, field := range record {
			n, aerr := atoi(cr, field, x)
			if aerr != nil {
				return nil, start, goal, aerr
			}
			c := grid.Cell(n)
			if n < 0 || n > 127 || !c.Valid() {
				line, col := cr.FieldPos(x)
				return nil, start, goal, &SyntaxError{Line: line, Column: col, Msg: fmt.Sprintf("unknown cell code %d", n)}
			}
			switch c {
			case grid.Player:
				start, haveStart = grid.Position{X: x, Y: y}, true
			case grid.Goal:
				goal, haveGoal = grid.Position{X: x, Y: y}, true
			}
			row[x] = c
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, start, goal, &SyntaxError{Line: 1, Msg: "empty grid"}
	}
	if !haveStart || !haveGoal {
		return nil, start, goal, &SyntaxError{Line: len(rows), Msg: "start or goal not found"}
	}
	g, err = grid.New(rows)
	if err != nil {
		return nil, start, goal, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return g, start, goal, nil
}

// WritePath writes one "x,y" line per path step. An empty path writes nothing.
func WritePath(w io.Writer, path []grid.Position) error {
	cw := csv.NewWriter(w)
	for _, p := range path {
		if err := cw.Write([]string{strconv.Itoa(p.X), strconv.Itoa(p.Y)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPath parses a path file. An empty file is an empty path.
func ReadPath(r io.Reader) ([]grid.Position, error) {
	cr := newReader(r)
	var path []grid.Position
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return path, nil
		}
		if err != nil {
			return nil, readErr(err)
		}
		if len(record) != 2 {
			line, _ := cr.FieldPos(0)
			return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("%d fields, want 2", len(record))}
		}
		ps, err := positions(cr, record)
		if err != nil {
			return nil, err
		}
		path = append(path, ps...)
	}
}

// WriteTrace writes one line per expansion, flattening every position to x,y.
func WriteTrace(w io.Writer, trace [][]grid.Position) error {
	cw := csv.NewWriter(w)
	for _, step := range trace {
		record := make([]string, 0, 2*len(step))
		for _, p := range step {
			record = append(record, strconv.Itoa(p.X), strconv.Itoa(p.Y))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTrace parses a trace file; every line must hold an even number of integers.
func ReadTrace(r io.Reader) ([][]grid.Position, error) {
	cr := newReader(r)
	var trace [][]grid.Position
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return trace, nil
		}
		if err != nil {
			return nil, readErr(err)
		}
		if len(record)%2 != 0 {
			line, _ := cr.FieldPos(0)
			return nil, &SyntaxError{Line: line, Msg: fmt.Sprintf("odd number of fields (%d)", len(record))}
		}
		step, err := positions(cr, record)
		if err != nil {
			return nil, err
		}
		trace = append(trace, step)
	}
}

func positions(cr *csv.Reader, record []string) ([]grid.Position, error) {
	out := make([]grid.Position, 0, len(record)/2)
	for i := 0; i+1 < len(record); i += 2 {
		x, err := atoi(cr, record[i], i)
		if err != nil {
			return nil, err
		}
		y, err := atoi(cr, record[i+1], i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, grid.Position{X: x, Y: y})
	}
	return out, nil
}

// summaryPrefix starts the line an engine prints on stdout after a search.
const summaryPrefix = "expanded "

// WriteSummary prints the expansion count of res on one line.
func WriteSummary(w io.Writer, res search.Result) error {
	_, err := fmt.Fprintf(w, "%s%d\n", summaryPrefix, res.Expanded)
	return err
}

// ReadSummary finds the expansion count in engine output. Engines that do
// not print one give ok == false.
func ReadSummary(out []byte) (expanded int, ok bool) {
	for _, line := range strings.Split(string(out), "\n") {
		v, found := strings.CutPrefix(strings.TrimSpace(line), summaryPrefix)
		if !found {
			continue
		}
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n, true
		}
	}
	return 0, false
}

// ParseModeFlag reads the search mode argument. Boolean-like values select
// best-first when true, uniform when false.
func ParseModeFlag(s string) (search.Mode, error) {
	if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
		if b {
			return search.BestFirst, nil
		}
		return search.Uniform, nil
	}
	return search.ParseMode(s)
}

// ModeFlag is the inverse of ParseModeFlag.
func ModeFlag(m search.Mode) string {
	return m.String()
}

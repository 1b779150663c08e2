package main

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/vinser/gridwalker/internal/exchange"
	"github.com/vinser/gridwalker/internal/grid"
)

func writeGrid(t *testing.T, dir string, rows ...string) {
	t.Helper()
	g, err := grid.Parse(rows...)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := exchange.WriteGrid(&b, g); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, exchange.GridFile), b.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readPath(t *testing.T, name string) []grid.Position {
	t.Helper()
	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	path, err := exchange.ReadPath(f)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		args      func(dir string) []string
		pathFile  string
		wantTrace bool
	}{
		{
			name:      "defaults inside dir",
			args:      func(dir string) []string { return []string{"-dir", dir} },
			pathFile:  exchange.PathFile,
			wantTrace: true,
		},
		{
			name:      "trace skipped",
			args:      func(dir string) []string { return []string{"-dir", dir, "-trace", "-", "1"} },
			pathFile:  exchange.PathFile,
			wantTrace: false,
		},
		{
			name: "explicit path file",
			args: func(dir string) []string {
				return []string{"-dir", dir, "-path", filepath.Join(dir, "out.csv"), "-r", "cheapest"}
			},
			pathFile:  "out.csv",
			wantTrace: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeGrid(t, dir,
				"P.#.",
				"...G",
			)
			var stdout bytes.Buffer
			if err := run("pathfind", tt.args(dir), &stdout, io.Discard); err != nil {
				t.Fatal(err)
			}

			path := readPath(t, filepath.Join(dir, tt.pathFile))
			if len(path) != 5 {
				t.Fatalf("path = %v, want 4 steps", path)
			}
			expanded, ok := exchange.ReadSummary(stdout.Bytes())
			if !ok || expanded == 0 {
				t.Fatalf("stdout %q has no expansion count", stdout.String())
			}

			_, err := os.Stat(filepath.Join(dir, exchange.TraceFile))
			if tt.wantTrace && err != nil {
				t.Fatalf("trace file missing: %v", err)
			}
			if !tt.wantTrace && !errors.Is(err, fs.ErrNotExist) {
				t.Fatalf("trace file written although skipped: %v", err)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	if err := run("pathfind", []string{"-dir", dir}, io.Discard, io.Discard); err == nil {
		t.Error("missing grid file accepted")
	}
	if err := os.WriteFile(filepath.Join(dir, exchange.GridFile), []byte("0,9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run("pathfind", []string{"-dir", dir}, io.Discard, io.Discard); err == nil {
		t.Error("malformed grid accepted")
	}
	if err := run("pathfind", []string{"-mode", "sideways"}, io.Discard, io.Discard); err == nil {
		t.Error("unknown mode accepted")
	}
	if err := run("pathfind", []string{"-h"}, io.Discard, io.Discard); err != nil {
		t.Errorf("-h: %v", err)
	}
}

func TestOrDefault(t *testing.T) {
	tests := []struct {
		name, dir, file, want string
	}{
		{"", "/tmp/x", exchange.PathFile, filepath.Join("/tmp/x", exchange.PathFile)},
		{"", ".", exchange.GridFile, exchange.GridFile},
		{"/data/p.csv", "/tmp/x", exchange.PathFile, "/data/p.csv"},
	}
	for _, tt := range tests {
		if got := orDefault(tt.name, tt.dir, tt.file); got != tt.want {
			t.Errorf("orDefault(%q, %q, %q) = %q, want %q", tt.name, tt.dir, tt.file, got, tt.want)
		}
	}
}

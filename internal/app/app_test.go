package app

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/vinser/gridwalker/internal/config"
	"github.com/vinser/gridwalker/internal/exchange"
	"github.com/vinser/gridwalker/internal/flags"
	"github.com/vinser/gridwalker/internal/model/setup"
	"github.com/vinser/gridwalker/internal/search"
	"github.com/vinser/gridwalker/internal/state"
	"github.com/vinser/gridwalker/internal/world"
)

func TestApplyFlags(t *testing.T) {
	cfg := config.Default()
	st := state.New(nil, cfg)
	st.Engine = config.EngineExternal
	st.Searches = 9
	fl, err := flags.Parse("gridwalker", []string{"-r", "-m", "astar", "-g", "maze", "--mute"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	applyFlags(st, cfg, fl)
	if st.Searches != 0 || st.Engine != config.EngineInProcess {
		t.Errorf("reset not applied: %+v", *st)
	}
	if st.Mode != search.BestFirst.String() || st.Generator != "maze" || !st.Mute {
		t.Errorf("flags not applied: %+v", *st)
	}
}

func TestApplyFlagsKeepsState(t *testing.T) {
	cfg := config.Default()
	st := state.New(nil, cfg)
	st.Mode = search.BestFirst.String()
	st.Trace = true
	fl, err := flags.Parse("gridwalker", nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	applyFlags(st, cfg, fl)
	if st.Mode != search.BestFirst.String() || !st.Trace {
		t.Errorf("unset flags changed the state: %+v", *st)
	}
}

func TestNewEngine(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.Executable = "/opt/bin/pathfind"
	cfg.Search.Reconstruction = search.CheapestNeighbor.String()
	st := state.New(nil, cfg)
	if _, ok := newEngine(cfg, st).(exchange.InProcess); !ok {
		t.Fatal("default engine is not in-process")
	}
	st.Engine = config.EngineExternal
	e, ok := newEngine(cfg, st).(exchange.Subprocess)
	if !ok {
		t.Fatal("external engine is not a subprocess")
	}
	if e.Executable != "/opt/bin/pathfind" || e.Timeout != cfg.EngineTimeout() || e.Reconstruction != search.CheapestNeighbor {
		t.Fatalf("engine = %+v", e)
	}
}

func TestResolveExecutable(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "engine-under-test")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir)
	if got := resolveExecutable("engine-under-test"); got != exe {
		t.Errorf("resolveExecutable() = %q, want %q", got, exe)
	}
	if got := resolveExecutable("./relative/engine"); got != "./relative/engine" {
		t.Errorf("paths must be kept, got %q", got)
	}
	if got := resolveExecutable("no-such-engine"); got != "no-such-engine" {
		t.Errorf("unknown names must be kept, got %q", got)
	}
}

func TestNewWorldFallsBackToBlocks(t *testing.T) {
	cfg := config.Default()
	cfg.Grid.Cols, cfg.Grid.Rows = 5, 5
	st := state.New(nil, cfg)
	st.Generator = string(world.GenMaze)
	w, err := newWorld(cfg, st, 1)
	if err != nil {
		t.Fatal(err)
	}
	if w.Generator() != world.GenBlocks || st.Generator != string(world.GenBlocks) {
		t.Fatalf("generator = %v, state %q", w.Generator(), st.Generator)
	}
}

func TestApplySettings(t *testing.T) {
	cfg := config.Default()
	st := state.New(nil, cfg)
	st.Searches = 3
	w, err := world.New(cfg.Grid.Cols, cfg.Grid.Rows, world.GenBlocks, 5)
	if err != nil {
		t.Fatal(err)
	}
	m := Model{cfg: cfg, state: st, world: w}
	m.applySettings(setup.Settings{
		Mode:      search.BestFirst.String(),
		Generator: string(world.GenMaze),
		Engine:    config.EngineInProcess,
		Trace:     true,
		Theme:     config.ThemeDay,
		Reset:     true,
	})
	if st.Searches != 0 || st.Mode != "best-first" || !st.Trace || st.Theme != config.ThemeDay {
		t.Errorf("state = %+v", *st)
	}
	if w.Generator() != world.GenMaze || w.Layout() != 2 || st.Generator != "maze" {
		t.Errorf("world generator %v layout %d", w.Generator(), w.Layout())
	}
}

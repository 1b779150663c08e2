package flags

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vinser/gridwalker/internal/search"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Flags
		set     []string
		wantErr bool
	}{
		{name: "none", args: nil, want: Flags{}},
		{
			name: "long names",
			args: []string{"-config", "gw.yaml", "-mode", "astar", "-generator", "MAZE", "-engine", "external", "-seed", "12", "-trace", "-mute"},
			want: Flags{Config: "gw.yaml", Mode: "best-first", Generator: "maze", Engine: "external", Seed: 12, Trace: true, Mute: true},
			set:  []string{"config", "mode", "generator", "engine", "seed", "trace", "mute"},
		},
		{
			name: "short aliases",
			args: []string{"-c=gw.yaml", "-m", "uniform", "-g", "blocks", "-s=3", "-t", "-r", "-v"},
			want: Flags{Config: "gw.yaml", Mode: "uniform", Generator: "blocks", Seed: 3, Trace: true, Reset: true, Version: true},
			set:  []string{"config", "mode", "generator", "seed", "trace", "reset", "version"},
		},
		{name: "bad mode", args: []string{"-m", "diagonal"}, wantErr: true},
		{name: "bad generator", args: []string{"-g", "spiral"}, wantErr: true},
		{name: "bad engine", args: []string{"-e", "cloud"}, wantErr: true},
		{name: "unknown flag", args: []string{"-x"}, wantErr: true},
		{name: "positional", args: []string{"extra"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Parse("gridwalker", tt.args, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			set := got.set
			got.set = nil
			if *got != tt.want {
				t.Fatalf("Parse() = %+v, want %+v", *got, tt.want)
			}
			got.set = set
			for _, name := range tt.set {
				if !got.IsSet(name) {
					t.Errorf("%s not reported as set", name)
				}
			}
			if len(tt.set) == 0 && got.IsSet("mode") {
				t.Error("mode reported as set")
			}
		})
	}
}

func TestUsageListsAliases(t *testing.T) {
	var out bytes.Buffer
	if _, err := Parse("gridwalker", []string{"-h"}, &out); err == nil {
		t.Fatal("-h should stop parsing")
	}
	for _, want := range []string{"Usage of gridwalker", "-c, -config", "-m, -mode", "-mute"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("usage lacks %q:\n%s", want, out.String())
		}
	}
}

func TestParsePathfind(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		dir     string
		mode    search.Mode
		rec     search.Reconstruction
		wantErr bool
	}{
		{name: "defaults", args: nil, dir: ".", mode: search.Uniform},
		{name: "flags", args: []string{"-dir", "/tmp/x", "-mode", "best-first", "-reconstruction", "cheapest"}, dir: "/tmp/x", mode: search.BestFirst, rec: search.CheapestNeighbor},
		{name: "boolean mode", args: []string{"-d", "/tmp/y", "-m", "1"}, dir: "/tmp/y", mode: search.BestFirst},
		{name: "positional mode", args: []string{"true"}, dir: ".", mode: search.BestFirst},
		{name: "positional false", args: []string{"-d", "w", "0"}, dir: "w", mode: search.Uniform},
		{name: "mode twice", args: []string{"-m", "1", "0"}, wantErr: true},
		{name: "two positionals", args: []string{"1", "0"}, wantErr: true},
		{name: "bad mode", args: []string{"-m", "maybe"}, wantErr: true},
		{name: "bad reconstruction", args: []string{"-r", "guess"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := ParsePathfind("pathfind", tt.args, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePathfind() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Dir != tt.dir || got.Mode != tt.mode || got.Reconstruction != tt.rec {
				t.Fatalf("ParsePathfind() = %+v", got)
			}
		})
	}
}

func TestExpandAliases(t *testing.T) {
	fsv := NewFlagSetWithVisit("x", &bytes.Buffer{})
	var s string
	fsv.StringVar(&s, "mode", "m", "", "")
	got := fsv.expandAliases([]string{"-m", "a", "-m=b", "--m", "-mode", "--", "-m"})
	want := []string{"-mode", "a", "-mode=b", "--m", "-mode", "--", "-m"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("expandAliases() = %v, want %v", got, want)
	}
}

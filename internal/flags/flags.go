package flags

import (
	"fmt"
	"io"

	"github.com/vinser/gridwalker/internal/config"
	"github.com/vinser/gridwalker/internal/search"
	"github.com/vinser/gridwalker/internal/world"
)

// Flags stores the parsed command-line options of the explorer.
// Empty strings mean "not given"; the saved state or config decides.
type Flags struct {
	Config    string
	Mode      string
	Generator string
	Engine    string
	Seed      int64
	Trace     bool
	Mute      bool
	Reset     bool
	Version   bool

	set *FlagSetWithVisit
}

// IsSet reports whether the named flag was given on the command line.
func (f *Flags) IsSet(name string) bool {
	return f.set.IsCustom(name)
}

// Parse parses the explorer's command line (without the program name).
func Parse(name string, args []string, out io.Writer) (*Flags, error) {
	f := &Flags{}
	fsv := NewFlagSetWithVisit(name, out)
	fsv.StringVar(&f.Config, "config", "c", "", "YAML configuration file")
	fsv.StringVar(&f.Mode, "mode", "m", "", "Search mode: uniform or best-first")
	fsv.StringVar(&f.Generator, "generator", "g", "", "Wall layout: blocks or maze")
	fsv.StringVar(&f.Engine, "engine", "e", "", "Search engine: inprocess or external")
	fsv.Int64Var(&f.Seed, "seed", "s", 0, "Seed of the first world, 0 for random")
	fsv.BoolVar(&f.Trace, "trace", "t", false, "Animate the exploration trace")
	fsv.BoolVar(&f.Mute, "mute", "", false, "Mute all sounds")
	fsv.BoolVar(&f.Reset, "reset", "r", false, "Reset saved settings and counters")
	fsv.BoolVar(&f.Version, "version", "v", false, "Print version and exit")
	if err := fsv.Parse(args); err != nil {
		return nil, err
	}
	f.set = fsv

	if len(fsv.Args()) > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fsv.Args())
	}
	if f.Mode != "" {
		m, err := search.ParseMode(f.Mode)
		if err != nil {
			return nil, err
		}
		f.Mode = m.String()
	}
	if f.Generator != "" {
		g, err := world.ParseGenerator(f.Generator)
		if err != nil {
			return nil, err
		}
		f.Generator = string(g)
	}
	switch f.Engine {
	case "", config.EngineInProcess, config.EngineExternal:
	default:
		return nil, fmt.Errorf("invalid engine %q: use %q or %q", f.Engine, config.EngineInProcess, config.EngineExternal)
	}
	return f, nil
}

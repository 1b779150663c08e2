package theme

import (
	"log"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vinser/gridwalker/internal/config"
	"github.com/vinser/gridwalker/internal/style"
)

// Palette holds the colours of every kind of grid cell.
type Palette struct {
	Light    float64 // ambient light the palette was mixed for
	Empty    lipgloss.Color
	Wall     lipgloss.Color
	Goal     lipgloss.Color
	Player   lipgloss.Color
	Path     lipgloss.Color
	Frontier lipgloss.Color
	Expanded lipgloss.Color
}

type colours struct {
	empty, wall, goal, player, path, frontier, expanded style.RGB
}

var (
	day = colours{
		empty:    style.RGB{R: 238, G: 238, B: 228},
		wall:     style.RGB{R: 100, G: 100, B: 100},
		goal:     style.RGB{R: 0, G: 160, B: 0},
		player:   style.RGB{R: 220, G: 0, B: 0},
		path:     style.RGB{R: 30, G: 110, B: 230},
		frontier: style.RGB{R: 240, G: 180, B: 40},
		expanded: style.RGB{R: 190, G: 210, B: 240},
	}
	night = colours{
		empty:    style.RGB{R: 0, G: 0, B: 0},
		wall:     style.RGB{R: 100, G: 100, B: 100},
		goal:     style.RGB{R: 0, G: 255, B: 0},
		player:   style.RGB{R: 255, G: 0, B: 0},
		path:     style.RGB{R: 80, G: 160, B: 255},
		frontier: style.RGB{R: 200, G: 140, B: 0},
		expanded: style.RGB{R: 40, G: 50, B: 90},
	}
)

// Mix blends the night and day palettes; light 0 is night, 1 is day.
func Mix(light float64) Palette {
	light = max(0, min(1, light))
	c := func(n, d style.RGB) lipgloss.Color {
		return lipgloss.Color(style.GenerateHexColor(blend(n.R, d.R, light), blend(n.G, d.G, light), blend(n.B, d.B, light)))
	}
	return Palette{
		Light:    light,
		Empty:    c(night.empty, day.empty),
		Wall:     c(night.wall, day.wall),
		Goal:     c(night.goal, day.goal),
		Player:   c(night.player, day.player),
		Path:     c(night.path, day.path),
		Frontier: c(night.frontier, day.frontier),
		Expanded: c(night.expanded, day.expanded),
	}
}

func blend(a, b int, t float64) int {
	return int(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// Pick returns the palette for the theme setting: day, night, or auto,
// which follows the sun at the configured location.
func Pick(setting string, now time.Time, loc config.LocationConfig) Palette {
	switch setting {
	case config.ThemeDay:
		return Mix(1)
	case config.ThemeNight:
		return Mix(0)
	}
	tz := loc.Timezone
	if tz == "" {
		tz = "Local"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		log.Printf("theme: %v, using night palette", err)
		return Mix(0)
	}
	return Mix(Daylight(now, loc.Latitude, loc.Longitude, tz))
}

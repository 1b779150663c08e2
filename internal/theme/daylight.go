// Package theme picks the grid colours from the sun: a bright palette by
// day, a dark one by night and a blend of both in twilight.
package theme

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
)

// Civil twilight ends when the sun is this far below the horizon.
const twilightAlt = -6.0

// sunEvents holds one local day's crossings of the horizon and of civil
// twilight. ok is false when the sun never crosses civil twilight that day.
type sunEvents struct {
	dawn, sunrise, sunset, dusk time.Time
	ok                          bool
}

// Daylight returns ambient light in [0, 1] at now for the given place.
// Polar day and night are decided by the noon altitude. An unknown time
// zone counts as night.
func Daylight(now time.Time, lat, lon float64, tz string) float64 {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return 0.0
	}
	localNow := now.In(loc)
	day := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)

	ev := events(day, lat, lon)
	if !ev.ok {
		noon := day.Add(12 * time.Hour)
		if solarAltitude(noon.UTC(), lat, lon) > twilightAlt {
			return 1.0
		}
		return 0.0
	}

	switch {
	case localNow.Before(ev.dawn):
		return 0.0
	case localNow.Before(ev.sunrise):
		return interpolate(ev.dawn, ev.sunrise, localNow)
	case localNow.Before(ev.sunset):
		return 1.0
	case localNow.Before(ev.dusk):
		return 1.0 - interpolate(ev.sunset, ev.dusk, localNow)
	}
	return 0.0
}

func events(day time.Time, lat, lon float64) sunEvents {
	var ev sunEvents
	var dawnOk, duskOk bool
	ev.dawn, dawnOk = crossing(day, lat, lon, twilightAlt, false)
	ev.sunrise, _ = crossing(day, lat, lon, 0, false)
	ev.sunset, _ = crossing(day, lat, lon, 0, true)
	ev.dusk, duskOk = crossing(day, lat, lon, twilightAlt, true)
	ev.ok = dawnOk && duskOk && !ev.dawn.After(ev.dusk)
	if ev.sunrise.IsZero() || ev.sunset.IsZero() {
		// Sun stays between twilight and horizon: treat the whole span as twilight.
		mid := ev.dawn.Add(ev.dusk.Sub(ev.dawn) / 2)
		ev.sunrise, ev.sunset = mid, mid
	}
	return ev
}

// crossing bisects the morning (rising) or afternoon (setting) half of the
// day for the time the sun passes alt. It reports false when it never does.
func crossing(day time.Time, lat, lon, alt float64, setting bool) (time.Time, bool) {
	start := day
	end := day.Add(24 * time.Hour)
	noon := day.Add(12 * time.Hour)

	midnightAlt := solarAltitude(start.UTC(), lat, lon)
	noonAlt := solarAltitude(noon.UTC(), lat, lon)
	if (midnightAlt-alt)*(noonAlt-alt) > 0 {
		return time.Time{}, false
	}

	for end.Sub(start) > time.Minute {
		mid := start.Add(end.Sub(start) / 2)
		if (solarAltitude(mid.UTC(), lat, lon) > alt) == setting {
			start = mid
		} else {
			end = mid
		}
	}
	return start.Round(time.Minute), true
}

// solarAltitude returns the sun's altitude in degrees at UTC time t.
func solarAltitude(t time.Time, lat, lon float64) float64 {
	jd := julian.TimeToJD(t)
	θ := sidereal.Apparent(jd).Rad() + lon*math.Pi/180
	ra, dec := solar.ApparentEquatorial(jd)
	H := math.Mod(θ-ra.Rad()+2*math.Pi, 2*math.Pi)
	φ := lat * math.Pi / 180
	δ := dec.Rad()
	sinAlt := math.Sin(φ)*math.Sin(δ) + math.Cos(φ)*math.Cos(δ)*math.Cos(H)
	return math.Asin(sinAlt) * 180 / math.Pi
}

// interpolate is the linear position of current between start and end, clamped to [0, 1].
func interpolate(start, end, current time.Time) float64 {
	if !end.After(start) {
		return 1.0
	}
	return max(0.0, min(1.0, current.Sub(start).Seconds()/end.Sub(start).Seconds()))
}

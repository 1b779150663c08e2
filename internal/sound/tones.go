package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
)

// note is a sine tone. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

const fade = 5 * time.Millisecond // attack and release ramp

var melodies = map[string][]note{
	STEP:        {{660, 25 * time.Millisecond}},
	BUMP:        {{110, 70 * time.Millisecond}},
	NEW_GRID:    {{880, 40 * time.Millisecond}, {0, 20 * time.Millisecond}, {1175, 40 * time.Millisecond}},
	FOUND:       {{523, 70 * time.Millisecond}, {659, 70 * time.Millisecond}, {784, 110 * time.Millisecond}},
	UNREACHABLE: {{392, 140 * time.Millisecond}, {262, 220 * time.Millisecond}},
	GOAL:        {{523, 80 * time.Millisecond}, {659, 80 * time.Millisecond}, {784, 80 * time.Millisecond}, {1047, 200 * time.Millisecond}},
}

var defaultVolumes = map[string]float64{
	STEP: -3,
	BUMP: -1,
}

// tone returns a sine wave streamer of the given length with short linear
// ramps at both ends.
func tone(sr beep.SampleRate, n note) beep.Streamer {
	total := sr.N(n.dur)
	ramp := sr.N(fade)
	if 2*ramp > total {
		ramp = total / 2
	}
	step := 2 * math.Pi * n.freq / float64(sr)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < total; i++ {
			v := 0.0
			if n.freq > 0 {
				v = 0.4 * math.Sin(step*float64(pos)) * envelope(pos, total, ramp)
			}
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return i, true
	})
}

func envelope(pos, total, ramp int) float64 {
	switch {
	case ramp == 0:
		return 1
	case pos < ramp:
		return float64(pos) / float64(ramp)
	case pos >= total-ramp:
		return float64(total-pos) / float64(ramp)
	}
	return 1
}

// melody plays the notes one after another.
func melody(sr beep.SampleRate, notes ...note) beep.Streamer {
	streamers := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		streamers[i] = tone(sr, n)
	}
	return beep.Seq(streamers...)
}

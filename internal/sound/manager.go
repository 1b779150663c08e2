// Package sound plays short synthesized feedback tones. Samples are generated
// at start-up, so the binary carries no audio assets.
package sound

import (
	"errors"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

// Sound names
const (
	STEP        = "step"
	BUMP        = "bump"
	FOUND       = "found"
	UNREACHABLE = "unreachable"
	GOAL        = "goal"
	NEW_GRID    = "new_grid"
)

const CommonSampleRate = 44100 // Sample rate of every synthesized sample

// Manager controls playback of the samples. A nil *Manager is valid and
// plays nothing, which is how the app runs when audio is unavailable.
type Manager struct {
	mu         sync.Mutex
	samples    map[string]*beep.Buffer
	ctrl       map[string]*beep.Ctrl
	mix        *beep.Mixer
	format     beep.Format
	muted      bool
	vol        *effects.Volume    // master volume
	sampleVols map[string]float64 // per-sample volume in dB
	out        output
}

// output is an open audio device pulling from the manager's mix.
type output interface {
	close()
}

// NewManager initializes the audio backend and creates a new Manager.
func NewManager(sampleRate beep.SampleRate) (*Manager, error) {
	mgr := &Manager{
		samples:    make(map[string]*beep.Buffer),
		ctrl:       make(map[string]*beep.Ctrl),
		mix:        &beep.Mixer{},
		format:     beep.Format{SampleRate: sampleRate, NumChannels: 1, Precision: 2},
		sampleVols: make(map[string]float64),
	}
	mgr.vol = &effects.Volume{
		Streamer: mgr.mix,
		Base:     2,
		Volume:   0, // 0 dB
		Silent:   false,
	}
	out, err := openOutput(mgr.output(), mgr.format, time.Second/20)
	if err != nil {
		return nil, err
	}
	mgr.out = out
	return mgr, nil
}

// lockedStreamer serializes the backend's reads with the manager's writes
// to the mixer.
type lockedStreamer struct {
	mu *sync.Mutex
	s  beep.Streamer
}

func (l *lockedStreamer) Stream(samples [][2]float64) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Stream(samples)
}

func (l *lockedStreamer) Err() error { return nil }

func (mgr *Manager) output() beep.Streamer {
	return &lockedStreamer{mu: &mgr.mu, s: mgr.vol}
}

// LoadSamples synthesizes every named sound.
func (mgr *Manager) LoadSamples() error {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	for name, notes := range melodies {
		buf := beep.NewBuffer(mgr.format)
		buf.Append(melody(mgr.format.SampleRate, notes...))
		mgr.samples[name] = buf
	}
	for name, db := range defaultVolumes {
		mgr.sampleVols[name] = db
	}
	return nil
}

// Play stops current playback of the sample (if any) and plays it from the start.
func (mgr *Manager) Play(name string) error {
	if mgr == nil {
		return nil
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	buf, ok := mgr.samples[name]
	if !ok {
		return errors.New("sample not loaded: " + name)
	}
	if mgr.muted {
		return nil
	}

	// Interrupt previous if exists
	if ctrl, exists := mgr.ctrl[name]; exists {
		ctrl.Streamer = nil
	}

	vol := &effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   mgr.sampleVols[name],
	}
	ctrl := &beep.Ctrl{Streamer: vol}
	mgr.mix.Add(ctrl)
	mgr.ctrl[name] = ctrl
	return nil
}

// StopAll halts playback of all currently playing samples.
func (mgr *Manager) StopAll() {
	if mgr == nil {
		return
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	for name, ctrl := range mgr.ctrl {
		ctrl.Paused = true
		delete(mgr.ctrl, name)
	}
}

// Mute disables audio output and stops what is playing.
func (mgr *Manager) Mute() {
	if mgr == nil {
		return
	}
	mgr.StopAll()
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.muted = true
}

// Unmute enables audio output.
func (mgr *Manager) Unmute() {
	if mgr == nil {
		return
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.muted = false
}

// Muted reports whether output is disabled. A nil manager is always muted.
func (mgr *Manager) Muted() bool {
	if mgr == nil {
		return true
	}
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	return mgr.muted
}

// Close stops playback and frees the backend.
func (mgr *Manager) Close() {
	if mgr == nil {
		return
	}
	mgr.StopAll()
	if mgr.out != nil {
		mgr.out.close()
	}
}

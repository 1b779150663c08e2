//go:build linux

package sound

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/jfreymuth/pulse"
)

// streamName identifies the client and its stream in PulseAudio mixers.
const streamName = "gridwalker"

// pulseOutput feeds a mono PulseAudio playback stream from the mix. The
// stream stays open and plays silence between tones.
type pulseOutput struct {
	client *pulse.Client
	stream *pulse.PlaybackStream
	src    beep.Streamer
	frames [][2]float64
	closed atomic.Bool
}

func openOutput(src beep.Streamer, format beep.Format, latency time.Duration) (output, error) {
	client, err := pulse.NewClient(pulse.ClientApplicationName(streamName))
	if err != nil {
		return nil, fmt.Errorf("connect to pulseaudio: %w", err)
	}
	po := &pulseOutput{
		client: client,
		src:    src,
		frames: make([][2]float64, format.SampleRate.N(latency)),
	}
	stream, err := client.NewPlayback(
		pulse.Float32Reader(po.read),
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(int(format.SampleRate)),
		pulse.PlaybackMediaName(streamName),
		pulse.PlaybackLatency(latency.Seconds()),
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("open playback stream: %w", err)
	}
	po.stream = stream
	stream.Start()
	return po, nil
}

// read pulls at most one buffer of frames from the mix into out.
func (po *pulseOutput) read(out []float32) (int, error) {
	if po.closed.Load() {
		return 0, pulse.EndOfData
	}
	out = out[:min(len(out), len(po.frames))]
	frames := po.frames[:len(out)]
	n, ok := po.src.Stream(frames)
	if !ok {
		n = 0
	}
	return mixDown(out, frames[:n]), nil
}

func (po *pulseOutput) close() {
	po.closed.Store(true)
	po.stream.Close()
	po.client.Close()
}

// mixDown averages the stereo frames into dst and pads the rest of dst with
// silence. It returns len(dst).
func mixDown(dst []float32, frames [][2]float64) int {
	for i := range dst {
		if i < len(frames) {
			dst[i] = float32((frames[i][0] + frames[i][1]) / 2)
		} else {
			dst[i] = 0
		}
	}
	return len(dst)
}

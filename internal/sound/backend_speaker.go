//go:build !linux

package sound

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// speakerOutput plays through the beep speaker, which owns one global device.
type speakerOutput struct{}

func openOutput(src beep.Streamer, format beep.Format, latency time.Duration) (output, error) {
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(latency)); err != nil {
		return nil, fmt.Errorf("open speaker: %w", err)
	}
	speaker.Play(src)
	return speakerOutput{}, nil
}

func (speakerOutput) close() {
	speaker.Clear()
	speaker.Close()
}

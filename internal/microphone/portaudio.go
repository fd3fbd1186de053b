package microphone

import (
	"context"
	"fmt"
	"math"

	"github.com/gordonklaus/portaudio"
)

// SourcePortAudio is the name of the native audio library probe.
const SourcePortAudio = "portaudio"

// PortAudioProbe queries PortAudio for every device and keeps the ones with
// input channels. portaudio.Initialize() must have been called.
type PortAudioProbe struct {
	devices func() ([]*portaudio.DeviceInfo, error)
}

// NewPortAudioProbe creates a probe backed by portaudio.Devices.
func NewPortAudioProbe() *PortAudioProbe {
	return &PortAudioProbe{devices: portaudio.Devices}
}

func (p *PortAudioProbe) Name() string {
	return SourcePortAudio
}

func (p *PortAudioProbe) Probe(ctx context.Context) ([]Microphone, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	devices, err := p.devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	return inputDevices(devices), nil
}

// inputDevices converts PortAudio device infos into descriptors. Index is
// the position in the full device list, which is what the recorder opens.
func inputDevices(devices []*portaudio.DeviceInfo) []Microphone {
	var mics []Microphone
	for idx, dev := range devices {
		if dev == nil || dev.MaxInputChannels <= 0 {
			continue
		}
		name := dev.Name
		if name == "" {
			name = fmt.Sprintf("Microphone %d", idx)
		}
		rate := int(math.Round(dev.DefaultSampleRate))
		if rate <= 0 {
			rate = defaultSampleRate
		}
		mics = append(mics, Microphone{
			Name:       name,
			Index:      intPtr(idx),
			Channels:   dev.MaxInputChannels,
			SampleRate: rate,
			Source:     SourcePortAudio,
		})
	}
	return mics
}

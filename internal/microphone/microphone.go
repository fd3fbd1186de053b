package microphone

import (
	"errors"
	"fmt"
)

// ErrNotRecordable is returned when a microphone has no handle the recorder
// can open.
var ErrNotRecordable = errors.New("cannot be opened for recording")

const (
	defaultChannels   = 1
	defaultSampleRate = 48000
)

// Microphone describes one discovered input device. Which fields are set
// depends on the probe that produced it; Name is always non-empty.
type Microphone struct {
	Name       string
	Index      *int // library handle; nil when the probe has none
	Channels   int  // 0 when unknown
	SampleRate int  // Hz, 0 when unknown
	Class      string
	Source     string // name of the probe that produced this entry
}

// MaxChannels returns the reported input channel count, or 1 if unknown.
func (m Microphone) MaxChannels() int {
	if m.Channels < 1 {
		return defaultChannels
	}
	return m.Channels
}

// DefaultSampleRate returns the reported sample rate, or 48000 if unknown.
func (m Microphone) DefaultSampleRate() int {
	if m.SampleRate <= 0 {
		return defaultSampleRate
	}
	return m.SampleRate
}

// Recordable reports whether the recorder can open this device.
//
// Only PortAudio entries carry a device index the recorder understands. The
// pactl probe also sets Index, but it is just the ordinal of the source block
// in pactl's output and does not map onto a PortAudio device.
func (m Microphone) Recordable() bool {
	return m.Index != nil && m.Source == SourcePortAudio
}

func (m Microphone) String() string {
	if m.Index != nil {
		return fmt.Sprintf("%s [%s #%d]", m.Name, m.Source, *m.Index)
	}
	return fmt.Sprintf("%s [%s]", m.Name, m.Source)
}

func intPtr(v int) *int {
	return &v
}

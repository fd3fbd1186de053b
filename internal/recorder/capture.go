package recorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// ErrDeviceNotFound is returned when the device index does not name a
// PortAudio input device.
var ErrDeviceNotFound = errors.New("input device not found")

// Request describes one fixed-length capture.
type Request struct {
	DeviceIndex int
	Channels    int
	SampleRate  int
	Frames      int // frames per channel
}

// Capturer performs a blocking capture of exactly req.Frames frames and
// returns interleaved int16 samples. onChunk, if non-nil, is called with
// each chunk as it arrives. Cancelling ctx aborts the capture.
type Capturer interface {
	Capture(ctx context.Context, req Request, onChunk func([]int16)) ([]int16, error)
}

// chunksPerSecond sets the PortAudio read size to a tenth of a second.
const chunksPerSecond = 10

// portAudioCapturer captures from a PortAudio device selected by its
// position in portaudio.Devices(). portaudio.Initialize() must have been
// called.
type portAudioCapturer struct{}

func (portAudioCapturer) Capture(ctx context.Context, req Request, onChunk func([]int16)) ([]int16, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	if req.DeviceIndex < 0 || req.DeviceIndex >= len(devices) {
		return nil, fmt.Errorf("%w: index %d (have %d devices)", ErrDeviceNotFound, req.DeviceIndex, len(devices))
	}
	dev := devices[req.DeviceIndex]
	if dev.MaxInputChannels < 1 {
		return nil, fmt.Errorf("%w: %q has no input channels", ErrDeviceNotFound, dev.Name)
	}
	if req.Channels > dev.MaxInputChannels {
		return nil, fmt.Errorf("%q supports %d input channel(s), requested %d", dev.Name, dev.MaxInputChannels, req.Channels)
	}

	framesPerBuffer := req.SampleRate / chunksPerSecond // ~100ms chunks
	if framesPerBuffer < 1 {
		framesPerBuffer = 1
	}
	inputBuf := make([]int16, framesPerBuffer*req.Channels)

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: req.Channels,
			Latency:  dev.DefaultHighInputLatency,
		},
		SampleRate:      float64(req.SampleRate),
		FramesPerBuffer: framesPerBuffer,
	}
	stream, err := portaudio.OpenStream(params, &inputBuf)
	if err != nil {
		return nil, fmt.Errorf("open stream on %q: %w", dev.Name, err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("start stream: %w", err)
	}

	// Abort unblocks a pending Read when the capture is cancelled. The
	// watcher must exit before the deferred Close runs.
	readDone := make(chan struct{})
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		select {
		case <-ctx.Done():
			_ = stream.Abort()
		case <-readDone:
		}
	}()
	defer func() {
		close(readDone)
		<-watchDone
	}()

	want := req.Frames * req.Channels
	// Reserve at most a second up front; append grows the rest as it arrives.
	samples := make([]int16, 0, min(want, req.SampleRate*req.Channels))
	for len(samples) < want {
		if err := stream.Read(); err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("capture aborted: %w", ctx.Err())
			}
			// The buffer is still filled on overflow; we just lost older frames.
			if !errors.Is(err, portaudio.InputOverflowed) {
				return nil, fmt.Errorf("read stream: %w", err)
			}
		}

		chunk := inputBuf
		if rest := want - len(samples); len(chunk) > rest {
			chunk = chunk[:rest]
		}
		samples = append(samples, chunk...)
		if onChunk != nil {
			onChunk(chunk)
		}
	}

	if err := stream.Stop(); err != nil && ctx.Err() == nil {
		return nil, fmt.Errorf("stop stream: %w", err)
	}
	return samples, nil
}

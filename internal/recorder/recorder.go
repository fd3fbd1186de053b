package recorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrInvalidParams is returned for non-positive channels, sample rate or duration.
	ErrInvalidParams = errors.New("invalid recording parameters")
	// ErrBusy is returned when Record is called while another capture is running.
	ErrBusy = errors.New("already recording")
)

// MaxSamples is the largest clip Record accepts, counted in interleaved
// samples (frames * channels). At 16 bits that is 2 GiB of PCM, about 3.1
// hours of 48 kHz stereo. Longer requests fail with ErrInvalidParams before
// any memory is reserved.
const MaxSamples = 1 << 30

// Recorder captures fixed-length clips to timestamped WAV files.
type Recorder struct {
	Dir    string // recordings directory, created on demand
	Logger *log.Logger

	capturer Capturer
	now      func() time.Time

	mu         sync.Mutex
	cancel     context.CancelFunc // non-nil while a capture is in flight
	audioLevel uint64             // atomic float64 bits; RMS of last chunk (0.0–1.0)
}

// New creates a Recorder that writes into dir and captures through
// PortAudio. Call portaudio.Initialize() before recording.
func New(dir string, logger *log.Logger) *Recorder {
	return newRecorder(dir, logger, portAudioCapturer{}, time.Now)
}

func newRecorder(dir string, logger *log.Logger, c Capturer, now func() time.Time) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Recorder{
		Dir:      dir,
		Logger:   logger,
		capturer: c,
		now:      now,
	}
}

// FileName returns the recording file name for t: recording_YYYYMMDD_HHMMSS.wav.
func FileName(t time.Time) string {
	return "recording_" + t.Format("20060102_150405") + ".wav"
}

// FrameCount returns ceil(duration * sampleRate). The product is rounded to
// a micro-frame first so float noise like 0.1*44100 = 4410.000000000001
// does not add a frame.
func FrameCount(duration float64, sampleRate int) int {
	exact := duration * float64(sampleRate)
	return int(math.Ceil(math.Round(exact*1e6) / 1e6))
}

// Record captures duration seconds from the device at deviceIndex and writes
// them to a new WAV file, returning its path. It blocks until the file is
// fully written. Any failure, including a Stop, yields "" and an error; no
// half-written file is left under the returned name.
func (r *Recorder) Record(ctx context.Context, deviceIndex, channels, sampleRate int, duration float64) (path string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			path = ""
			err = fmt.Errorf("capture panicked: %v", rec)
		}
		if err != nil {
			r.Logger.Printf("recording failed: %v", err)
		}
	}()

	if channels < 1 || sampleRate <= 0 || !(duration > 0) || math.IsInf(duration, 1) {
		return "", fmt.Errorf("%w: channels=%d sample_rate=%d duration=%v", ErrInvalidParams, channels, sampleRate, duration)
	}
	// Checked in float64 so an absurd duration cannot overflow FrameCount.
	if duration*float64(sampleRate)*float64(channels) > MaxSamples {
		return "", fmt.Errorf("%w: %vs at %d Hz x %d exceeds %d samples", ErrInvalidParams, duration, sampleRate, channels, MaxSamples)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := r.begin(cancel); err != nil {
		return "", err
	}
	defer r.end()
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create recordings dir: %w", err)
	}
	path = filepath.Join(r.Dir, FileName(r.now()))

	req := Request{
		DeviceIndex: deviceIndex,
		Channels:    channels,
		SampleRate:  sampleRate,
		Frames:      FrameCount(duration, sampleRate),
	}
	r.Logger.Printf("recording started: device=%d channels=%d rate=%d frames=%d path=%s",
		req.DeviceIndex, req.Channels, req.SampleRate, req.Frames, path)

	start := time.Now()
	samples, err := r.capturer.Capture(ctx, req, func(chunk []int16) {
		atomic.StoreUint64(&r.audioLevel, math.Float64bits(computeRMS(chunk, channels)))
	})
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}
	if got := len(samples) / channels; got != req.Frames {
		return "", fmt.Errorf("capture: got %d frames, want %d", got, req.Frames)
	}

	if err := WriteWAV(path, samples, sampleRate, channels); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	r.Logger.Printf("recording saved to %s (%s)", path, time.Since(start).Round(time.Millisecond))
	return path, nil
}

func (r *Recorder) begin(cancel context.CancelFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return ErrBusy
	}
	r.cancel = cancel
	return nil
}

func (r *Recorder) end() {
	r.mu.Lock()
	r.cancel = nil
	r.mu.Unlock()
	atomic.StoreUint64(&r.audioLevel, math.Float64bits(0))
}

// Stop aborts the in-flight capture, if any. The aborted Record call
// returns an error. Stop never fails and is a no-op when idle.
func (r *Recorder) Stop() {
	defer func() {
		if rec := recover(); rec != nil {
			r.Logger.Printf("recorder stop error: %v", rec)
		}
	}()

	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()

	if cancel == nil {
		r.Logger.Printf("recorder stop: nothing to stop")
		return
	}
	cancel()
	r.Logger.Printf("recording stopped")
}

// Busy reports whether a capture is in flight.
func (r *Recorder) Busy() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// AudioLevel returns the RMS amplitude of the most recently captured chunk,
// in the range [0.0, 1.0]. Safe to call from any goroutine.
func (r *Recorder) AudioLevel() float64 {
	return math.Float64frombits(atomic.LoadUint64(&r.audioLevel))
}

// computeRMS computes the root-mean-square of interleaved int16 samples
// normalized to [0.0, 1.0]. Channels are averaged per frame first.
func computeRMS(buf []int16, channels int) float64 {
	if channels < 1 {
		channels = 1
	}
	n := len(buf) / channels
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i+channels <= len(buf); i += channels {
		var v float64
		for c := 0; c < channels; c++ {
			v += float64(buf[i+c])
		}
		v /= float64(channels) * 32768.0
		sum += v * v
	}
	return math.Sqrt(sum / float64(n))
}

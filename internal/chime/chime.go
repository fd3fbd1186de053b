package chime

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"

	"github.com/Danondso/voicepad/internal/recorder"
)

const (
	toneSampleRate = 44100
	toneDuration   = 0.15 // seconds
)

// Player manages audio chime playback.
type Player struct {
	startData []byte
	stopData  []byte
	enabled   bool
	logger    *log.Logger
	initOnce  sync.Once
	initErr   error
}

// New creates a Player. If startPath/stopPath are empty, synthesized tones
// are used. If enabled is false, PlayStart/PlayStop are no-ops.
func New(startPath, stopPath string, enabled bool, logger *log.Logger) (*Player, error) {
	p := &Player{
		enabled: enabled,
		logger:  logger,
	}

	var err error
	if p.startData, err = loadOrGenerate(startPath, 440, 523); err != nil {
		return nil, fmt.Errorf("start chime: %w", err)
	}
	if p.stopData, err = loadOrGenerate(stopPath, 523, 440); err != nil {
		return nil, fmt.Errorf("stop chime: %w", err)
	}

	return p, nil
}

func loadOrGenerate(path string, startFreq, endFreq float64) ([]byte, error) {
	if path == "" {
		return recorder.EncodeWAV(generateTone(toneSampleRate, toneDuration, startFreq, endFreq), toneSampleRate, 1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// generateTone returns a mono frequency sweep with a sine envelope.
func generateTone(sampleRate int, duration, startFreq, endFreq float64) []int16 {
	numSamples := int(float64(sampleRate) * duration)
	samples := make([]int16, numSamples)
	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(sampleRate)
		progress := float64(i) / float64(numSamples)
		freq := startFreq + (endFreq-startFreq)*progress
		envelope := math.Sin(math.Pi * progress)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * envelope * 16000)
	}
	return samples
}

func (p *Player) initSpeaker(format beep.Format) {
	p.initOnce.Do(func() {
		p.initErr = speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
	})
}

func (p *Player) play(data []byte) {
	if !p.enabled || len(data) == 0 {
		return
	}

	go func() {
		reader := bytes.NewReader(data)
		streamer, format, err := wav.Decode(reader)
		if err != nil {
			if p.logger != nil {
				p.logger.Printf("chime: wav decode error: %v", err)
			}
			return
		}
		defer streamer.Close()

		p.initSpeaker(format)
		if p.initErr != nil {
			if p.logger != nil {
				p.logger.Printf("chime: speaker init error: %v", p.initErr)
			}
			return
		}

		done := make(chan struct{})
		speaker.Play(beep.Seq(streamer, beep.Callback(func() {
			close(done)
		})))
		<-done
	}()
}

// PlayStart plays the recording-started chime (non-blocking).
func (p *Player) PlayStart() {
	p.play(p.startData)
}

// PlayStop plays the recording-finished chime (non-blocking).
func (p *Player) PlayStop() {
	p.play(p.stopData)
}

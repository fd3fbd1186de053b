package recorder

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const pcmBitDepth = 16

// writeSeeker is an in-memory io.WriteSeeker for WAV encoding.
type writeSeeker struct {
	buf []byte
	pos int
}

func (ws *writeSeeker) Write(p []byte) (int, error) {
	end := ws.pos + len(p)
	if end > len(ws.buf) {
		ws.buf = append(ws.buf, make([]byte, end-len(ws.buf))...)
	}
	copy(ws.buf[ws.pos:], p)
	ws.pos = end
	return len(p), nil
}

func (ws *writeSeeker) Seek(offset int64, whence int) (int64, error) {
	var newPos int
	switch whence {
	case io.SeekStart:
		newPos = int(offset)
	case io.SeekCurrent:
		newPos = ws.pos + int(offset)
	case io.SeekEnd:
		newPos = len(ws.buf) + int(offset)
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if newPos < 0 || newPos > len(ws.buf) {
		return 0, fmt.Errorf("seek position %d out of bounds [0, %d]", newPos, len(ws.buf))
	}
	ws.pos = newPos
	return int64(ws.pos), nil
}

// encode writes interleaved int16 samples as 16-bit PCM WAV to w.
func encode(w io.WriteSeeker, samples []int16, sampleRate, channels int) error {
	if channels < 1 {
		return fmt.Errorf("invalid channel count: %d", channels)
	}
	if len(samples)%channels != 0 {
		return fmt.Errorf("%d samples do not divide into %d channels", len(samples), channels)
	}

	intBuf := &audio.IntBuffer{
		Data: make([]int, len(samples)),
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: channels,
		},
		SourceBitDepth: pcmBitDepth,
	}
	for i, s := range samples {
		intBuf.Data[i] = int(s)
	}

	enc := wav.NewEncoder(w, sampleRate, pcmBitDepth, channels, 1)
	if err := enc.Write(intBuf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("close wav encoder: %w", err)
	}
	return nil
}

// EncodeWAV encodes interleaved int16 PCM samples to WAV format in memory.
func EncodeWAV(samples []int16, sampleRate, channels int) ([]byte, error) {
	ws := &writeSeeker{}
	if err := encode(ws, samples, sampleRate, channels); err != nil {
		return nil, err
	}
	return ws.buf, nil
}

// WriteWAV writes samples to path as a WAV file. The data goes to a
// temporary file in the same directory first and is renamed into place, so
// path either holds a complete file or is left untouched.
func WriteWAV(path string, samples []int16, sampleRate, channels int) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".voicepad-*.wav.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := encode(tmp, samples, sampleRate, channels); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// DecodeWAV reads WAV bytes and returns the interleaved samples, sample rate
// and channel count.
func DecodeWAV(data []byte) ([]int16, int, int, error) {
	reader := bytes.NewReader(data)
	dec := wav.NewDecoder(reader)
	if !dec.IsValidFile() {
		return nil, 0, 0, fmt.Errorf("invalid WAV file")
	}

	pcmBuf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode wav: %w", err)
	}

	samples := make([]int16, len(pcmBuf.Data))
	for i, v := range pcmBuf.Data {
		samples[i] = int16(v)
	}

	return samples, int(dec.SampleRate), int(dec.NumChans), nil
}

// ValidateWAVHeader reads minimal WAV header info from data.
func ValidateWAVHeader(data []byte) (sampleRate int, channels int, bitDepth int, err error) {
	if len(data) < 44 {
		return 0, 0, 0, fmt.Errorf("data too short for WAV header")
	}

	r := bytes.NewReader(data)

	// read wraps binary.Read to capture the first error.
	var firstErr error
	read := func(v interface{}) {
		if firstErr != nil {
			return
		}
		firstErr = binary.Read(r, binary.LittleEndian, v)
	}

	var riffID [4]byte
	read(&riffID)
	if firstErr != nil {
		return 0, 0, 0, fmt.Errorf("read RIFF header: %w", firstErr)
	}
	if string(riffID[:]) != "RIFF" {
		return 0, 0, 0, fmt.Errorf("not a RIFF file")
	}

	var fileSize uint32
	read(&fileSize)

	var waveID [4]byte
	read(&waveID)
	if firstErr != nil {
		return 0, 0, 0, fmt.Errorf("read WAVE header: %w", firstErr)
	}
	if string(waveID[:]) != "WAVE" {
		return 0, 0, 0, fmt.Errorf("not a WAVE file")
	}

	var fmtID [4]byte
	read(&fmtID)
	if firstErr == nil && string(fmtID[:]) != "fmt " {
		return 0, 0, 0, fmt.Errorf("missing fmt chunk")
	}

	var fmtSize uint32
	read(&fmtSize)

	var audioFormat uint16
	read(&audioFormat)

	var numChannels uint16
	read(&numChannels)

	var sr uint32
	read(&sr)

	var byteRate uint32
	var blockAlign uint16
	read(&byteRate)
	read(&blockAlign)

	var bitsPerSample uint16
	read(&bitsPerSample)

	if firstErr != nil {
		return 0, 0, 0, fmt.Errorf("read WAV format: %w", firstErr)
	}
	if audioFormat != 1 {
		return 0, 0, 0, fmt.Errorf("not PCM (format %d)", audioFormat)
	}

	return int(sr), int(numChannels), int(bitsPerSample), nil
}

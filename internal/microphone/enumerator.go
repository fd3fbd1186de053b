package microphone

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Probe is one self-contained detection method.
type Probe interface {
	Name() string
	Probe(ctx context.Context) ([]Microphone, error)
}

// Enumerator runs probes in priority order and returns the result of the
// first one that finds anything. Results are never merged across probes.
type Enumerator struct {
	probes []Probe
	logger *log.Logger
}

// NewEnumerator creates an Enumerator with the given probes, tried in order.
func NewEnumerator(logger *log.Logger, probes ...Probe) *Enumerator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Enumerator{probes: probes, logger: logger}
}

// DefaultProbes returns the standard waterfall: PortAudio, pactl, arecord,
// then the Windows bridge when running under WSL. Subprocess probes use the
// given timeout.
func DefaultProbes(timeout time.Duration) []Probe {
	run := ExecRunner(timeout)
	return []Probe{
		NewPortAudioProbe(),
		NewPactlProbe(run),
		NewArecordProbe(run),
		NewWSLProbe(run),
	}
}

// Probes returns the probes in the order they are tried.
func (e *Enumerator) Probes() []Probe {
	return e.probes
}

// List returns the microphones found by the first probe with a non-empty
// result. It never fails: a probe that errors counts as finding nothing.
func (e *Enumerator) List(ctx context.Context) []Microphone {
	var mErr *multierror.Error
	for _, p := range e.probes {
		mics, err := e.runProbe(ctx, p)
		if err != nil {
			e.logger.Printf("probe %s failed: %v", p.Name(), err)
			mErr = multierror.Append(mErr, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		if len(mics) > 0 {
			e.logger.Printf("probe %s found %d microphone(s)", p.Name(), len(mics))
			return mics
		}
		e.logger.Printf("probe %s found nothing", p.Name())
	}

	if err := mErr.ErrorOrNil(); err != nil {
		e.logger.Printf("probe: no microphones found (%d probe error(s)): %v", len(mErr.Errors), err)
	}
	return []Microphone{}
}

// runProbe is the error boundary around a single probe.
func (e *Enumerator) runProbe(ctx context.Context, p Probe) (mics []Microphone, err error) {
	defer func() {
		if r := recover(); r != nil {
			mics = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.Probe(ctx)
}

// List detects microphones with the default probes.
func List(ctx context.Context, logger *log.Logger) []Microphone {
	return NewEnumerator(logger, DefaultProbes(DefaultTimeout)...).List(ctx)
}

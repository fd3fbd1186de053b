package microphone

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds each subprocess probe.
const DefaultTimeout = 5 * time.Second

// CommandRunner runs an external command and returns its stdout.
// A non-zero exit status must be reported as an error.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner returns a CommandRunner backed by os/exec that kills the
// process after timeout.
func ExecRunner(timeout time.Duration) CommandRunner {
	return func(ctx context.Context, name string, args ...string) ([]byte, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		var stderr bytes.Buffer
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Stderr = &stderr
		out, err := cmd.Output()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s timed out after %s", name, timeout)
		}
		if err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return nil, fmt.Errorf("run %s: %w: %s", name, err, msg)
			}
			return nil, fmt.Errorf("run %s: %w", name, err)
		}
		return out, nil
	}
}

// commandProbe adapts a command plus an output parser into a Probe.
type commandProbe struct {
	name  string
	cmd   string
	args  []string
	run   CommandRunner
	parse func(string) []Microphone
	// enabled, if set, gates the probe; a disabled probe finds nothing.
	enabled func() bool
}

func (p *commandProbe) Name() string {
	return p.name
}

func (p *commandProbe) Probe(ctx context.Context) ([]Microphone, error) {
	if p.enabled != nil && !p.enabled() {
		return nil, nil
	}
	out, err := p.run(ctx, p.cmd, p.args...)
	if err != nil {
		return nil, err
	}
	mics := p.parse(string(out))
	for i := range mics {
		mics[i].Source = p.name
	}
	return mics, nil
}

package microphone

import "strings"

// SourcePactl is the name of the PulseAudio/PipeWire CLI probe.
const SourcePactl = "pactl"

// NewPactlProbe lists sources through `pactl list sources`.
func NewPactlProbe(run CommandRunner) Probe {
	return &commandProbe{
		name:  SourcePactl,
		cmd:   "pactl",
		args:  []string{"list", "sources"},
		run:   run,
		parse: ParsePactlSources,
	}
}

// ParsePactlSources parses the block output of `pactl list sources`.
//
// Each "Source #N" line starts a new record. The device.description and
// device.class properties supply Name and Class. Index is the ordinal of the
// record in this output, not a PortAudio device index.
func ParsePactlSources(out string) []Microphone {
	var (
		mics    []Microphone
		current *Microphone
	)
	flush := func() {
		if current != nil {
			mics = append(mics, *current)
		}
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Source #"):
			flush()
			current = &Microphone{
				// Placeholder until a description shows up.
				Name:  line,
				Index: intPtr(len(mics)),
			}
		case current == nil:
			continue
		case strings.HasPrefix(line, "device.description"):
			if name := propertyValue(line); name != "" {
				current.Name = name
			}
		case strings.HasPrefix(line, "device.class"):
			current.Class = propertyValue(line)
		}
	}
	flush()

	return mics
}

// propertyValue returns the unquoted value of a `key = "value"` line.
func propertyValue(line string) string {
	_, v, found := strings.Cut(line, "=")
	if !found {
		return ""
	}
	return strings.Trim(strings.TrimSpace(v), `"`)
}

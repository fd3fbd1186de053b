package microphone

import "strings"

// SourceArecord is the name of the ALSA CLI probe.
const SourceArecord = "arecord"

// NewArecordProbe lists capture cards through `arecord -l`.
func NewArecordProbe(run CommandRunner) Probe {
	return &commandProbe{
		name:  SourceArecord,
		cmd:   "arecord",
		args:  []string{"-l"},
		run:   run,
		parse: ParseArecordCards,
	}
}

// ParseArecordCards parses `arecord -l` output. Lines look like
//
//	card 0: PCH [HDA Intel PCH], device 0: ALC257 Analog [ALC257 Analog]
//
// and everything after the first colon becomes the name.
func ParseArecordCards(out string) []Microphone {
	var mics []Microphone
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "card") {
			continue
		}
		_, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		name := strings.TrimSpace(rest)
		if name == "" {
			continue
		}
		mics = append(mics, Microphone{Name: name})
	}
	return mics
}

package microphone

import (
	"os"
	"strings"
)

// SourceWSL is the name of the Windows bridge probe.
const SourceWSL = "wsl"

const wmiSoundDeviceQuery = "Get-WmiObject -Class Win32_SoundDevice | Select-Object -ExpandProperty Name"

// NewWSLProbe asks Windows for its sound devices via powershell.exe. It only
// runs inside WSL; elsewhere it finds nothing.
func NewWSLProbe(run CommandRunner) Probe {
	return &commandProbe{
		name:    SourceWSL,
		cmd:     "powershell.exe",
		args:    []string{"-NoProfile", "-Command", wmiSoundDeviceQuery},
		run:     run,
		parse:   ParseWMISoundDevices,
		enabled: IsWSL,
	}
}

// ParseWMISoundDevices turns one device name per line into descriptors.
func ParseWMISoundDevices(out string) []Microphone {
	var mics []Microphone
	for _, line := range strings.Split(out, "\n") {
		// powershell.exe emits CRLF line endings.
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		mics = append(mics, Microphone{Name: name})
	}
	return mics
}

// osReleasePath is a variable so tests can point it elsewhere.
var osReleasePath = "/proc/sys/kernel/osrelease"

// IsWSL reports whether the process runs under the Windows Subsystem for Linux.
func IsWSL() bool {
	if os.Getenv("WSL_DISTRO_NAME") != "" {
		return true
	}
	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gordonklaus/portaudio"
	"github.com/spf13/pflag"

	"github.com/Danondso/voicepad/internal/chime"
	"github.com/Danondso/voicepad/internal/config"
	"github.com/Danondso/voicepad/internal/microphone"
	"github.com/Danondso/voicepad/internal/recorder"
	"github.com/Danondso/voicepad/internal/tui"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "voicepad: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	debug      bool
	configPath string
	list       bool
	device     int
	duration   float64
	headless   bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := pflag.NewFlagSet("voicepad", pflag.ContinueOnError)
	fs.BoolVar(&o.debug, "debug", false, "enable debug logging")
	fs.StringVar(&o.configPath, "config", config.DefaultPath(), "path to config file")
	fs.BoolVar(&o.list, "list", false, "print detected microphones and exit")
	fs.IntVar(&o.device, "device", -1, "PortAudio device index to record from without the TUI")
	fs.Float64Var(&o.duration, "duration", 0, "recording length in seconds (default from config)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	o.headless = fs.Changed("device")
	if fs.Changed("duration") && !o.headless {
		return o, errors.New("--duration requires --device")
	}
	return o, nil
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// Set up debug logger
	var dbg *log.Logger
	if opts.debug {
		dbg = log.New(os.Stderr, "[DEBUG] ", log.Ltime|log.Lmicroseconds)
	} else {
		dbg = log.New(io.Discard, "", 0)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dbg.Printf("config loaded from %s", opts.configPath)

	// Pin the recordings dir so saved paths stay valid if the cwd changes.
	recDir, err := cfg.RecordingsPath()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Audio.RecordingsDir = recDir
	dbg.Printf("recordings dir: %s", recDir)

	// A failed init only disables the PortAudio probe and recording; the
	// subprocess probes can still list devices.
	if err := initPortAudio(); err != nil {
		dbg.Printf("portaudio init failed: %v", err)
	} else {
		defer func() { _ = portaudio.Terminate() }()
		dbg.Printf("portaudio initialized")
	}

	enum := microphone.NewEnumerator(dbg, selectProbes(cfg)...)
	rec := recorder.New(cfg.Audio.RecordingsDir, dbg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case opts.list:
		printMicrophones(stdout, enum.List(ctx))
		return nil
	case opts.headless:
		duration := opts.duration
		if duration == 0 {
			duration = cfg.Audio.DefaultDurationSec
		}
		path, err := recordHeadless(ctx, enum, rec, opts.device, duration)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, path)
		return nil
	}

	tui.RegisterCustomThemes(cfg.CustomThemes)

	chimePlayer, err := chime.New(cfg.Audio.ChimeStart, cfg.Audio.ChimeStop, cfg.Audio.ChimeEnabled, dbg)
	if err != nil {
		return fmt.Errorf("create chime player: %w", err)
	}

	model := tui.NewModel(cfg, enum, rec, chimePlayer, dbg, opts.debug)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// When debug is enabled, redirect logger output into the TUI debug panel
	if opts.debug {
		dbg.SetOutput(tui.NewLogWriter(p))
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	rec.Stop()
	return nil
}

// selectProbes returns the default probe waterfall minus the probes the
// config disables.
func selectProbes(cfg *config.Config) []microphone.Probe {
	timeout := time.Duration(cfg.Probe.TimeoutSec) * time.Second
	var probes []microphone.Probe
	for _, p := range microphone.DefaultProbes(timeout) {
		if cfg.ProbeEnabled(p.Name()) {
			probes = append(probes, p)
		}
	}
	return probes
}

func printMicrophones(w io.Writer, mics []microphone.Microphone) {
	if len(mics) == 0 {
		fmt.Fprintln(w, "No microphones found")
		return
	}
	for _, m := range mics {
		index := "-"
		if m.Recordable() {
			index = fmt.Sprintf("%d", *m.Index)
		}
		detail := fmt.Sprintf("%s, %dch, %d Hz", m.Source, m.MaxChannels(), m.DefaultSampleRate())
		if !m.Recordable() {
			detail = m.Source + ", list only"
			if m.Class != "" {
				detail += ", class " + m.Class
			}
		}
		fmt.Fprintf(w, "[%s] %s (%s)\n", index, m.Name, detail)
	}
}

// findDevice returns the recordable microphone with the given PortAudio index.
func findDevice(mics []microphone.Microphone, index int) (microphone.Microphone, error) {
	for _, m := range mics {
		if m.Recordable() && *m.Index == index {
			return m, nil
		}
	}
	return microphone.Microphone{}, fmt.Errorf("device %d: %w", index, recorder.ErrDeviceNotFound)
}

type headlessRecorder interface {
	Record(ctx context.Context, deviceIndex, channels, sampleRate int, duration float64) (string, error)
}

type micLister interface {
	List(ctx context.Context) []microphone.Microphone
}

func recordHeadless(ctx context.Context, enum micLister, rec headlessRecorder, device int, duration float64) (string, error) {
	mic, err := findDevice(enum.List(ctx), device)
	if err != nil {
		return "", err
	}
	return rec.Record(ctx, *mic.Index, mic.MaxChannels(), mic.DefaultSampleRate(), duration)
}

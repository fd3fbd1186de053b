package tui

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Danondso/voicepad/internal/chime"
	"github.com/Danondso/voicepad/internal/clipboard"
	"github.com/Danondso/voicepad/internal/config"
	"github.com/Danondso/voicepad/internal/microphone"
)

// MicLister returns the currently available microphones.
type MicLister interface {
	List(ctx context.Context) []microphone.Microphone
}

// Recorder captures a clip from a device and writes it to disk.
type Recorder interface {
	Record(ctx context.Context, deviceIndex, channels, sampleRate int, duration float64) (string, error)
	Stop()
	AudioLevel() float64
}

// State represents the application state.
type State int

const (
	StateScanning State = iota
	StateIdle
	StateRecording
)

type focusArea int

const (
	focusList focusArea = iota
	focusDuration
)

// Status line texts.
const (
	statusSelectFirst     = "Please select a microphone first"
	statusInvalidDuration = "Invalid duration. Please enter a number."
	statusAlreadyRunning  = "Recording already in progress"
	statusStopped         = "Recording stopped"
	statusNothingToStop   = "No recording in progress"
	statusNothingToCopy   = "No recording to copy yet"
)

// Messages sent through the Bubble Tea update loop.

// MicsLoadedMsg carries the result of a device scan.
type MicsLoadedMsg struct {
	Mics []microphone.Microphone
}

// RecordingFinishedMsg carries the outcome of a Record call. Path is empty
// when Err is set.
type RecordingFinishedMsg struct {
	Path string
	Err  error
}

type copyResultMsg struct {
	Path string
	Err  error
}

type audioLevelTickMsg struct{}

// DebugEntry is a structured debug log entry.
type DebugEntry struct {
	Time     string // e.g. "11:27:53"
	Category string // e.g. "probe", "recorder", "chime"
	Message  string // the log message
}

// DebugLogMsg carries a structured debug log entry into the TUI.
type DebugLogMsg struct {
	Entry DebugEntry
}

const maxDebugLines = 50

// Model is the Bubble Tea model for the VoicePad TUI.
type Model struct {
	State        State
	Mics         []microphone.Microphone
	Cursor       int
	Selected     int // index into Mics, -1 when nothing is selected
	Status       string
	LastPath     string
	AudioLevel   float64
	Config       *config.Config
	Lister       MicLister
	Recorder     Recorder
	Chime        *chime.Player
	Logger       *log.Logger
	DebugMode    bool
	DebugEntries []DebugEntry
	ThemeName    string // display name of the active theme

	// CopyText writes to the system clipboard; replaced in tests.
	CopyText func(string) error

	duration      textinput.Model
	spinner       spinner.Model
	focus         focusArea
	themeKey      string
	stopRequested bool
	cancelRecord  context.CancelFunc // cancels the in-flight recordCmd
}

// NewModel creates a new TUI model.
func NewModel(cfg *config.Config, lister MicLister, rec Recorder, c *chime.Player, logger *log.Logger, debug bool) Model {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "seconds"
	ti.CharLimit = 8
	ti.Width = 8
	ti.SetValue(formatSeconds(cfg.Audio.DefaultDurationSec))

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	theme := LoadTheme(cfg.Theme)
	applyTheme(theme)

	return Model{
		State:     StateScanning,
		Selected:  -1,
		Config:    cfg,
		Lister:    lister,
		Recorder:  rec,
		Chime:     c,
		Logger:    logger,
		DebugMode: debug,
		ThemeName: theme.Name,
		themeKey:  theme.Key,
		CopyText:  clipboard.CopyText,
		duration:  ti,
		spinner:   sp,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.scanCmd()
}

// Update handles messages and transitions state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case MicsLoadedMsg:
		m.Mics = msg.Mics
		if m.State == StateScanning {
			m.State = StateIdle
		}
		m.Cursor = 0
		m.Selected = -1
		m.Logger.Printf("microphone scan: %d device(s)", len(m.Mics))
		return m, nil

	case RecordingFinishedMsg:
		if m.cancelRecord != nil {
			m.cancelRecord()
			m.cancelRecord = nil
		}
		m.State = StateIdle
		m.AudioLevel = 0
		switch {
		case msg.Err == nil:
			m.LastPath = msg.Path
			m.Status = "Recording saved to: " + msg.Path
			if m.Chime != nil {
				m.Chime.PlayStop()
			}
		case m.stopRequested:
			m.Status = statusStopped
		default:
			m.Status = "Recording failed: " + msg.Err.Error()
		}
		m.stopRequested = false
		return m, nil

	case copyResultMsg:
		if msg.Err != nil {
			m.Logger.Printf("clipboard: %v", msg.Err)
			m.Status = "Copy failed: " + msg.Err.Error()
		} else {
			m.Status = "Copied to clipboard: " + msg.Path
		}
		return m, nil

	case audioLevelTickMsg:
		if m.State == StateRecording && m.Recorder != nil {
			m.AudioLevel = m.Recorder.AudioLevel()
			return m, audioLevelTickCmd()
		}
		m.AudioLevel = 0
		return m, nil

	case spinner.TickMsg:
		if m.State != StateRecording {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DebugLogMsg:
		m.DebugEntries = append(m.DebugEntries, msg.Entry)
		if len(m.DebugEntries) > maxDebugLines {
			m.DebugEntries = m.DebugEntries[len(m.DebugEntries)-maxDebugLines:]
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}

	if m.focus == focusDuration {
		switch key {
		case "tab", "enter", "esc":
			m.focus = focusList
			m.duration.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.duration, cmd = m.duration.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m.quit()
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Mics)-1 {
			m.Cursor++
		}
	case "enter":
		if len(m.Mics) > 0 {
			m.Selected = m.Cursor
			m.Status = "Selected: " + m.Mics[m.Selected].Name
			m.Logger.Printf("microphone selected: %s", m.Mics[m.Selected])
		}
	case "tab":
		m.focus = focusDuration
		return m, m.duration.Focus()
	case "r":
		return m.startRecording()
	case "s":
		return m.stopRecording()
	case "c":
		if m.LastPath == "" {
			m.Status = statusNothingToCopy
			return m, nil
		}
		return m, copyCmd(m.CopyText, m.LastPath)
	case "t":
		theme := NextTheme(m.themeKey)
		applyTheme(theme)
		m.ThemeName = theme.Name
		m.themeKey = theme.Key
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.State == StateRecording {
		m.cancelRecording()
	}
	return m, tea.Quit
}

// cancelRecording cancels the recordCmd context, which covers a Record call
// that has not reached the recorder yet, and aborts an in-flight capture.
func (m Model) cancelRecording() {
	if m.cancelRecord != nil {
		m.cancelRecord()
	}
	if m.Recorder != nil {
		m.Recorder.Stop()
	}
}

// ParseDuration parses a recording length in seconds. It accepts any
// positive finite number.
func ParseDuration(s string) (float64, error) {
	d, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if !(d > 0) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("duration must be positive, got %v", d)
	}
	return d, nil
}

func (m Model) startRecording() (tea.Model, tea.Cmd) {
	if m.State == StateRecording {
		m.Status = statusAlreadyRunning
		return m, nil
	}
	if m.Selected < 0 || m.Selected >= len(m.Mics) {
		m.Status = statusSelectFirst
		return m, nil
	}
	d, err := ParseDuration(m.duration.Value())
	if err != nil {
		m.Status = statusInvalidDuration
		return m, nil
	}
	mic := m.Mics[m.Selected]
	if !mic.Recordable() {
		m.Status = fmt.Sprintf("%s %s", mic.Name, microphone.ErrNotRecordable)
		return m, nil
	}
	if m.Recorder == nil {
		m.Status = "Recording failed: no recorder available"
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelRecord = cancel
	m.State = StateRecording
	m.stopRequested = false
	m.Status = fmt.Sprintf("Recording for %s seconds...", formatSeconds(d))
	if m.Chime != nil {
		m.Chime.PlayStart()
	}
	return m, tea.Batch(recordCmd(ctx, m.Recorder, mic, d), m.spinner.Tick, audioLevelTickCmd())
}

func (m Model) stopRecording() (tea.Model, tea.Cmd) {
	if m.State != StateRecording {
		m.Status = statusNothingToStop
		return m, nil
	}
	m.stopRequested = true
	m.cancelRecording()
	return m, nil
}

func recordCmd(ctx context.Context, rec Recorder, mic microphone.Microphone, duration float64) tea.Cmd {
	index := *mic.Index
	channels := mic.MaxChannels()
	rate := mic.DefaultSampleRate()
	return func() tea.Msg {
		path, err := rec.Record(ctx, index, channels, rate, duration)
		return RecordingFinishedMsg{Path: path, Err: err}
	}
}

func copyCmd(copyText func(string) error, path string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{Path: path, Err: copyText(path)}
	}
}

func (m Model) scanCmd() tea.Cmd {
	lister := m.Lister
	// Each subprocess probe gets its own timeout; this bounds the whole waterfall.
	timeout := time.Duration(m.Config.Probe.TimeoutSec) * time.Second * scanProbeBudget
	return func() tea.Msg {
		if lister == nil {
			return MicsLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return MicsLoadedMsg{Mics: lister.List(ctx)}
	}
}

const scanProbeBudget = 4

const audioLevelTickInterval = 100 * time.Millisecond

func audioLevelTickCmd() tea.Cmd {
	return tea.Tick(audioLevelTickInterval, func(time.Time) tea.Msg {
		return audioLevelTickMsg{}
	})
}

func formatSeconds(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

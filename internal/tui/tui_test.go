package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Danondso/voicepad/internal/config"
	"github.com/Danondso/voicepad/internal/microphone"
)

type fakeLister struct {
	mics []microphone.Microphone
}

func (f *fakeLister) List(context.Context) []microphone.Microphone {
	return f.mics
}

type recordCall struct {
	index, channels, rate int
	duration              float64
}

type fakeRecorder struct {
	path  string
	err   error
	level float64

	mu    sync.Mutex
	calls []recordCall
	stops int
}

func (f *fakeRecorder) Record(ctx context.Context, index, channels, rate int, duration float64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordCall{index, channels, rate, duration})
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.err != nil {
		return "", f.err
	}
	return f.path, nil
}

func (f *fakeRecorder) Stop() {
	f.mu.Lock()
	f.stops++
	f.mu.Unlock()
}

func (f *fakeRecorder) AudioLevel() float64 {
	return f.level
}

func idx(i int) *int { return &i }

var testMics = []microphone.Microphone{
	{Name: "Built-in Microphone", Index: idx(0), Channels: 1, SampleRate: 48000, Source: microphone.SourcePortAudio},
	{Name: "USB Audio Interface", Index: idx(3), Channels: 2, SampleRate: 44100, Source: microphone.SourcePortAudio},
	{Name: "Monitor of Speakers", Index: idx(1), Class: "monitor", Source: microphone.SourcePactl},
}

func newTestModel() (Model, *fakeRecorder) {
	cfg := config.Default()
	rec := &fakeRecorder{path: "recordings/recording_20260314_092653.wav"}
	m := NewModel(cfg, &fakeLister{mics: testMics}, rec, nil, log.New(io.Discard, "", 0), false)
	return m, rec
}

// loadedModel returns a model that has finished its initial scan.
func loadedModel(t *testing.T) (Model, *fakeRecorder) {
	t.Helper()
	m, rec := newTestModel()
	updated, _ := m.Update(MicsLoadedMsg{Mics: testMics})
	return updated.(Model), rec
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m, cmd
}

func TestInitialState(t *testing.T) {
	m, _ := newTestModel()
	if m.State != StateScanning {
		t.Errorf("expected StateScanning, got %d", m.State)
	}
	if m.Selected != -1 {
		t.Errorf("expected no selection, got %d", m.Selected)
	}
	if m.duration.Value() != "5" {
		t.Errorf("expected default duration '5', got %q", m.duration.Value())
	}
	if m.LastPath != "" {
		t.Error("expected empty last path")
	}
}

func TestInitScansMicrophones(t *testing.T) {
	m, _ := newTestModel()
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected scan command")
	}
	msg, ok := cmd().(MicsLoadedMsg)
	if !ok {
		t.Fatalf("expected MicsLoadedMsg, got %T", msg)
	}
	if len(msg.Mics) != len(testMics) {
		t.Fatalf("expected %d mics, got %d", len(testMics), len(msg.Mics))
	}

	updated, _ := m.Update(msg)
	model := updated.(Model)
	if model.State != StateIdle {
		t.Errorf("expected StateIdle after scan, got %d", model.State)
	}
}

func TestScanWithoutLister(t *testing.T) {
	m := NewModel(config.Default(), nil, nil, nil, nil, false)
	msg, ok := m.Init()().(MicsLoadedMsg)
	if !ok {
		t.Fatal("expected MicsLoadedMsg")
	}
	if len(msg.Mics) != 0 {
		t.Errorf("expected no mics, got %d", len(msg.Mics))
	}
}

func TestCursorMovement(t *testing.T) {
	m, _ := loadedModel(t)

	m, _ = press(t, m, "up")
	if m.Cursor != 0 {
		t.Errorf("expected cursor clamped at 0, got %d", m.Cursor)
	}
	m, _ = press(t, m, "down", "j")
	if m.Cursor != 2 {
		t.Errorf("expected cursor 2, got %d", m.Cursor)
	}
	m, _ = press(t, m, "down")
	if m.Cursor != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", m.Cursor)
	}
	m, _ = press(t, m, "k")
	if m.Cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.Cursor)
	}
}

func TestEnterSelectsMicrophone(t *testing.T) {
	m, _ := loadedModel(t)
	m, _ = press(t, m, "down", "enter")
	if m.Selected != 1 {
		t.Errorf("expected selection 1, got %d", m.Selected)
	}
	if m.Status != "Selected: USB Audio Interface" {
		t.Errorf("unexpected status %q", m.Status)
	}
}

func TestRecordValidation(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		duration string
		want     string
	}{
		{"no selection", nil, "5", "Please select a microphone first"},
		{"non-numeric duration", []string{"enter"}, "abc", "Invalid duration. Please enter a number."},
		{"empty duration", []string{"enter"}, "", "Invalid duration. Please enter a number."},
		{"zero duration", []string{"enter"}, "0", "Invalid duration. Please enter a number."},
		{"negative duration", []string{"enter"}, "-1", "Invalid duration. Please enter a number."},
		{"list-only device", []string{"down", "down", "enter"}, "5", "Monitor of Speakers cannot be opened for recording"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, rec := loadedModel(t)
			m, _ = press(t, m, tt.keys...)
			m.duration.SetValue(tt.duration)

			m, cmd := press(t, m, "r")
			if m.Status != tt.want {
				t.Errorf("expected status %q, got %q", tt.want, m.Status)
			}
			if m.State != StateIdle {
				t.Errorf("expected StateIdle, got %d", m.State)
			}
			if cmd != nil {
				t.Error("expected no command")
			}
			if len(rec.calls) != 0 {
				t.Error("expected recorder not to be called")
			}
		})
	}
}

func TestRecordStartsRecording(t *testing.T) {
	m, _ := loadedModel(t)
	m, _ = press(t, m, "down", "enter")
	m.duration.SetValue("2.5")

	m, cmd := press(t, m, "r")
	if m.State != StateRecording {
		t.Errorf("expected StateRecording, got %d", m.State)
	}
	if m.Status != "Recording for 2.5 seconds..." {
		t.Errorf("unexpected status %q", m.Status)
	}
	if cmd == nil {
		t.Error("expected record command")
	}
}

func TestRecordWhileRecording(t *testing.T) {
	m, _ := loadedModel(t)
	m, _ = press(t, m, "enter", "r")
	m, cmd := press(t, m, "r")
	if m.Status != "Recording already in progress" {
		t.Errorf("unexpected status %q", m.Status)
	}
	if cmd != nil {
		t.Error("expected no command for second record")
	}
}

func TestRecordCmdUsesDeviceParameters(t *testing.T) {
	rec := &fakeRecorder{path: "recordings/a.wav"}
	msg := recordCmd(context.Background(), rec, testMics[1], 2.0)()

	finished, ok := msg.(RecordingFinishedMsg)
	if !ok {
		t.Fatalf("expected RecordingFinishedMsg, got %T", msg)
	}
	if finished.Path != "recordings/a.wav" || finished.Err != nil {
		t.Errorf("unexpected result %+v", finished)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected one Record call, got %d", len(rec.calls))
	}
	want := recordCall{index: 3, channels: 2, rate: 44100, duration: 2.0}
	if rec.calls[0] != want {
		t.Errorf("expected %+v, got %+v", want, rec.calls[0])
	}
}

func TestRecordCmdDefaultsUnknownFormat(t *testing.T) {
	rec := &fakeRecorder{}
	mic := microphone.Microphone{Name: "Mystery", Index: idx(7), Source: microphone.SourcePortAudio}
	recordCmd(context.Background(), rec, mic, 1)()
	want := recordCall{index: 7, channels: 1, rate: 48000, duration: 1}
	if rec.calls[0] != want {
		t.Errorf("expected %+v, got %+v", want, rec.calls[0])
	}
}

func TestRecordingFinished(t *testing.T) {
	tests := []struct {
		name     string
		msg      RecordingFinishedMsg
		stopped  bool
		status   string
		lastPath string
	}{
		{"saved", RecordingFinishedMsg{Path: "recordings/x.wav"}, false, "Recording saved to: recordings/x.wav", "recordings/x.wav"},
		{"failed", RecordingFinishedMsg{Err: errors.New("device not found")}, false, "Recording failed: device not found", ""},
		{"stopped", RecordingFinishedMsg{Err: context.Canceled}, true, "Recording stopped", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := loadedModel(t)
			m.State = StateRecording
			m.AudioLevel = 0.7
			m.stopRequested = tt.stopped

			updated, _ := m.Update(tt.msg)
			model := updated.(Model)
			if model.State != StateIdle {
				t.Errorf("expected StateIdle, got %d", model.State)
			}
			if model.Status != tt.status {
				t.Errorf("expected status %q, got %q", tt.status, model.Status)
			}
			if model.LastPath != tt.lastPath {
				t.Errorf("expected last path %q, got %q", tt.lastPath, model.LastPath)
			}
			if model.AudioLevel != 0 {
				t.Errorf("expected AudioLevel reset, got %f", model.AudioLevel)
			}
			if model.stopRequested {
				t.Error("expected stop flag cleared")
			}
		})
	}
}

func TestStopWhenIdle(t *testing.T) {
	m, rec := loadedModel(t)
	m, _ = press(t, m, "s")
	if m.Status != "No recording in progress" {
		t.Errorf("unexpected status %q", m.Status)
	}
	if rec.stops != 0 {
		t.Errorf("expected recorder not stopped, got %d stops", rec.stops)
	}
}

func TestStopWhileRecording(t *testing.T) {
	m, rec := loadedModel(t)
	m, _ = press(t, m, "enter", "r", "s")
	if rec.stops != 1 {
		t.Errorf("expected 1 stop, got %d", rec.stops)
	}
	updated, _ := m.Update(RecordingFinishedMsg{Err: context.Canceled})
	model := updated.(Model)
	if model.Status != "Recording stopped" {
		t.Errorf("unexpected status %q", model.Status)
	}
}

func TestStopBeforeRecorderStarts(t *testing.T) {
	m, rec := loadedModel(t)
	m, cmd := press(t, m, "enter", "r")
	if cmd == nil {
		t.Fatal("expected record command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok || len(batch) == 0 {
		t.Fatalf("expected batch with record command, got %T", batch)
	}

	// Stop lands before the record command has run.
	m, _ = press(t, m, "s")

	msg := batch[0]()
	finished, ok := msg.(RecordingFinishedMsg)
	if !ok {
		t.Fatalf("expected RecordingFinishedMsg, got %T", msg)
	}
	if !errors.Is(finished.Err, context.Canceled) {
		t.Errorf("expected cancelled recording, got %v", finished.Err)
	}
	updated, _ := m.Update(finished)
	model := updated.(Model)
	if model.Status != "Recording stopped" {
		t.Errorf("unexpected status %q", model.Status)
	}
	if model.LastPath != "" {
		t.Errorf("expected no saved path, got %q", model.LastPath)
	}
	if len(rec.calls) != 1 {
		t.Errorf("expected one Record call, got %d", len(rec.calls))
	}
}

func TestDurationFieldCapturesKeys(t *testing.T) {
	m, rec := loadedModel(t)
	m, _ = press(t, m, "enter", "tab")
	if m.focus != focusDuration {
		t.Fatal("expected duration focus after tab")
	}

	// "r" is typed into the field rather than starting a recording.
	m, _ = press(t, m, "r")
	if m.State == StateRecording {
		t.Error("expected keys to go to the duration field")
	}
	if m.duration.Value() != "5r" {
		t.Errorf("expected duration '5r', got %q", m.duration.Value())
	}

	m, _ = press(t, m, "esc", "r")
	if m.Status != "Invalid duration. Please enter a number." {
		t.Errorf("unexpected status %q", m.Status)
	}
	if len(rec.calls) != 0 {
		t.Error("expected recorder not to be called")
	}
}

func TestCopyLastPath(t *testing.T) {
	m, _ := loadedModel(t)
	var copied string
	m.CopyText = func(s string) error {
		copied = s
		return nil
	}

	m, cmd := press(t, m, "c")
	if cmd != nil || m.Status != "No recording to copy yet" {
		t.Errorf("expected nothing to copy, got status %q", m.Status)
	}

	m.LastPath = "recordings/x.wav"
	m, cmd = press(t, m, "c")
	if cmd == nil {
		t.Fatal("expected copy command")
	}
	updated, _ := m.Update(cmd())
	model := updated.(Model)
	if copied != "recordings/x.wav" {
		t.Errorf("expected path copied, got %q", copied)
	}
	if model.Status != "Copied to clipboard: recordings/x.wav" {
		t.Errorf("unexpected status %q", model.Status)
	}

	model.CopyText = func(string) error { return errors.New("no clipboard") }
	model, cmd = press(t, model, "c")
	updated, _ = model.Update(cmd())
	if got := updated.(Model).Status; got != "Copy failed: no clipboard" {
		t.Errorf("unexpected status %q", got)
	}
}

func TestThemeCycle(t *testing.T) {
	m, _ := loadedModel(t)
	if m.ThemeName != "Catppuccin Mocha" {
		t.Fatalf("expected Catppuccin Mocha, got %q", m.ThemeName)
	}
	m, _ = press(t, m, "t")
	if m.ThemeName != "Catppuccin Latte" {
		t.Errorf("expected Catppuccin Latte, got %q", m.ThemeName)
	}
	m, _ = press(t, m, "t")
	if m.ThemeName != "Monochrome" {
		t.Errorf("expected Monochrome, got %q", m.ThemeName)
	}
	applyTheme(LoadTheme(DefaultTheme))
}

func TestLoadThemeFallsBackToDefault(t *testing.T) {
	if got := LoadTheme("no-such-theme").Key; got != DefaultTheme {
		t.Errorf("expected %s, got %s", DefaultTheme, got)
	}
	if got := LoadTheme("Catppuccin-Latte").Key; got != "catppuccin-latte" {
		t.Errorf("expected case-insensitive lookup, got %s", got)
	}
}

func TestRegisterCustomThemes(t *testing.T) {
	before := len(ThemeNames())
	t.Cleanup(func() {
		delete(themes, "nord test")
		themeOrder = themeOrder[:before]
	})
	RegisterCustomThemes([]config.CustomTheme{
		{Name: "Nord Test", Primary: "#88C0D0", Background: "#2E3440"},
		{Name: "catppuccin-mocha"}, // collides with a built-in
		{Name: ""},
	})
	names := ThemeNames()
	if len(names) != before+1 {
		t.Fatalf("expected one theme added, got %v", names)
	}
	if names[len(names)-1] != "nord test" {
		t.Errorf("expected custom theme last in cycle, got %v", names)
	}
	if LoadTheme("Nord Test").Primary != "#88C0D0" {
		t.Error("expected custom palette to be loadable")
	}
	if LoadTheme(DefaultTheme).Name != "Catppuccin Mocha" {
		t.Error("expected built-in theme to be untouched")
	}
}

func TestQuit(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m, rec := loadedModel(t)
			_, cmd := press(t, m, key)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
			if rec.stops != 0 {
				t.Error("expected no stop when idle")
			}
		})
	}
}

func TestQuitStopsActiveRecording(t *testing.T) {
	m, rec := loadedModel(t)
	m, _ = press(t, m, "enter", "r")
	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if rec.stops != 1 {
		t.Errorf("expected recording stopped on quit, got %d stops", rec.stops)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"5", 5, true},
		{" 2.5 ", 2.5, true},
		{"0.1", 0.1, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseDuration(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestViewContainsTitle(t *testing.T) {
	m, _ := newTestModel()
	view := m.View()
	if !strings.Contains(view, "VOICEPAD") {
		t.Error("expected view to contain 'VOICEPAD'")
	}
	if !strings.Contains(view, "Scanning for microphones...") {
		t.Error("expected scanning message before the first scan")
	}
}

func TestViewListsMicrophones(t *testing.T) {
	m, _ := loadedModel(t)
	view := m.View()
	for _, mic := range testMics {
		if !strings.Contains(view, mic.Name) {
			t.Errorf("expected view to list %q", mic.Name)
		}
	}
	if !strings.Contains(view, "(list only)") {
		t.Error("expected list-only marker for pactl entry")
	}
	if !strings.Contains(view, "Idle") {
		t.Error("expected view to contain 'Idle'")
	}
}

func TestViewNoMicrophones(t *testing.T) {
	m, _ := newTestModel()
	updated, _ := m.Update(MicsLoadedMsg{Mics: []microphone.Microphone{}})
	view := updated.(Model).View()
	if !strings.Contains(view, "No microphones found") {
		t.Error("expected empty-list message")
	}
}

func TestViewTruncatesLongNamesOnCharacterBoundaries(t *testing.T) {
	m, _ := newTestModel()
	long := "Réseau de microphones numériques intégré à l'écran (Périphérique audio haute définition)"
	updated, _ := m.Update(MicsLoadedMsg{Mics: []microphone.Microphone{
		{Name: long, Index: idx(0), Source: microphone.SourcePortAudio},
	}})
	view := updated.(Model).View()
	if !utf8.ValidString(view) {
		t.Error("expected view to be valid UTF-8")
	}
	if !strings.Contains(view, "...") {
		t.Error("expected long name to be truncated")
	}
	if strings.Contains(view, long) {
		t.Error("expected full name not to be rendered")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("expected untouched string, got %q", got)
	}
	got := truncate("ééééééééééé", 6)
	if got != "ééé..." {
		t.Errorf("expected 'ééé...', got %q", got)
	}
}

func TestViewShowsLastPath(t *testing.T) {
	m, _ := loadedModel(t)
	m.LastPath = "recordings/recording_20260314_092653.wav"
	view := m.View()
	if !strings.Contains(view, "recording_20260314_092653.wav") {
		t.Error("expected view to contain last recording path")
	}
}

func TestDebugLogMsgAddsEntry(t *testing.T) {
	m, _ := newTestModel()
	entry := DebugEntry{Time: "11:00:00", Category: "probe", Message: "hello"}
	updated, _ := m.Update(DebugLogMsg{Entry: entry})
	model := updated.(Model)
	if len(model.DebugEntries) != 1 {
		t.Fatalf("expected 1 debug entry, got %d", len(model.DebugEntries))
	}
	if model.DebugEntries[0].Message != "hello" {
		t.Errorf("expected 'hello', got %q", model.DebugEntries[0].Message)
	}
}

func TestDebugLogTruncatesToMax(t *testing.T) {
	m, _ := newTestModel()
	for i := 0; i < maxDebugLines+10; i++ {
		entry := DebugEntry{Time: "11:00:00", Category: "debug", Message: fmt.Sprintf("line %d", i)}
		updated, _ := m.Update(DebugLogMsg{Entry: entry})
		m = updated.(Model)
	}
	if len(m.DebugEntries) != maxDebugLines {
		t.Errorf("expected %d debug entries, got %d", maxDebugLines, len(m.DebugEntries))
	}
	if m.DebugEntries[0].Message != "line 10" {
		t.Errorf("expected oldest message to be 'line 10', got %q", m.DebugEntries[0].Message)
	}
}

func TestViewShowsDebugPanel(t *testing.T) {
	m, _ := newTestModel()
	entry := DebugEntry{Time: "11:00:00", Category: "probe", Message: "test message"}
	updated, _ := m.Update(DebugLogMsg{Entry: entry})
	view := updated.(Model).View()
	if !strings.Contains(view, "Debug") {
		t.Error("expected view to contain 'Debug' panel title")
	}
	if !strings.Contains(view, "test message") {
		t.Error("expected view to contain debug message")
	}
}

func TestViewHidesDebugPanelWhenEmpty(t *testing.T) {
	m, _ := newTestModel()
	if strings.Contains(m.View(), "Debug") {
		t.Error("expected view to NOT contain 'Debug' panel when no debug lines")
	}
}

func TestParseLineStructured(t *testing.T) {
	entry := parseLine("[DEBUG] 11:27:53.777842 probe pactl found 2 microphone(s)")
	if entry.Time != "11:27:53.777842" {
		t.Errorf("expected time '11:27:53.777842', got %q", entry.Time)
	}
	if entry.Category != "probe" {
		t.Errorf("expected category 'probe', got %q", entry.Category)
	}
	if entry.Message != "probe pactl found 2 microphone(s)" {
		t.Errorf("unexpected message %q", entry.Message)
	}
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"recording saved to recordings/a.wav (2s)", "recorder"},
		{"recorder stop: nothing to stop", "recorder"},
		{"microphone selected: Built-in", "device"},
		{"chime: speaker init error", "chime"},
		{"clipboard: wl-copy failed", "clipboard"},
		{"portaudio initialized", "audio"},
		{"something else", "debug"},
	}
	for _, tt := range tests {
		if got, _ := inferCategory(tt.msg); got != tt.want {
			t.Errorf("inferCategory(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestAudioLevelTickUpdatesLevel(t *testing.T) {
	m, rec := loadedModel(t)
	rec.level = 0.42
	m.State = StateRecording
	updated, cmd := m.Update(audioLevelTickMsg{})
	model := updated.(Model)
	if model.AudioLevel != 0.42 {
		t.Errorf("expected AudioLevel 0.42, got %f", model.AudioLevel)
	}
	if cmd == nil {
		t.Error("expected another tick command while recording")
	}
}

func TestAudioLevelTickResetsWhenNotRecording(t *testing.T) {
	m, rec := loadedModel(t)
	rec.level = 0.42
	m.AudioLevel = 0.5
	updated, cmd := m.Update(audioLevelTickMsg{})
	model := updated.(Model)
	if model.AudioLevel != 0 {
		t.Errorf("expected AudioLevel 0, got %f", model.AudioLevel)
	}
	if cmd != nil {
		t.Error("expected no tick command when not recording")
	}
}

func TestVisualizerAppearsWhenRecording(t *testing.T) {
	m, _ := loadedModel(t)
	m.State = StateRecording
	m.AudioLevel = 0.5
	view := m.View()
	if !strings.Contains(view, "█") {
		t.Error("expected view to contain visualizer bar when recording")
	}
	if !strings.Contains(view, "Recording...") {
		t.Error("expected recording badge")
	}
}

func TestVisualizerHiddenWhenIdle(t *testing.T) {
	m, _ := loadedModel(t)
	if strings.Contains(m.View(), "░░░░░░░░░░░░░░░░░░░░") {
		t.Error("expected view to NOT contain full visualizer bar when idle")
	}
}

func TestStatusBarAppearsInView(t *testing.T) {
	m, _ := loadedModel(t)
	view := m.View()
	if !strings.Contains(view, "Mics:") {
		t.Error("expected view to contain 'Mics:' status indicator")
	}
	if !strings.Contains(view, "via portaudio") {
		t.Error("expected view to name the probe that found the devices")
	}
}

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// panelWidth is the total outer width of the main panel.
// borderStyle has: border (1+1) = 2, padding (2+2) = 4, total chrome = 6.
// Width() in lipgloss sets width including padding but excluding border.
// So we pass panelWidth - 2 (border) to Width(), and the actual text area
// is panelWidth - 6 (border + padding).
const panelWidth = 80
const panelWidthForStyle = panelWidth - 2 // passed to borderStyle.Width()
const panelContentWidth = panelWidth - 6  // actual usable text area

// micListMaxLines caps how many devices are shown around the cursor.
const micListMaxLines = 8

// micNameWidth leaves room for the pointer, marker and format detail.
const micNameWidth = panelContentWidth - 16

// truncate shortens s to at most width terminal cells, ending in "...".
// It cuts on character boundaries, so multi-byte names stay valid UTF-8.
func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "...")
}

// View renders the TUI.
func (m Model) View() string {
	var b strings.Builder

	// Title, centered with color bars extending to panel edges
	titleText := "  VOICEPAD  "
	barTotal := panelContentWidth - len(titleText)
	barLeft := barTotal / 2
	barRight := barTotal - barLeft
	title := strings.Repeat("▓", barLeft) + titleText + strings.Repeat("▓", barRight)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Microphones:"))
	b.WriteString("\n")
	b.WriteString(m.renderMicList())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Duration (s): "))
	b.WriteString(m.duration.View())
	b.WriteString("\n\n")

	// Status / Visualizer
	b.WriteString(labelStyle.Render("Status:  "))
	b.WriteString(m.renderBadge())
	if m.State == StateRecording {
		b.WriteString(bodyStyle.Render("  "))
		b.WriteString(m.renderVisualizer())
	}
	b.WriteString("\n")
	if m.Status != "" {
		b.WriteString(m.renderStatusLine())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Last recording:"))
	b.WriteString("\n")
	if m.LastPath != "" {
		b.WriteString(pathStyle.Width(panelContentWidth).Render(m.LastPath))
	} else {
		b.WriteString(bodyStyle.Render("(none yet)"))
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render(m.helpText()))
	b.WriteString("\n")
	b.WriteString(quitStyle.Render("Press q to quit"))

	// Debug sub-panel (inside main panel)
	if m.DebugMode || len(m.DebugEntries) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderDebugPanel())
	}

	return borderStyle.Width(panelWidthForStyle).Render(b.String())
}

func (m Model) helpText() string {
	if m.focus == focusDuration {
		return "type seconds • enter/tab/esc: back to list"
	}
	return "↑/↓ move • enter select • tab duration • r record • s stop • c copy path • t theme"
}

func (m Model) renderMicList() string {
	if m.State == StateScanning {
		return bodyStyle.Render("Scanning for microphones...")
	}
	if len(m.Mics) == 0 {
		return statusBadStyle.Render("No microphones found")
	}

	start := 0
	if m.Cursor >= micListMaxLines {
		start = m.Cursor - micListMaxLines + 1
	}
	end := start + micListMaxLines
	if end > len(m.Mics) {
		end = len(m.Mics)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		mic := m.Mics[i]

		pointer := "  "
		if i == m.Cursor && m.focus == focusList {
			pointer = cursorStyle.Render("> ")
		} else {
			pointer = bodyStyle.Render(pointer)
		}

		name := truncate(mic.Name, micNameWidth)
		var line string
		switch {
		case i == m.Selected:
			line = selectedStyle.Render("● " + name)
		case !mic.Recordable():
			line = quitStyle.Render("  " + name)
		default:
			line = bodyStyle.Render("  " + name)
		}

		detail := fmt.Sprintf("  %dch %dHz", mic.MaxChannels(), mic.DefaultSampleRate())
		if !mic.Recordable() {
			detail = "  (list only)"
		}
		lines = append(lines, pointer+line+quitStyle.Render(detail))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusLine() string {
	switch {
	case strings.HasPrefix(m.Status, "Recording saved"),
		strings.HasPrefix(m.Status, "Selected"),
		strings.HasPrefix(m.Status, "Copied"):
		return statusOkStyle.Render(m.Status)
	case strings.HasPrefix(m.Status, "Recording for"),
		m.Status == statusStopped:
		return bodyStyle.Render(m.Status)
	default:
		return statusBadStyle.Render(m.Status)
	}
}

const debugPanelMaxLines = 5

// Debug table column widths. Row content must fit within panelContentWidth.
const (
	colTimeWidth     = 15
	colCategoryWidth = 10
	colSepWidth      = 3 // " │ "
	colMsgWidth      = panelContentWidth - colTimeWidth - colCategoryWidth - colSepWidth*2
)

func (m Model) renderDebugPanel() string {
	sep := debugSepStyle.Render(" │ ")
	rule := debugRuleStyle.Render(strings.Repeat("─", panelContentWidth))

	var db strings.Builder

	// Title + divider
	db.WriteString(debugTitleStyle.Render("Debug"))
	db.WriteString("\n")
	db.WriteString(rule)
	db.WriteString("\n")

	// Header row
	db.WriteString(
		debugHeaderStyle.Width(colTimeWidth).Render("TIME") +
			sep +
			debugHeaderStyle.Width(colCategoryWidth).Render("TYPE") +
			sep +
			debugHeaderStyle.Width(colMsgWidth).Render("MESSAGE"))
	db.WriteString("\n")
	db.WriteString(rule)

	// Data rows
	entries := m.DebugEntries
	if len(entries) > debugPanelMaxLines {
		entries = entries[len(entries)-debugPanelMaxLines:]
	}
	for _, entry := range entries {
		timeStr := ansi.Truncate(entry.Time, colTimeWidth, "")
		cat := ansi.Truncate(entry.Category, colCategoryWidth, "")
		msg := truncate(entry.Message, colMsgWidth)

		db.WriteString("\n")
		db.WriteString(
			debugTimeStyle.Width(colTimeWidth).Render(timeStr) +
				sep +
				debugCategoryStyle.Width(colCategoryWidth).Render(cat) +
				sep +
				debugMsgStyle.Width(colMsgWidth).Render(msg))
	}

	return db.String()
}

const visualizerWidth = 20

func (m Model) renderVisualizer() string {
	scaled := math.Sqrt(m.AudioLevel)
	filled := int(math.Round(scaled * float64(visualizerWidth)))
	if filled > visualizerWidth {
		filled = visualizerWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", visualizerWidth-filled)
	return visualizerLabelStyle.Render("Mic  ") + visualizerStyle.Render(bar)
}

func (m Model) renderStatusBar() string {
	if m.State == StateScanning {
		return quitStyle.Render("Mics: ...  Theme: ") + quitStyle.Render(m.ThemeName)
	}
	var mics string
	if len(m.Mics) > 0 {
		mics = statusOkStyle.Render(fmt.Sprintf("%d", len(m.Mics)))
		mics += quitStyle.Render(" (via " + m.Mics[0].Source + ")")
	} else {
		mics = statusBadStyle.Render("✗")
	}
	dir := quitStyle.Render(m.Config.Audio.RecordingsDir)
	return quitStyle.Render("Mics: ") + mics + quitStyle.Render("  Theme: "+m.ThemeName) + quitStyle.Render("  Dir: ") + dir
}

func (m Model) renderBadge() string {
	switch m.State {
	case StateScanning:
		return scanningBadge.Render("● Scanning...")
	case StateRecording:
		return recordingBadge.Render(m.spinner.View() + " Recording...")
	default:
		return idleBadge.Render("● Idle")
	}
}

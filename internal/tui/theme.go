package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Danondso/voicepad/internal/config"
)

// DefaultTheme is used when the configured theme is unknown.
const DefaultTheme = "catppuccin-mocha"

// Theme is a named palette. Each role maps to a set of panel elements.
type Theme struct {
	Key        string // lookup key, lower case
	Name       string // shown in the status bar
	Primary    lipgloss.Color // title, cursor, recording badge, meter
	Secondary  lipgloss.Color // labels, help line, border
	Accent     lipgloss.Color // selected microphone, saved path
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color // scanning badge, debug category
	Background lipgloss.Color
	Text       lipgloss.Color
	Dimmed     lipgloss.Color // list-only devices, hints, debug rows
	Separator  lipgloss.Color
}

var builtinThemes = []Theme{
	{
		Key:        "catppuccin-mocha",
		Name:       "Catppuccin Mocha",
		Primary:    "#CBA6F7", // mauve
		Secondary:  "#89B4FA", // blue
		Accent:     "#F5C2E7", // pink
		Error:      "#F38BA8",
		Success:    "#A6E3A1",
		Warning:    "#FAB387",
		Background: "#1E1E2E",
		Text:       "#CDD6F4",
		Dimmed:     "#6C7086",
		Separator:  "#45475A",
	},
	{
		Key:        "catppuccin-latte",
		Name:       "Catppuccin Latte",
		Primary:    "#8839EF",
		Secondary:  "#1E66F5",
		Accent:     "#EA76CB",
		Error:      "#D20F39",
		Success:    "#40A02B",
		Warning:    "#FE640B",
		Background: "#EFF1F5",
		Text:       "#4C4F69",
		Dimmed:     "#9CA0B0",
		Separator:  "#BCC0CC",
	},
	{
		Key:        "monochrome",
		Name:       "Monochrome",
		Primary:    "#FFFFFF",
		Secondary:  "#CCCCCC",
		Accent:     "#AAAAAA",
		Error:      "#FF0000",
		Success:    "#FFFFFF",
		Warning:    "#CCCCCC",
		Background: "#000000",
		Text:       "#FFFFFF",
		Dimmed:     "#888888",
		Separator:  "#444444",
	},
}

// themes and themeOrder start with the built-ins; RegisterCustomThemes
// appends to both.
var (
	themes     = map[string]Theme{}
	themeOrder []string
)

func init() {
	for _, t := range builtinThemes {
		themes[t.Key] = t
		themeOrder = append(themeOrder, t.Key)
	}
	applyTheme(themes[DefaultTheme])
}

// ThemeNames returns the keys of all available themes in cycle order.
func ThemeNames() []string {
	return themeOrder
}

// LoadTheme returns the theme with the given key (case-insensitive),
// falling back to DefaultTheme.
func LoadTheme(key string) Theme {
	if t, ok := themes[strings.ToLower(key)]; ok {
		return t
	}
	return themes[DefaultTheme]
}

// NextTheme returns the theme after key in the cycle order.
func NextTheme(key string) Theme {
	key = strings.ToLower(key)
	for i, k := range themeOrder {
		if k == key {
			return themes[themeOrder[(i+1)%len(themeOrder)]]
		}
	}
	return themes[themeOrder[0]]
}

// RegisterCustomThemes adds config-defined palettes to the cycle. Entries
// with an empty name or a key that already exists are skipped.
func RegisterCustomThemes(custom []config.CustomTheme) {
	for _, ct := range custom {
		key := strings.ToLower(ct.Name)
		if key == "" {
			continue
		}
		if _, exists := themes[key]; exists {
			continue
		}
		themes[key] = Theme{
			Key:        key,
			Name:       ct.Name,
			Primary:    lipgloss.Color(ct.Primary),
			Secondary:  lipgloss.Color(ct.Secondary),
			Accent:     lipgloss.Color(ct.Accent),
			Error:      lipgloss.Color(ct.Error),
			Success:    lipgloss.Color(ct.Success),
			Warning:    lipgloss.Color(ct.Warning),
			Background: lipgloss.Color(ct.Background),
			Text:       lipgloss.Color(ct.Text),
			Dimmed:     lipgloss.Color(ct.Dimmed),
			Separator:  lipgloss.Color(ct.Separator),
		}
		themeOrder = append(themeOrder, key)
	}
}

// Panel styles, rebuilt by applyTheme.
var (
	titleStyle, borderStyle, labelStyle, bodyStyle lipgloss.Style
	pathStyle, helpStyle, quitStyle                lipgloss.Style
	cursorStyle, selectedStyle                     lipgloss.Style
	idleBadge, recordingBadge, scanningBadge       lipgloss.Style
	statusOkStyle, statusBadStyle                  lipgloss.Style
	visualizerStyle, visualizerLabelStyle          lipgloss.Style

	debugTitleStyle, debugRuleStyle, debugHeaderStyle lipgloss.Style
	debugTimeStyle, debugCategoryStyle, debugMsgStyle lipgloss.Style
	debugSepStyle                                     lipgloss.Style
)

// applyTheme rebuilds every panel style from t. All styles share the panel
// background so the border box renders as one block.
func applyTheme(t Theme) {
	on := func(fg lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(fg).Background(t.Background)
	}

	titleStyle = on(t.Primary).Bold(true).MarginBottom(1)
	borderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(1, 2).
		Background(t.Background)
	labelStyle = on(t.Secondary).Bold(true)
	bodyStyle = on(t.Text)

	pathStyle = on(t.Accent).Italic(true)
	helpStyle = on(t.Secondary)
	quitStyle = on(t.Dimmed)

	cursorStyle = on(t.Primary).Bold(true)
	selectedStyle = on(t.Accent).Bold(true)

	idleBadge = on(t.Success).Bold(true)
	recordingBadge = on(t.Primary).Bold(true)
	scanningBadge = on(t.Warning).Bold(true)
	statusOkStyle = on(t.Success).Bold(true)
	statusBadStyle = on(t.Error).Bold(true)

	visualizerStyle = on(t.Primary)
	visualizerLabelStyle = on(t.Dimmed)

	debugTitleStyle = on(t.Dimmed).Bold(true)
	debugRuleStyle = on(t.Dimmed)
	debugHeaderStyle = on(t.Dimmed).Bold(true)
	debugTimeStyle = on(t.Dimmed)
	debugCategoryStyle = on(t.Warning)
	debugMsgStyle = on(t.Dimmed)
	debugSepStyle = on(t.Separator)
}

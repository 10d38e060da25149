package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mmed-hajnasr/do-me/internal/config"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds, so the
// palette is built from lipgloss.AdaptiveColor and faint text is only used on dark
// backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// theme holds every style the components draw with.
type theme struct {
	paneBorder        lipgloss.Style
	paneBorderFocused lipgloss.Style
	title             lipgloss.Style
	titleFocused      lipgloss.Style
	row               lipgloss.Style
	selected          lipgloss.Style
	selectedBlurred   lipgloss.Style
	completed         lipgloss.Style
	conflict          lipgloss.Style
	muted             lipgloss.Style
	input             lipgloss.Style
	popup             lipgloss.Style
	statusError       lipgloss.Style
	priority          [5]lipgloss.Style
}

// pick returns the configured color, or def when none is set.
func pick(configured string, def lipgloss.TerminalColor) lipgloss.TerminalColor {
	if strings.TrimSpace(configured) != "" {
		return lipgloss.Color(strings.TrimSpace(configured))
	}
	return def
}

func newTheme(s config.Styles) theme {
	accent := pick(s.Accent, ac("27", "62"))
	selectedBg := pick(s.Selected, ac("#e9e9e9", "#262626"))
	highlight := pick(s.Highlight, ac("25", "75"))
	errColor := pick(s.Error, ac("160", "196"))
	muted := pick(s.Muted, ac("240", "243"))
	completed := pick(s.Completed, ac("245", "241"))

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted)

	t := theme{
		paneBorder:        border,
		paneBorderFocused: border.BorderForeground(highlight),
		title:             faintIfDark(lipgloss.NewStyle().Foreground(muted)).Bold(true),
		titleFocused:      lipgloss.NewStyle().Foreground(highlight).Bold(true),
		row:               lipgloss.NewStyle(),
		selected:          lipgloss.NewStyle().Background(selectedBg).Foreground(ac("235", "255")).Bold(true),
		selectedBlurred:   lipgloss.NewStyle().Background(selectedBg),
		completed:         lipgloss.NewStyle().Foreground(completed).Strikethrough(true),
		conflict:          lipgloss.NewStyle().Foreground(ac("255", "255")).Background(errColor).Bold(true),
		muted:             faintIfDark(lipgloss.NewStyle().Foreground(muted)),
		input:             lipgloss.NewStyle().Foreground(accent),
		popup:             lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		statusError:       lipgloss.NewStyle().Foreground(errColor).Bold(true),
	}
	t.priority[1] = lipgloss.NewStyle().Foreground(ac("160", "203")).Bold(true)
	t.priority[2] = lipgloss.NewStyle().Foreground(ac("166", "215"))
	t.priority[3] = lipgloss.NewStyle().Foreground(muted)
	t.priority[4] = faintIfDark(lipgloss.NewStyle().Foreground(muted))
	return t
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which can disable colors in
// a TUI by accident. Only NO_COLOR is honored; otherwise follow the terminal.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector reports.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) DO_ME_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("15;0" = fg;bg)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("DO_ME_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}

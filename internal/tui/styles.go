package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the calculator.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#00ffff"),
		Secondary: lipgloss.Color("#ff00ff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Success:   lipgloss.Color("#88ff88"),
		Warning:   lipgloss.Color("#ffff00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Success:   lipgloss.Color("#00ff00"),
		Warning:   lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#00a8cc"),
		Secondary: lipgloss.Color("#0077be"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Success:   lipgloss.Color("#00ff88"),
		Warning:   lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{ThemeCyberpunk, ThemeRetroGreen, ThemeMinimal, ThemeOcean}
)

var ErrUnknownTheme = errors.New("tui: unknown theme")

// GetTheme returns a theme by name.
func GetTheme(name string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return ThemeCyberpunk, fmt.Errorf("%w: %s (available: %v)", ErrUnknownTheme, name, ThemeNames())
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// nextTheme returns the theme after t in Themes, wrapping around.
func nextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

type styles struct {
	title, subtitle, label, cursor, value, units, computed lipgloss.Style
	key, hint, status, errStatus, chart, radioOn, radioOff  lipgloss.Style
	barHigh, barMid, barLow, barTrack, barLocked           lipgloss.Style
}

func newStyles(t Theme) styles {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	return styles{
		title:     fg(t.Primary).Bold(true),
		subtitle:  fg(t.Muted),
		label:     fg(t.Text).Bold(true).Width(3),
		cursor:    fg(t.Primary).Bold(true),
		value:     fg(t.Text).Bold(true).Width(9).Align(lipgloss.Right),
		units:     fg(t.Muted),
		computed:  fg(t.Secondary).Italic(true),
		key:       fg(t.Primary).Bold(true),
		hint:      fg(t.Muted),
		status:    fg(t.Success),
		errStatus: fg(t.Error),
		chart:     fg(t.Accent).Padding(1, 0),
		radioOn:   fg(t.Secondary).Bold(true),
		radioOff:  fg(t.Muted),
		barHigh:   fg(t.Success),
		barMid:    fg(t.Warning),
		barLow:    fg(t.Error),
		barTrack:  fg(t.Muted),
		barLocked: fg(t.Secondary),
	}
}

// sliderBar renders frac in [0, 1] as a bar of the given width.
func (s styles) sliderBar(frac float64, width int, locked bool) string {
	filled := int(frac*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled)
	track := s.barTrack.Render(strings.Repeat("░", width-filled))
	switch {
	case locked:
		return s.barLocked.Render(bar) + track
	case frac > 0.8:
		return s.barHigh.Render(bar) + track
	case frac > 0.4:
		return s.barMid.Render(bar) + track
	}
	return s.barLow.Render(bar) + track
}

func (s styles) separator(width int) string {
	mid := width / 2
	return s.subtitle.Render(strings.Repeat("─", mid-2) + " ◆ " + strings.Repeat("─", width-mid-3))
}

package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/conserve/internal/dynamo"
)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Primary)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
}

func textStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text)
}

// seriesColor is the configured colour of a series, or the theme's when the
// config leaves it empty.
func seriesColor(style dynamo.Style, fallback lipgloss.Color) lipgloss.Color {
	if style.Color == "" {
		return fallback
	}
	return lipgloss.Color(style.Color)
}

// groupStyle frames one object's sliders.
func groupStyle(active bool) lipgloss.Style {
	border := CurrentTheme.Border
	if active {
		border = CurrentTheme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func keyHint(key, desc string) string {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true).Render(key) +
		mutedStyle().Render(" "+desc+"  ")
}

// SliderBar renders value within [lo, hi] as a track with a knob.
func SliderBar(value, lo, hi float64, width int, active bool) string {
	if width < 3 {
		width = 3
	}
	ratio := 0.0
	if hi > lo {
		ratio = (value - lo) / (hi - lo)
	}
	if ratio < 0 {
		ratio = 0
	} else if ratio > 1 {
		ratio = 1
	}
	knob := int(ratio*float64(width-1) + 0.5)

	filled := strings.Repeat("━", knob)
	rest := strings.Repeat("─", width-knob-1)

	track := lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
	fill := lipgloss.NewStyle().Foreground(CurrentTheme.Border)
	knobStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Text)
	if active {
		fill = lipgloss.NewStyle().Foreground(CurrentTheme.Primary)
		knobStyle = lipgloss.NewStyle().Foreground(CurrentTheme.Accent).Bold(true)
	}
	return fill.Render(filled) + knobStyle.Render("●") + track.Render(rest)
}

// Separator is a decorative rule.
func Separator(width int) string {
	if width < 8 {
		return mutedStyle().Render(strings.Repeat("─", width))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return mutedStyle().Render(left + " ◆ " + right)
}

func formatValue(v float64) string {
	return fmt.Sprintf("%6.2f", v)
}

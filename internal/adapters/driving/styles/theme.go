// Package styles provides the colour theme and lipgloss styles for terminal output.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/ingrecheck/internal/core/domain"
)

// Theme defines the colour palette for terminal output.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Safe, Conditional, Harmful and Unknown colour the safety tiers.
	Safe        lipgloss.Color
	Conditional lipgloss.Color
	Harmful     lipgloss.Color
	Unknown     lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:     lipgloss.Color("#7C3AED"), // Purple
		Muted:       lipgloss.Color("#6C7086"), // Medium gray
		Border:      lipgloss.Color("#45475A"), // Border gray
		Error:       lipgloss.Color("#F38BA8"), // Red
		Safe:        lipgloss.Color("#A6E3A1"), // Green
		Conditional: lipgloss.Color("#FAB387"), // Orange
		Harmful:     lipgloss.Color("#E64553"), // Deep red
		Unknown:     lipgloss.Color("#9399B2"), // Gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Box frames a summary block.
	Box lipgloss.Style

	tiers map[domain.Safety]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	tier := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(c)
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		tiers: map[domain.Safety]lipgloss.Style{
			domain.SafetySafe:        tier(theme.Safe),
			domain.SafetyConditional: tier(theme.Conditional),
			domain.SafetyHarmful:     tier(theme.Harmful),
			domain.SafetyUnknown:     tier(theme.Unknown),
		},
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Tier returns the style for a safety tier. Unrecognised tiers use the Unknown style.
func (s *Styles) Tier(safety domain.Safety) lipgloss.Style {
	if st, ok := s.tiers[safety]; ok {
		return st
	}
	return s.tiers[domain.SafetyUnknown]
}

// TierLabel renders the tier name in its colour.
func (s *Styles) TierLabel(safety domain.Safety) string {
	return s.Tier(safety).Render(safety.String())
}

package report

import (
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	account    lipgloss.Style
	detail     lipgloss.Style
	label      lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	allowed    lipgloss.Style
	locked     lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	severity   map[domain.Severity]lipgloss.Style
	category   map[domain.ActivityCategory]lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		account:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		allowed:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		locked:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		severity: map[domain.Severity]lipgloss.Style{
			domain.SeverityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
			domain.SeverityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			domain.SeverityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		},
		category: map[domain.ActivityCategory]lipgloss.Style{
			domain.ActivityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			domain.ActivityWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			domain.ActivitySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			domain.ActivityAdmin:   lipgloss.NewStyle().Foreground(lipgloss.Color("177")),
		},
	}
}

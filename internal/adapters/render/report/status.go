package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/tenderlogic-cli/internal/application"
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const quotaBarWidth = 24

func RenderStatus(statuses []application.Status) (string, error) {
	return render(func(s styles) string {
		return statusView(statuses, s)
	})
}

func statusView(statuses []application.Status, s styles) string {
	lines := []string{
		s.title.Render("TenderLogic Accounts"),
		s.header.Render(fmt.Sprintf("accounts: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No accounts yet. Create one with `tl account create`."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(accountView(status, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func accountView(status application.Status, s styles) string {
	account := status.Account
	return lipgloss.JoinVertical(
		lipgloss.Left,
		s.account.Render(fmt.Sprintf("%s <%s> (%s)", account.Name, account.Email, account.ID)),
		s.detail.Render(fmt.Sprintf("role: %s  tier: %s  origin: %s", account.Role, account.Tier(), account.AuthOrigin)),
		quotaLine(status, s),
		featureLine(status.Features, s),
	)
}

func quotaLine(status application.Status, s styles) string {
	label := s.label.Render("quota:")
	sub := status.Account.Subscription

	if status.Unlimited {
		return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", s.detail.Render(fmt.Sprintf("unlimited (%d analyses used)", sub.Consumed)))
	}

	ceiling := *sub.Ceiling
	leftPercent := 0.0
	if ceiling > 0 {
		leftPercent = float64(status.Remaining) / float64(ceiling) * 100
	}
	left := lipgloss.NewStyle().Foreground(interpolateColor(leftPercent, 0, 100)).
		Render(fmt.Sprintf("%d/%d used, %d left", sub.Consumed, ceiling, status.Remaining))

	period := "lifetime"
	if !sub.PeriodStart.IsZero() && sub.Tier == domain.TierPro {
		period = "since " + sub.PeriodStart.Format("2006-01-02")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		label, " ",
		renderProgressBar(leftPercent, quotaBarWidth, s), " ",
		left, " ",
		s.header.Render("("+period+")"),
	)
}

func featureLine(decisions []domain.Decision, s styles) string {
	parts := make([]string, 0, len(decisions))
	for _, decision := range decisions {
		if decision.Allowed {
			parts = append(parts, s.allowed.Render("[x] "+string(decision.Feature)))
		} else {
			parts = append(parts, s.locked.Render("[ ] "+string(decision.Feature)))
		}
	}

	return s.label.Render("features:") + " " + strings.Join(parts, "  ")
}

// renderProgressBar draws the share of quota left.
func renderProgressBar(leftPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(leftPercent) / 100))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(value float64) float64 {
	return math.Min(100, math.Max(0, value))
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, low, high float64) lipgloss.Color {
	if high == low {
		return lipgloss.Color("255")
	}

	normalized := math.Min(1, math.Max(0, (value-low)/(high-low)))
	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}

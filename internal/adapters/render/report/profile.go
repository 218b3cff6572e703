package report

import (
	"strings"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func RenderProfile(profile domain.CompanyProfile) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render(profile.Name),
			s.header.Render("company profile of " + string(profile.AccountID)),
			s.section.Render(field("Experience", profile.Experience, s)),
			s.section.Render(list("Certifications", profile.Certifications, s)),
			list("Past projects", profile.PastProjects, s),
		}
		if profile.HasBidHistory() {
			lines = append(lines, s.section.Render(s.label.Render("Bid history:")), s.detail.Render(strings.TrimSpace(profile.BidHistory)))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

package report

import (
	"fmt"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func RenderInvitations(invitations []domain.Invitation) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Team invitations"),
			s.header.Render(fmt.Sprintf("invitations: %d", len(invitations))),
		}
		if len(invitations) == 0 {
			lines = append(lines, s.empty.Render("No invitations sent."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, invitation := range invitations {
			status := s.locked.Render(string(invitation.Status))
			if invitation.Status == domain.InvitationAccepted {
				status = s.allowed.Render(string(invitation.Status))
			}
			lines = append(lines, fmt.Sprintf("%s  %-8s %-6s %s  token %s",
				s.header.Render(invitation.CreatedAt.Format("2006-01-02")),
				status,
				invitation.Role,
				orDash(invitation.Email),
				invitation.Token,
			))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

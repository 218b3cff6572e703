package report

import (
	"fmt"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func RenderActivity(entries []domain.ActivityEntry) (string, error) {
	return render(func(s styles) string {
		if len(entries) == 0 {
			return s.empty.Render("No activity recorded.")
		}

		lines := make([]string, 0, len(entries))
		for _, entry := range entries {
			category := s.category[entry.Category].Render(fmt.Sprintf("%-7s", entry.Category))
			lines = append(lines, fmt.Sprintf("%s  %s  %s",
				s.header.Render(entry.Timestamp.Local().Format("2006-01-02 15:04:05")),
				category,
				entry.Event,
			))
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

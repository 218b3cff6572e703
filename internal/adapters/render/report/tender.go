package report

import (
	"fmt"
	"strings"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func RenderAnalysis(record domain.TenderRecord) (string, error) {
	return render(func(s styles) string {
		return analysisView(record, s)
	})
}

func RenderTenders(records []domain.TenderRecord) (string, error) {
	return render(func(s styles) string {
		return tendersView(records, s)
	})
}

func RenderProposal(tender domain.TenderRecord, proposal domain.GeneratedProposal) (string, error) {
	return render(func(s styles) string {
		return proposalView(tender, proposal, s)
	})
}

func analysisView(record domain.TenderRecord, s styles) string {
	a := record.Analysis
	lines := []string{
		s.title.Render(a.Title),
		s.header.Render(fmt.Sprintf("tender %s  jurisdiction %s  source %s  analyzed %s",
			record.Key, record.Jurisdiction, orDash(record.Source), record.CreatedAt.Format("2006-01-02 15:04"))),
		s.section.Render(field("Deadlines", a.Deadlines, s)),
		field("Penalties", a.Penalties, s),
		s.section.Render(list("Technical specs", a.TechnicalSpecs, s)),
		list("Certifications", a.Certifications, s),
		list("Scoring criteria", a.ScoringCriteria, s),
		s.section.Render(riskView(a, s)),
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func riskView(a domain.TenderAnalysis, s styles) string {
	header := s.label.Render(fmt.Sprintf("Risk alerts (%d high)", a.HighRiskCount()))
	if len(a.RiskAlerts) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, s.empty.Render("  none"))
	}

	lines := []string{header}
	for _, alert := range a.RiskAlerts {
		level := s.severity[alert.Level].Render(fmt.Sprintf("%-6s", alert.Level))
		lines = append(lines, fmt.Sprintf("  %s %s: %s", level, alert.Clause, alert.Risk))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func tendersView(records []domain.TenderRecord, s styles) string {
	lines := []string{
		s.title.Render("Tenders"),
		s.header.Render(fmt.Sprintf("tenders: %d", len(records))),
	}
	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No tenders analyzed yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		high := ""
		if n := record.Analysis.HighRiskCount(); n > 0 {
			high = " " + s.severity[domain.SeverityHigh].Render(fmt.Sprintf("[%d high risk]", n))
		}
		lines = append(lines, fmt.Sprintf("%s  %s  %s  %s%s",
			s.account.Render(fmt.Sprintf("%-12s", record.Key)),
			record.CreatedAt.Format("2006-01-02"),
			record.Jurisdiction,
			record.Analysis.Title,
			high,
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func proposalView(tender domain.TenderRecord, p domain.GeneratedProposal, s styles) string {
	lines := []string{
		s.title.Render("Technical proposal: " + tender.Analysis.Title),
		s.header.Render(fmt.Sprintf("tender %s  estimated score %.0f/100", tender.Key, p.EstimatedScore)),
		s.section.Render(list("Compliance checklist", p.ComplianceChecklist, s)),
	}
	if len(p.RAGInsights) > 0 {
		lines = append(lines, list("Bid archive insights", p.RAGInsights, s))
	}
	lines = append(lines, s.section.Render(strings.TrimSpace(p.TechnicalMemory)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(name, value string, s styles) string {
	return s.label.Render(name+":") + " " + s.detail.Render(orDash(value))
}

func list(name string, items []string, s styles) string {
	lines := []string{s.label.Render(name + ":")}
	if len(items) == 0 {
		lines = append(lines, s.empty.Render("  none"))
	}
	for _, item := range items {
		lines = append(lines, s.detail.Render("  - "+item))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

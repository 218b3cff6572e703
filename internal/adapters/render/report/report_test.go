package report

import (
	"testing"
	"time"

	"github.com/bnema/tenderlogic-cli/internal/application"
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func fixtureRecord() domain.TenderRecord {
	return domain.TenderRecord{
		Key:          domain.TenderKey{AccountID: "acc-1", Seq: 3},
		Jurisdiction: domain.JurisdictionMorocco,
		Source:       "cps.txt",
		CreatedAt:    fixtureTime,
		Analysis: domain.TenderAnalysis{
			Title:           "Casablanca tramway line 5",
			TechnicalSpecs:  []string{"Catenary-free sections"},
			Deadlines:       "2026-04-30 10:00",
			Penalties:       "1/1000 per day",
			Certifications:  []string{},
			ScoringCriteria: []string{"Technical 70"},
			RiskAlerts: []domain.RiskAlert{
				{Clause: "Art. 12", Risk: "Uncapped penalties", Level: domain.SeverityHigh},
				{Clause: "Art. 30", Risk: "Short mobilisation", Level: domain.SeverityLow},
			},
		},
	}
}

func TestRenderStatus(t *testing.T) {
	t.Parallel()

	pro := domain.Account{
		ID: "acc-1", Email: "bids@atlas.example", Name: "Atlas", Role: domain.RoleEditor, AuthOrigin: domain.AuthOriginEmail,
		Subscription: domain.Subscription{Tier: domain.TierPro, Consumed: 3, Ceiling: domain.IntPtr(10), PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	enterprise := domain.Account{
		ID: "root", Email: "root@atlas.example", Name: "Root", Role: domain.RoleAdmin, AuthOrigin: domain.AuthOriginGoogle,
		Subscription: domain.Subscription{Tier: domain.TierEnterprise, Consumed: 42},
	}

	output, err := RenderStatus([]application.Status{
		{
			Account:   pro,
			Remaining: 7,
			Features: []domain.Decision{
				{Feature: domain.FeatureAnalysis, Allowed: true},
				{Feature: domain.FeatureTeamCollaboration},
			},
		},
		{Account: enterprise, Unlimited: true},
	})
	require.NoError(t, err)

	assert.Contains(t, output, "accounts: 2")
	assert.Contains(t, output, "Atlas <bids@atlas.example> (acc-1)")
	assert.Contains(t, output, "tier: PRO")
	assert.Contains(t, output, "3/10 used, 7 left")
	assert.Contains(t, output, "(since 2026-03-01)")
	assert.Contains(t, output, "[x] analysis")
	assert.Contains(t, output, "[ ] team_collaboration")
	assert.Contains(t, output, "unlimited (42 analyses used)")
}

func TestRenderStatusEmpty(t *testing.T) {
	t.Parallel()

	output, err := RenderStatus(nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No accounts yet")
}

func TestRenderProgressBar(t *testing.T) {
	t.Parallel()

	s := newStyles()
	tests := []struct {
		left float64
		want string
	}{
		{left: 100, want: "[==========]"},
		{left: 70, want: "[=======---]"},
		{left: 0, want: "[----------]"},
		{left: -5, want: "[----------]"},
		{left: 140, want: "[==========]"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, renderProgressBar(tc.left, 10, s))
	}
	assert.Empty(t, renderProgressBar(50, 0, s))
}

func TestRenderAnalysis(t *testing.T) {
	t.Parallel()

	output, err := RenderAnalysis(fixtureRecord())
	require.NoError(t, err)

	assert.Contains(t, output, "Casablanca tramway line 5")
	assert.Contains(t, output, "tender acc-1/3")
	assert.Contains(t, output, "jurisdiction MA")
	assert.Contains(t, output, "Penalties: 1/1000 per day")
	assert.Contains(t, output, "- Catenary-free sections")
	assert.Contains(t, output, "Risk alerts (1 high)")
	assert.Contains(t, output, "Art. 12: Uncapped penalties")
}

func TestRenderTenders(t *testing.T) {
	t.Parallel()

	output, err := RenderTenders([]domain.TenderRecord{fixtureRecord()})
	require.NoError(t, err)
	assert.Contains(t, output, "tenders: 1")
	assert.Contains(t, output, "Casablanca tramway line 5")
	assert.Contains(t, output, "[1 high risk]")

	empty, err := RenderTenders(nil)
	require.NoError(t, err)
	assert.Contains(t, empty, "No tenders analyzed yet.")
}

func TestRenderProposal(t *testing.T) {
	t.Parallel()

	output, err := RenderProposal(fixtureRecord(), domain.GeneratedProposal{
		TechnicalMemory:     "# Memoire technique\n\nPhased delivery.",
		ComplianceChecklist: []string{"Bid bond"},
		EstimatedScore:      81.6,
		RAGInsights:         []string{"Reused 2023 tramway methodology"},
	})
	require.NoError(t, err)

	assert.Contains(t, output, "estimated score 82/100")
	assert.Contains(t, output, "- Bid bond")
	assert.Contains(t, output, "Bid archive insights:")
	assert.Contains(t, output, "Phased delivery.")
}

func TestRenderActivity(t *testing.T) {
	t.Parallel()

	output, err := RenderActivity([]domain.ActivityEntry{
		{ID: 2, Timestamp: fixtureTime, Category: domain.ActivityWarn, Event: "Quota exceeded for bids@atlas.example"},
		{ID: 1, Timestamp: fixtureTime, Category: domain.ActivityInfo, Event: "User registered: bids@atlas.example"},
	})
	require.NoError(t, err)
	assert.Contains(t, output, "WARN")
	assert.Contains(t, output, "Quota exceeded for bids@atlas.example")
	assert.Contains(t, output, "User registered: bids@atlas.example")

	empty, err := RenderActivity(nil)
	require.NoError(t, err)
	assert.Contains(t, empty, "No activity recorded.")
}

func TestRenderProfile(t *testing.T) {
	t.Parallel()

	output, err := RenderProfile(domain.DefaultCompanyProfile("acc-1"))
	require.NoError(t, err)
	assert.Contains(t, output, "Elite Engineering Group")
	assert.Contains(t, output, "company profile of acc-1")
	assert.Contains(t, output, "- ISO 9001")
	assert.NotContains(t, output, "Bid history:")

	profile := domain.DefaultCompanyProfile("acc-1")
	profile.BidHistory = "2024: won Agadir desalination lot 2"
	output, err = RenderProfile(profile)
	require.NoError(t, err)
	assert.Contains(t, output, "Bid history:")
	assert.Contains(t, output, "Agadir desalination")
}

func TestRenderInvitations(t *testing.T) {
	t.Parallel()

	output, err := RenderInvitations([]domain.Invitation{
		{ID: "inv-1", AccountID: "acc-1", Email: "analyst@atlas.example", Role: domain.RoleViewer, Token: "tok-1", Status: domain.InvitationPending, CreatedAt: fixtureTime},
		{ID: "inv-2", AccountID: "acc-1", Role: domain.RoleEditor, Token: "tok-2", Status: domain.InvitationAccepted, CreatedAt: fixtureTime},
	})
	require.NoError(t, err)
	assert.Contains(t, output, "invitations: 2")
	assert.Contains(t, output, "analyst@atlas.example")
	assert.Contains(t, output, "token tok-2")
	assert.Contains(t, output, "ACCEPTED")

	empty, err := RenderInvitations(nil)
	require.NoError(t, err)
	assert.Contains(t, empty, "No invitations sent.")
}

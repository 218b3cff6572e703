package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAnalysis() TenderAnalysis {
	return TenderAnalysis{
		Title:           "Rabat tramway signalling upgrade",
		TechnicalSpecs:  []string{"CBTC compatible interlocking"},
		Deadlines:       "Submission by 2026-05-01",
		Penalties:       "0.1% per day of delay",
		Certifications:  []string{"ISO 9001"},
		ScoringCriteria: []string{"Technical 70%", "Price 30%"},
		RiskAlerts:      []RiskAlert{{Clause: "Art. 12", Risk: "Uncapped penalties", Level: SeverityHigh}},
	}
}

func TestTenderAnalysisValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*TenderAnalysis)
		wantErr string
	}{
		{name: "valid", mutate: func(*TenderAnalysis) {}},
		{name: "empty lists are allowed", mutate: func(a *TenderAnalysis) { a.RiskAlerts = []RiskAlert{}; a.TechnicalSpecs = []string{} }},
		{name: "missing title", mutate: func(a *TenderAnalysis) { a.Title = " " }, wantErr: "title is required"},
		{name: "bad level", mutate: func(a *TenderAnalysis) { a.RiskAlerts[0].Level = "Critical" }, wantErr: "unsupported risk level"},
		{name: "lowercase level", mutate: func(a *TenderAnalysis) { a.RiskAlerts[0].Level = "high" }, wantErr: "unsupported risk level"},
		{name: "missing clause", mutate: func(a *TenderAnalysis) { a.RiskAlerts[0].Clause = "" }, wantErr: "clause is required"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			analysis := validAnalysis()
			tc.mutate(&analysis)
			err := analysis.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestTenderKeyParseRoundTrip(t *testing.T) {
	t.Parallel()

	key := TenderKey{AccountID: "acc-1", Seq: 7}
	parsed, err := ParseTenderKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, parsed)

	for _, raw := range []string{"acc-1", "/3", "acc-1/zero", "acc-1/0", "acc-1/-2"} {
		_, err := ParseTenderKey(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseJurisdiction(t *testing.T) {
	t.Parallel()

	code, err := ParseJurisdiction("usa")
	require.NoError(t, err)
	assert.Equal(t, JurisdictionUnitedStates, code)

	_, err = ParseJurisdiction("FR")
	assert.ErrorIs(t, err, ErrUnknownJurisdiction)
}

func TestGeneratedProposalValidate(t *testing.T) {
	t.Parallel()

	valid := GeneratedProposal{TechnicalMemory: "# Memo", ComplianceChecklist: []string{"Bid bond"}, EstimatedScore: 82}
	assert.NoError(t, valid.Validate())

	noBody := valid
	noBody.TechnicalMemory = ""
	assert.ErrorContains(t, noBody.Validate(), "technical memory")

	noChecklist := valid
	noChecklist.ComplianceChecklist = nil
	assert.ErrorContains(t, noChecklist.Validate(), "checklist")

	outOfRange := valid
	outOfRange.EstimatedScore = 101
	assert.ErrorContains(t, outOfRange.Validate(), "outside 0-100")
}

func TestClampActivityTimestamp(t *testing.T) {
	t.Parallel()

	prev := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, prev, ClampActivityTimestamp(prev, prev.Add(-time.Hour)))
	assert.Equal(t, prev.Add(time.Second), ClampActivityTimestamp(prev, prev.Add(time.Second)))
}

func TestInvitationAccept(t *testing.T) {
	t.Parallel()

	invite := Invitation{ID: "inv-1", Token: "tok", Role: RoleEditor, Status: InvitationPending}
	accepted, err := invite.Accept()
	require.NoError(t, err)
	assert.Equal(t, InvitationAccepted, accepted.Status)

	_, err = accepted.Accept()
	assert.ErrorContains(t, err, "already accepted")
}

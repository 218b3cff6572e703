package contract

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonMarshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func proposalFixture() ProposalInput {
	return ProposalInput{
		Tender: domain.TenderRecord{
			Key:          domain.TenderKey{AccountID: "acc-1", Seq: 1},
			Jurisdiction: domain.JurisdictionUnitedKingdom,
			Analysis: domain.TenderAnalysis{
				Title:          "NHS records migration",
				TechnicalSpecs: []string{"FHIR R4"},
				RiskAlerts:     []domain.RiskAlert{{Clause: "4.2", Risk: "Data residency", Level: domain.SeverityMedium}},
			},
			CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		Profile: domain.CompanyProfile{
			AccountID:  "acc-1",
			Name:       "Northwind Digital",
			Experience: "12 years of NHS delivery",
			BidHistory: "2019 winning bid: phased cutover with parallel run",
		},
	}
}

func newTestProposal(t *testing.T) *ProposalContract {
	t.Helper()

	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewProposalContract(catalog)
}

func TestProposalRequestOmitsArchiveWithoutEntitlement(t *testing.T) {
	t.Parallel()

	req, err := newTestProposal(t).BuildRequest(proposalFixture())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(req.Prompt, "Tender Analysis: "))
	assert.NotContains(t, req.Prompt, archiveHeader)
	assert.NotContains(t, req.Prompt, "parallel run")
	assert.NotContains(t, req.SystemInstruction, "ragInsights")
	assert.Contains(t, req.SystemInstruction, "Public Contracts Regulations")
	assert.Contains(t, req.Prompt, `"name":"Northwind Digital"`)
}

func TestProposalRequestPrefixesArchiveWhenEntitled(t *testing.T) {
	t.Parallel()

	in := proposalFixture()
	in.IncludeArchive = true

	req, err := newTestProposal(t).BuildRequest(in)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(req.Prompt, archiveHeader+"\n2019 winning bid"))
	assert.Contains(t, req.SystemInstruction, "ragInsights")
	assert.Equal(t, []string{"technicalMemory", "complianceChecklist", "estimatedScore"}, req.Schema.Required)
}

func TestProposalRequestIgnoresArchiveFlagWithoutHistory(t *testing.T) {
	t.Parallel()

	in := proposalFixture()
	in.IncludeArchive = true
	in.Profile.BidHistory = "  "

	req, err := newTestProposal(t).BuildRequest(in)
	require.NoError(t, err)
	assert.NotContains(t, req.Prompt, archiveHeader)
}

func TestDecodeProposal(t *testing.T) {
	t.Parallel()

	proposal, err := newTestProposal(t).Decode(ports.OracleResponse{Text: `{
		"technicalMemory": "# Approach\nPhased delivery",
		"complianceChecklist": ["Cyber Essentials Plus"],
		"estimatedScore": 78.5,
		"ragInsights": ["Reused 2019 cutover plan"]
	}`})
	require.NoError(t, err)

	assert.Equal(t, 78.5, proposal.EstimatedScore)
	assert.Equal(t, []string{"Reused 2019 cutover plan"}, proposal.RAGInsights)
}

func TestDecodeProposalMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "not json", body: "I cannot help with that", wantErr: "not a JSON object"},
		{name: "missing score", body: `{"technicalMemory": "x", "complianceChecklist": ["a"]}`, wantErr: "missing estimatedScore"},
		{name: "score as string", body: `{"technicalMemory": "x", "complianceChecklist": ["a"], "estimatedScore": "high"}`, wantErr: "decode"},
		{name: "score out of range", body: `{"technicalMemory": "x", "complianceChecklist": ["a"], "estimatedScore": 140}`, wantErr: "outside 0-100"},
		{name: "empty checklist", body: `{"technicalMemory": "x", "complianceChecklist": [], "estimatedScore": 50}`, wantErr: "checklist is empty"},
		{name: "blank memory", body: `{"technicalMemory": " ", "complianceChecklist": ["a"], "estimatedScore": 50}`, wantErr: "technical memory is empty"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeProposal([]byte(tc.body))
			require.ErrorIs(t, err, domain.ErrMalformedGeneration)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestVisualPrompt(t *testing.T) {
	t.Parallel()

	prompt, err := VisualPrompt("solar farm substation")
	require.NoError(t, err)
	assert.Contains(t, prompt, "solar farm substation")

	_, err = VisualPrompt(" ")
	assert.Error(t, err)
}

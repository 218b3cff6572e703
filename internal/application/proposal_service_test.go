package application

import (
	"context"
	"testing"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/bnema/tenderlogic-cli/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const archiveMarker = "### HISTORICAL BID ARCHIVE (RAG CONTEXT) ###"

func (h *harness) analyzeTender(t *testing.T, id string) domain.TenderRecord {
	t.Helper()

	h.oracle.EXPECT().Generate(mockAnyContext(), mock.MatchedBy(func(req ports.OracleRequest) bool {
		return req.SchemaName == "tender_analysis"
	})).Return(analysisResponse(t, "Rabat water treatment plant"), nil).Once()

	record, err := h.analysis.Analyze(context.Background(), analyzeCommand(id, nil))
	require.NoError(t, err)
	return record
}

func TestProposalServiceFreeTierIsLockedWithoutCallingOracle(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createAccount(t, "acc-1", domain.RoleEditor, domain.TierFree)
	record := h.analyzeTender(t, "acc-1")

	recorder := &snapshotRecorder{}
	_, err := h.proposals.Generate(context.Background(), GenerateProposalCommand{
		AccountID: "acc-1",
		Tender:    record.Key,
		Observer:  recorder.observe,
	})
	require.ErrorIs(t, err, domain.ErrFeatureLocked)
	assert.Equal(t, progress.StateFailed, recorder.last().State)
}

func TestProposalServiceEnterpriseIncludesBidArchive(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	h.createAccount(t, "acc-1", domain.RoleEditor, domain.TierEnterprise)

	profile := domain.DefaultCompanyProfile("acc-1")
	profile.Name = "Atlas Hydraulics"
	profile.BidHistory = "2023: won Fes sewage network with a phased methodology"
	require.NoError(t, h.accounts.SaveProfile(ctx, profile))

	record := h.analyzeTender(t, "acc-1")

	h.oracle.EXPECT().Generate(mockAnyContext(), mock.MatchedBy(func(req ports.OracleRequest) bool {
		return req.SchemaName == "technical_proposal"
	})).Run(func(_ context.Context, req ports.OracleRequest) {
		assert.Contains(t, req.Prompt, archiveMarker)
		assert.Contains(t, req.Prompt, "Fes sewage network")
		assert.Contains(t, req.Prompt, "Atlas Hydraulics")
		assert.Contains(t, req.SystemInstruction, "ragInsights")
	}).Return(proposalResponse(t), nil).Once()

	recorder := &snapshotRecorder{}
	proposal, err := h.proposals.Generate(ctx, GenerateProposalCommand{AccountID: "acc-1", Tender: record.Key, Observer: recorder.observe})
	require.NoError(t, err)

	assert.InDelta(t, 82.0, proposal.EstimatedScore, 0.001)
	assert.Equal(t, []string{"Reused the 2024 methodology section"}, proposal.RAGInsights)
	assert.Equal(t, progress.StateCompleted, recorder.last().State)
	assert.Equal(t, "Proposal generated for: Rabat water treatment plant", h.events(t)[0])

	account, err := h.store.GetByID(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 1, account.Subscription.Consumed, "generation consumes no quota")
}

func TestProposalServiceOmitsArchiveWithoutEntitlement(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	h.createAccount(t, "acc-1", domain.RoleEditor, domain.TierEnterprise)

	profile := domain.DefaultCompanyProfile("acc-1")
	profile.BidHistory = "2022: lost Agadir desalination bid on price"
	require.NoError(t, h.accounts.SaveProfile(ctx, profile))

	_, err := h.accounts.ChangeTier(ctx, ChangeTierCommand{Actor: "acc-1", Tier: domain.TierPro})
	require.NoError(t, err)

	record := h.analyzeTender(t, "acc-1")

	h.oracle.EXPECT().Generate(mockAnyContext(), mock.MatchedBy(func(req ports.OracleRequest) bool {
		return req.SchemaName == "technical_proposal"
	})).Run(func(_ context.Context, req ports.OracleRequest) {
		assert.NotContains(t, req.Prompt, archiveMarker)
		assert.NotContains(t, req.Prompt, "Agadir")
	}).Return(proposalResponse(t), nil).Once()

	_, err = h.proposals.Generate(ctx, GenerateProposalCommand{AccountID: "acc-1", Tender: record.Key})
	require.NoError(t, err)
}

func TestProposalServiceRejectsOtherAccountsTender(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	h.createAccount(t, "owner", domain.RoleEditor, domain.TierPro)
	h.createAccount(t, "intruder", domain.RoleEditor, domain.TierPro)
	h.createAccount(t, "root", domain.RoleAdmin, "")
	record := h.analyzeTender(t, "owner")

	_, err := h.proposals.Generate(ctx, GenerateProposalCommand{AccountID: "intruder", Tender: record.Key})
	require.ErrorIs(t, err, domain.ErrPermissionDenied)

	h.oracle.EXPECT().Generate(mockAnyContext(), mock.Anything).Return(proposalResponse(t), nil).Once()
	_, err = h.proposals.Generate(ctx, GenerateProposalCommand{AccountID: "root", Tender: record.Key})
	require.NoError(t, err)
}

func TestProposalServiceMalformedResponse(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createAccount(t, "acc-1", domain.RoleEditor, domain.TierPro)
	record := h.analyzeTender(t, "acc-1")

	h.oracle.EXPECT().Generate(mockAnyContext(), mock.Anything).
		Return(ports.OracleResponse{Text: `{"technicalMemory": "# Draft"}`}, nil).Once()

	_, err := h.proposals.Generate(context.Background(), GenerateProposalCommand{AccountID: "acc-1", Tender: record.Key})
	require.ErrorIs(t, err, domain.ErrMalformedGeneration)
}

func TestProposalServiceUnknownTender(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createAccount(t, "acc-1", domain.RoleEditor, domain.TierPro)

	_, err := h.proposals.Generate(context.Background(), GenerateProposalCommand{
		AccountID: "acc-1",
		Tender:    domain.TenderKey{AccountID: "acc-1", Seq: 9},
	})
	require.ErrorIs(t, err, domain.ErrTenderNotFound)
}

package application

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tomlrepo "github.com/bnema/tenderlogic-cli/internal/adapters/repo/toml"
	"github.com/bnema/tenderlogic-cli/internal/contract"
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/bnema/tenderlogic-cli/internal/ports/mocks"
	"github.com/bnema/tenderlogic-cli/internal/progress"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type harness struct {
	store  *tomlrepo.Store
	oracle *mocks.MockOracle
	visual *mocks.MockVisualOracle

	nowMu sync.Mutex
	now   time.Time

	activity  *ActivityRecorder
	accounts  *AccountService
	analysis  *AnalysisService
	proposals *ProposalService
	assets    *AssetService
	team      *TeamService
	backup    *BackupService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	config := viper.New()
	config.Set(tomlrepo.StorePathKey, filepath.Join(t.TempDir(), "tenderlogic.toml"))
	store, err := tomlrepo.NewStore(config)
	require.NoError(t, err)

	catalog, err := contract.DefaultCatalog()
	require.NoError(t, err)

	h := &harness{
		store:  store,
		oracle: mocks.NewMockOracle(t),
		visual: mocks.NewMockVisualOracle(t),
		now:    time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().RunAndReturn(h.clockNow).Maybe()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	quiet := []progress.Option{progress.WithInterval(time.Hour)}

	h.activity = NewActivityRecorder(store, clock, logger)
	h.accounts = NewAccountService(store, store, h.activity, clock, domain.DefaultQuotaPolicy())
	h.analysis = NewAnalysisService(AnalysisDeps{
		Accounts: h.accounts,
		Tenders:  store,
		Oracle:   h.oracle,
		Contract: contract.NewExtractionContract(catalog, 0),
		Activity: h.activity,
		Clock:    clock,
		Logger:   logger,
		Progress: quiet,
	})
	h.proposals = NewProposalService(ProposalDeps{
		Accounts: h.accounts,
		Tenders:  store,
		Oracle:   h.oracle,
		Contract: contract.NewProposalContract(catalog),
		Activity: h.activity,
		Logger:   logger,
		Progress: quiet,
	})
	h.assets = NewAssetService(AssetDeps{
		Accounts: h.accounts,
		Oracle:   h.visual,
		Activity: h.activity,
		Logger:   logger,
		Progress: quiet,
	})
	h.team = NewTeamService(h.accounts, store, h.activity, clock)
	h.backup = NewBackupService(store, h.accounts, h.activity, clock)

	return h
}

func (h *harness) clockNow() time.Time {
	h.nowMu.Lock()
	defer h.nowMu.Unlock()
	return h.now
}

func (h *harness) setNow(now time.Time) {
	h.nowMu.Lock()
	defer h.nowMu.Unlock()
	h.now = now
}

func (h *harness) createAccount(t *testing.T, id string, role domain.Role, tier domain.Tier) domain.Account {
	t.Helper()

	account, err := h.accounts.Create(context.Background(), CreateAccountCommand{
		ID:    domain.AccountID(id),
		Email: id + "@bids.example",
		Role:  role,
		Tier:  tier,
	})
	require.NoError(t, err)
	return account
}

func (h *harness) events(t *testing.T) []string {
	t.Helper()

	entries, err := h.activity.Recent(context.Background(), 0)
	require.NoError(t, err)

	events := make([]string, 0, len(entries))
	for _, entry := range entries {
		events = append(events, entry.Event)
	}
	return events
}

func analysisResponse(t *testing.T, title string) ports.OracleResponse {
	t.Helper()

	data, err := json.Marshal(contract.NewAnalysisDocument(domain.TenderAnalysis{
		Title:           title,
		TechnicalSpecs:  []string{"Fiber backbone 48 cores"},
		Deadlines:       "2026-04-30 12:00",
		Penalties:       "1/1000 per day of delay",
		Certifications:  []string{"ISO 9001"},
		ScoringCriteria: []string{"Technical 70", "Financial 30"},
		RiskAlerts: []domain.RiskAlert{
			{Clause: "Art. 14", Risk: "Uncapped delay penalties", Level: domain.SeverityHigh},
		},
	}))
	require.NoError(t, err)
	return ports.OracleResponse{Text: string(data), Model: "test-model"}
}

func proposalResponse(t *testing.T) ports.OracleResponse {
	t.Helper()

	data, err := json.Marshal(contract.NewProposalDocument(domain.GeneratedProposal{
		TechnicalMemory:     "# Technical memory\n\nMethodology and planning.",
		ComplianceChecklist: []string{"Signed declaration", "ISO 9001 certificate"},
		EstimatedScore:      82,
		RAGInsights:         []string{"Reused the 2024 methodology section"},
	}))
	require.NoError(t, err)
	return ports.OracleResponse{Text: string(data), Model: "test-model"}
}

func analyzeCommand(id string, observer progress.Observer) AnalyzeCommand {
	return AnalyzeCommand{
		AccountID:    domain.AccountID(id),
		Jurisdiction: domain.JurisdictionMorocco,
		Source:       "cps.txt",
		Text:         "CAHIER DES PRESCRIPTIONS SPECIALES - Lot unique",
		Observer:     observer,
	}
}

type snapshotRecorder struct {
	mu        sync.Mutex
	snapshots []progress.Snapshot
}

func (r *snapshotRecorder) observe(snapshot progress.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, snapshot)
}

func (r *snapshotRecorder) last() progress.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshots[len(r.snapshots)-1]
}

func mockAnyContext() interface{} {
	return mock.Anything
}

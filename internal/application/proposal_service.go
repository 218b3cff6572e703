package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/tenderlogic-cli/internal/contract"
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/bnema/tenderlogic-cli/internal/progress"
)

const operationProposal = "proposal"

type ProposalService struct {
	accounts *AccountService
	tenders  ports.TenderRepository
	oracle   ports.Oracle
	contract *contract.ProposalContract
	activity *ActivityRecorder
	metrics  ports.Metrics
	logger   *slog.Logger
	progress []progress.Option

	locks accountLocks
}

type ProposalDeps struct {
	Accounts *AccountService
	Tenders  ports.TenderRepository
	Oracle   ports.Oracle
	Contract *contract.ProposalContract
	Activity *ActivityRecorder
	Metrics  ports.Metrics
	Logger   *slog.Logger
	Progress []progress.Option
}

func NewProposalService(deps ProposalDeps) *ProposalService {
	s := &ProposalService{
		accounts: deps.Accounts,
		tenders:  deps.Tenders,
		oracle:   deps.Oracle,
		contract: deps.Contract,
		activity: deps.Activity,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		progress: deps.Progress,
	}
	if s.metrics == nil {
		s.metrics = ports.NopMetrics{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Generate drafts a technical proposal for a stored tender. It is gated by
// the proposal feature and consumes no quota. The bid archive is only sent
// to the oracle when the account is entitled to it.
func (s *ProposalService) Generate(ctx context.Context, cmd GenerateProposalCommand) (domain.GeneratedProposal, error) {
	unlock := s.locks.lock(cmd.AccountID)
	defer unlock()

	started := time.Now()
	tracker := newTracker(progress.GenerationPhases, s.progress, cmd.Observer)

	var proposal domain.GeneratedProposal
	var tender domain.TenderRecord
	var usedArchive bool
	err := progress.Track(ctx, tracker, func(ctx context.Context) error {
		account, err := s.accounts.Get(ctx, cmd.AccountID)
		if err != nil {
			return err
		}
		if err := domain.Entitle(account, domain.FeatureProposal); err != nil {
			return err
		}

		tender, err = s.tenders.GetTender(ctx, cmd.Tender)
		if err != nil {
			return fmt.Errorf("get tender: %w", err)
		}
		if tender.Key.AccountID != account.ID && !account.IsAdmin() {
			return fmt.Errorf("%w: tender %s belongs to another account", domain.ErrPermissionDenied, tender.Key)
		}

		profile, err := s.accounts.GetProfile(ctx, account.ID)
		if err != nil {
			return err
		}

		input := contract.ProposalInput{
			Tender:         tender,
			Profile:        profile,
			IncludeArchive: domain.AuthorizeAccount(account, domain.FeatureBidArchive).Allowed,
		}
		usedArchive = input.IncludeArchive && profile.HasBidHistory()

		req, err := s.contract.BuildRequest(input)
		if err != nil {
			return err
		}
		resp, err := s.oracle.Generate(ctx, req)
		if err != nil {
			return fmt.Errorf("generate proposal: %w", err)
		}
		proposal, err = s.contract.Decode(resp)
		return err
	})

	s.metrics.ObserveOperation(operationProposal, outcomeOf(err), time.Since(started))
	if err != nil {
		s.logger.Warn("proposal generation failed", "account", cmd.AccountID, "tender", cmd.Tender.String(), "error", err)
		return domain.GeneratedProposal{}, err
	}

	s.activity.Record(ctx, domain.ActivitySuccess, cmd.AccountID, "Proposal generated for: %s", tender.Analysis.Title)
	s.logger.Info("proposal generated", "tender", tender.Key.String(), "score", proposal.EstimatedScore, "bid_archive", usedArchive)

	return proposal, nil
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bnema/tenderlogic-cli/internal/contract"
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/bnema/tenderlogic-cli/internal/progress"
)

const operationAnalysis = "analysis"

type AnalysisService struct {
	accounts *AccountService
	tenders  ports.TenderRepository
	oracle   ports.Oracle
	contract *contract.ExtractionContract
	activity *ActivityRecorder
	metrics  ports.Metrics
	clock    ports.Clock
	logger   *slog.Logger
	progress []progress.Option

	locks accountLocks
}

type AnalysisDeps struct {
	Accounts *AccountService
	Tenders  ports.TenderRepository
	Oracle   ports.Oracle
	Contract *contract.ExtractionContract
	Activity *ActivityRecorder
	Metrics  ports.Metrics
	Clock    ports.Clock
	Logger   *slog.Logger
	Progress []progress.Option
}

func NewAnalysisService(deps AnalysisDeps) *AnalysisService {
	s := &AnalysisService{
		accounts: deps.Accounts,
		tenders:  deps.Tenders,
		oracle:   deps.Oracle,
		contract: deps.Contract,
		activity: deps.Activity,
		metrics:  deps.Metrics,
		clock:    deps.Clock,
		logger:   deps.Logger,
		progress: deps.Progress,
	}
	if s.metrics == nil {
		s.metrics = ports.NopMetrics{}
	}
	if s.clock == nil {
		s.clock = ports.SystemClock{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Analyze extracts a TenderAnalysis from the document text and stores it.
// The account is charged one unit of quota only when a valid analysis was
// produced and committed; every failure leaves the counter untouched.
func (s *AnalysisService) Analyze(ctx context.Context, cmd AnalyzeCommand) (domain.TenderRecord, error) {
	unlock := s.locks.lock(cmd.AccountID)
	defer unlock()

	started := time.Now()
	tracker := newTracker(progress.AnalysisPhases, s.progress, cmd.Observer)

	var record domain.TenderRecord
	var account domain.Account
	err := progress.Track(ctx, tracker, func(ctx context.Context) error {
		var err error
		account, err = s.accounts.Get(ctx, cmd.AccountID)
		if err != nil {
			return err
		}
		if err := domain.Entitle(account, domain.FeatureAnalysis); err != nil {
			return err
		}

		req, err := s.contract.BuildRequest(cmd.Text, cmd.Jurisdiction)
		if err != nil {
			return err
		}
		resp, err := s.oracle.Generate(ctx, req)
		if err != nil {
			return fmt.Errorf("extract tender analysis: %w", err)
		}
		analysis, err := s.contract.Decode(resp)
		if err != nil {
			return err
		}

		subscription, err := account.Subscription.RecordConsumption()
		if err != nil {
			return err
		}
		account.Subscription = subscription

		record, err = s.tenders.CommitAnalysis(ctx, account, domain.TenderRecord{
			Jurisdiction: cmd.Jurisdiction,
			Source:       cmd.Source,
			Analysis:     analysis,
			CreatedAt:    s.clock.Now(),
		})
		if err != nil {
			return fmt.Errorf("commit tender analysis: %w", err)
		}
		s.accounts.remember(account)

		return nil
	})

	s.metrics.ObserveOperation(operationAnalysis, outcomeOf(err), time.Since(started))
	if err != nil {
		s.logger.Warn("tender analysis failed", "account", cmd.AccountID, "source", cmd.Source, "error", err)
		if errors.Is(err, domain.ErrQuotaExceeded) {
			s.activity.Record(ctx, domain.ActivityWarn, cmd.AccountID, "Quota exceeded for %s", account.Email)
		}
		return domain.TenderRecord{}, err
	}

	s.metrics.SetQuota(string(account.ID), string(account.Tier()), account.Subscription.Consumed, account.Subscription.Ceiling)
	s.activity.Record(ctx, domain.ActivitySuccess, account.ID, "New tender analyzed: %s", record.Analysis.Title)
	s.logger.Info("tender analyzed", "tender", record.Key.String(), "title", record.Analysis.Title, "high_risks", record.Analysis.HighRiskCount())

	return record, nil
}

func (s *AnalysisService) Get(ctx context.Context, key domain.TenderKey) (domain.TenderRecord, error) {
	record, err := s.tenders.GetTender(ctx, key)
	if err != nil {
		return domain.TenderRecord{}, fmt.Errorf("get tender: %w", err)
	}

	return record, nil
}

func (s *AnalysisService) List(ctx context.Context, owner domain.AccountID) ([]domain.TenderRecord, error) {
	records, err := s.tenders.ListTenders(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list tenders: %w", err)
	}

	return records, nil
}

func newTracker(phases []progress.Phase, base []progress.Option, observer progress.Observer) *progress.Tracker {
	opts := make([]progress.Option, 0, len(base)+1)
	opts = append(opts, base...)
	opts = append(opts, progress.WithObserver(observer))
	return progress.New(phases, opts...)
}

func outcomeOf(err error) ports.Outcome {
	switch {
	case err == nil:
		return ports.OutcomeSuccess
	case errors.Is(err, domain.ErrQuotaExceeded), errors.Is(err, domain.ErrFeatureLocked), errors.Is(err, domain.ErrPermissionDenied):
		return ports.OutcomeDenied
	default:
		return ports.OutcomeFailed
	}
}

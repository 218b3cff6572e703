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

const operationAsset = "asset_generation"

var ErrVisualOracleUnavailable = errors.New("visual oracle is not configured")

type AssetService struct {
	accounts *AccountService
	oracle   ports.VisualOracle
	activity *ActivityRecorder
	metrics  ports.Metrics
	logger   *slog.Logger
	progress []progress.Option
}

type AssetDeps struct {
	Accounts *AccountService
	Oracle   ports.VisualOracle
	Activity *ActivityRecorder
	Metrics  ports.Metrics
	Logger   *slog.Logger
	Progress []progress.Option
}

func NewAssetService(deps AssetDeps) *AssetService {
	s := &AssetService{
		accounts: deps.Accounts,
		oracle:   deps.Oracle,
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

func (s *AssetService) Generate(ctx context.Context, cmd GenerateAssetCommand) (ports.Image, error) {
	prompt, err := contract.VisualPrompt(cmd.Description)
	if err != nil {
		return ports.Image{}, err
	}

	return s.run(ctx, cmd.AccountID, cmd.Observer, "Visual asset generated", func(ctx context.Context) (ports.Image, error) {
		return s.oracle.GenerateImage(ctx, prompt)
	})
}

// Edit applies an instruction to an existing image, such as "add a safety
// fence" or "switch to night lighting".
func (s *AssetService) Edit(ctx context.Context, cmd EditAssetCommand) (ports.Image, error) {
	if len(cmd.Source.Data) == 0 {
		return ports.Image{}, errors.New("source image is empty")
	}
	if cmd.Instruction == "" {
		return ports.Image{}, errors.New("edit instruction is empty")
	}

	return s.run(ctx, cmd.AccountID, cmd.Observer, "Visual asset edited", func(ctx context.Context) (ports.Image, error) {
		return s.oracle.EditImage(ctx, cmd.Source, cmd.Instruction)
	})
}

func (s *AssetService) run(ctx context.Context, accountID domain.AccountID, observer progress.Observer, event string, call func(context.Context) (ports.Image, error)) (ports.Image, error) {
	started := time.Now()
	tracker := newTracker(progress.AssetPhases, s.progress, observer)

	var image ports.Image
	err := progress.Track(ctx, tracker, func(ctx context.Context) error {
		account, err := s.accounts.Get(ctx, accountID)
		if err != nil {
			return err
		}
		if err := domain.Entitle(account, domain.FeatureAssetGeneration); err != nil {
			return err
		}
		if s.oracle == nil {
			return ErrVisualOracleUnavailable
		}

		image, err = call(ctx)
		if err != nil {
			return fmt.Errorf("visual oracle: %w", err)
		}
		if len(image.Data) == 0 {
			return fmt.Errorf("%w: no image returned", domain.ErrMalformedGeneration)
		}
		return nil
	})

	s.metrics.ObserveOperation(operationAsset, outcomeOf(err), time.Since(started))
	if err != nil {
		s.logger.Warn("visual asset failed", "account", accountID, "error", err)
		return ports.Image{}, err
	}
	s.activity.Record(ctx, domain.ActivitySuccess, accountID, "%s", event)

	return image, nil
}

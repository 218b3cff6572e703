package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	prommetrics "github.com/bnema/tenderlogic-cli/internal/adapters/metrics/prometheus"
	sqliterepo "github.com/bnema/tenderlogic-cli/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/tenderlogic-cli/internal/adapters/repo/toml"
	chainstore "github.com/bnema/tenderlogic-cli/internal/adapters/secrets/chain"
	"github.com/bnema/tenderlogic-cli/internal/application"
	"github.com/bnema/tenderlogic-cli/internal/config"
	"github.com/bnema/tenderlogic-cli/internal/contract"
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/bnema/tenderlogic-cli/internal/progress"
	"github.com/spf13/viper"
)

var errNoAccount = errors.New("no account selected: pass --account or set TL_ACCOUNT")

type app struct {
	cfg     *viper.Viper
	store   ports.Store
	oracles *oracleFactory
	metrics *prommetrics.Metrics
	logger  *slog.Logger

	accounts    *application.AccountService
	analysis    *application.AnalysisService
	proposals   *application.ProposalService
	assets      *application.AssetService
	team        *application.TeamService
	backup      *application.BackupService
	credentials *application.CredentialService
	activity    *application.ActivityRecorder
}

func wireApp() (*app, error) {
	cfg, err := config.Load("", ".env")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := config.Logger(cfg, os.Stderr)

	store, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire store: %w", err)
	}

	secretStore, err := chainstore.NewPassWithFileFallback(cfg.GetString(config.KeySecretsDir))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	catalog, err := contract.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("load jurisdiction catalog: %w", err)
	}

	clock := ports.SystemClock{}
	metrics := prommetrics.New()
	activity := application.NewActivityRecorder(store, clock, logger)
	accounts := application.NewAccountService(store, store, activity, clock, config.QuotaPolicy(cfg))
	credentials := application.NewCredentialService(secretStore, activity)
	oracles := newOracleFactory(cfg, credentials)
	tracking := []progress.Option{progress.WithInterval(cfg.GetDuration(config.KeyProgressInterval))}

	return &app{
		cfg:         cfg,
		store:       store,
		oracles:     oracles,
		metrics:     metrics,
		logger:      logger,
		accounts:    accounts,
		credentials: credentials,
		activity:    activity,
		analysis: application.NewAnalysisService(application.AnalysisDeps{
			Accounts: accounts,
			Tenders:  store,
			Oracle:   oracles,
			Contract: contract.NewExtractionContract(catalog, cfg.GetInt(config.KeyExtractionMaxChars)),
			Activity: activity,
			Metrics:  metrics,
			Clock:    clock,
			Logger:   logger,
			Progress: tracking,
		}),
		proposals: application.NewProposalService(application.ProposalDeps{
			Accounts: accounts,
			Tenders:  store,
			Oracle:   oracles,
			Contract: contract.NewProposalContract(catalog),
			Activity: activity,
			Metrics:  metrics,
			Logger:   logger,
			Progress: tracking,
		}),
		assets: application.NewAssetService(application.AssetDeps{
			Accounts: accounts,
			Oracle:   oracles,
			Activity: activity,
			Metrics:  metrics,
			Logger:   logger,
			Progress: tracking,
		}),
		team:   application.NewTeamService(accounts, store, activity, clock),
		backup: application.NewBackupService(store, accounts, activity, clock),
	}, nil
}

func openStore(cfg *viper.Viper) (ports.Store, error) {
	switch cfg.GetString(config.KeyStoreDriver) {
	case config.DriverSQLite:
		return sqliterepo.NewStore(cfg)
	default:
		return tomlrepo.NewStore(cfg)
	}
}

// actor is the account the command acts as.
func (a *app) actor() (domain.AccountID, error) {
	id := strings.TrimSpace(a.cfg.GetString(config.KeyAccount))
	if id == "" {
		return "", errNoAccount
	}

	return domain.AccountID(id), nil
}

// close flushes metrics and releases the store and oracle clients.
func (a *app) close() error {
	var errs []error
	if path := a.cfg.GetString(config.KeyMetricsFile); path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if err := a.oracles.Close(); err != nil {
		errs = append(errs, err)
	}
	if closer, ok := a.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}

	return errors.Join(errs...)
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/tenderlogic-cli/internal/adapters/oracle/gemini"
	"github.com/bnema/tenderlogic-cli/internal/adapters/oracle/openai"
	"github.com/bnema/tenderlogic-cli/internal/application"
	"github.com/bnema/tenderlogic-cli/internal/config"
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/spf13/viper"
)

// oracleFactory connects to the configured provider on first use, so
// commands that never call the oracle need no API key.
type oracleFactory struct {
	cfg         *viper.Viper
	credentials *application.CredentialService

	mu     sync.Mutex
	gemini *gemini.Oracle
	openai *openai.Oracle
}

var (
	_ ports.Oracle       = (*oracleFactory)(nil)
	_ ports.VisualOracle = (*oracleFactory)(nil)
)

func newOracleFactory(cfg *viper.Viper, credentials *application.CredentialService) *oracleFactory {
	return &oracleFactory{cfg: cfg, credentials: credentials}
}

func (f *oracleFactory) Generate(ctx context.Context, req ports.OracleRequest) (ports.OracleResponse, error) {
	oracle, err := f.text(ctx)
	if err != nil {
		return ports.OracleResponse{}, err
	}

	return oracle.Generate(ctx, req)
}

func (f *oracleFactory) GenerateImage(ctx context.Context, prompt string) (ports.Image, error) {
	oracle, err := f.geminiOracle(ctx)
	if err != nil {
		return ports.Image{}, err
	}

	return oracle.GenerateImage(ctx, prompt)
}

func (f *oracleFactory) EditImage(ctx context.Context, source ports.Image, prompt string) (ports.Image, error) {
	oracle, err := f.geminiOracle(ctx)
	if err != nil {
		return ports.Image{}, err
	}

	return oracle.EditImage(ctx, source, prompt)
}

func (f *oracleFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gemini == nil {
		return nil
	}
	if err := f.gemini.Close(); err != nil {
		return fmt.Errorf("close gemini client: %w", err)
	}
	f.gemini = nil

	return nil
}

func (f *oracleFactory) text(ctx context.Context) (ports.Oracle, error) {
	provider, err := application.ParseProvider(f.cfg.GetString(config.KeyOracleProvider))
	if err != nil {
		return nil, err
	}
	if provider == application.ProviderOpenAI {
		return f.openaiOracle(ctx)
	}

	return f.geminiOracle(ctx)
}

func (f *oracleFactory) geminiOracle(ctx context.Context) (*gemini.Oracle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gemini != nil {
		return f.gemini, nil
	}

	key, err := f.apiKey(ctx, application.ProviderGemini)
	if err != nil {
		return nil, err
	}
	oracle, err := gemini.New(ctx, gemini.Config{
		APIKey:      key,
		Model:       f.providerSetting(application.ProviderGemini, config.KeyOracleModel),
		VisualModel: f.cfg.GetString(config.KeyOracleVisualModel),
		Endpoint:    f.providerSetting(application.ProviderGemini, config.KeyOracleBaseURL),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransportFailure, err)
	}
	f.gemini = oracle

	return oracle, nil
}

func (f *oracleFactory) openaiOracle(ctx context.Context) (*openai.Oracle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.openai != nil {
		return f.openai, nil
	}

	key, err := f.apiKey(ctx, application.ProviderOpenAI)
	if err != nil {
		return nil, err
	}
	oracle, err := openai.New(openai.Config{
		APIKey:  key,
		Model:   f.providerSetting(application.ProviderOpenAI, config.KeyOracleModel),
		BaseURL: f.providerSetting(application.ProviderOpenAI, config.KeyOracleBaseURL),
	})
	if err != nil {
		return nil, err
	}
	f.openai = oracle

	return oracle, nil
}

// providerSetting applies oracle.model and oracle.base_url only to the
// configured text provider; the other provider keeps its defaults.
func (f *oracleFactory) providerSetting(provider application.Provider, key string) string {
	configured, err := application.ParseProvider(f.cfg.GetString(config.KeyOracleProvider))
	if err != nil || configured != provider {
		return ""
	}

	return f.cfg.GetString(key)
}

func (f *oracleFactory) apiKey(ctx context.Context, provider application.Provider) (string, error) {
	key, err := f.credentials.Key(ctx, provider)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", fmt.Errorf("%w (run `tl auth set --provider %s`)", err, provider)
		}
		return "", err
	}

	return key, nil
}

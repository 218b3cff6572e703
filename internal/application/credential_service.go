package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
)

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

func ParseProvider(raw string) (Provider, error) {
	provider := Provider(strings.ToLower(strings.TrimSpace(raw)))
	switch provider {
	case ProviderGemini, ProviderOpenAI:
		return provider, nil
	default:
		return "", fmt.Errorf("unsupported oracle provider %q", raw)
	}
}

// SecretKey is where the provider's API key lives in the secret store.
func (p Provider) SecretKey() string {
	return "tenderlogic/oracle/" + string(p)
}

// EnvVar is consulted when the secret store has no key for the provider.
func (p Provider) EnvVar() string {
	return strings.ToUpper(string(p)) + "_API_KEY"
}

// CredentialService manages oracle API keys. Keys never touch the account
// store.
type CredentialService struct {
	store    ports.SecretStore
	activity *ActivityRecorder
	getenv   func(string) string
}

func NewCredentialService(store ports.SecretStore, activity *ActivityRecorder) *CredentialService {
	return &CredentialService{store: store, activity: activity, getenv: os.Getenv}
}

// SetKey stores a new key for the provider. When the store already held a
// different key and the new one cannot be verified by reading it back, the
// previous key is restored.
func (s *CredentialService) SetKey(ctx context.Context, provider Provider, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("secret value is empty")
	}

	previous, prevErr := s.store.Get(ctx, provider.SecretKey())
	hadPrevious := prevErr == nil && previous != ""

	if err := s.store.Put(ctx, provider.SecretKey(), value); err != nil {
		return fmt.Errorf("store %s key: %w", provider, err)
	}

	stored, err := s.store.Get(ctx, provider.SecretKey())
	if err == nil && stored == value {
		s.activity.Record(ctx, domain.ActivityAdmin, "", "Oracle credentials updated for %s", provider)
		return nil
	}
	if err == nil {
		err = errors.New("stored value does not match")
	}

	var rollbackErr error
	if hadPrevious {
		rollbackErr = s.store.Put(ctx, provider.SecretKey(), previous)
	} else {
		rollbackErr = s.store.Delete(ctx, provider.SecretKey())
	}
	if rollbackErr != nil {
		return fmt.Errorf("verify %s key and roll back: %w", provider, errors.Join(err, rollbackErr))
	}

	return fmt.Errorf("verify %s key: %w", provider, err)
}

func (s *CredentialService) RemoveKey(ctx context.Context, provider Provider) error {
	if err := s.store.Delete(ctx, provider.SecretKey()); err != nil {
		return fmt.Errorf("delete %s key: %w", provider, err)
	}
	s.activity.Record(ctx, domain.ActivityAdmin, "", "Oracle credentials removed for %s", provider)

	return nil
}

// Key resolves the provider's API key from the secret store, then from the
// provider's environment variable.
func (s *CredentialService) Key(ctx context.Context, provider Provider) (string, error) {
	value, err := s.store.Get(ctx, provider.SecretKey())
	if err == nil && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	if env := strings.TrimSpace(s.getenv(provider.EnvVar())); env != "" {
		return env, nil
	}
	if err == nil {
		err = errors.New("stored key is empty")
	}

	return "", fmt.Errorf("%w: no %s key in the secret store or %s: %v", domain.ErrSecretNotFound, provider, provider.EnvVar(), err)
}

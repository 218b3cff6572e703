// Package chain combines a primary secret store with a fallback. Reads try
// the primary first; writes land in the first store that accepts them;
// deletes clear both so a removed key cannot resurface from the fallback.
package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/tenderlogic-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/tenderlogic-cli/internal/adapters/secrets/pass"
	"github.com/bnema/tenderlogic-cli/internal/ports"
)

type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore) (*Store, error) {
	if primary == nil || fallback == nil {
		return nil, errors.New("chain secret store needs a primary and a fallback")
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

// NewPassWithFileFallback prefers pass and falls back to files under root.
func NewPassWithFileFallback(root string) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(root))
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.primary.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if isContextErr(err) {
		return "", err
	}

	value, fallbackErr := s.fallback.Get(ctx, key)
	if fallbackErr == nil {
		return value, nil
	}

	return "", fmt.Errorf("get secret %s: %w", key, errors.Join(err, fallbackErr))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	err := s.primary.Put(ctx, key, value)
	if err == nil {
		return nil
	}
	if isContextErr(err) {
		return err
	}

	if fallbackErr := s.fallback.Put(ctx, key, value); fallbackErr != nil {
		return fmt.Errorf("put secret %s: %w", key, errors.Join(err, fallbackErr))
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.primary.Delete(ctx, key)
	if isContextErr(err) {
		return err
	}

	fallbackErr := s.fallback.Delete(ctx, key)
	if err != nil && fallbackErr != nil {
		return fmt.Errorf("delete secret %s: %w", key, errors.Join(err, fallbackErr))
	}

	return nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

package toml

import (
	"context"
	"fmt"

	"github.com/bnema/tenderlogic-cli/internal/domain"
)

func (s *Store) GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	var account domain.Account
	err := s.view(ctx, func(file *fileSchema) error {
		idx := findAccount(file.Accounts, id)
		if idx < 0 {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
		}
		account = fromAccountSchema(file.Accounts[idx])
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

func (s *Store) List(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	err := s.view(ctx, func(file *fileSchema) error {
		accounts = make([]domain.Account, 0, len(file.Accounts))
		for _, entry := range file.Accounts {
			accounts = append(accounts, fromAccountSchema(entry))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

func (s *Store) Save(ctx context.Context, account domain.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	return s.update(ctx, func(file *fileSchema) error {
		upsertAccount(file, account)
		return nil
	})
}

func upsertAccount(file *fileSchema, account domain.Account) {
	entry := toAccountSchema(account)
	if idx := findAccount(file.Accounts, account.ID); idx >= 0 {
		file.Accounts[idx] = entry
		return
	}
	file.Accounts = append(file.Accounts, entry)
}

func findAccount(accounts []accountSchema, id domain.AccountID) int {
	for i, entry := range accounts {
		if entry.ID == string(id) {
			return i
		}
	}
	return -1
}

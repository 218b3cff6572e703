package toml

import (
	"context"
	"fmt"

	"github.com/bnema/tenderlogic-cli/internal/domain"
)

func (s *Store) GetProfile(ctx context.Context, id domain.AccountID) (domain.CompanyProfile, error) {
	var profile domain.CompanyProfile
	err := s.view(ctx, func(file *fileSchema) error {
		for _, entry := range file.Profiles {
			if entry.AccountID == string(id) {
				profile = fromProfileSchema(entry)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, id)
	})
	if err != nil {
		return domain.CompanyProfile{}, err
	}

	return profile, nil
}

func (s *Store) SaveProfile(ctx context.Context, profile domain.CompanyProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	return s.update(ctx, func(file *fileSchema) error {
		if findAccount(file.Accounts, profile.AccountID) < 0 {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, profile.AccountID)
		}

		entry := toProfileSchema(profile)
		for i := range file.Profiles {
			if file.Profiles[i].AccountID == entry.AccountID {
				file.Profiles[i] = entry
				return nil
			}
		}
		file.Profiles = append(file.Profiles, entry)
		return nil
	})
}

package sqlite

import (
	"context"
	"fmt"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/jinzhu/gorm"
)

func (s *Store) ExportAll(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		accounts    []accountModel
		profiles    []profileModel
		tenders     []tenderModel
		activity    []activityModel
		invitations []invitationModel
	)
	for _, load := range []struct {
		name string
		dest any
	}{
		{"accounts", &accounts},
		{"profiles", &profiles},
		{"tenders", &tenders},
		{"activity", &activity},
		{"invitations", &invitations},
	} {
		if err := s.db.Find(load.dest).Error; err != nil {
			return domain.Dataset{}, fmt.Errorf("export %s: %w", load.name, err)
		}
	}

	dataset := domain.Dataset{
		Accounts:    make([]domain.Account, 0, len(accounts)),
		Profiles:    make([]domain.CompanyProfile, 0, len(profiles)),
		Activity:    make([]domain.ActivityEntry, 0, len(activity)),
		Invitations: make([]domain.Invitation, 0, len(invitations)),
	}
	for _, model := range accounts {
		dataset.Accounts = append(dataset.Accounts, model.toDomain())
	}
	for _, model := range profiles {
		profile, err := model.toDomain()
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("decode profile %s: %w", model.AccountID, err)
		}
		dataset.Profiles = append(dataset.Profiles, profile)
	}
	records, err := tendersToDomain(tenders)
	if err != nil {
		return domain.Dataset{}, err
	}
	dataset.Tenders = records
	for _, model := range activity {
		dataset.Activity = append(dataset.Activity, model.toDomain())
	}
	for _, model := range invitations {
		dataset.Invitations = append(dataset.Invitations, model.toDomain())
	}

	return dataset, nil
}

// ReplaceAll clears every table and inserts the dataset in one transaction.
func (s *Store) ReplaceAll(ctx context.Context, dataset domain.Dataset) error {
	if err := dataset.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrImportCorrupt, err)
	}

	return s.replaceAll(ctx, dataset)
}

// replaceAll is ReplaceAll without validation. Any failed insert rolls back
// the cleared tables too.
func (s *Store) replaceAll(ctx context.Context, dataset domain.Dataset) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		for _, model := range []any{&accountModel{}, &profileModel{}, &tenderModel{}, &activityModel{}, &invitationModel{}} {
			if err := tx.Delete(model).Error; err != nil {
				return fmt.Errorf("clear table: %w", err)
			}
		}

		for _, account := range dataset.Accounts {
			model := toAccountModel(account)
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("insert account %s: %w", account.ID, err)
			}
		}
		for _, profile := range dataset.Profiles {
			model, err := toProfileModel(profile)
			if err != nil {
				return fmt.Errorf("encode profile %s: %w", profile.AccountID, err)
			}
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("insert profile %s: %w", profile.AccountID, err)
			}
		}
		for _, record := range dataset.Tenders {
			model, err := toTenderModel(record)
			if err != nil {
				return fmt.Errorf("encode tender %s: %w", record.Key, err)
			}
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("insert tender %s: %w", record.Key, err)
			}
		}
		for _, entry := range dataset.Activity {
			model := toActivityModel(entry)
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("insert activity %d: %w", entry.ID, err)
			}
		}
		for _, invitation := range dataset.Invitations {
			model := toInvitationModel(invitation)
			if err := tx.Create(&model).Error; err != nil {
				return fmt.Errorf("insert invitation %s: %w", invitation.ID, err)
			}
		}

		return nil
	})
}

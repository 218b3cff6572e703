package toml

import (
	"context"
	"fmt"

	"github.com/bnema/tenderlogic-cli/internal/domain"
)

func (s *Store) ExportAll(ctx context.Context) (domain.Dataset, error) {
	var dataset domain.Dataset
	err := s.view(ctx, func(file *fileSchema) error {
		dataset = datasetFromSchema(*file)
		return nil
	})
	if err != nil {
		return domain.Dataset{}, err
	}

	return dataset, nil
}

// ReplaceAll writes the dataset as a brand new file. The previous contents
// survive untouched if validation or the write fails.
func (s *Store) ReplaceAll(ctx context.Context, dataset domain.Dataset) error {
	if err := dataset.Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrImportCorrupt, err)
	}

	return s.update(ctx, func(file *fileSchema) error {
		*file = datasetToSchema(dataset)
		return nil
	})
}

func datasetFromSchema(file fileSchema) domain.Dataset {
	dataset := domain.Dataset{
		Accounts:    make([]domain.Account, 0, len(file.Accounts)),
		Profiles:    make([]domain.CompanyProfile, 0, len(file.Profiles)),
		Tenders:     make([]domain.TenderRecord, 0, len(file.Tenders)),
		Activity:    make([]domain.ActivityEntry, 0, len(file.Activity)),
		Invitations: make([]domain.Invitation, 0, len(file.Invitations)),
	}
	for _, entry := range file.Accounts {
		dataset.Accounts = append(dataset.Accounts, fromAccountSchema(entry))
	}
	for _, entry := range file.Profiles {
		dataset.Profiles = append(dataset.Profiles, fromProfileSchema(entry))
	}
	for _, entry := range file.Tenders {
		dataset.Tenders = append(dataset.Tenders, fromTenderSchema(entry))
	}
	for _, entry := range file.Activity {
		dataset.Activity = append(dataset.Activity, fromActivitySchema(entry))
	}
	for _, entry := range file.Invitations {
		dataset.Invitations = append(dataset.Invitations, fromInvitationSchema(entry))
	}

	return dataset
}

func datasetToSchema(dataset domain.Dataset) fileSchema {
	file := fileSchema{Version: currentSchemaVersion}
	for _, account := range dataset.Accounts {
		file.Accounts = append(file.Accounts, toAccountSchema(account))
	}
	for _, profile := range dataset.Profiles {
		file.Profiles = append(file.Profiles, toProfileSchema(profile))
	}
	for _, record := range dataset.Tenders {
		file.Tenders = append(file.Tenders, toTenderSchema(record))
	}
	for _, entry := range dataset.Activity {
		file.Activity = append(file.Activity, toActivitySchema(entry))
	}
	for _, invitation := range dataset.Invitations {
		file.Invitations = append(file.Invitations, toInvitationSchema(invitation))
	}
	file.applyDefaults()

	return file
}

package toml

import (
	"context"
	"fmt"
	"sort"

	"github.com/bnema/tenderlogic-cli/internal/domain"
)

func (s *Store) CommitAnalysis(ctx context.Context, account domain.Account, record domain.TenderRecord) (domain.TenderRecord, error) {
	if err := account.Validate(); err != nil {
		return domain.TenderRecord{}, err
	}
	if err := record.Analysis.Validate(); err != nil {
		return domain.TenderRecord{}, err
	}

	err := s.update(ctx, func(file *fileSchema) error {
		if findAccount(file.Accounts, account.ID) < 0 {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, account.ID)
		}

		next := 1
		for _, entry := range file.Tenders {
			if entry.AccountID == string(account.ID) && entry.Seq >= next {
				next = entry.Seq + 1
			}
		}
		record.Key = domain.TenderKey{AccountID: account.ID, Seq: next}

		upsertAccount(file, account)
		file.Tenders = append(file.Tenders, toTenderSchema(record))
		return nil
	})
	if err != nil {
		return domain.TenderRecord{}, err
	}

	return record, nil
}

func (s *Store) GetTender(ctx context.Context, key domain.TenderKey) (domain.TenderRecord, error) {
	var record domain.TenderRecord
	err := s.view(ctx, func(file *fileSchema) error {
		for _, entry := range file.Tenders {
			if entry.AccountID == string(key.AccountID) && entry.Seq == key.Seq {
				record = fromTenderSchema(entry)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", domain.ErrTenderNotFound, key)
	})
	if err != nil {
		return domain.TenderRecord{}, err
	}

	return record, nil
}

// ListTenders returns the owner's tenders newest first. An empty owner lists
// every tender.
func (s *Store) ListTenders(ctx context.Context, owner domain.AccountID) ([]domain.TenderRecord, error) {
	records := []domain.TenderRecord{}
	err := s.view(ctx, func(file *fileSchema) error {
		for _, entry := range file.Tenders {
			if owner != "" && entry.AccountID != string(owner) {
				continue
			}
			records = append(records, fromTenderSchema(entry))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].Key.Seq > records[j].Key.Seq
	})

	return records, nil
}

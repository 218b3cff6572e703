package application

import (
	"context"
	"fmt"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/bnema/tenderlogic-cli/internal/snapshot"
)

type BackupService struct {
	store    ports.BackupStore
	accounts *AccountService
	activity *ActivityRecorder
	clock    ports.Clock
}

func NewBackupService(store ports.BackupStore, accounts *AccountService, activity *ActivityRecorder, clock ports.Clock) *BackupService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &BackupService{store: store, accounts: accounts, activity: activity, clock: clock}
}

// Export returns the encoded snapshot of every table along with its
// suggested file name.
func (s *BackupService) Export(ctx context.Context) ([]byte, string, error) {
	dataset, err := s.store.ExportAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("export store: %w", err)
	}

	now := s.clock.Now()
	data, err := snapshot.Marshal(snapshot.Encode(dataset, now))
	if err != nil {
		return nil, "", err
	}

	return data, snapshot.FileName(now), nil
}

// Import validates the snapshot completely before replacing the store. On
// any error the store is left as it was. Quota ceilings are derived from each
// account's tier under the current policy.
func (s *BackupService) Import(ctx context.Context, data []byte) (domain.Dataset, error) {
	dataset, err := snapshot.Decode(data, s.accounts.policy)
	if err != nil {
		return domain.Dataset{}, err
	}

	if err := s.store.ReplaceAll(ctx, dataset); err != nil {
		return domain.Dataset{}, fmt.Errorf("replace store: %w", err)
	}
	s.accounts.Invalidate()
	s.activity.Record(ctx, domain.ActivityAdmin, "", "Database restored from backup: %d users, %d tenders", len(dataset.Accounts), len(dataset.Tenders))

	return dataset, nil
}

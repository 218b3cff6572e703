package ports

import (
	"context"

	"github.com/bnema/tenderlogic-cli/internal/domain"
)

type AccountRepository interface {
	GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Save(ctx context.Context, account domain.Account) error
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, id domain.AccountID) (domain.CompanyProfile, error)
	SaveProfile(ctx context.Context, profile domain.CompanyProfile) error
}

type TenderRepository interface {
	// CommitAnalysis stores the record under the next sequence for its owner
	// and saves the owner's account in the same write.
	CommitAnalysis(ctx context.Context, account domain.Account, record domain.TenderRecord) (domain.TenderRecord, error)
	GetTender(ctx context.Context, key domain.TenderKey) (domain.TenderRecord, error)
	ListTenders(ctx context.Context, owner domain.AccountID) ([]domain.TenderRecord, error)
}

type ActivityLog interface {
	// AppendActivity assigns the entry id and clamps its timestamp so the
	// log stays monotonic.
	AppendActivity(ctx context.Context, entry domain.ActivityEntry) (domain.ActivityEntry, error)
	RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}

type InvitationRepository interface {
	SaveInvitation(ctx context.Context, invitation domain.Invitation) error
	ListInvitations(ctx context.Context) ([]domain.Invitation, error)
}

type BackupStore interface {
	ExportAll(ctx context.Context) (domain.Dataset, error)
	// ReplaceAll swaps every table for the dataset's contents atomically.
	ReplaceAll(ctx context.Context, dataset domain.Dataset) error
}

type Store interface {
	AccountRepository
	ProfileRepository
	TenderRepository
	ActivityLog
	InvitationRepository
	BackupStore
}

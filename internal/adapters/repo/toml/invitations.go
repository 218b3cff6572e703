package toml

import (
	"context"
	"fmt"

	"github.com/bnema/tenderlogic-cli/internal/domain"
)

func (s *Store) SaveInvitation(ctx context.Context, invitation domain.Invitation) error {
	if err := invitation.Validate(); err != nil {
		return err
	}

	return s.update(ctx, func(file *fileSchema) error {
		if findAccount(file.Accounts, invitation.AccountID) < 0 {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, invitation.AccountID)
		}

		entry := toInvitationSchema(invitation)
		for i := range file.Invitations {
			if file.Invitations[i].ID == entry.ID {
				file.Invitations[i] = entry
				return nil
			}
		}
		file.Invitations = append(file.Invitations, entry)
		return nil
	})
}

func (s *Store) ListInvitations(ctx context.Context) ([]domain.Invitation, error) {
	invitations := []domain.Invitation{}
	err := s.view(ctx, func(file *fileSchema) error {
		for _, entry := range file.Invitations {
			invitations = append(invitations, fromInvitationSchema(entry))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return invitations, nil
}

package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/google/uuid"
)

type TeamService struct {
	accounts    *AccountService
	invitations ports.InvitationRepository
	activity    *ActivityRecorder
	clock       ports.Clock
}

func NewTeamService(accounts *AccountService, invitations ports.InvitationRepository, activity *ActivityRecorder, clock ports.Clock) *TeamService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &TeamService{accounts: accounts, invitations: invitations, activity: activity, clock: clock}
}

func (s *TeamService) Invite(ctx context.Context, cmd InviteCommand) (domain.Invitation, error) {
	account, err := s.accounts.Get(ctx, cmd.AccountID)
	if err != nil {
		return domain.Invitation{}, err
	}
	if err := domain.Entitle(account, domain.FeatureTeamCollaboration); err != nil {
		return domain.Invitation{}, err
	}

	role := domain.RoleViewer
	if cmd.Role != "" {
		parsed, err := domain.ParseRole(string(cmd.Role))
		if err != nil {
			return domain.Invitation{}, err
		}
		role = parsed
	}

	invitation := domain.Invitation{
		ID:        uuid.NewString(),
		AccountID: account.ID,
		Email:     strings.TrimSpace(cmd.Email),
		Role:      role,
		Token:     uuid.NewString(),
		Status:    domain.InvitationPending,
		CreatedAt: s.clock.Now(),
	}
	if err := invitation.Validate(); err != nil {
		return domain.Invitation{}, err
	}

	if err := s.invitations.SaveInvitation(ctx, invitation); err != nil {
		return domain.Invitation{}, fmt.Errorf("save invitation: %w", err)
	}

	target := invitation.Email
	if target == "" {
		target = "an open link"
	}
	s.activity.Record(ctx, domain.ActivityInfo, account.ID, "Team invitation created for %s as %s", target, role)

	return invitation, nil
}

// List returns the invitations sent by the account.
func (s *TeamService) List(ctx context.Context, accountID domain.AccountID) ([]domain.Invitation, error) {
	all, err := s.invitations.ListInvitations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	owned := make([]domain.Invitation, 0, len(all))
	for _, invitation := range all {
		if invitation.AccountID == accountID {
			owned = append(owned, invitation)
		}
	}

	return owned, nil
}

func (s *TeamService) Accept(ctx context.Context, token string) (domain.Invitation, error) {
	all, err := s.invitations.ListInvitations(ctx)
	if err != nil {
		return domain.Invitation{}, fmt.Errorf("list invitations: %w", err)
	}

	for _, invitation := range all {
		if invitation.Token != token {
			continue
		}

		accepted, err := invitation.Accept()
		if err != nil {
			return domain.Invitation{}, err
		}
		if err := s.invitations.SaveInvitation(ctx, accepted); err != nil {
			return domain.Invitation{}, fmt.Errorf("save invitation: %w", err)
		}
		s.activity.Record(ctx, domain.ActivitySuccess, accepted.AccountID, "Team invitation %s accepted", accepted.ID)

		return accepted, nil
	}

	return domain.Invitation{}, fmt.Errorf("%w: unknown token", domain.ErrInvitationNotFound)
}

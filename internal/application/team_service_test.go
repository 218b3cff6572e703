package application

import (
	"context"
	"testing"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamServiceInviteIsEnterpriseOnly(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createAccount(t, "pro", domain.RoleEditor, domain.TierPro)

	_, err := h.team.Invite(context.Background(), InviteCommand{AccountID: "pro", Email: "analyst@bids.example"})
	require.ErrorIs(t, err, domain.ErrFeatureLocked)
}

func TestTeamServiceInviteAndAccept(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()
	h.createAccount(t, "lead", domain.RoleEditor, domain.TierEnterprise)
	h.createAccount(t, "other", domain.RoleEditor, domain.TierEnterprise)

	invitation, err := h.team.Invite(ctx, InviteCommand{AccountID: "lead", Email: " analyst@bids.example "})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID("lead"), invitation.AccountID)
	assert.Equal(t, "analyst@bids.example", invitation.Email)
	assert.Equal(t, domain.RoleViewer, invitation.Role)
	assert.Equal(t, domain.InvitationPending, invitation.Status)
	assert.NotEmpty(t, invitation.Token)
	assert.NotEqual(t, invitation.ID, invitation.Token)
	assert.Equal(t, "Team invitation created for analyst@bids.example as viewer", h.events(t)[0])

	_, err = h.team.Invite(ctx, InviteCommand{AccountID: "other", Role: domain.RoleEditor})
	require.NoError(t, err)

	owned, err := h.team.List(ctx, "lead")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, invitation.ID, owned[0].ID)

	accepted, err := h.team.Accept(ctx, invitation.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationAccepted, accepted.Status)

	_, err = h.team.Accept(ctx, invitation.Token)
	require.ErrorContains(t, err, "already accepted")

	owned, err = h.team.List(ctx, "lead")
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationAccepted, owned[0].Status)
}

func TestTeamServiceAcceptUnknownToken(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	_, err := h.team.Accept(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrInvitationNotFound)
}

func TestTeamServiceInviteNormalizesRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		role    domain.Role
		want    domain.Role
		wantErr string
	}{
		{name: "default", want: domain.RoleViewer},
		{name: "upper case admin", role: "ADMIN", want: domain.RoleAdmin},
		{name: "padded editor", role: " Editor ", want: domain.RoleEditor},
		{name: "unknown", role: "owner", wantErr: "unsupported role"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t)
			ctx := context.Background()
			h.createAccount(t, "lead", domain.RoleEditor, domain.TierEnterprise)

			invitation, err := h.team.Invite(ctx, InviteCommand{AccountID: "lead", Role: tc.role})
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, invitation.Role)

			stored, err := h.team.List(ctx, "lead")
			require.NoError(t, err)
			require.Len(t, stored, 1)
			assert.Equal(t, tc.want, stored[0].Role)
		})
	}
}

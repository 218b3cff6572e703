package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/bnema/tenderlogic-cli/internal/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var renderedSite = ports.Image{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}

func TestAssetServiceGenerateRequiresEntitlement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tier    domain.Tier
		wantErr error
	}{
		{name: "free is locked", tier: domain.TierFree, wantErr: domain.ErrFeatureLocked},
		{name: "pro is allowed", tier: domain.TierPro},
		{name: "enterprise is allowed", tier: domain.TierEnterprise},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t)
			h.createAccount(t, "acc-1", domain.RoleEditor, tc.tier)
			if tc.wantErr == nil {
				h.visual.EXPECT().GenerateImage(mockAnyContext(), mock.MatchedBy(func(prompt string) bool {
					return prompt != "" && prompt != "solar farm at dusk"
				})).Return(renderedSite, nil).Once()
			}

			image, err := h.assets.Generate(context.Background(), GenerateAssetCommand{AccountID: "acc-1", Description: "solar farm at dusk"})
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, renderedSite, image)
			assert.Equal(t, "Visual asset generated", h.events(t)[0])
		})
	}
}

func TestAssetServiceEditPassesSourceImage(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createAccount(t, "acc-1", domain.RoleEditor, domain.TierPro)

	edited := ports.Image{MIMEType: "image/png", Data: []byte("night")}
	h.visual.EXPECT().EditImage(mockAnyContext(), renderedSite, "switch to night lighting").Return(edited, nil).Once()

	image, err := h.assets.Edit(context.Background(), EditAssetCommand{AccountID: "acc-1", Source: renderedSite, Instruction: "switch to night lighting"})
	require.NoError(t, err)
	assert.Equal(t, edited, image)
	assert.Equal(t, "Visual asset edited", h.events(t)[0])
}

func TestAssetServiceEditRejectsEmptyInput(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createAccount(t, "acc-1", domain.RoleEditor, domain.TierPro)

	_, err := h.assets.Edit(context.Background(), EditAssetCommand{AccountID: "acc-1", Instruction: "add a fence"})
	require.ErrorContains(t, err, "source image is empty")

	_, err = h.assets.Edit(context.Background(), EditAssetCommand{AccountID: "acc-1", Source: renderedSite})
	require.ErrorContains(t, err, "edit instruction is empty")
}

func TestAssetServiceOracleFailures(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createAccount(t, "acc-1", domain.RoleEditor, domain.TierPro)

	h.visual.EXPECT().GenerateImage(mockAnyContext(), mock.Anything).Return(ports.Image{}, nil).Once()
	_, err := h.assets.Generate(context.Background(), GenerateAssetCommand{AccountID: "acc-1", Description: "bridge"})
	require.ErrorIs(t, err, domain.ErrMalformedGeneration)

	quotaErr := errors.New("rate limited")
	h.visual.EXPECT().GenerateImage(mockAnyContext(), mock.Anything).Return(ports.Image{}, quotaErr).Once()
	_, err = h.assets.Generate(context.Background(), GenerateAssetCommand{AccountID: "acc-1", Description: "bridge"})
	require.ErrorIs(t, err, quotaErr)
}

func TestAssetServiceWithoutVisualOracle(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.createAccount(t, "acc-1", domain.RoleEditor, domain.TierPro)

	assets := NewAssetService(AssetDeps{Accounts: h.accounts, Activity: h.activity})
	_, err := assets.Generate(context.Background(), GenerateAssetCommand{AccountID: "acc-1", Description: "bridge"})
	require.ErrorIs(t, err, ErrVisualOracleUnavailable)
}

func TestAssetServiceReportsPhases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tier      domain.Tier
		edit      bool
		wantState progress.State
	}{
		{name: "generate", tier: domain.TierPro, wantState: progress.StateCompleted},
		{name: "edit", tier: domain.TierEnterprise, edit: true, wantState: progress.StateCompleted},
		{name: "locked tier", tier: domain.TierFree, wantState: progress.StateFailed},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t)
			ctx := context.Background()
			h.createAccount(t, "acc-1", domain.RoleEditor, tc.tier)

			recorder := &snapshotRecorder{}
			var err error
			if tc.edit {
				h.visual.EXPECT().EditImage(mockAnyContext(), renderedSite, "add a fence").Return(renderedSite, nil).Once()
				_, err = h.assets.Edit(ctx, EditAssetCommand{AccountID: "acc-1", Source: renderedSite, Instruction: "add a fence", Observer: recorder.observe})
			} else {
				if tc.wantState == progress.StateCompleted {
					h.visual.EXPECT().GenerateImage(mockAnyContext(), mock.Anything).Return(renderedSite, nil).Once()
				}
				_, err = h.assets.Generate(ctx, GenerateAssetCommand{AccountID: "acc-1", Description: "bridge", Observer: recorder.observe})
			}
			if tc.wantState == progress.StateFailed {
				require.ErrorIs(t, err, domain.ErrFeatureLocked)
			} else {
				require.NoError(t, err)
			}

			first := recorder.snapshots[0]
			assert.Equal(t, progress.StateRunning, first.State)
			assert.Equal(t, progress.AssetPhases[0], first.Phase)

			last := recorder.last()
			assert.Equal(t, tc.wantState, last.State)
			assert.Equal(t, len(progress.AssetPhases), last.Total)
			assert.Equal(t, progress.AssetPhases[len(progress.AssetPhases)-1], last.Phase)
		})
	}
}

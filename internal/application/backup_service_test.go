package application

import (
	"context"
	"strings"
	"testing"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBackupServiceExportImportRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newHarness(t)
	source.createAccount(t, "acc-1", domain.RoleEditor, domain.TierPro)
	source.createAccount(t, "root", domain.RoleAdmin, "")
	source.analyzeTender(t, "acc-1")

	data, name, err := source.backup.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tenderlogic_backup_2026-03-10.json", name)

	target := newHarness(t)
	target.createAccount(t, "acc-1", domain.RoleEditor, domain.TierFree)
	cached, err := target.accounts.Get(ctx, "acc-1")
	require.NoError(t, err)
	require.Equal(t, domain.TierFree, cached.Tier())

	dataset, err := target.backup.Import(ctx, data)
	require.NoError(t, err)
	assert.Len(t, dataset.Accounts, 2)
	assert.Len(t, dataset.Tenders, 1)

	account, err := target.accounts.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TierPro, account.Tier())
	assert.Equal(t, 1, account.Subscription.Consumed)

	wantTenders, err := source.analysis.List(ctx, "")
	require.NoError(t, err)
	gotTenders, err := target.analysis.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, wantTenders, gotTenders)

	assert.Equal(t, "Database restored from backup: 2 users, 1 tenders", target.events(t)[0])
}

func TestBackupServiceImportRejectsVersionMismatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	h.createAccount(t, "acc-1", domain.RoleEditor, domain.TierPro)

	data, _, err := h.backup.Export(ctx)
	require.NoError(t, err)
	require.Contains(t, string(data), `"version": "1.0.0"`)

	h.createAccount(t, "acc-2", domain.RoleEditor, domain.TierFree)
	future := strings.Replace(string(data), `"version": "1.0.0"`, `"version": "2.0.0"`, 1)

	_, err = h.backup.Import(ctx, []byte(future))
	require.ErrorIs(t, err, domain.ErrImportVersionMismatch)

	accounts, err := h.accounts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestBackupServiceImportRejectsCorruptInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	h := newHarness(t)
	h.createAccount(t, "acc-1", domain.RoleEditor, domain.TierPro)

	_, err := h.backup.Import(ctx, []byte(`{"version": "1.0.0", "tables": {"users": []}}`))
	require.ErrorIs(t, err, domain.ErrImportCorrupt)

	accounts, err := h.accounts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestBackupServiceImportIgnoresStoredCeiling(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := newHarness(t)
	source.createAccount(t, "acc-1", domain.RoleEditor, domain.TierFree)

	data, _, err := source.backup.Export(ctx)
	require.NoError(t, err)
	require.Contains(t, string(data), `"maxTenders": 1`)
	unlimited := strings.Replace(string(data), `"maxTenders": 1`, `"maxTenders": null`, 1)

	target := newHarness(t)
	_, err = target.backup.Import(ctx, []byte(unlimited))
	require.NoError(t, err)

	account, err := target.accounts.Get(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.IntPtr(1), account.Subscription.Ceiling)

	target.oracle.EXPECT().Generate(mockAnyContext(), mock.Anything).Return(analysisResponse(t, "Lot"), nil).Once()
	_, err = target.analysis.Analyze(ctx, analyzeCommand("acc-1", nil))
	require.NoError(t, err)
	_, err = target.analysis.Analyze(ctx, analyzeCommand("acc-1", nil))
	require.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionFreeTierAllowsExactlyOneConsumption(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sub := NewSubscription(TierFree, DefaultQuotaPolicy(), now)
	require.True(t, sub.CanConsume())

	next, err := sub.RecordConsumption()
	require.NoError(t, err)
	assert.Equal(t, 1, next.Consumed)
	assert.False(t, next.CanConsume())

	same, err := next.RecordConsumption()
	require.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, next, same)
}

func TestSubscriptionEnterpriseNeverExhausts(t *testing.T) {
	t.Parallel()

	sub := NewSubscription(TierEnterprise, DefaultQuotaPolicy(), time.Now())
	require.Nil(t, sub.Ceiling)

	var err error
	for i := 0; i < 1000; i++ {
		sub, err = sub.RecordConsumption()
		require.NoError(t, err)
	}

	assert.True(t, sub.CanConsume())
	assert.Equal(t, 1000, sub.Consumed)
	_, bounded := sub.Remaining()
	assert.False(t, bounded)
}

func TestSubscriptionRecordConsumptionDoesNotAliasCeiling(t *testing.T) {
	t.Parallel()

	sub := NewSubscription(TierPro, DefaultQuotaPolicy(), time.Now())
	next, err := sub.RecordConsumption()
	require.NoError(t, err)

	*next.Ceiling = 99
	assert.Equal(t, 10, *sub.Ceiling)
}

func TestSubscriptionChangeTierResetsConsumption(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	sub := Subscription{Tier: TierFree, Consumed: 1, Ceiling: IntPtr(1), PeriodStart: now}

	tests := []struct {
		name        string
		tier        Tier
		wantCeiling *int
	}{
		{name: "upgrade to pro", tier: TierPro, wantCeiling: IntPtr(10)},
		{name: "upgrade to enterprise", tier: TierEnterprise, wantCeiling: nil},
		{name: "same tier still resets", tier: TierFree, wantCeiling: IntPtr(1)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			changed := sub.ChangeTier(tc.tier, DefaultQuotaPolicy(), now)
			assert.Equal(t, tc.tier, changed.Tier)
			assert.Equal(t, 0, changed.Consumed)
			assert.Equal(t, tc.wantCeiling, changed.Ceiling)
		})
	}
}

func TestQuotaPolicyOverridesProCeiling(t *testing.T) {
	t.Parallel()

	policy := QuotaPolicy{ProCeiling: 25}
	assert.Equal(t, IntPtr(25), policy.CeilingFor(TierPro))
	assert.Equal(t, IntPtr(1), policy.CeilingFor(TierFree))
	assert.Nil(t, policy.CeilingFor(TierEnterprise))
}

func TestSubscriptionRolloverResetsProOnNewMonth(t *testing.T) {
	t.Parallel()

	march := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	sub := Subscription{Tier: TierPro, Consumed: 10, Ceiling: IntPtr(10), PeriodStart: march}

	sameMonth := sub.Rollover(time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, 10, sameMonth.Consumed)

	april := sub.Rollover(time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, april.Consumed)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), april.PeriodStart)
	assert.True(t, april.CanConsume())
}

func TestSubscriptionRolloverKeepsFreeLifetimeQuota(t *testing.T) {
	t.Parallel()

	sub := Subscription{Tier: TierFree, Consumed: 1, Ceiling: IntPtr(1), PeriodStart: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	rolled := sub.Rollover(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, sub, rolled)
	assert.False(t, rolled.CanConsume())
}

func TestSubscriptionApplyPolicyReplacesStoredCeiling(t *testing.T) {
	t.Parallel()

	policy := QuotaPolicy{ProCeiling: 25}
	tests := []struct {
		name         string
		sub          Subscription
		wantCeiling  *int
		wantConsumed int
	}{
		{name: "free without ceiling", sub: Subscription{Tier: TierFree}, wantCeiling: IntPtr(1)},
		{name: "free widened", sub: Subscription{Tier: TierFree, Consumed: 3, Ceiling: IntPtr(9)}, wantCeiling: IntPtr(1), wantConsumed: 1},
		{name: "pro follows policy", sub: Subscription{Tier: TierPro, Consumed: 12, Ceiling: IntPtr(10)}, wantCeiling: IntPtr(25), wantConsumed: 12},
		{name: "enterprise drops ceiling", sub: Subscription{Tier: TierEnterprise, Consumed: 40, Ceiling: IntPtr(5)}, wantConsumed: 40},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := tc.sub.ApplyPolicy(policy)
			assert.Equal(t, tc.wantCeiling, got.Ceiling)
			assert.Equal(t, tc.wantConsumed, got.Consumed)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestSubscriptionValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sub     Subscription
		wantErr string
	}{
		{name: "valid pro", sub: Subscription{Tier: TierPro, Consumed: 3, Ceiling: IntPtr(10)}},
		{name: "valid enterprise", sub: Subscription{Tier: TierEnterprise, Consumed: 300}},
		{name: "unknown tier", sub: Subscription{Tier: "GOLD"}, wantErr: "unsupported tier"},
		{name: "negative", sub: Subscription{Tier: TierFree, Consumed: -1, Ceiling: IntPtr(1)}, wantErr: "must not be negative"},
		{name: "over ceiling", sub: Subscription{Tier: TierFree, Consumed: 2, Ceiling: IntPtr(1)}, wantErr: "exceeds ceiling"},
		{name: "free without ceiling", sub: Subscription{Tier: TierFree}, wantErr: "requires a quota ceiling"},
		{name: "enterprise with ceiling", sub: Subscription{Tier: TierEnterprise, Ceiling: IntPtr(5)}, wantErr: "has no quota ceiling"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.sub.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestParseTierIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	tier, err := ParseTier(" pro ")
	require.NoError(t, err)
	assert.Equal(t, TierPro, tier)

	_, err = ParseTier("platinum")
	assert.ErrorContains(t, err, "unsupported tier")
}

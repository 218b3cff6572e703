package domain

import (
	"fmt"
	"strings"
	"time"
)

type Tier string

const (
	TierFree       Tier = "FREE"
	TierPro        Tier = "PRO"
	TierEnterprise Tier = "ENTERPRISE"
)

func ParseTier(raw string) (Tier, error) {
	tier := Tier(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := capabilityTable[tier]; !ok {
		return "", fmt.Errorf("unsupported tier %q", raw)
	}

	return tier, nil
}

// Subscription tracks billable consumption for one account. A nil Ceiling
// means the tier is unlimited.
type Subscription struct {
	Tier        Tier
	Consumed    int
	Ceiling     *int
	PeriodStart time.Time
}

// QuotaPolicy carries the tunable ceilings. Tiers not listed here use the
// capability table defaults.
type QuotaPolicy struct {
	ProCeiling int
}

func DefaultQuotaPolicy() QuotaPolicy {
	return QuotaPolicy{ProCeiling: capabilityTable[TierPro].ceiling}
}

func (p QuotaPolicy) CeilingFor(tier Tier) *int {
	caps, ok := capabilityTable[tier]
	if !ok || caps.unlimited {
		return nil
	}

	ceiling := caps.ceiling
	if tier == TierPro && p.ProCeiling > 0 {
		ceiling = p.ProCeiling
	}

	return &ceiling
}

func NewSubscription(tier Tier, policy QuotaPolicy, now time.Time) Subscription {
	return Subscription{
		Tier:        tier,
		Consumed:    0,
		Ceiling:     policy.CeilingFor(tier),
		PeriodStart: periodStart(tier, now),
	}
}

func (s Subscription) CanConsume() bool {
	return s.Ceiling == nil || s.Consumed < *s.Ceiling
}

func (s Subscription) Remaining() (int, bool) {
	if s.Ceiling == nil {
		return 0, false
	}

	remaining := *s.Ceiling - s.Consumed
	if remaining < 0 {
		remaining = 0
	}

	return remaining, true
}

// RecordConsumption returns a copy with one more unit consumed. When the
// ceiling is reached the receiver is returned unchanged with ErrQuotaExceeded.
func (s Subscription) RecordConsumption() (Subscription, error) {
	if !s.CanConsume() {
		return s, ErrQuotaExceeded
	}

	next := s
	next.Ceiling = cloneCeiling(s.Ceiling)
	next.Consumed++

	return next, nil
}

// ChangeTier starts a fresh period on the new tier with zero consumption,
// whatever the previous tier or counter was.
func (s Subscription) ChangeTier(tier Tier, policy QuotaPolicy, now time.Time) Subscription {
	return NewSubscription(tier, policy, now)
}

// ApplyPolicy derives the ceiling from the tier, whatever ceiling was stored
// with the subscription. Consumption above a lowered ceiling is clamped to it.
func (s Subscription) ApplyPolicy(policy QuotaPolicy) Subscription {
	next := s
	next.Ceiling = policy.CeilingFor(s.Tier)
	if next.Ceiling != nil && next.Consumed > *next.Ceiling {
		next.Consumed = *next.Ceiling
	}

	return next
}

// Rollover resets consumption when a periodic tier has entered a new billing
// period. Non-periodic tiers are returned unchanged.
func (s Subscription) Rollover(now time.Time) Subscription {
	caps, ok := capabilityTable[s.Tier]
	if !ok || !caps.periodic {
		return s
	}

	current := monthStart(now)
	if !s.PeriodStart.IsZero() && !s.PeriodStart.Before(current) {
		return s
	}

	next := s
	next.Ceiling = cloneCeiling(s.Ceiling)
	next.Consumed = 0
	next.PeriodStart = current

	return next
}

func (s Subscription) Validate() error {
	caps, ok := capabilityTable[s.Tier]
	if !ok {
		return fmt.Errorf("unsupported tier %q", s.Tier)
	}
	if caps.unlimited && s.Ceiling != nil {
		return fmt.Errorf("tier %s has no quota ceiling", s.Tier)
	}
	if !caps.unlimited && s.Ceiling == nil {
		return fmt.Errorf("tier %s requires a quota ceiling", s.Tier)
	}
	if s.Consumed < 0 {
		return fmt.Errorf("consumed must not be negative")
	}
	if s.Ceiling != nil && s.Consumed > *s.Ceiling {
		return fmt.Errorf("consumed %d exceeds ceiling %d", s.Consumed, *s.Ceiling)
	}

	return nil
}

func periodStart(tier Tier, now time.Time) time.Time {
	if caps, ok := capabilityTable[tier]; ok && caps.periodic {
		return monthStart(now)
	}

	return now.UTC()
}

func monthStart(now time.Time) time.Time {
	utc := now.UTC()
	return time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func cloneCeiling(ceiling *int) *int {
	if ceiling == nil {
		return nil
	}

	value := *ceiling
	return &value
}

func IntPtr(v int) *int {
	return &v
}

package domain

import "fmt"

type Feature string

const (
	FeatureAnalysis          Feature = "analysis"
	FeatureProposal          Feature = "proposal"
	FeatureAssetGeneration   Feature = "asset_generation"
	FeatureTeamCollaboration Feature = "team_collaboration"
	FeatureBidArchive        Feature = "bid_archive"
)

var Features = []Feature{
	FeatureAnalysis,
	FeatureProposal,
	FeatureAssetGeneration,
	FeatureTeamCollaboration,
	FeatureBidArchive,
}

// Billable reports whether using the feature consumes quota. Only analysis
// is counted; generation features are gated by unlock alone.
func (f Feature) Billable() bool {
	return f == FeatureAnalysis
}

type tierCapabilities struct {
	ceiling   int
	unlimited bool
	periodic  bool
	features  map[Feature]bool
}

var capabilityTable = map[Tier]tierCapabilities{
	TierFree: {
		ceiling: 1,
		features: map[Feature]bool{
			FeatureAnalysis: true,
		},
	},
	TierPro: {
		ceiling:  10,
		periodic: true,
		features: map[Feature]bool{
			FeatureAnalysis:        true,
			FeatureProposal:        true,
			FeatureAssetGeneration: true,
		},
	},
	TierEnterprise: {
		unlimited: true,
		features: map[Feature]bool{
			FeatureAnalysis:          true,
			FeatureProposal:          true,
			FeatureAssetGeneration:   true,
			FeatureTeamCollaboration: true,
			FeatureBidArchive:        true,
		},
	},
}

type Decision struct {
	Feature Feature
	Tier    Tier
	Allowed bool
	Reason  string
}

func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrFeatureLocked, d.Reason)
}

func AuthorizeFeature(tier Tier, feature Feature) Decision {
	decision := Decision{Feature: feature, Tier: tier}

	caps, ok := capabilityTable[tier]
	if !ok {
		decision.Reason = fmt.Sprintf("unknown tier %q", tier)
		return decision
	}
	if !caps.features[feature] {
		decision.Reason = fmt.Sprintf("%s is not included in the %s tier", feature, tier)
		return decision
	}

	decision.Allowed = true
	return decision
}

// AuthorizeAccount applies the admin override before the tier table. The
// override only covers feature gates, never quota.
func AuthorizeAccount(account Account, feature Feature) Decision {
	if account.IsAdmin() {
		return Decision{Feature: feature, Tier: account.Tier(), Allowed: true, Reason: "admin override"}
	}

	return AuthorizeFeature(account.Tier(), feature)
}

// Entitle runs the full gate for an operation: the feature unlock and, for
// billable features, the remaining quota.
func Entitle(account Account, feature Feature) error {
	if err := AuthorizeAccount(account, feature).Err(); err != nil {
		return err
	}
	if feature.Billable() && !account.Subscription.CanConsume() {
		return fmt.Errorf("%w: %s tier allows %d analyses", ErrQuotaExceeded, account.Tier(), *account.Subscription.Ceiling)
	}

	return nil
}

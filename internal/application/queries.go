package application

import "github.com/bnema/tenderlogic-cli/internal/domain"

// Status is the entitlement view of one account: its quota and every feature
// decision.
type Status struct {
	Account   domain.Account
	Remaining int
	Unlimited bool
	Features  []domain.Decision
}

func statusFromAccount(account domain.Account) Status {
	remaining, limited := account.Subscription.Remaining()

	features := make([]domain.Decision, 0, len(domain.Features))
	for _, feature := range domain.Features {
		features = append(features, domain.AuthorizeAccount(account, feature))
	}

	return Status{
		Account:   account,
		Remaining: remaining,
		Unlimited: !limited,
		Features:  features,
	}
}

package domain

import (
	"errors"
	"fmt"
)

// Dataset is every persisted table at once, as moved by backup and restore.
type Dataset struct {
	Accounts    []Account
	Profiles    []CompanyProfile
	Tenders     []TenderRecord
	Activity    []ActivityEntry
	Invitations []Invitation
}

// Validate checks every row and the references between tables. All problems
// are reported together.
func (d Dataset) Validate() error {
	var errs []error

	accounts := make(map[AccountID]struct{}, len(d.Accounts))
	for _, account := range d.Accounts {
		if err := account.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("account %q: %w", account.ID, err))
			continue
		}
		if _, dup := accounts[account.ID]; dup {
			errs = append(errs, fmt.Errorf("account %q: duplicate id", account.ID))
			continue
		}
		accounts[account.ID] = struct{}{}
	}

	profiles := make(map[AccountID]struct{}, len(d.Profiles))
	for _, profile := range d.Profiles {
		if err := profile.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("profile %q: %w", profile.AccountID, err))
			continue
		}
		if _, dup := profiles[profile.AccountID]; dup {
			errs = append(errs, fmt.Errorf("profile %q: duplicate owner", profile.AccountID))
		}
		if _, ok := accounts[profile.AccountID]; !ok {
			errs = append(errs, fmt.Errorf("profile %q: unknown owner", profile.AccountID))
		}
		profiles[profile.AccountID] = struct{}{}
	}

	tenders := make(map[TenderKey]struct{}, len(d.Tenders))
	for _, tender := range d.Tenders {
		if tender.Key.Seq <= 0 {
			errs = append(errs, fmt.Errorf("tender %s: sequence must be positive", tender.Key))
		}
		if _, dup := tenders[tender.Key]; dup {
			errs = append(errs, fmt.Errorf("tender %s: duplicate key", tender.Key))
		}
		if _, ok := accounts[tender.Key.AccountID]; !ok {
			errs = append(errs, fmt.Errorf("tender %s: unknown owner", tender.Key))
		}
		if code, err := ParseJurisdiction(string(tender.Jurisdiction)); err != nil {
			errs = append(errs, fmt.Errorf("tender %s: %w", tender.Key, err))
		} else if code != tender.Jurisdiction {
			errs = append(errs, fmt.Errorf("tender %s: jurisdiction %q must be written %q", tender.Key, tender.Jurisdiction, code))
		}
		if err := tender.Analysis.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("tender %s: %w", tender.Key, err))
		}
		tenders[tender.Key] = struct{}{}
	}

	activity := make(map[int64]struct{}, len(d.Activity))
	for _, entry := range d.Activity {
		if category, err := ParseActivityCategory(string(entry.Category)); err != nil {
			errs = append(errs, fmt.Errorf("activity %d: %w", entry.ID, err))
		} else if category != entry.Category {
			errs = append(errs, fmt.Errorf("activity %d: category %q must be written %q", entry.ID, entry.Category, category))
		}
		if _, dup := activity[entry.ID]; dup {
			errs = append(errs, fmt.Errorf("activity %d: duplicate id", entry.ID))
		}
		activity[entry.ID] = struct{}{}
	}

	invitations := make(map[string]struct{}, len(d.Invitations))
	tokens := make(map[string]struct{}, len(d.Invitations))
	for _, invitation := range d.Invitations {
		if err := invitation.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("invitation %q: %w", invitation.ID, err))
			continue
		}
		if _, dup := invitations[invitation.ID]; dup {
			errs = append(errs, fmt.Errorf("invitation %q: duplicate id", invitation.ID))
		}
		if _, dup := tokens[invitation.Token]; dup {
			errs = append(errs, fmt.Errorf("invitation %q: duplicate token", invitation.ID))
		}
		if _, ok := accounts[invitation.AccountID]; !ok {
			errs = append(errs, fmt.Errorf("invitation %q: unknown owner", invitation.ID))
		}
		invitations[invitation.ID] = struct{}{}
		tokens[invitation.Token] = struct{}{}
	}

	return errors.Join(errs...)
}

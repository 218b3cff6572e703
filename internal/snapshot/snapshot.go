// Package snapshot converts the whole local database to and from the portable
// JSON backup format.
package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/tenderlogic-cli/internal/contract"
	"github.com/bnema/tenderlogic-cli/internal/domain"
)

const FormatVersion = "1.0.0"

type Snapshot struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	Tables     Tables    `json:"tables"`
}

type Tables struct {
	Users       []UserRow       `json:"users"`
	Tenders     []TenderRow     `json:"tenders"`
	Profiles    []ProfileRow    `json:"profiles"`
	Logs        []LogRow        `json:"logs"`
	Invitations []InvitationRow `json:"invitations"`
}

type UserRow struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             string    `json:"role"`
	SubscriptionTier string    `json:"subscriptionTier"`
	Provider         string    `json:"provider"`
	CreatedAt        time.Time `json:"createdAt"`
	TendersUsed      int       `json:"tendersUsed"`
	// MaxTenders is written for readers of the file. Decode derives the
	// ceiling from the tier instead.
	MaxTenders       *int      `json:"maxTenders"`
	PeriodStart      time.Time `json:"periodStart"`
}

type TenderRow struct {
	ID           int                       `json:"id"`
	UserID       string                    `json:"userId"`
	Jurisdiction string                    `json:"jurisdiction"`
	Source       string                    `json:"source,omitempty"`
	CreatedAt    time.Time                 `json:"createdAt"`
	Analysis     contract.AnalysisDocument `json:"analysis"`
}

type ProfileRow struct {
	UserID         string   `json:"userId"`
	Name           string   `json:"name"`
	Experience     string   `json:"experience"`
	Certifications []string `json:"certifications"`
	PastProjects   []string `json:"pastProjects"`
	BidHistory     string   `json:"bidHistory,omitempty"`
}

type LogRow struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Event     string    `json:"event"`
	UserID    string    `json:"userId,omitempty"`
}

type InvitationRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// FileName is the suggested name for an export taken at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("tenderlogic_backup_%s.json", t.UTC().Format("2006-01-02"))
}

func Encode(dataset domain.Dataset, exportedAt time.Time) Snapshot {
	snap := Snapshot{
		Version:    FormatVersion,
		ExportedAt: exportedAt.UTC(),
		Tables: Tables{
			Users:       make([]UserRow, 0, len(dataset.Accounts)),
			Tenders:     make([]TenderRow, 0, len(dataset.Tenders)),
			Profiles:    make([]ProfileRow, 0, len(dataset.Profiles)),
			Logs:        make([]LogRow, 0, len(dataset.Activity)),
			Invitations: make([]InvitationRow, 0, len(dataset.Invitations)),
		},
	}

	for _, account := range dataset.Accounts {
		snap.Tables.Users = append(snap.Tables.Users, UserRow{
			ID:               string(account.ID),
			Email:            account.Email,
			Name:             account.Name,
			Role:             string(account.Role),
			SubscriptionTier: string(account.Subscription.Tier),
			Provider:         string(account.AuthOrigin),
			CreatedAt:        account.CreatedAt,
			TendersUsed:      account.Subscription.Consumed,
			MaxTenders:       account.Subscription.Ceiling,
			PeriodStart:      account.Subscription.PeriodStart,
		})
	}
	for _, tender := range dataset.Tenders {
		snap.Tables.Tenders = append(snap.Tables.Tenders, TenderRow{
			ID:           tender.Key.Seq,
			UserID:       string(tender.Key.AccountID),
			Jurisdiction: string(tender.Jurisdiction),
			Source:       tender.Source,
			CreatedAt:    tender.CreatedAt,
			Analysis:     contract.NewAnalysisDocument(tender.Analysis),
		})
	}
	for _, profile := range dataset.Profiles {
		snap.Tables.Profiles = append(snap.Tables.Profiles, ProfileRow{
			UserID:         string(profile.AccountID),
			Name:           profile.Name,
			Experience:     profile.Experience,
			Certifications: nonNil(profile.Certifications),
			PastProjects:   nonNil(profile.PastProjects),
			BidHistory:     profile.BidHistory,
		})
	}
	for _, entry := range dataset.Activity {
		snap.Tables.Logs = append(snap.Tables.Logs, LogRow{
			ID:        entry.ID,
			Timestamp: entry.Timestamp,
			Type:      string(entry.Category),
			Event:     entry.Event,
			UserID:    string(entry.AccountID),
		})
	}
	for _, invitation := range dataset.Invitations {
		snap.Tables.Invitations = append(snap.Tables.Invitations, InvitationRow{
			ID:        invitation.ID,
			UserID:    string(invitation.AccountID),
			Email:     invitation.Email,
			Role:      string(invitation.Role),
			Token:     invitation.Token,
			Status:    string(invitation.Status),
			CreatedAt: invitation.CreatedAt,
		})
	}

	return snap
}

func Marshal(snap Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

type envelope struct {
	Version *string                    `json:"version"`
	Tables  map[string]json.RawMessage `json:"tables"`
}

var requiredTables = []string{"users", "tenders", "profiles", "logs"}

// Decode parses and fully validates a snapshot. Enumerated values are stored
// in their canonical spelling and quota ceilings come from policy. It returns
// ErrImportVersionMismatch for any version tag other than FormatVersion and
// ErrImportCorrupt for everything else that would leave the store
// inconsistent.
func Decode(data []byte, policy domain.QuotaPolicy) (domain.Dataset, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.Dataset{}, fmt.Errorf("%w: %v", domain.ErrImportCorrupt, err)
	}
	if env.Version == nil {
		return domain.Dataset{}, fmt.Errorf("%w: missing version", domain.ErrImportCorrupt)
	}
	if *env.Version != FormatVersion {
		return domain.Dataset{}, fmt.Errorf("%w: got %q, want %q", domain.ErrImportVersionMismatch, *env.Version, FormatVersion)
	}
	if env.Tables == nil {
		return domain.Dataset{}, fmt.Errorf("%w: missing tables", domain.ErrImportCorrupt)
	}
	for _, name := range requiredTables {
		raw, ok := env.Tables[name]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return domain.Dataset{}, fmt.Errorf("%w: missing table %q", domain.ErrImportCorrupt, name)
		}
	}

	var tables struct {
		Users       []UserRow
		Tenders     []json.RawMessage
		Profiles    []ProfileRow
		Logs        []LogRow
		Invitations []InvitationRow
	}
	targets := map[string]any{
		"users":       &tables.Users,
		"tenders":     &tables.Tenders,
		"profiles":    &tables.Profiles,
		"logs":        &tables.Logs,
		"invitations": &tables.Invitations,
	}
	for name, target := range targets {
		raw, ok := env.Tables[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return domain.Dataset{}, fmt.Errorf("%w: table %q: %v", domain.ErrImportCorrupt, name, err)
		}
	}

	dataset := domain.Dataset{}
	var errs []error

	for i, row := range tables.Users {
		account, err := decodeAccount(row, policy)
		if err != nil {
			errs = append(errs, fmt.Errorf("user row %d: %w", i, err))
			continue
		}
		dataset.Accounts = append(dataset.Accounts, account)
	}

	for i, raw := range tables.Tenders {
		record, err := decodeTender(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("tender row %d: %w", i, err))
			continue
		}
		dataset.Tenders = append(dataset.Tenders, record)
	}

	for _, row := range tables.Profiles {
		dataset.Profiles = append(dataset.Profiles, domain.CompanyProfile{
			AccountID:      domain.AccountID(row.UserID),
			Name:           row.Name,
			Experience:     row.Experience,
			Certifications: row.Certifications,
			PastProjects:   row.PastProjects,
			BidHistory:     row.BidHistory,
		})
	}

	for i, row := range tables.Logs {
		category, err := domain.ParseActivityCategory(row.Type)
		if err != nil {
			errs = append(errs, fmt.Errorf("log row %d: %w", i, err))
			continue
		}
		dataset.Activity = append(dataset.Activity, domain.ActivityEntry{
			ID:        row.ID,
			Timestamp: row.Timestamp,
			Category:  category,
			Event:     row.Event,
			AccountID: domain.AccountID(row.UserID),
		})
	}

	for i, row := range tables.Invitations {
		invitation, err := decodeInvitation(row)
		if err != nil {
			errs = append(errs, fmt.Errorf("invitation row %d: %w", i, err))
			continue
		}
		dataset.Invitations = append(dataset.Invitations, invitation)
	}

	if err := dataset.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return domain.Dataset{}, fmt.Errorf("%w: %w", domain.ErrImportCorrupt, errors.Join(errs...))
	}

	return dataset, nil
}

func decodeAccount(row UserRow, policy domain.QuotaPolicy) (domain.Account, error) {
	role, err := domain.ParseRole(row.Role)
	if err != nil {
		return domain.Account{}, err
	}
	origin, err := domain.ParseAuthOrigin(row.Provider)
	if err != nil {
		return domain.Account{}, err
	}
	tier, err := domain.ParseTier(row.SubscriptionTier)
	if err != nil {
		return domain.Account{}, err
	}

	return domain.Account{
		ID:         domain.AccountID(row.ID),
		Email:      row.Email,
		Name:       row.Name,
		Role:       role,
		AuthOrigin: origin,
		CreatedAt:  row.CreatedAt,
		Subscription: domain.Subscription{
			Tier:        tier,
			Consumed:    row.TendersUsed,
			Ceiling:     policy.CeilingFor(tier),
			PeriodStart: row.PeriodStart,
		},
	}, nil
}

func decodeInvitation(row InvitationRow) (domain.Invitation, error) {
	role, err := domain.ParseRole(row.Role)
	if err != nil {
		return domain.Invitation{}, err
	}
	status, err := domain.ParseInvitationStatus(row.Status)
	if err != nil {
		return domain.Invitation{}, err
	}

	return domain.Invitation{
		ID:        row.ID,
		AccountID: domain.AccountID(row.UserID),
		Email:     row.Email,
		Role:      role,
		Token:     row.Token,
		Status:    status,
		CreatedAt: row.CreatedAt,
	}, nil
}

func decodeTender(raw json.RawMessage) (domain.TenderRecord, error) {
	var row struct {
		ID           *int            `json:"id"`
		UserID       *string         `json:"userId"`
		Jurisdiction *string         `json:"jurisdiction"`
		Source       string          `json:"source"`
		CreatedAt    time.Time       `json:"createdAt"`
		Analysis     json.RawMessage `json:"analysis"`
	}
	if err := json.Unmarshal(raw, &row); err != nil {
		return domain.TenderRecord{}, err
	}
	if row.ID == nil || row.UserID == nil || row.Jurisdiction == nil {
		return domain.TenderRecord{}, errors.New("missing id, userId or jurisdiction")
	}
	if len(row.Analysis) == 0 {
		return domain.TenderRecord{}, errors.New("missing analysis")
	}

	jurisdiction, err := domain.ParseJurisdiction(*row.Jurisdiction)
	if err != nil {
		return domain.TenderRecord{}, err
	}
	analysis, err := contract.DecodeAnalysis(row.Analysis)
	if err != nil {
		return domain.TenderRecord{}, err
	}

	return domain.TenderRecord{
		Key:          domain.TenderKey{AccountID: domain.AccountID(*row.UserID), Seq: *row.ID},
		Jurisdiction: jurisdiction,
		Source:       row.Source,
		Analysis:     analysis,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

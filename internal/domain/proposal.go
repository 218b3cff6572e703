package domain

import (
	"fmt"
	"strings"
)

// GeneratedProposal is not persisted; regenerating replaces the previous one.
type GeneratedProposal struct {
	TechnicalMemory     string
	ComplianceChecklist []string
	EstimatedScore      float64
	RAGInsights         []string
}

func (p GeneratedProposal) Validate() error {
	if strings.TrimSpace(p.TechnicalMemory) == "" {
		return fmt.Errorf("technical memory is empty")
	}
	if len(p.ComplianceChecklist) == 0 {
		return fmt.Errorf("compliance checklist is empty")
	}
	if p.EstimatedScore < 0 || p.EstimatedScore > 100 {
		return fmt.Errorf("estimated score %.1f outside 0-100", p.EstimatedScore)
	}

	return nil
}

type CompanyProfile struct {
	AccountID      AccountID
	Name           string
	Experience     string
	Certifications []string
	PastProjects   []string
	BidHistory     string
}

func (p CompanyProfile) HasBidHistory() bool {
	return strings.TrimSpace(p.BidHistory) != ""
}

func (p CompanyProfile) Validate() error {
	if strings.TrimSpace(string(p.AccountID)) == "" {
		return fmt.Errorf("profile account id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}

	return nil
}

// DefaultCompanyProfile is used until the account saves its own profile.
func DefaultCompanyProfile(accountID AccountID) CompanyProfile {
	return CompanyProfile{
		AccountID:      accountID,
		Name:           "Elite Engineering Group",
		Experience:     "15 years delivering public infrastructure and IT systems for government clients.",
		Certifications: []string{"ISO 9001", "ISO 27001"},
		PastProjects:   []string{"Regional data center build-out", "Municipal smart lighting rollout"},
	}
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Jurisdiction string

const (
	JurisdictionMorocco       Jurisdiction = "MA"
	JurisdictionEuropeanUnion Jurisdiction = "EU"
	JurisdictionUnitedStates  Jurisdiction = "USA"
	JurisdictionUnitedKingdom Jurisdiction = "UK"
)

var Jurisdictions = []Jurisdiction{
	JurisdictionMorocco,
	JurisdictionEuropeanUnion,
	JurisdictionUnitedStates,
	JurisdictionUnitedKingdom,
}

func ParseJurisdiction(raw string) (Jurisdiction, error) {
	code := Jurisdiction(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Jurisdictions {
		if code == known {
			return code, nil
		}
	}

	return "", fmt.Errorf("%w %q", ErrUnknownJurisdiction, raw)
}

type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

func ParseSeverity(raw string) (Severity, error) {
	switch Severity(raw) {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return Severity(raw), nil
	default:
		return "", fmt.Errorf("unsupported risk level %q", raw)
	}
}

type RiskAlert struct {
	Clause string
	Risk   string
	Level  Severity
}

// TenderAnalysis is the structured record extracted from a tender document.
type TenderAnalysis struct {
	Title           string
	TechnicalSpecs  []string
	Deadlines       string
	Penalties       string
	Certifications  []string
	ScoringCriteria []string
	RiskAlerts      []RiskAlert
}

func (a TenderAnalysis) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("title is required")
	}
	for i, alert := range a.RiskAlerts {
		if strings.TrimSpace(alert.Clause) == "" {
			return fmt.Errorf("risk alert %d: clause is required", i)
		}
		if strings.TrimSpace(alert.Risk) == "" {
			return fmt.Errorf("risk alert %d: risk is required", i)
		}
		if _, err := ParseSeverity(string(alert.Level)); err != nil {
			return fmt.Errorf("risk alert %d: %w", i, err)
		}
	}

	return nil
}

func (a TenderAnalysis) HighRiskCount() int {
	count := 0
	for _, alert := range a.RiskAlerts {
		if alert.Level == SeverityHigh {
			count++
		}
	}
	return count
}

// TenderKey identifies a stored analysis by owner and per-owner sequence.
type TenderKey struct {
	AccountID AccountID
	Seq       int
}

func (k TenderKey) String() string {
	return fmt.Sprintf("%s/%d", k.AccountID, k.Seq)
}

func ParseTenderKey(raw string) (TenderKey, error) {
	owner, seq, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok || owner == "" {
		return TenderKey{}, fmt.Errorf("invalid tender key %q (want <account>/<seq>)", raw)
	}

	n, err := strconv.Atoi(seq)
	if err != nil || n <= 0 {
		return TenderKey{}, fmt.Errorf("invalid tender key %q (want <account>/<seq>)", raw)
	}

	return TenderKey{AccountID: AccountID(owner), Seq: n}, nil
}

type TenderRecord struct {
	Key          TenderKey
	Jurisdiction Jurisdiction
	Source       string
	Analysis     TenderAnalysis
	CreatedAt    time.Time
}

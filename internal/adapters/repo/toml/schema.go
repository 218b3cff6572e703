package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version        int                `toml:"version"`
	NextActivityID int64              `toml:"next_activity_id"`
	Accounts       []accountSchema    `toml:"accounts"`
	Profiles       []profileSchema    `toml:"profiles"`
	Tenders        []tenderSchema     `toml:"tenders"`
	Activity       []activitySchema   `toml:"activity"`
	Invitations    []invitationSchema `toml:"invitations"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.NextActivityID == 0 {
		s.NextActivityID = 1
		for _, entry := range s.Activity {
			if entry.ID >= s.NextActivityID {
				s.NextActivityID = entry.ID + 1
			}
		}
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported store schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type accountSchema struct {
	ID           string             `toml:"id"`
	Email        string             `toml:"email"`
	Name         string             `toml:"name"`
	Role         string             `toml:"role"`
	AuthOrigin   string             `toml:"auth_origin"`
	CreatedAt    string             `toml:"created_at"`
	Subscription subscriptionSchema `toml:"subscription"`
}

type subscriptionSchema struct {
	Tier        string `toml:"tier"`
	Consumed    int    `toml:"consumed"`
	Unlimited   bool   `toml:"unlimited"`
	Ceiling     int    `toml:"ceiling"`
	PeriodStart string `toml:"period_start"`
}

type profileSchema struct {
	AccountID      string   `toml:"account_id"`
	Name           string   `toml:"name"`
	Experience     string   `toml:"experience"`
	Certifications []string `toml:"certifications"`
	PastProjects   []string `toml:"past_projects"`
	BidHistory     string   `toml:"bid_history,omitempty"`
}

type tenderSchema struct {
	AccountID    string         `toml:"account_id"`
	Seq          int            `toml:"seq"`
	Jurisdiction string         `toml:"jurisdiction"`
	Source       string         `toml:"source,omitempty"`
	CreatedAt    string         `toml:"created_at"`
	Analysis     analysisSchema `toml:"analysis"`
}

type analysisSchema struct {
	Title           string            `toml:"title"`
	TechnicalSpecs  []string          `toml:"technical_specs"`
	Deadlines       string            `toml:"deadlines"`
	Penalties       string            `toml:"penalties"`
	Certifications  []string          `toml:"certifications"`
	ScoringCriteria []string          `toml:"scoring_criteria"`
	RiskAlerts      []riskAlertSchema `toml:"risk_alerts"`
}

type riskAlertSchema struct {
	Clause string `toml:"clause"`
	Risk   string `toml:"risk"`
	Level  string `toml:"level"`
}

type activitySchema struct {
	ID        int64  `toml:"id"`
	Timestamp string `toml:"timestamp"`
	Category  string `toml:"category"`
	Event     string `toml:"event"`
	AccountID string `toml:"account_id,omitempty"`
}

type invitationSchema struct {
	ID        string `toml:"id"`
	AccountID string `toml:"account_id"`
	Email     string `toml:"email,omitempty"`
	Role      string `toml:"role"`
	Token     string `toml:"token"`
	Status    string `toml:"status"`
	CreatedAt string `toml:"created_at"`
}

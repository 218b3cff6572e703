package sqlite

import (
	"encoding/json"
	"time"

	"github.com/bnema/tenderlogic-cli/internal/domain"
)

type accountModel struct {
	ID          string    `gorm:"primary_key"`
	Email       string    `gorm:"not null"`
	Name        string    `gorm:"not null"`
	Role        string    `gorm:"not null"`
	AuthOrigin  string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	Tier        string    `gorm:"not null"`
	Consumed    int       `gorm:"not null;default:0"`
	Ceiling     *int
	PeriodStart time.Time
}

func (accountModel) TableName() string { return "accounts" }

type profileModel struct {
	AccountID      string `gorm:"primary_key"`
	Name           string `gorm:"not null"`
	Experience     string `gorm:"type:text"`
	Certifications string `gorm:"type:text"`
	PastProjects   string `gorm:"type:text"`
	BidHistory     string `gorm:"type:text"`
}

func (profileModel) TableName() string { return "profiles" }

type tenderModel struct {
	ID           uint   `gorm:"primary_key;AUTO_INCREMENT"`
	AccountID    string `gorm:"not null;unique_index:idx_tender_key"`
	Seq          int    `gorm:"not null;unique_index:idx_tender_key"`
	Jurisdiction string `gorm:"not null"`
	Source       string
	CreatedAt    time.Time
	Analysis     string `gorm:"type:text;not null"`
}

func (tenderModel) TableName() string { return "tenders" }

type activityModel struct {
	ID        int64     `gorm:"primary_key;AUTO_INCREMENT"`
	Timestamp time.Time `gorm:"index"`
	Category  string    `gorm:"not null"`
	Event     string    `gorm:"type:text"`
	AccountID string
}

func (activityModel) TableName() string { return "activity" }

type invitationModel struct {
	ID        string `gorm:"primary_key"`
	AccountID string `gorm:"not null"`
	Email     string
	Role      string `gorm:"not null"`
	Token     string `gorm:"not null;unique"`
	Status    string `gorm:"not null"`
	CreatedAt time.Time
}

func (invitationModel) TableName() string { return "invitations" }

type analysisColumn struct {
	Title           string            `json:"title"`
	TechnicalSpecs  []string          `json:"technicalSpecs"`
	Deadlines       string            `json:"deadlines"`
	Penalties       string            `json:"penalties"`
	Certifications  []string          `json:"certifications"`
	ScoringCriteria []string          `json:"scoringCriteria"`
	RiskAlerts      []riskAlertColumn `json:"riskAlerts"`
}

type riskAlertColumn struct {
	Clause string `json:"clause"`
	Risk   string `json:"risk"`
	Level  string `json:"level"`
}

func toAccountModel(account domain.Account) accountModel {
	return accountModel{
		ID:          string(account.ID),
		Email:       account.Email,
		Name:        account.Name,
		Role:        string(account.Role),
		AuthOrigin:  string(account.AuthOrigin),
		CreatedAt:   account.CreatedAt.UTC(),
		Tier:        string(account.Subscription.Tier),
		Consumed:    account.Subscription.Consumed,
		Ceiling:     account.Subscription.Ceiling,
		PeriodStart: account.Subscription.PeriodStart.UTC(),
	}
}

func (m accountModel) toDomain() domain.Account {
	var ceiling *int
	if m.Ceiling != nil {
		ceiling = domain.IntPtr(*m.Ceiling)
	}

	return domain.Account{
		ID:         domain.AccountID(m.ID),
		Email:      m.Email,
		Name:       m.Name,
		Role:       domain.Role(m.Role),
		AuthOrigin: domain.AuthOrigin(m.AuthOrigin),
		CreatedAt:  m.CreatedAt.UTC(),
		Subscription: domain.Subscription{
			Tier:        domain.Tier(m.Tier),
			Consumed:    m.Consumed,
			Ceiling:     ceiling,
			PeriodStart: m.PeriodStart.UTC(),
		},
	}
}

func toProfileModel(profile domain.CompanyProfile) (profileModel, error) {
	certifications, err := encodeList(profile.Certifications)
	if err != nil {
		return profileModel{}, err
	}
	projects, err := encodeList(profile.PastProjects)
	if err != nil {
		return profileModel{}, err
	}

	return profileModel{
		AccountID:      string(profile.AccountID),
		Name:           profile.Name,
		Experience:     profile.Experience,
		Certifications: certifications,
		PastProjects:   projects,
		BidHistory:     profile.BidHistory,
	}, nil
}

func (m profileModel) toDomain() (domain.CompanyProfile, error) {
	certifications, err := decodeList(m.Certifications)
	if err != nil {
		return domain.CompanyProfile{}, err
	}
	projects, err := decodeList(m.PastProjects)
	if err != nil {
		return domain.CompanyProfile{}, err
	}

	return domain.CompanyProfile{
		AccountID:      domain.AccountID(m.AccountID),
		Name:           m.Name,
		Experience:     m.Experience,
		Certifications: certifications,
		PastProjects:   projects,
		BidHistory:     m.BidHistory,
	}, nil
}

func toTenderModel(record domain.TenderRecord) (tenderModel, error) {
	column := analysisColumn{
		Title:           record.Analysis.Title,
		TechnicalSpecs:  record.Analysis.TechnicalSpecs,
		Deadlines:       record.Analysis.Deadlines,
		Penalties:       record.Analysis.Penalties,
		Certifications:  record.Analysis.Certifications,
		ScoringCriteria: record.Analysis.ScoringCriteria,
		RiskAlerts:      make([]riskAlertColumn, 0, len(record.Analysis.RiskAlerts)),
	}
	for _, alert := range record.Analysis.RiskAlerts {
		column.RiskAlerts = append(column.RiskAlerts, riskAlertColumn{Clause: alert.Clause, Risk: alert.Risk, Level: string(alert.Level)})
	}

	data, err := json.Marshal(column)
	if err != nil {
		return tenderModel{}, err
	}

	return tenderModel{
		AccountID:    string(record.Key.AccountID),
		Seq:          record.Key.Seq,
		Jurisdiction: string(record.Jurisdiction),
		Source:       record.Source,
		CreatedAt:    record.CreatedAt.UTC(),
		Analysis:     string(data),
	}, nil
}

func (m tenderModel) toDomain() (domain.TenderRecord, error) {
	var column analysisColumn
	if err := json.Unmarshal([]byte(m.Analysis), &column); err != nil {
		return domain.TenderRecord{}, err
	}

	alerts := make([]domain.RiskAlert, 0, len(column.RiskAlerts))
	for _, alert := range column.RiskAlerts {
		alerts = append(alerts, domain.RiskAlert{Clause: alert.Clause, Risk: alert.Risk, Level: domain.Severity(alert.Level)})
	}

	return domain.TenderRecord{
		Key:          domain.TenderKey{AccountID: domain.AccountID(m.AccountID), Seq: m.Seq},
		Jurisdiction: domain.Jurisdiction(m.Jurisdiction),
		Source:       m.Source,
		CreatedAt:    m.CreatedAt.UTC(),
		Analysis: domain.TenderAnalysis{
			Title:           column.Title,
			TechnicalSpecs:  orEmpty(column.TechnicalSpecs),
			Deadlines:       column.Deadlines,
			Penalties:       column.Penalties,
			Certifications:  orEmpty(column.Certifications),
			ScoringCriteria: orEmpty(column.ScoringCriteria),
			RiskAlerts:      alerts,
		},
	}, nil
}

func toActivityModel(entry domain.ActivityEntry) activityModel {
	return activityModel{
		ID:        entry.ID,
		Timestamp: entry.Timestamp.UTC(),
		Category:  string(entry.Category),
		Event:     entry.Event,
		AccountID: string(entry.AccountID),
	}
}

func (m activityModel) toDomain() domain.ActivityEntry {
	return domain.ActivityEntry{
		ID:        m.ID,
		Timestamp: m.Timestamp.UTC(),
		Category:  domain.ActivityCategory(m.Category),
		Event:     m.Event,
		AccountID: domain.AccountID(m.AccountID),
	}
}

func toInvitationModel(invitation domain.Invitation) invitationModel {
	return invitationModel{
		ID:        invitation.ID,
		AccountID: string(invitation.AccountID),
		Email:     invitation.Email,
		Role:      string(invitation.Role),
		Token:     invitation.Token,
		Status:    string(invitation.Status),
		CreatedAt: invitation.CreatedAt.UTC(),
	}
}

func (m invitationModel) toDomain() domain.Invitation {
	return domain.Invitation{
		ID:        m.ID,
		AccountID: domain.AccountID(m.AccountID),
		Email:     m.Email,
		Role:      domain.Role(m.Role),
		Token:     m.Token,
		Status:    domain.InvitationStatus(m.Status),
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, err
	}
	return orEmpty(values), nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

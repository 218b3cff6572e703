package toml

import "github.com/bnema/tenderlogic-cli/internal/domain"

func toAccountSchema(account domain.Account) accountSchema {
	sub := subscriptionSchema{
		Tier:        string(account.Subscription.Tier),
		Consumed:    account.Subscription.Consumed,
		Unlimited:   account.Subscription.Ceiling == nil,
		PeriodStart: formatTime(account.Subscription.PeriodStart),
	}
	if account.Subscription.Ceiling != nil {
		sub.Ceiling = *account.Subscription.Ceiling
	}

	return accountSchema{
		ID:           string(account.ID),
		Email:        account.Email,
		Name:         account.Name,
		Role:         string(account.Role),
		AuthOrigin:   string(account.AuthOrigin),
		CreatedAt:    formatTime(account.CreatedAt),
		Subscription: sub,
	}
}

func fromAccountSchema(schema accountSchema) domain.Account {
	sub := domain.Subscription{
		Tier:        domain.Tier(schema.Subscription.Tier),
		Consumed:    schema.Subscription.Consumed,
		PeriodStart: parseTime(schema.Subscription.PeriodStart),
	}
	if !schema.Subscription.Unlimited {
		sub.Ceiling = domain.IntPtr(schema.Subscription.Ceiling)
	}

	return domain.Account{
		ID:           domain.AccountID(schema.ID),
		Email:        schema.Email,
		Name:         schema.Name,
		Role:         domain.Role(schema.Role),
		AuthOrigin:   domain.AuthOrigin(schema.AuthOrigin),
		CreatedAt:    parseTime(schema.CreatedAt),
		Subscription: sub,
	}
}

func toProfileSchema(profile domain.CompanyProfile) profileSchema {
	return profileSchema{
		AccountID:      string(profile.AccountID),
		Name:           profile.Name,
		Experience:     profile.Experience,
		Certifications: profile.Certifications,
		PastProjects:   profile.PastProjects,
		BidHistory:     profile.BidHistory,
	}
}

func fromProfileSchema(schema profileSchema) domain.CompanyProfile {
	return domain.CompanyProfile{
		AccountID:      domain.AccountID(schema.AccountID),
		Name:           schema.Name,
		Experience:     schema.Experience,
		Certifications: schema.Certifications,
		PastProjects:   schema.PastProjects,
		BidHistory:     schema.BidHistory,
	}
}

func toTenderSchema(record domain.TenderRecord) tenderSchema {
	alerts := make([]riskAlertSchema, 0, len(record.Analysis.RiskAlerts))
	for _, alert := range record.Analysis.RiskAlerts {
		alerts = append(alerts, riskAlertSchema{Clause: alert.Clause, Risk: alert.Risk, Level: string(alert.Level)})
	}

	return tenderSchema{
		AccountID:    string(record.Key.AccountID),
		Seq:          record.Key.Seq,
		Jurisdiction: string(record.Jurisdiction),
		Source:       record.Source,
		CreatedAt:    formatTime(record.CreatedAt),
		Analysis: analysisSchema{
			Title:           record.Analysis.Title,
			TechnicalSpecs:  record.Analysis.TechnicalSpecs,
			Deadlines:       record.Analysis.Deadlines,
			Penalties:       record.Analysis.Penalties,
			Certifications:  record.Analysis.Certifications,
			ScoringCriteria: record.Analysis.ScoringCriteria,
			RiskAlerts:      alerts,
		},
	}
}

func fromTenderSchema(schema tenderSchema) domain.TenderRecord {
	alerts := make([]domain.RiskAlert, 0, len(schema.Analysis.RiskAlerts))
	for _, alert := range schema.Analysis.RiskAlerts {
		alerts = append(alerts, domain.RiskAlert{Clause: alert.Clause, Risk: alert.Risk, Level: domain.Severity(alert.Level)})
	}

	return domain.TenderRecord{
		Key:          domain.TenderKey{AccountID: domain.AccountID(schema.AccountID), Seq: schema.Seq},
		Jurisdiction: domain.Jurisdiction(schema.Jurisdiction),
		Source:       schema.Source,
		CreatedAt:    parseTime(schema.CreatedAt),
		Analysis: domain.TenderAnalysis{
			Title:           schema.Analysis.Title,
			TechnicalSpecs:  orEmpty(schema.Analysis.TechnicalSpecs),
			Deadlines:       schema.Analysis.Deadlines,
			Penalties:       schema.Analysis.Penalties,
			Certifications:  orEmpty(schema.Analysis.Certifications),
			ScoringCriteria: orEmpty(schema.Analysis.ScoringCriteria),
			RiskAlerts:      alerts,
		},
	}
}

func toActivitySchema(entry domain.ActivityEntry) activitySchema {
	return activitySchema{
		ID:        entry.ID,
		Timestamp: formatTime(entry.Timestamp),
		Category:  string(entry.Category),
		Event:     entry.Event,
		AccountID: string(entry.AccountID),
	}
}

func fromActivitySchema(schema activitySchema) domain.ActivityEntry {
	return domain.ActivityEntry{
		ID:        schema.ID,
		Timestamp: parseTime(schema.Timestamp),
		Category:  domain.ActivityCategory(schema.Category),
		Event:     schema.Event,
		AccountID: domain.AccountID(schema.AccountID),
	}
}

func toInvitationSchema(invitation domain.Invitation) invitationSchema {
	return invitationSchema{
		ID:        invitation.ID,
		AccountID: string(invitation.AccountID),
		Email:     invitation.Email,
		Role:      string(invitation.Role),
		Token:     invitation.Token,
		Status:    string(invitation.Status),
		CreatedAt: formatTime(invitation.CreatedAt),
	}
}

func fromInvitationSchema(schema invitationSchema) domain.Invitation {
	return domain.Invitation{
		ID:        schema.ID,
		AccountID: domain.AccountID(schema.AccountID),
		Email:     schema.Email,
		Role:      domain.Role(schema.Role),
		Token:     schema.Token,
		Status:    domain.InvitationStatus(schema.Status),
		CreatedAt: parseTime(schema.CreatedAt),
	}
}

// TOML has no null, so absent lists come back as nil.
func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

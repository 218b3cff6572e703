package domain

import (
	"fmt"
	"strings"
	"time"
)

type AccountID string

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

type AuthOrigin string

const (
	AuthOriginEmail  AuthOrigin = "email"
	AuthOriginGoogle AuthOrigin = "google"
)

type Account struct {
	ID           AccountID
	Email        string
	Name         string
	Role         Role
	AuthOrigin   AuthOrigin
	CreatedAt    time.Time
	Subscription Subscription
}

func (a Account) Tier() Tier {
	return a.Subscription.Tier
}

func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Account) Validate() error {
	if strings.TrimSpace(string(a.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(a.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if err := validateRole(a.Role); err != nil {
		return err
	}
	origin, err := ParseAuthOrigin(string(a.AuthOrigin))
	if err != nil {
		return err
	}
	if origin != a.AuthOrigin {
		return fmt.Errorf("auth origin %q must be written %q", a.AuthOrigin, origin)
	}

	return a.Subscription.Validate()
}

func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch role {
	case RoleAdmin, RoleEditor, RoleViewer:
		return role, nil
	default:
		return "", fmt.Errorf("unsupported role %q", raw)
	}
}

// validateRole accepts only the canonical spelling, since IsAdmin compares
// exactly.
func validateRole(role Role) error {
	parsed, err := ParseRole(string(role))
	if err != nil {
		return err
	}
	if parsed != role {
		return fmt.Errorf("role %q must be written %q", role, parsed)
	}

	return nil
}

func ParseAuthOrigin(raw string) (AuthOrigin, error) {
	origin := AuthOrigin(strings.ToLower(strings.TrimSpace(raw)))
	switch origin {
	case AuthOriginEmail, AuthOriginGoogle:
		return origin, nil
	default:
		return "", fmt.Errorf("unsupported auth origin %q", raw)
	}
}

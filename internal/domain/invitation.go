package domain

import (
	"fmt"
	"strings"
	"time"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
)

type Invitation struct {
	ID        string
	AccountID AccountID
	Email     string
	Role      Role
	Token     string
	Status    InvitationStatus
	CreatedAt time.Time
}

func (i Invitation) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("invitation id is required")
	}
	if strings.TrimSpace(i.Token) == "" {
		return fmt.Errorf("invitation token is required")
	}
	if err := validateRole(i.Role); err != nil {
		return err
	}
	switch i.Status {
	case InvitationPending, InvitationAccepted:
	default:
		return fmt.Errorf("unsupported invitation status %q", i.Status)
	}

	return nil
}

func ParseInvitationStatus(raw string) (InvitationStatus, error) {
	status := InvitationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch status {
	case InvitationPending, InvitationAccepted:
		return status, nil
	default:
		return "", fmt.Errorf("unsupported invitation status %q", raw)
	}
}

func (i Invitation) Accept() (Invitation, error) {
	if i.Status == InvitationAccepted {
		return i, fmt.Errorf("invitation %s already accepted", i.ID)
	}

	i.Status = InvitationAccepted
	return i, nil
}

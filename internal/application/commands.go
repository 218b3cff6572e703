package application

import (
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/bnema/tenderlogic-cli/internal/progress"
)

type CreateAccountCommand struct {
	// ID is generated when empty.
	ID         domain.AccountID
	Email      string
	Name       string
	Role       domain.Role
	Tier       domain.Tier
	AuthOrigin domain.AuthOrigin
}

type ChangeTierCommand struct {
	Actor  domain.AccountID
	Target domain.AccountID
	Tier   domain.Tier
}

type SetRoleCommand struct {
	Actor  domain.AccountID
	Target domain.AccountID
	Role   domain.Role
}

type AnalyzeCommand struct {
	AccountID    domain.AccountID
	Jurisdiction domain.Jurisdiction
	// Source names the ingested document, usually its file name.
	Source   string
	Text     string
	Observer progress.Observer
}

type GenerateProposalCommand struct {
	AccountID domain.AccountID
	Tender    domain.TenderKey
	Observer  progress.Observer
}

type GenerateAssetCommand struct {
	AccountID   domain.AccountID
	Description string
	Observer    progress.Observer
}

type EditAssetCommand struct {
	AccountID   domain.AccountID
	Source      ports.Image
	Instruction string
	Observer    progress.Observer
}

type InviteCommand struct {
	AccountID domain.AccountID
	Email     string
	Role      domain.Role
}

package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/google/uuid"
)

var ErrAccountExists = errors.New("account already exists")

// AccountService owns accounts, their subscriptions and company profiles.
// Loaded accounts are cached until Invalidate is called.
type AccountService struct {
	repo     ports.AccountRepository
	profiles ports.ProfileRepository
	activity *ActivityRecorder
	clock    ports.Clock
	policy   domain.QuotaPolicy

	cacheMu sync.RWMutex
	cache   map[domain.AccountID]domain.Account
}

func NewAccountService(repo ports.AccountRepository, profiles ports.ProfileRepository, activity *ActivityRecorder, clock ports.Clock, policy domain.QuotaPolicy) *AccountService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &AccountService{
		repo:     repo,
		profiles: profiles,
		activity: activity,
		clock:    clock,
		policy:   policy,
		cache:    map[domain.AccountID]domain.Account{},
	}
}

func (s *AccountService) Create(ctx context.Context, cmd CreateAccountCommand) (domain.Account, error) {
	email := strings.TrimSpace(cmd.Email)
	if email == "" {
		return domain.Account{}, errors.New("email is required")
	}

	accounts, err := s.repo.List(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("list accounts: %w", err)
	}
	for _, existing := range accounts {
		if strings.EqualFold(existing.Email, email) || (cmd.ID != "" && existing.ID == cmd.ID) {
			return domain.Account{}, fmt.Errorf("%w: %s", ErrAccountExists, email)
		}
	}

	id := cmd.ID
	if id == "" {
		id = domain.AccountID(uuid.NewString())
	}
	role := domain.RoleEditor
	if cmd.Role != "" {
		parsed, err := domain.ParseRole(string(cmd.Role))
		if err != nil {
			return domain.Account{}, err
		}
		role = parsed
	}
	origin := cmd.AuthOrigin
	if origin == "" {
		origin = domain.AuthOriginEmail
	}
	tier := cmd.Tier
	if tier == "" {
		tier = domain.TierFree
	}
	if role == domain.RoleAdmin {
		tier = domain.TierEnterprise
	}
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	now := s.clock.Now()
	account := domain.Account{
		ID:           id,
		Email:        email,
		Name:         name,
		Role:         role,
		AuthOrigin:   origin,
		CreatedAt:    now,
		Subscription: domain.NewSubscription(tier, s.policy, now),
	}
	if err := account.Validate(); err != nil {
		return domain.Account{}, err
	}

	if err := s.repo.Save(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("save account: %w", err)
	}
	s.remember(account)
	s.activity.Record(ctx, domain.ActivityInfo, account.ID, "User registered: %s", account.Email)

	return account, nil
}

// Get loads an account and rolls its subscription into the current billing
// period when one has started since the last save. The quota ceiling always
// comes from the tier under the current policy, never from the stored row.
func (s *AccountService) Get(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	account, ok := s.cached(id)
	if !ok {
		loaded, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return domain.Account{}, fmt.Errorf("get account by id: %w", err)
		}
		account = loaded
	}
	account.Subscription = account.Subscription.ApplyPolicy(s.policy)

	rolled := account.Subscription.Rollover(s.clock.Now())
	if !rolled.PeriodStart.Equal(account.Subscription.PeriodStart) {
		account.Subscription = rolled
		if err := s.repo.Save(ctx, account); err != nil {
			return domain.Account{}, fmt.Errorf("save renewed subscription: %w", err)
		}
		s.activity.Record(ctx, domain.ActivityInfo, account.ID, "Quota renewed for %s", account.Email)
	}
	s.remember(account)

	return account, nil
}

func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	for i := range accounts {
		accounts[i].Subscription = accounts[i].Subscription.ApplyPolicy(s.policy)
	}

	return accounts, nil
}

func (s *AccountService) Status(ctx context.Context, id domain.AccountID) (Status, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return Status{}, err
	}

	return statusFromAccount(account), nil
}

// ChangeTier moves an account to a new tier and starts a fresh period. An
// account may change its own tier; changing another account's tier needs the
// admin role.
func (s *AccountService) ChangeTier(ctx context.Context, cmd ChangeTierCommand) (domain.Account, error) {
	tier, err := domain.ParseTier(string(cmd.Tier))
	if err != nil {
		return domain.Account{}, err
	}

	actor, err := s.Get(ctx, cmd.Actor)
	if err != nil {
		return domain.Account{}, err
	}
	target := actor
	if cmd.Target != "" && cmd.Target != cmd.Actor {
		if !actor.IsAdmin() {
			return domain.Account{}, fmt.Errorf("%w: only admins can change another account's tier", domain.ErrPermissionDenied)
		}
		if target, err = s.Get(ctx, cmd.Target); err != nil {
			return domain.Account{}, err
		}
	}

	previous := target.Tier()
	target.Subscription = target.Subscription.ChangeTier(tier, s.policy, s.clock.Now())
	if err := s.repo.Save(ctx, target); err != nil {
		return domain.Account{}, fmt.Errorf("save account tier: %w", err)
	}
	s.remember(target)

	if target.ID == actor.ID {
		s.activity.Record(ctx, domain.ActivitySuccess, target.ID, "Subscription changed: %s -> %s", previous, tier)
	} else {
		s.activity.Record(ctx, domain.ActivityAdmin, actor.ID, "Tier of %s changed by admin: %s -> %s", target.Email, previous, tier)
	}

	return target, nil
}

func (s *AccountService) SetRole(ctx context.Context, cmd SetRoleCommand) (domain.Account, error) {
	role, err := domain.ParseRole(string(cmd.Role))
	if err != nil {
		return domain.Account{}, err
	}

	actor, err := s.Get(ctx, cmd.Actor)
	if err != nil {
		return domain.Account{}, err
	}
	if !actor.IsAdmin() {
		return domain.Account{}, fmt.Errorf("%w: only admins can change roles", domain.ErrPermissionDenied)
	}

	target, err := s.Get(ctx, cmd.Target)
	if err != nil {
		return domain.Account{}, err
	}

	target.Role = role
	if err := s.repo.Save(ctx, target); err != nil {
		return domain.Account{}, fmt.Errorf("save account role: %w", err)
	}
	s.remember(target)
	s.activity.Record(ctx, domain.ActivityAdmin, actor.ID, "Role of %s set to %s", target.Email, role)

	return target, nil
}

// GetProfile returns the saved company profile, or the default one when the
// account has not saved its own yet.
func (s *AccountService) GetProfile(ctx context.Context, id domain.AccountID) (domain.CompanyProfile, error) {
	profile, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return domain.DefaultCompanyProfile(id), nil
		}
		return domain.CompanyProfile{}, fmt.Errorf("get company profile: %w", err)
	}

	return profile, nil
}

// SaveProfile overwrites the account's profile. A bid history can only be
// stored by accounts entitled to the bid archive.
func (s *AccountService) SaveProfile(ctx context.Context, profile domain.CompanyProfile) error {
	account, err := s.Get(ctx, profile.AccountID)
	if err != nil {
		return err
	}
	if profile.HasBidHistory() {
		if err := domain.AuthorizeAccount(account, domain.FeatureBidArchive).Err(); err != nil {
			return err
		}
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("save company profile: %w", err)
	}
	s.activity.Record(ctx, domain.ActivityInfo, account.ID, "Company profile updated: %s", profile.Name)

	return nil
}

// Invalidate drops every cached account. It is called after the store has
// been replaced underneath the service.
func (s *AccountService) Invalidate() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache = map[domain.AccountID]domain.Account{}
}

func (s *AccountService) cached(id domain.AccountID) (domain.Account, bool) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	account, ok := s.cache[id]
	return account, ok
}

func (s *AccountService) remember(account domain.Account) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache[account.ID] = account
}

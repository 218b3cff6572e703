// Package sqlite is the relational store backend, selected with
// store.driver = sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/spf13/viper"
)

const (
	StorePathKey    = "store.path"
	storeDirMode    = 0o700
	storeConfigDir  = ".tenderlogic"
	storeConfigFile = "tenderlogic.db"
)

type Store struct {
	db *gorm.DB
	mu sync.RWMutex
}

var _ ports.Store = (*Store)(nil)

func NewStore(cfg *viper.Viper) (*Store, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.SetDefault(StorePathKey, filepath.Join(homeDir, storeConfigDir, storeConfigFile))

	path := cfg.GetString(StorePathKey)
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), storeDirMode); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	return Open(path)
}

// Open connects to the database at path and migrates every table.
func Open(path string) (*Store, error) {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	db.DB().SetMaxOpenConns(1)
	db.LogMode(false)

	if err := db.AutoMigrate(
		&accountModel{},
		&profileModel{},
		&tenderModel{},
		&activityModel{},
		&invitationModel{},
	).Error; err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite store: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetByID(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var model accountModel
	if err := s.db.Where("id = ?", string(id)).First(&model).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return domain.Account{}, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
		}
		return domain.Account{}, fmt.Errorf("load account: %w", err)
	}

	return model.toDomain(), nil
}

func (s *Store) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var models []accountModel
	if err := s.db.Order("created_at asc, id asc").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts := make([]domain.Account, 0, len(models))
	for _, model := range models {
		accounts = append(accounts, model.toDomain())
	}

	return accounts, nil
}

func (s *Store) Save(ctx context.Context, account domain.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}

	return s.transaction(ctx, func(tx *gorm.DB) error {
		return saveAccount(tx, account)
	})
}

func (s *Store) GetProfile(ctx context.Context, id domain.AccountID) (domain.CompanyProfile, error) {
	if err := ctx.Err(); err != nil {
		return domain.CompanyProfile{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var model profileModel
	if err := s.db.Where("account_id = ?", string(id)).First(&model).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return domain.CompanyProfile{}, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, id)
		}
		return domain.CompanyProfile{}, fmt.Errorf("load profile: %w", err)
	}

	return model.toDomain()
}

func (s *Store) SaveProfile(ctx context.Context, profile domain.CompanyProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	model, err := toProfileModel(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	return s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireAccount(tx, profile.AccountID); err != nil {
			return err
		}
		return tx.Save(&model).Error
	})
}

func (s *Store) CommitAnalysis(ctx context.Context, account domain.Account, record domain.TenderRecord) (domain.TenderRecord, error) {
	if err := account.Validate(); err != nil {
		return domain.TenderRecord{}, err
	}
	if err := record.Analysis.Validate(); err != nil {
		return domain.TenderRecord{}, err
	}

	err := s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireAccount(tx, account.ID); err != nil {
			return err
		}

		var last sql.NullInt64
		row := tx.Model(&tenderModel{}).Where("account_id = ?", string(account.ID)).Select("MAX(seq)").Row()
		if err := row.Scan(&last); err != nil {
			return fmt.Errorf("next tender sequence: %w", err)
		}
		record.Key = domain.TenderKey{AccountID: account.ID, Seq: int(last.Int64) + 1}

		model, err := toTenderModel(record)
		if err != nil {
			return fmt.Errorf("encode tender: %w", err)
		}
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("insert tender: %w", err)
		}

		return saveAccount(tx, account)
	})
	if err != nil {
		return domain.TenderRecord{}, err
	}

	return record, nil
}

func (s *Store) GetTender(ctx context.Context, key domain.TenderKey) (domain.TenderRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.TenderRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var model tenderModel
	err := s.db.Where("account_id = ? AND seq = ?", string(key.AccountID), key.Seq).First(&model).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return domain.TenderRecord{}, fmt.Errorf("%w: %s", domain.ErrTenderNotFound, key)
		}
		return domain.TenderRecord{}, fmt.Errorf("load tender: %w", err)
	}

	return model.toDomain()
}

// ListTenders returns the owner's tenders newest first. An empty owner lists
// every tender.
func (s *Store) ListTenders(ctx context.Context, owner domain.AccountID) ([]domain.TenderRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	query := s.db.Order("created_at desc, seq desc")
	if owner != "" {
		query = query.Where("account_id = ?", string(owner))
	}

	var models []tenderModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list tenders: %w", err)
	}

	return tendersToDomain(models)
}

func (s *Store) AppendActivity(ctx context.Context, entry domain.ActivityEntry) (domain.ActivityEntry, error) {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var last activityModel
		err := tx.Order("id desc").First(&last).Error
		switch {
		case err == nil:
			entry.Timestamp = domain.ClampActivityTimestamp(last.Timestamp.UTC(), entry.Timestamp)
		case !gorm.IsRecordNotFoundError(err):
			return fmt.Errorf("load last activity: %w", err)
		}

		entry.ID = 0
		model := toActivityModel(entry)
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
		entry.ID = model.ID
		entry.Timestamp = model.Timestamp
		return nil
	})
	if err != nil {
		return domain.ActivityEntry{}, err
	}

	return entry, nil
}

// RecentActivity returns at most limit entries, newest first. A non-positive
// limit falls back to domain.DefaultActivityLimit.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = domain.DefaultActivityLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var models []activityModel
	if err := s.db.Order("timestamp desc, id desc").Limit(limit).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	entries := make([]domain.ActivityEntry, 0, len(models))
	for _, model := range models {
		entries = append(entries, model.toDomain())
	}

	return entries, nil
}

func (s *Store) SaveInvitation(ctx context.Context, invitation domain.Invitation) error {
	if err := invitation.Validate(); err != nil {
		return err
	}
	model := toInvitationModel(invitation)

	return s.transaction(ctx, func(tx *gorm.DB) error {
		if err := requireAccount(tx, invitation.AccountID); err != nil {
			return err
		}
		return tx.Save(&model).Error
	})
}

func (s *Store) ListInvitations(ctx context.Context) ([]domain.Invitation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var models []invitationModel
	if err := s.db.Order("created_at asc, id asc").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	invitations := make([]domain.Invitation, 0, len(models))
	for _, model := range models {
		invitations = append(invitations, model.toDomain())
	}

	return invitations, nil
}

// transaction runs fn under the write lock inside one database transaction.
// Rollback failures are joined with the original error.
func (s *Store) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := ctx.Err(); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func saveAccount(tx *gorm.DB, account domain.Account) error {
	model := toAccountModel(account)
	if err := tx.Save(&model).Error; err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	return nil
}

func requireAccount(tx *gorm.DB, id domain.AccountID) error {
	var count int
	if err := tx.Model(&accountModel{}).Where("id = ?", string(id)).Count(&count).Error; err != nil {
		return fmt.Errorf("check account: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}
	return nil
}

func tendersToDomain(models []tenderModel) ([]domain.TenderRecord, error) {
	records := make([]domain.TenderRecord, 0, len(models))
	for _, model := range models {
		record, err := model.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode tender %s/%d: %w", model.AccountID, model.Seq, err)
		}
		records = append(records, record)
	}
	return records, nil
}

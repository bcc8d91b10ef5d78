package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sporture/talent-service/internal/cache"
	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/repositories"
)

type AccountPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewAccountPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.AccountRepository {
	return &AccountPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// Create inserts a credential record. The unique index on email turns a
// concurrent duplicate registration into ErrDuplicateKey instead of a second
// committed row.
func (a *AccountPostgreSQL) Create(ctx context.Context, account *models.Account) error {
	if err := a.db.WithContext(ctx).Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	cache.InvalidateAccountCache(ctx, a.cacheManager, account.ID, account.Email)
	return nil
}

func (a *AccountPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	err := a.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByEmail is the identity-resolver probe: one indexed lookup replaces the
// historical athlete-then-coach-then-sponsor table scan.
func (a *AccountPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := a.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &account, nil
}

func (a *AccountPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	cacheKey := fmt.Sprintf("email:%s", email)
	var exists bool

	err := a.cacheManager.Exists.CacheOrExecute(ctx, cacheKey, &exists, cache.ExistsCacheConfig.TTL, func() (interface{}, error) {
		var count int64
		err := a.db.WithContext(ctx).
			Model(&models.Account{}).
			Where("email = ?", email).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to check email existence: %w", err)
		}
		return count > 0, nil
	})

	return exists, err
}

func (a *AccountPostgreSQL) Delete(ctx context.Context, id uint) error {
	account, err := a.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := a.db.WithContext(ctx).Delete(&models.Account{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	cache.InvalidateAccountCache(ctx, a.cacheManager, id, account.Email)
	return nil
}

func (a *AccountPostgreSQL) List(ctx context.Context, filters repositories.AccountFilters) ([]*repositories.AccountSummary, int64, error) {
	if filters.Role == nil {
		return nil, 0, fmt.Errorf("role filter is required")
	}

	var total int64
	if err := a.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("role = ?", *filters.Role).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	// Join the role's profile table so the listing carries the display name.
	query := a.db.WithContext(ctx).Model(&models.Account{})
	switch *filters.Role {
	case models.RoleAthlete:
		query = query.
			Select("accounts.id, COALESCE(athlete_profiles.full_name, '') AS name, accounts.email").
			Joins("LEFT JOIN athlete_profiles ON athlete_profiles.account_id = accounts.id")
	case models.RoleCoach:
		query = query.
			Select("accounts.id, COALESCE(coach_profiles.full_name, '') AS name, accounts.email").
			Joins("LEFT JOIN coach_profiles ON coach_profiles.account_id = accounts.id")
	case models.RoleSponsor:
		query = query.
			Select("accounts.id, COALESCE(sponsor_profiles.name, '') AS name, accounts.email").
			Joins("LEFT JOIN sponsor_profiles ON sponsor_profiles.account_id = accounts.id")
	}

	query = query.Where("accounts.role = ?", *filters.Role).Order("accounts.id ASC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var summaries []*repositories.AccountSummary
	if err := query.Scan(&summaries).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	return summaries, total, nil
}

// ===== ROLE PROFILES =====

func (a *AccountPostgreSQL) CreateAthleteProfile(ctx context.Context, profile *models.AthleteProfile) error {
	if err := a.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create athlete profile: %w", err)
	}
	return nil
}

func (a *AccountPostgreSQL) CreateCoachProfile(ctx context.Context, profile *models.CoachProfile) error {
	if err := a.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create coach profile: %w", err)
	}
	return nil
}

func (a *AccountPostgreSQL) CreateSponsorProfile(ctx context.Context, profile *models.SponsorProfile) error {
	if err := a.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create sponsor profile: %w", err)
	}
	return nil
}

func (a *AccountPostgreSQL) GetAthleteProfile(ctx context.Context, accountID uint) (*models.AthleteProfile, error) {
	cacheKey := fmt.Sprintf("profile:%d", accountID)
	var profile models.AthleteProfile

	err := a.cacheManager.Account.CacheOrExecute(ctx, cacheKey, &profile, cache.AccountCacheConfig.TTL, func() (interface{}, error) {
		var dbProfile models.AthleteProfile
		err := a.db.WithContext(ctx).Where("account_id = ?", accountID).First(&dbProfile).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, repositories.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get athlete profile: %w", err)
		}
		return &dbProfile, nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (a *AccountPostgreSQL) GetCoachProfile(ctx context.Context, accountID uint) (*models.CoachProfile, error) {
	var profile models.CoachProfile
	err := a.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coach profile: %w", err)
	}
	return &profile, nil
}

func (a *AccountPostgreSQL) GetSponsorProfile(ctx context.Context, accountID uint) (*models.SponsorProfile, error) {
	var profile models.SponsorProfile
	err := a.db.WithContext(ctx).Where("account_id = ?", accountID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get sponsor profile: %w", err)
	}
	return &profile, nil
}

func (a *AccountPostgreSQL) UpdateAthleteProfile(ctx context.Context, accountID uint, fields map[string]any) error {
	return a.updateProfile(ctx, &models.AthleteProfile{}, accountID, fields)
}

func (a *AccountPostgreSQL) UpdateCoachProfile(ctx context.Context, accountID uint, fields map[string]any) error {
	return a.updateProfile(ctx, &models.CoachProfile{}, accountID, fields)
}

func (a *AccountPostgreSQL) UpdateSponsorProfile(ctx context.Context, accountID uint, fields map[string]any) error {
	return a.updateProfile(ctx, &models.SponsorProfile{}, accountID, fields)
}

// updateProfile overwrites only the supplied columns in a single statement;
// a failure leaves every prior value intact.
func (a *AccountPostgreSQL) updateProfile(ctx context.Context, model any, accountID uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := a.db.WithContext(ctx).
		Model(model).
		Where("account_id = ?", accountID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	cache.SafeDelete(ctx, a.cacheManager.Account, fmt.Sprintf("profile:%d", accountID))
	return nil
}

func (a *AccountPostgreSQL) DeleteProfile(ctx context.Context, role models.AccountRole, accountID uint) error {
	var err error
	switch role {
	case models.RoleAthlete:
		err = a.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&models.AthleteProfile{}).Error
	case models.RoleCoach:
		err = a.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&models.CoachProfile{}).Error
	case models.RoleSponsor:
		err = a.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&models.SponsorProfile{}).Error
	default:
		return fmt.Errorf("unknown role %q", role)
	}
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	cache.SafeDelete(ctx, a.cacheManager.Account, fmt.Sprintf("profile:%d", accountID))
	return nil
}

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

type ApplicationPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewApplicationPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.ApplicationRepository {
	return &ApplicationPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

func (r *ApplicationPostgreSQL) Create(ctx context.Context, application *models.Application) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	cache.InvalidateApplicationCache(ctx, r.cacheManager, application.ID)
	return nil
}

func (r *ApplicationPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var application models.Application
	err := r.db.WithContext(ctx).First(&application, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &application, nil
}

// List returns applications matching the filters, newest first. The pending
// listing backs the admin review queue and is cached.
func (r *ApplicationPostgreSQL) List(ctx context.Context, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	if filters.Status != nil && *filters.Status == models.ApplicationPending &&
		filters.AccountID == nil && filters.Limit == 0 {
		return r.listPendingCached(ctx)
	}
	return r.list(ctx, filters)
}

func (r *ApplicationPostgreSQL) listPendingCached(ctx context.Context) ([]*models.Application, int64, error) {
	var applications []*models.Application

	status := models.ApplicationPending
	err := r.cacheManager.Application.CacheOrExecute(ctx, "pending", &applications, cache.ApplicationCacheConfig.TTL, func() (interface{}, error) {
		apps, _, err := r.list(ctx, repositories.ApplicationFilters{Status: &status})
		if err != nil {
			return nil, err
		}
		return apps, nil
	})
	if err != nil {
		return nil, 0, err
	}

	return applications, int64(len(applications)), nil
}

func (r *ApplicationPostgreSQL) list(ctx context.Context, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{})

	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	query = query.Order("submission_date DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var applications []*models.Application
	if err := query.Find(&applications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}

	return applications, total, nil
}

// LatestForAthlete prefers the account_id link; the name-string match only
// covers rows submitted before accounts were recorded on applications.
func (r *ApplicationPostgreSQL) LatestForAthlete(ctx context.Context, accountID uint, fullName string) (*models.Application, error) {
	var application models.Application

	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("submission_date DESC").
		First(&application).Error
	if err == nil {
		return &application, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get application by account: %w", err)
	}

	if fullName == "" {
		return nil, repositories.ErrNotFound
	}

	err = r.db.WithContext(ctx).
		Where("athlete_name = ? AND account_id IS NULL", fullName).
		Order("submission_date DESC").
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application by name: %w", err)
	}

	return &application, nil
}

func (r *ApplicationPostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update application status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Re-applying the current status also reports zero affected rows on
		// some drivers, so distinguish a genuinely missing row.
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Application{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to verify application: %w", err)
		}
		if count == 0 {
			return repositories.ErrNotFound
		}
	}

	cache.InvalidateApplicationCache(ctx, r.cacheManager, id)
	return nil
}

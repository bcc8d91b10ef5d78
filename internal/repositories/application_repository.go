package repositories

import (
	"context"

	"github.com/sporture/talent-service/internal/models"
)

// ApplicationFilters defines filters for application queries.
type ApplicationFilters struct {
	Status    *models.ApplicationStatus
	AccountID *uint
	Limit     int
	Offset    int
}

// ApplicationRepository owns the applications table.
type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	List(ctx context.Context, filters ApplicationFilters) ([]*models.Application, int64, error)

	// LatestForAthlete resolves the newest application for an athlete account,
	// preferring the account_id link and falling back to the name-string match
	// used by legacy rows.
	LatestForAthlete(ctx context.Context, accountID uint, fullName string) (*models.Application, error)

	UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error
}

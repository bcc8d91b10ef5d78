package repositories

import (
	"context"

	"github.com/sporture/talent-service/internal/models"
)

// AccountFilters defines filters for account listings.
type AccountFilters struct {
	Role   *models.AccountRole
	Limit  int
	Offset int
}

// AccountSummary is the admin listing projection: id, display name, email.
type AccountSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AccountRepository owns the accounts table and the three role-profile tables.
type AccountRepository interface {
	// Credential record operations
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id uint) error

	// Listing for the admin surface
	List(ctx context.Context, filters AccountFilters) ([]*AccountSummary, int64, error)

	// Role profiles (one-to-one with accounts)
	CreateAthleteProfile(ctx context.Context, profile *models.AthleteProfile) error
	CreateCoachProfile(ctx context.Context, profile *models.CoachProfile) error
	CreateSponsorProfile(ctx context.Context, profile *models.SponsorProfile) error

	GetAthleteProfile(ctx context.Context, accountID uint) (*models.AthleteProfile, error)
	GetCoachProfile(ctx context.Context, accountID uint) (*models.CoachProfile, error)
	GetSponsorProfile(ctx context.Context, accountID uint) (*models.SponsorProfile, error)

	// Partial field updates; the caller supplies only the mutable columns.
	UpdateAthleteProfile(ctx context.Context, accountID uint, fields map[string]any) error
	UpdateCoachProfile(ctx context.Context, accountID uint, fields map[string]any) error
	UpdateSponsorProfile(ctx context.Context, accountID uint, fields map[string]any) error

	DeleteProfile(ctx context.Context, role models.AccountRole, accountID uint) error
}

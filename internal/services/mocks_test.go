package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/repositories"
)

// memoryRepository is an in-memory Repository for service tests. All state
// lives in maps guarded by one mutex; WithTransaction runs the callback
// against the same state, which is enough for the service-level behavior
// under test.
type memoryRepository struct {
	mu sync.Mutex

	nextAccountID     uint
	nextApplicationID uint

	accounts        map[uint]*models.Account
	athleteProfiles map[uint]*models.AthleteProfile
	coachProfiles   map[uint]*models.CoachProfile
	sponsorProfiles map[uint]*models.SponsorProfile
	applications    map[uint]*models.Application
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		accounts:        make(map[uint]*models.Account),
		athleteProfiles: make(map[uint]*models.AthleteProfile),
		coachProfiles:   make(map[uint]*models.CoachProfile),
		sponsorProfiles: make(map[uint]*models.SponsorProfile),
		applications:    make(map[uint]*models.Application),
	}
}

func (m *memoryRepository) Account() repositories.AccountRepository {
	return &memoryAccountRepository{repo: m}
}

func (m *memoryRepository) Application() repositories.ApplicationRepository {
	return &memoryApplicationRepository{repo: m}
}

func (m *memoryRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *memoryRepository) Ping(ctx context.Context) error { return nil }
func (m *memoryRepository) Close() error                   { return nil }

// ===== ACCOUNTS =====

type memoryAccountRepository struct {
	repo *memoryRepository
}

func (r *memoryAccountRepository) Create(ctx context.Context, account *models.Account) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	for _, existing := range r.repo.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return repositories.ErrDuplicateKey
		}
	}

	r.repo.nextAccountID++
	account.ID = r.repo.nextAccountID
	stored := *account
	r.repo.accounts[account.ID] = &stored
	return nil
}

func (r *memoryAccountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	account, ok := r.repo.accounts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *memoryAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	for _, account := range r.repo.accounts {
		if strings.EqualFold(account.Email, email) {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memoryAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *memoryAccountRepository) Delete(ctx context.Context, id uint) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	if _, ok := r.repo.accounts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.repo.accounts, id)
	return nil
}

func (r *memoryAccountRepository) List(ctx context.Context, filters repositories.AccountFilters) ([]*repositories.AccountSummary, int64, error) {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	var summaries []*repositories.AccountSummary
	for _, account := range r.repo.accounts {
		if filters.Role != nil && account.Role != *filters.Role {
			continue
		}

		name := ""
		switch account.Role {
		case models.RoleAthlete:
			if p, ok := r.repo.athleteProfiles[account.ID]; ok {
				name = p.FullName
			}
		case models.RoleCoach:
			if p, ok := r.repo.coachProfiles[account.ID]; ok {
				name = p.FullName
			}
		case models.RoleSponsor:
			if p, ok := r.repo.sponsorProfiles[account.ID]; ok {
				name = p.Name
			}
		}

		summaries = append(summaries, &repositories.AccountSummary{
			ID:    account.ID,
			Name:  name,
			Email: account.Email,
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	return summaries, int64(len(summaries)), nil
}

func (r *memoryAccountRepository) CreateAthleteProfile(ctx context.Context, profile *models.AthleteProfile) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()
	stored := *profile
	r.repo.athleteProfiles[profile.AccountID] = &stored
	return nil
}

func (r *memoryAccountRepository) CreateCoachProfile(ctx context.Context, profile *models.CoachProfile) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()
	stored := *profile
	r.repo.coachProfiles[profile.AccountID] = &stored
	return nil
}

func (r *memoryAccountRepository) CreateSponsorProfile(ctx context.Context, profile *models.SponsorProfile) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()
	stored := *profile
	r.repo.sponsorProfiles[profile.AccountID] = &stored
	return nil
}

func (r *memoryAccountRepository) GetAthleteProfile(ctx context.Context, accountID uint) (*models.AthleteProfile, error) {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	profile, ok := r.repo.athleteProfiles[accountID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *memoryAccountRepository) GetCoachProfile(ctx context.Context, accountID uint) (*models.CoachProfile, error) {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	profile, ok := r.repo.coachProfiles[accountID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *memoryAccountRepository) GetSponsorProfile(ctx context.Context, accountID uint) (*models.SponsorProfile, error) {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	profile, ok := r.repo.sponsorProfiles[accountID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (r *memoryAccountRepository) UpdateAthleteProfile(ctx context.Context, accountID uint, fields map[string]any) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	profile, ok := r.repo.athleteProfiles[accountID]
	if !ok {
		return repositories.ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "full_name":
			profile.FullName = value.(string)
		case "age":
			profile.Age = value.(int)
		case "gender":
			profile.Gender = value.(string)
		case "sport":
			profile.Sport = value.(string)
		case "achievements":
			profile.Achievements = value.(string)
		case "ranking":
			profile.Ranking = value.(string)
		case "experience_years":
			profile.ExperienceYears = value.(int)
		case "contact_number":
			profile.ContactNumber = value.(string)
		case "location":
			profile.Location = value.(string)
		}
	}
	return nil
}

func (r *memoryAccountRepository) UpdateCoachProfile(ctx context.Context, accountID uint, fields map[string]any) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	profile, ok := r.repo.coachProfiles[accountID]
	if !ok {
		return repositories.ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "full_name":
			profile.FullName = value.(string)
		case "specialization":
			profile.Specialization = value.(string)
		case "certifications":
			profile.Certifications = value.(string)
		case "experience_years":
			profile.ExperienceYears = value.(int)
		case "contact_number":
			profile.ContactNumber = value.(string)
		case "location":
			profile.Location = value.(string)
		}
	}
	return nil
}

func (r *memoryAccountRepository) UpdateSponsorProfile(ctx context.Context, accountID uint, fields map[string]any) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	profile, ok := r.repo.sponsorProfiles[accountID]
	if !ok {
		return repositories.ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "name":
			profile.Name = value.(string)
		case "contact_person":
			profile.ContactPerson = value.(string)
		case "sport":
			profile.Sport = value.(string)
		case "contact_number":
			profile.ContactNumber = value.(string)
		case "location":
			profile.Location = value.(string)
		}
	}
	return nil
}

func (r *memoryAccountRepository) DeleteProfile(ctx context.Context, role models.AccountRole, accountID uint) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	switch role {
	case models.RoleAthlete:
		delete(r.repo.athleteProfiles, accountID)
	case models.RoleCoach:
		delete(r.repo.coachProfiles, accountID)
	case models.RoleSponsor:
		delete(r.repo.sponsorProfiles, accountID)
	}
	return nil
}

// ===== APPLICATIONS =====

type memoryApplicationRepository struct {
	repo *memoryRepository
}

func (r *memoryApplicationRepository) Create(ctx context.Context, application *models.Application) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	r.repo.nextApplicationID++
	application.ID = r.repo.nextApplicationID
	stored := *application
	r.repo.applications[application.ID] = &stored
	return nil
}

func (r *memoryApplicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	application, ok := r.repo.applications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *application
	return &copied, nil
}

func (r *memoryApplicationRepository) List(ctx context.Context, filters repositories.ApplicationFilters) ([]*models.Application, int64, error) {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	var out []*models.Application
	for _, application := range r.repo.applications {
		if filters.Status != nil && application.Status != *filters.Status {
			continue
		}
		if filters.AccountID != nil {
			if application.AccountID == nil || *application.AccountID != *filters.AccountID {
				continue
			}
		}
		copied := *application
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *memoryApplicationRepository) LatestForAthlete(ctx context.Context, accountID uint, fullName string) (*models.Application, error) {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	var latest *models.Application
	for _, application := range r.repo.applications {
		linked := application.AccountID != nil && *application.AccountID == accountID
		legacy := application.AccountID == nil && application.AthleteName == fullName
		if !linked && !legacy {
			continue
		}
		if latest == nil || application.SubmissionDate.After(latest.SubmissionDate) {
			latest = application
		}
	}

	if latest == nil {
		return nil, repositories.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *memoryApplicationRepository) UpdateStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	r.repo.mu.Lock()
	defer r.repo.mu.Unlock()

	application, ok := r.repo.applications[id]
	if !ok {
		return repositories.ErrNotFound
	}
	application.Status = status
	return nil
}

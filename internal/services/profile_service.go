package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/crypto/bcrypt"

	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/repositories"
	"github.com/sporture/talent-service/internal/validator"
)

type profileService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProfileService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ProfileService {
	return &profileService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== AUTHENTICATION =====

// Authenticate resolves an email to its account and verifies the password.
// Every failure path returns the same ErrInvalidCredentials so a caller
// cannot probe which addresses are registered.
func (s *profileService) Authenticate(ctx context.Context, req *LoginRequest) (*AuthResult, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	account, err := s.repo.Account().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	displayName, err := s.displayName(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login succeeded", "account_id", account.ID, "role", account.Role)

	return &AuthResult{
		AccountID:   account.ID,
		Email:       account.Email,
		Role:        account.Role,
		DisplayName: displayName,
		Redirect:    "/dashboard",
	}, nil
}

// displayName applies the fallback order: role-specific name field, then the
// local part of the email.
func (s *profileService) displayName(ctx context.Context, account *models.Account) (string, error) {
	var roleName string

	switch account.Role {
	case models.RoleAthlete:
		profile, err := s.repo.Account().GetAthleteProfile(ctx, account.ID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return "", err
		}
		if profile != nil {
			roleName = profile.FullName
		}
	case models.RoleCoach:
		profile, err := s.repo.Account().GetCoachProfile(ctx, account.ID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return "", err
		}
		if profile != nil {
			roleName = profile.FullName
		}
	case models.RoleSponsor:
		profile, err := s.repo.Account().GetSponsorProfile(ctx, account.ID)
		if err != nil && !repositories.IsNotFoundError(err) {
			return "", err
		}
		if profile != nil {
			roleName = profile.Name
		}
	}

	return models.DisplayName(account, roleName), nil
}

// ===== PROFILE PROJECTION =====

func (s *profileService) GetProfile(ctx context.Context, session *Session) (*ProfileView, error) {
	view := &ProfileView{
		Role:        session.Role,
		Email:       session.Email,
		DisplayName: session.DisplayName,
	}

	switch session.Role {
	case models.RoleAthlete:
		profile, err := s.repo.Account().GetAthleteProfile(ctx, session.AccountID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrAccountNotFound
			}
			return nil, err
		}
		view.Athlete = profile
		view.Completeness = completeness(
			profile.FullName, profile.Gender, profile.Sport, profile.Achievements,
			profile.Ranking, profile.ContactNumber, profile.Location,
			profile.Age, profile.ExperienceYears,
		)
		s.attachLatestApplication(ctx, view, session.AccountID, profile.FullName)

	case models.RoleCoach:
		profile, err := s.repo.Account().GetCoachProfile(ctx, session.AccountID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrAccountNotFound
			}
			return nil, err
		}
		view.Coach = profile
		view.Completeness = completeness(
			profile.FullName, profile.Specialization, profile.Certifications,
			profile.ContactNumber, profile.Location,
			profile.ExperienceYears,
		)

	case models.RoleSponsor:
		profile, err := s.repo.Account().GetSponsorProfile(ctx, session.AccountID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return nil, ErrAccountNotFound
			}
			return nil, err
		}
		view.Sponsor = profile
		view.Completeness = completeness(
			profile.Name, profile.ContactPerson, profile.Sport,
			profile.ContactNumber, profile.Location,
		)

	default:
		return nil, ErrInvalidRole
	}

	return view, nil
}

// attachLatestApplication surfaces the athlete's newest application status.
// A missing application is not an error, the view just omits the section.
func (s *profileService) attachLatestApplication(ctx context.Context, view *ProfileView, accountID uint, fullName string) {
	application, err := s.repo.Application().LatestForAthlete(ctx, accountID, fullName)
	if err != nil {
		if !repositories.IsNotFoundError(err) {
			s.logger.Warn("failed to load latest application", "account_id", accountID, "error", err)
		}
		return
	}

	view.LatestApplication = &ApplicationStatusView{
		ID:              application.ID,
		ApplicationType: application.ApplicationType,
		Status:          application.Status,
		SubmissionDate:  application.SubmissionDate,
	}
}

// completeness computes the percentage of non-empty fields. Strings count
// when non-blank, ints when positive. Presentational only.
func completeness(fields ...any) int {
	if len(fields) == 0 {
		return 0
	}

	filled := 0
	for _, f := range fields {
		switch v := f.(type) {
		case string:
			if v != "" {
				filled++
			}
		case int:
			if v > 0 {
				filled++
			}
		}
	}

	return int(math.Round(float64(filled) / float64(len(fields)) * 100))
}

// ===== PROFILE UPDATES =====

// UpdateProfile overwrites the supplied mutable fields. The session role must
// match the target role; email, password and id are never writable here.
// Last writer wins, there is no optimistic-concurrency check.
func (s *profileService) UpdateProfile(ctx context.Context, session *Session, targetRole models.AccountRole, req any) error {
	if session.Role != targetRole {
		return NewPermissionError(session.AccountID, string(targetRole)+" profile", "update",
			fmt.Sprintf("session is bound to role %s", session.Role))
	}

	var (
		fields map[string]any
		errs   validator.ValidationErrors
	)

	switch targetRole {
	case models.RoleAthlete:
		update, ok := req.(*UpdateAthleteProfileRequest)
		if !ok {
			return ErrInvalidRole
		}
		if errs = s.validator.Validate(update); len(errs) > 0 {
			return errs
		}
		fields = athleteFields(update)
	case models.RoleCoach:
		update, ok := req.(*UpdateCoachProfileRequest)
		if !ok {
			return ErrInvalidRole
		}
		if errs = s.validator.Validate(update); len(errs) > 0 {
			return errs
		}
		fields = coachFields(update)
	case models.RoleSponsor:
		update, ok := req.(*UpdateSponsorProfileRequest)
		if !ok {
			return ErrInvalidRole
		}
		if errs = s.validator.Validate(update); len(errs) > 0 {
			return errs
		}
		fields = sponsorFields(update)
	default:
		return ErrInvalidRole
	}

	if len(fields) == 0 {
		return nil
	}

	var err error
	switch targetRole {
	case models.RoleAthlete:
		err = s.repo.Account().UpdateAthleteProfile(ctx, session.AccountID, fields)
	case models.RoleCoach:
		err = s.repo.Account().UpdateCoachProfile(ctx, session.AccountID, fields)
	case models.RoleSponsor:
		err = s.repo.Account().UpdateSponsorProfile(ctx, session.AccountID, fields)
	}
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAccountNotFound
		}
		return err
	}

	s.logger.Info("profile updated",
		"account_id", session.AccountID,
		"role", targetRole,
		"fields", len(fields))
	return nil
}

func athleteFields(req *UpdateAthleteProfileRequest) map[string]any {
	fields := make(map[string]any)
	setString(fields, "full_name", req.FullName)
	setInt(fields, "age", req.Age)
	setString(fields, "gender", req.Gender)
	setString(fields, "sport", req.Sport)
	setString(fields, "achievements", req.Achievements)
	setString(fields, "ranking", req.Ranking)
	setInt(fields, "experience_years", req.ExperienceYears)
	setString(fields, "contact_number", req.ContactNumber)
	setString(fields, "location", req.Location)
	return fields
}

func coachFields(req *UpdateCoachProfileRequest) map[string]any {
	fields := make(map[string]any)
	setString(fields, "full_name", req.FullName)
	setString(fields, "specialization", req.Specialization)
	setString(fields, "certifications", req.Certifications)
	setInt(fields, "experience_years", req.ExperienceYears)
	setString(fields, "contact_number", req.ContactNumber)
	setString(fields, "location", req.Location)
	return fields
}

func sponsorFields(req *UpdateSponsorProfileRequest) map[string]any {
	fields := make(map[string]any)
	setString(fields, "name", req.Name)
	setString(fields, "contact_person", req.ContactPerson)
	setString(fields, "sport", req.Sport)
	setString(fields, "contact_number", req.ContactNumber)
	setString(fields, "location", req.Location)
	return fields
}

func setString(fields map[string]any, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}

func setInt(fields map[string]any, column string, value *int) {
	if value != nil {
		fields[column] = *value
	}
}

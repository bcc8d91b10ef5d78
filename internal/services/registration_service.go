package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/repositories"
	"github.com/sporture/talent-service/internal/validator"
)

type registrationService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewRegistrationService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) RegistrationService {
	return &registrationService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Register creates one account plus its role profile. The duplicate check and
// both inserts run in one transaction; the unique email index closes the race
// between two concurrent registrations for the same address.
func (s *registrationService) Register(ctx context.Context, req *RegisterRequest) (*models.Account, error) {
	if errs := s.validator.GetBusinessValidator().ValidateRegister(req); len(errs) > 0 {
		return nil, errs
	}

	role, ok := models.ParseRole(req.Type)
	if !ok {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &models.Account{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		exists, err := tx.Account().ExistsByEmail(ctx, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return ErrDuplicateEmail
		}

		if err := tx.Account().Create(ctx, account); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrDuplicateEmail
			}
			return err
		}

		return s.createProfile(ctx, tx, account, req.FullName)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	// The password never reaches the logs, only the outcome does.
	s.logger.Info("account registered",
		"account_id", account.ID,
		"role", account.Role)

	return account, nil
}

func (s *registrationService) createProfile(ctx context.Context, tx repositories.Repository, account *models.Account, fullName string) error {
	switch account.Role {
	case models.RoleAthlete:
		return tx.Account().CreateAthleteProfile(ctx, &models.AthleteProfile{
			AccountID: account.ID,
			FullName:  fullName,
		})
	case models.RoleCoach:
		return tx.Account().CreateCoachProfile(ctx, &models.CoachProfile{
			AccountID: account.ID,
			FullName:  fullName,
		})
	case models.RoleSponsor:
		return tx.Account().CreateSponsorProfile(ctx, &models.SponsorProfile{
			AccountID: account.ID,
			Name:      fullName,
		})
	default:
		return ErrInvalidRole
	}
}

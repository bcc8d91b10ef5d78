package services

import (
	"context"
	"time"

	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/repositories"
	"github.com/sporture/talent-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request DTOs live with their validation rules.
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type SubmitApplicationRequest = validator.SubmitApplicationRequest
type UpdateApplicationStatusRequest = validator.UpdateApplicationStatusRequest
type UpdateAthleteProfileRequest = validator.UpdateAthleteProfileRequest
type UpdateCoachProfileRequest = validator.UpdateCoachProfileRequest
type UpdateSponsorProfileRequest = validator.UpdateSponsorProfileRequest

// Session is the immutable identity binding established at login and carried
// on every authenticated request.
type Session struct {
	AccountID   uint               `json:"account_id"`
	Email       string             `json:"email"`
	Role        models.AccountRole `json:"role"`
	DisplayName string             `json:"display_name"`
}

// AuthResult is what a successful login yields.
type AuthResult struct {
	AccountID   uint               `json:"account_id"`
	Email       string             `json:"email"`
	Role        models.AccountRole `json:"type"`
	DisplayName string             `json:"display_name"`
	Redirect    string             `json:"redirect"`
}

// ApplicationStatusView is the athlete-facing projection of their newest
// application.
type ApplicationStatusView struct {
	ID              uint                     `json:"id"`
	ApplicationType string                   `json:"application_type"`
	Status          models.ApplicationStatus `json:"status"`
	SubmissionDate  time.Time                `json:"submission_date"`
}

// ProfileView is the role-specific profile projection. Exactly one of the
// role fields is set. Completeness is the percentage of non-empty projected
// fields, presentational only.
type ProfileView struct {
	Role         models.AccountRole `json:"role"`
	Email        string             `json:"email"`
	DisplayName  string             `json:"display_name"`
	Completeness int                `json:"completeness"`

	Athlete *models.AthleteProfile `json:"athlete,omitempty"`
	Coach   *models.CoachProfile   `json:"coach,omitempty"`
	Sponsor *models.SponsorProfile `json:"sponsor,omitempty"`

	LatestApplication *ApplicationStatusView `json:"latest_application,omitempty"`
}

// ===== SERVICE INTERFACES =====

// RegistrationService creates accounts.
type RegistrationService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.Account, error)
}

// ProfileService resolves identities and owns the role-specific profile
// projections.
type ProfileService interface {
	Authenticate(ctx context.Context, req *LoginRequest) (*AuthResult, error)
	GetProfile(ctx context.Context, session *Session) (*ProfileView, error)

	// UpdateProfile rejects mismatched session/target roles; req must be the
	// update DTO matching targetRole.
	UpdateProfile(ctx context.Context, session *Session, targetRole models.AccountRole, req any) error
}

// ApplicationService owns the talent-application queue.
type ApplicationService interface {
	Submit(ctx context.Context, req *SubmitApplicationRequest, session *Session) (*models.Application, error)
	ListPending(ctx context.Context) ([]*models.Application, error)
	UpdateStatus(ctx context.Context, id uint, req *UpdateApplicationStatusRequest) (*models.Application, error)
}

// AdminService covers the account administration surface.
type AdminService interface {
	ListAccounts(ctx context.Context, roleStr string) ([]*repositories.AccountSummary, error)
	DeleteAccount(ctx context.Context, roleStr string, id uint) error
	ExportApplications(ctx context.Context, status *models.ApplicationStatus) ([]byte, error)
}

// ServiceManager wires and owns every service instance.
type ServiceManager interface {
	Registration() RegistrationService
	Profile() ProfileService
	Application() ApplicationService
	Admin() AdminService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sporture/talent-service/internal/events"
	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/repositories"
	"github.com/sporture/talent-service/internal/validator"
)

type applicationService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator
}

func NewApplicationService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ApplicationService {
	return &applicationService{
		repo:           repo,
		eventPublisher: publisher,
		logger:         logger,
		validator:      validator,
	}
}

// Submit records a talent application. Status always starts at Pending no
// matter what the client sent; when the submitter is an authenticated athlete
// the account link is recorded alongside the legacy name field.
func (s *applicationService) Submit(ctx context.Context, req *SubmitApplicationRequest, session *Session) (*models.Application, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	docs, err := json.Marshal(req.SupportingDocs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode supporting docs: %w", err)
	}

	application := &models.Application{
		AthleteName:     req.AthleteName,
		Age:             req.Age,
		Gender:          req.Gender,
		Sport:           req.Sport,
		Location:        req.Location,
		ApplicationType: req.ApplicationType,
		Achievements:    req.Achievements,
		Motivation:      req.Motivation,
		Goals:           req.Goals,
		SupportingDocs:  docs,
		Status:          models.ApplicationPending,
		SubmissionDate:  time.Now().UTC(),
	}

	if session != nil && session.Role == models.RoleAthlete {
		accountID := session.AccountID
		application.AccountID = &accountID
	}

	if err := s.repo.Application().Create(ctx, application); err != nil {
		return nil, err
	}

	s.logger.Info("application submitted",
		"application_id", application.ID,
		"sport", application.Sport,
		"type", application.ApplicationType)

	return application, nil
}

// ListPending returns the admin review queue, all fields verbatim.
func (s *applicationService) ListPending(ctx context.Context) ([]*models.Application, error) {
	status := models.ApplicationPending
	applications, _, err := s.repo.Application().List(ctx, repositories.ApplicationFilters{
		Status: &status,
	})
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// UpdateStatus overwrites the status with a member of the closed status set.
// Re-applying the current status is a no-op. A transition to
// Forwarded additionally fans out an event toward the coach/sponsor side.
func (s *applicationService) UpdateStatus(ctx context.Context, id uint, req *UpdateApplicationStatusRequest) (*models.Application, error) {
	if errs := s.validator.GetBusinessValidator().ValidateStatusUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	status, ok := models.ParseApplicationStatus(req.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	application, err := s.repo.Application().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if err := s.repo.Application().UpdateStatus(ctx, id, status); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	previous := application.Status
	application.Status = status

	s.logger.Info("application status updated",
		"application_id", id,
		"from", previous,
		"to", status)

	s.publishStatusEvent(ctx, application, previous, req.Type)

	return application, nil
}

// ForwardedEvent is the payload consumed by the coach/sponsor side when an
// application is forwarded to them.
type ForwardedEvent struct {
	ApplicationID   uint                     `json:"application_id"`
	AthleteName     string                   `json:"athlete_name"`
	Sport           string                   `json:"sport"`
	ApplicationType string                   `json:"application_type"`
	TargetRole      string                   `json:"target_role,omitempty"`
	Status          models.ApplicationStatus `json:"status"`
	PreviousStatus  models.ApplicationStatus `json:"previous_status"`
}

func (s *applicationService) publishStatusEvent(ctx context.Context, application *models.Application, previous models.ApplicationStatus, targetType string) {
	if s.eventPublisher == nil {
		return
	}

	eventType := events.EventApplicationStatus
	if application.Status == models.ApplicationForwarded {
		eventType = events.EventApplicationForwarded
	}

	targetRole := ""
	if role, ok := models.ParseRole(targetType); ok {
		targetRole = string(role)
	}

	event := events.NewEvent(eventType, &ForwardedEvent{
		ApplicationID:   application.ID,
		AthleteName:     application.AthleteName,
		Sport:           application.Sport,
		ApplicationType: application.ApplicationType,
		TargetRole:      targetRole,
		Status:          application.Status,
		PreviousStatus:  previous,
	})

	// Status is already durable; a broker failure is logged, not surfaced.
	if err := s.eventPublisher.Publish(ctx, events.TopicApplicationStatus, event); err != nil {
		s.logger.Error("failed to publish status event",
			"application_id", application.ID,
			"event_type", eventType,
			"error", err)
	}
}

package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/sporture/talent-service/internal/events"
	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/utils"
	"github.com/sporture/talent-service/internal/validator"
)

func newTestApplicationService(repo *memoryRepository) (ApplicationService, *events.MockEventPublisher) {
	slogLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(utils.NewSlogLogger(slogLogger))
	return NewApplicationService(repo, publisher, slogLogger, validator.New()), publisher
}

func submitApplication(t *testing.T, service ApplicationService, session *Session) *models.Application {
	t.Helper()
	application, err := service.Submit(context.Background(), &SubmitApplicationRequest{
		AthleteName:     "Jess Jump",
		Age:             19,
		Gender:          "female",
		Sport:           "high jump",
		ApplicationType: "scholarship",
		Motivation:      "national team",
	}, session)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	return application
}

func TestApplicationService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("Forces_Pending_And_Stamps_Submission_Date", func(t *testing.T) {
		repo := newMemoryRepository()
		service, _ := newTestApplicationService(repo)

		application := submitApplication(t, service, nil)
		if application.Status != models.ApplicationPending {
			t.Errorf("expected Pending, got %s", application.Status)
		}
		if application.SubmissionDate.IsZero() {
			t.Error("expected submission date to be stamped")
		}
		if application.AccountID != nil {
			t.Error("anonymous submission must not carry an account link")
		}
	})

	t.Run("Links_Athlete_Session", func(t *testing.T) {
		repo := newMemoryRepository()
		service, _ := newTestApplicationService(repo)

		application := submitApplication(t, service, &Session{
			AccountID: 42,
			Role:      models.RoleAthlete,
		})
		if application.AccountID == nil || *application.AccountID != 42 {
			t.Errorf("expected account link 42, got %v", application.AccountID)
		}
	})

	t.Run("Ignores_Non_Athlete_Session", func(t *testing.T) {
		repo := newMemoryRepository()
		service, _ := newTestApplicationService(repo)

		application := submitApplication(t, service, &Session{
			AccountID: 7,
			Role:      models.RoleCoach,
		})
		if application.AccountID != nil {
			t.Error("coach session must not be linked as the applicant")
		}
	})

	t.Run("Rejects_Missing_Required_Fields", func(t *testing.T) {
		repo := newMemoryRepository()
		service, _ := newTestApplicationService(repo)

		_, err := service.Submit(ctx, &SubmitApplicationRequest{
			AthleteName: "No Sport",
		}, nil)
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			t.Fatalf("expected validation errors, got %v", err)
		}
	})
}

func TestApplicationService_ListPending(t *testing.T) {
	ctx := context.Background()

	repo := newMemoryRepository()
	service, _ := newTestApplicationService(repo)

	first := submitApplication(t, service, nil)
	second := submitApplication(t, service, nil)

	if _, err := service.UpdateStatus(ctx, first.ID, &UpdateApplicationStatusRequest{
		Status: string(models.ApplicationRejected),
	}); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	pending, err := service.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != second.ID {
		t.Errorf("expected only application %d pending, got %+v", second.ID, pending)
	}
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects_Status_Outside_Closed_Set", func(t *testing.T) {
		repo := newMemoryRepository()
		service, _ := newTestApplicationService(repo)
		application := submitApplication(t, service, nil)

		_, err := service.UpdateStatus(ctx, application.ID, &UpdateApplicationStatusRequest{
			Status: "Approved-ish",
		})
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) && !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("expected status rejection, got %v", err)
		}
	})

	t.Run("Unknown_Application_Fails", func(t *testing.T) {
		repo := newMemoryRepository()
		service, _ := newTestApplicationService(repo)

		_, err := service.UpdateStatus(ctx, 999, &UpdateApplicationStatusRequest{
			Status: string(models.ApplicationRejected),
		})
		if !errors.Is(err, ErrApplicationNotFound) {
			t.Errorf("expected ErrApplicationNotFound, got %v", err)
		}
	})

	t.Run("Same_Status_Transition_Is_Idempotent", func(t *testing.T) {
		repo := newMemoryRepository()
		service, _ := newTestApplicationService(repo)
		application := submitApplication(t, service, nil)

		for i := 0; i < 2; i++ {
			updated, err := service.UpdateStatus(ctx, application.ID, &UpdateApplicationStatusRequest{
				Status: string(models.ApplicationPending),
			})
			if err != nil {
				t.Fatalf("attempt %d: %v", i, err)
			}
			if updated.Status != models.ApplicationPending {
				t.Errorf("attempt %d: expected Pending, got %s", i, updated.Status)
			}
		}
	})

	t.Run("Forwarded_Fans_Out_An_Event", func(t *testing.T) {
		repo := newMemoryRepository()
		service, publisher := newTestApplicationService(repo)
		application := submitApplication(t, service, nil)

		if _, err := service.UpdateStatus(ctx, application.ID, &UpdateApplicationStatusRequest{
			Status: string(models.ApplicationForwarded),
			Type:   "coach",
		}); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		event := published[0]
		if event.Type != events.EventApplicationForwarded {
			t.Errorf("expected %s, got %s", events.EventApplicationForwarded, event.Type)
		}

		payload, ok := event.Data.(*ForwardedEvent)
		if !ok {
			t.Fatalf("unexpected payload type %T", event.Data)
		}
		if payload.ApplicationID != application.ID {
			t.Errorf("expected application %d, got %d", application.ID, payload.ApplicationID)
		}
		if payload.TargetRole != "coach" {
			t.Errorf("expected target role coach, got %q", payload.TargetRole)
		}
		if payload.PreviousStatus != models.ApplicationPending {
			t.Errorf("expected previous status Pending, got %s", payload.PreviousStatus)
		}
	})

	t.Run("Other_Transitions_Publish_Status_Change", func(t *testing.T) {
		repo := newMemoryRepository()
		service, publisher := newTestApplicationService(repo)
		application := submitApplication(t, service, nil)

		if _, err := service.UpdateStatus(ctx, application.ID, &UpdateApplicationStatusRequest{
			Status: string(models.ApplicationUnderReview),
		}); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.EventApplicationStatus {
			t.Errorf("expected %s, got %s", events.EventApplicationStatus, published[0].Type)
		}
	})
}

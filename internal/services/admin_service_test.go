package services

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/repositories"
)

func newTestAdminService(repo *memoryRepository) AdminService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAdminService(repo, logger)
}

func TestAdminService_ListAccounts(t *testing.T) {
	ctx := context.Background()

	repo := newMemoryRepository()
	service := newTestAdminService(repo)

	registerAccount(t, repo, "a1@example.com", "secret123", "athlete", "Athlete One")
	registerAccount(t, repo, "a2@example.com", "secret123", "athlete", "Athlete Two")
	registerAccount(t, repo, "c1@example.com", "secret123", "coach", "Coach One")

	t.Run("Filters_By_Role", func(t *testing.T) {
		athletes, err := service.ListAccounts(ctx, "athletes")
		if err != nil {
			t.Fatalf("ListAccounts failed: %v", err)
		}
		if len(athletes) != 2 {
			t.Fatalf("expected 2 athletes, got %d", len(athletes))
		}
		if athletes[0].Name != "Athlete One" || athletes[0].Email != "a1@example.com" {
			t.Errorf("unexpected summary: %+v", athletes[0])
		}
	})

	t.Run("Rejects_Unknown_Role", func(t *testing.T) {
		_, err := service.ListAccounts(ctx, "janitor")
		if !errors.Is(err, ErrInvalidRole) {
			t.Errorf("expected ErrInvalidRole, got %v", err)
		}
	})
}

func TestAdminService_DeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes_Account_And_Profile", func(t *testing.T) {
		repo := newMemoryRepository()
		service := newTestAdminService(repo)
		account := registerAccount(t, repo, "gone@example.com", "secret123", "coach", "Gone Coach")

		if err := service.DeleteAccount(ctx, "coach", account.ID); err != nil {
			t.Fatalf("DeleteAccount failed: %v", err)
		}

		if _, err := repo.Account().GetByID(ctx, account.ID); !repositories.IsNotFoundError(err) {
			t.Error("account survived deletion")
		}
		if _, err := repo.Account().GetCoachProfile(ctx, account.ID); !repositories.IsNotFoundError(err) {
			t.Error("profile survived deletion")
		}
	})

	t.Run("Role_Mismatch_Reads_As_Not_Found", func(t *testing.T) {
		repo := newMemoryRepository()
		service := newTestAdminService(repo)
		account := registerAccount(t, repo, "stay@example.com", "secret123", "coach", "Stay Coach")

		err := service.DeleteAccount(ctx, "athlete", account.ID)
		if !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
		if _, err := repo.Account().GetByID(ctx, account.ID); err != nil {
			t.Error("account must survive a mismatched delete")
		}
	})

	t.Run("Rejects_Unknown_Role", func(t *testing.T) {
		repo := newMemoryRepository()
		service := newTestAdminService(repo)

		if err := service.DeleteAccount(ctx, "nobody", 1); !errors.Is(err, ErrInvalidRole) {
			t.Errorf("expected ErrInvalidRole, got %v", err)
		}
	})
}

func TestAdminService_ExportApplications(t *testing.T) {
	ctx := context.Background()

	repo := newMemoryRepository()
	adminSvc := newTestAdminService(repo)
	appSvc, _ := newTestApplicationService(repo)

	submitApplication(t, appSvc, nil)
	second := submitApplication(t, appSvc, nil)
	if _, err := appSvc.UpdateStatus(ctx, second.ID, &UpdateApplicationStatusRequest{
		Status: string(models.ApplicationForwarded),
		Type:   "coach",
	}); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	t.Run("Produces_A_Readable_Workbook", func(t *testing.T) {
		payload, err := adminSvc.ExportApplications(ctx, nil)
		if err != nil {
			t.Fatalf("ExportApplications failed: %v", err)
		}

		workbook, err := excelize.OpenReader(bytes.NewReader(payload))
		if err != nil {
			t.Fatalf("export is not a valid workbook: %v", err)
		}
		defer workbook.Close()

		rows, err := workbook.GetRows("Applications")
		if err != nil {
			t.Fatalf("missing Applications sheet: %v", err)
		}
		// Header plus one row per application
		if len(rows) != 3 {
			t.Errorf("expected 3 rows, got %d", len(rows))
		}
	})

	t.Run("Honors_Status_Filter", func(t *testing.T) {
		status := models.ApplicationForwarded
		payload, err := adminSvc.ExportApplications(ctx, &status)
		if err != nil {
			t.Fatalf("ExportApplications failed: %v", err)
		}

		workbook, err := excelize.OpenReader(bytes.NewReader(payload))
		if err != nil {
			t.Fatalf("export is not a valid workbook: %v", err)
		}
		defer workbook.Close()

		rows, err := workbook.GetRows("Applications")
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 2 {
			t.Errorf("expected header plus 1 forwarded row, got %d rows", len(rows))
		}
	})
}

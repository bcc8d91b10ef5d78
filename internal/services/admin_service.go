package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/repositories"
)

type adminService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewAdminService(repo repositories.Repository, logger *slog.Logger) AdminService {
	return &adminService{
		repo:   repo,
		logger: logger,
	}
}

// ListAccounts returns the {id, name, email} listing for one role.
func (s *adminService) ListAccounts(ctx context.Context, roleStr string) ([]*repositories.AccountSummary, error) {
	role, ok := models.ParseRole(roleStr)
	if !ok {
		return nil, ErrInvalidRole
	}

	summaries, _, err := s.repo.Account().List(ctx, repositories.AccountFilters{Role: &role})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// DeleteAccount removes the credential record and its role profile in one
// transaction. Irreversible; there is no soft delete.
func (s *adminService) DeleteAccount(ctx context.Context, roleStr string, id uint) error {
	role, ok := models.ParseRole(roleStr)
	if !ok {
		return ErrInvalidRole
	}

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		account, err := tx.Account().GetByID(ctx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrAccountNotFound
			}
			return err
		}
		if account.Role != role {
			return ErrAccountNotFound
		}

		if err := tx.Account().DeleteProfile(ctx, role, id); err != nil {
			return err
		}
		return tx.Account().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("account deleted", "account_id", id, "role", role)
	return nil
}

// ExportApplications renders the application queue as an .xlsx workbook,
// optionally filtered by status.
func (s *adminService) ExportApplications(ctx context.Context, status *models.ApplicationStatus) ([]byte, error) {
	applications, _, err := s.repo.Application().List(ctx, repositories.ApplicationFilters{
		Status: status,
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Applications"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"ID", "Athlete Name", "Age", "Gender", "Sport", "Location",
		"Application Type", "Status", "Submission Date",
	}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, application := range applications {
		values := []any{
			application.ID,
			application.AthleteName,
			application.Age,
			application.Gender,
			application.Sport,
			application.Location,
			application.ApplicationType,
			string(application.Status),
			application.SubmissionDate.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, fmt.Errorf("failed to build cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.logger.Info("applications exported", "count", len(applications))
	return buf.Bytes(), nil
}

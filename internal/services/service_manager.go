package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/sporture/talent-service/internal/events"
	"github.com/sporture/talent-service/internal/repositories"
	"github.com/sporture/talent-service/internal/validator"
)

// serviceManager implements ServiceManager.
type serviceManager struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	validator      *validator.Validator

	registrationService RegistrationService
	profileService      ProfileService
	applicationService  ApplicationService
	adminService        AdminService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
func NewServiceManager(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ServiceManager {
	return &serviceManager{
		repo:           repo,
		eventPublisher: publisher,
		logger:         logger,
		validator:      validator,
	}
}

// Initialize wires every service instance. Must be called before any accessor.
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if sm.repo == nil {
		return fmt.Errorf("repository is required")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}

	sm.registrationService = NewRegistrationService(sm.repo, sm.logger, sm.validator)
	sm.profileService = NewProfileService(sm.repo, sm.logger, sm.validator)
	sm.applicationService = NewApplicationService(sm.repo, sm.eventPublisher, sm.logger, sm.validator)
	sm.adminService = NewAdminService(sm.repo, sm.logger)

	sm.initialized = true
	sm.logger.Info("services initialized")
	return nil
}

func (sm *serviceManager) Registration() RegistrationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.registrationService
}

func (sm *serviceManager) Profile() ProfileService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.profileService
}

func (sm *serviceManager) Application() ApplicationService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.applicationService
}

func (sm *serviceManager) Admin() AdminService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.adminService
}

// Shutdown releases broker resources. The repository is closed by main.
func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}
	sm.shutdown = true

	if sm.eventPublisher != nil {
		if err := sm.eventPublisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}

	sm.logger.Info("services shut down")
	return nil
}

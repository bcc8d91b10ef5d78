package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sporture/talent-service/internal/config"
	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/repositories"
	"github.com/sporture/talent-service/internal/services"
	"github.com/sporture/talent-service/internal/utils"
)

type HandlerManager struct {
	authHandler        *AuthHandler
	profileHandler     *ProfileHandler
	applicationHandler *ApplicationHandler
	adminHandler       *AdminHandler
	jwtAuth            *JWTAuthMiddleware
	repo               repositories.Repository
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	repo repositories.Repository,
	authConfig config.AuthConfig,
	logger utils.Logger,
) *HandlerManager {
	jwtAuth := NewJWTAuthMiddleware(authConfig)

	return &HandlerManager{
		authHandler:        NewAuthHandler(serviceManager.Registration(), serviceManager.Profile(), jwtAuth, authConfig, logger),
		profileHandler:     NewProfileHandler(serviceManager.Profile(), logger),
		applicationHandler: NewApplicationHandler(serviceManager.Application(), logger),
		adminHandler:       NewAdminHandler(serviceManager.Admin(), logger),
		jwtAuth:            jwtAuth,
		repo:               repo,
	}
}

// JWTAuth exposes the auth middleware for tests and embedding routers.
func (hm *HandlerManager) JWTAuth() *JWTAuthMiddleware {
	return hm.jwtAuth
}

// SetupRoutes sets up all API routes. Paths match the original clients
// verbatim, so no /api/v1 prefix here.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", hm.HealthCheck)

	// Public routes
	router.POST("/register", hm.authHandler.Register)
	router.POST("/login", hm.authHandler.Login)

	// Intake is public but links an athlete session when one is presented
	router.POST("/submit_application", hm.jwtAuth.OptionalAuthMiddleware(), hm.applicationHandler.SubmitApplication)

	// Authenticated routes
	authed := router.Group("/")
	authed.Use(hm.jwtAuth.AuthMiddleware())
	{
		authed.GET("/dashboard", hm.profileHandler.Dashboard)
		authed.GET("/profile", hm.profileHandler.GetProfile)
		authed.POST("/update_profile/:role", hm.profileHandler.UpdateProfile)

		// Admin console routes
		admin := authed.Group("/")
		admin.Use(hm.jwtAuth.RequireRoleMiddleware(models.RoleAdmin))
		{
			admin.GET("/get_users", hm.adminHandler.GetUsers)
			admin.DELETE("/delete_user/:role/:id", hm.adminHandler.DeleteUser)
			admin.GET("/get_pending_applications", hm.applicationHandler.GetPendingApplications)
			admin.POST("/update_application_status/:id", hm.applicationHandler.UpdateApplicationStatus)
			admin.GET("/export_applications", hm.adminHandler.ExportApplications)
		}
	}
}

// HealthCheck reports liveness of the service and its store.
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if err := hm.repo.Ping(c.Request.Context()); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "talent-service",
	})
}

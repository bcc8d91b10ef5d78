package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sporture/talent-service/internal/config"
	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/services"
	"github.com/sporture/talent-service/internal/utils"
)

// AuthHandler owns the registration and login surface.
type AuthHandler struct {
	BaseHandler
	registrationService services.RegistrationService
	profileService      services.ProfileService
	jwtAuth             *JWTAuthMiddleware
	authConfig          config.AuthConfig
}

func NewAuthHandler(
	registrationService services.RegistrationService,
	profileService services.ProfileService,
	jwtAuth *JWTAuthMiddleware,
	authConfig config.AuthConfig,
	logger utils.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:         NewBaseHandler(logger),
		registrationService: registrationService,
		profileService:      profileService,
		jwtAuth:             jwtAuth,
		authConfig:          authConfig,
	}
}

// Register creates a new account with a role-specific profile row.
// @Summary Register account
// @Tags auth
// @Accept json
// @Produce json
// @Param account body services.RegisterRequest true "Registration data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Registering account", "role", req.Type)

	account, err := h.registrationService.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Registration successful! Please login.",
		Data: gin.H{
			"id":   account.ID,
			"type": account.Role,
		},
	})
}

// Login authenticates a credential pair against the admin configuration
// first and the account store second, and answers with a signed session
// token. Failures are reported with a single generic message.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.authenticate(c, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	token, err := h.jwtAuth.MintToken(&services.Session{
		AccountID:   result.AccountID,
		Email:       result.Email,
		Role:        result.Role,
		DisplayName: result.DisplayName,
	})
	if err != nil {
		h.LogError(c, err, "Failed to sign session token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"type":         result.Role,
		"display_name": result.DisplayName,
		"redirect":     result.Redirect,
		"token":        token,
	})
}

func (h *AuthHandler) authenticate(c *gin.Context, req *services.LoginRequest) (*services.AuthResult, error) {
	if h.isAdminLogin(req) {
		h.LogRequest(c, "Admin login")
		return &services.AuthResult{
			Email:       req.Email,
			Role:        models.RoleAdmin,
			DisplayName: "Admin",
			Redirect:    "/dashboard",
		}, nil
	}
	return h.profileService.Authenticate(c.Request.Context(), req)
}

// isAdminLogin matches against the configured admin credential. Comparison
// is constant-time and an unset credential disables the admin surface.
func (h *AuthHandler) isAdminLogin(req *services.LoginRequest) bool {
	if h.authConfig.AdminEmail == "" || h.authConfig.AdminPassword == "" {
		return false
	}
	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.authConfig.AdminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.authConfig.AdminPassword)) == 1
	return emailOK && passOK
}

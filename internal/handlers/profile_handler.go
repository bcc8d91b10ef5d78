package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/services"
	"github.com/sporture/talent-service/internal/utils"
)

// ProfileHandler serves the authenticated dashboard and profile surface.
type ProfileHandler struct {
	BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    NewBaseHandler(logger),
		profileService: profileService,
	}
}

// Dashboard returns the session identity plus the role-specific profile
// projection for the landing view.
// @Summary Dashboard
// @Tags profile
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /dashboard [get]
func (h *ProfileHandler) Dashboard(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	response := gin.H{
		"success":      true,
		"type":         session.Role,
		"display_name": session.DisplayName,
		"email":        session.Email,
	}

	// Admin sessions have no profile row to project.
	if session.Role != models.RoleAdmin {
		profile, err := h.profileService.GetProfile(c.Request.Context(), session)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		response["profile"] = profile
	}

	c.JSON(http.StatusOK, response)
}

// GetProfile returns the caller's role-specific profile.
// @Summary Get profile
// @Tags profile
// @Produce json
// @Success 200 {object} services.ProfileView
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	h.LogRequest(c, "Getting profile", "account_id", session.AccountID, "role", session.Role)

	profile, err := h.profileService.GetProfile(c.Request.Context(), session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial update to the caller's own profile row.
// The :role path segment must match the session role; updates across roles
// are rejected.
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Param role path string true "Profile role (athlete, coach, sponsor)"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /update_profile/{role} [post]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	session := SessionFromContext(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}

	targetRole, ok := models.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unknown profile role",
			Details: c.Param("role"),
		})
		return
	}

	req, err := bindProfileUpdate(c, targetRole)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating profile", "account_id", session.AccountID, "role", targetRole)

	if err := h.profileService.UpdateProfile(c.Request.Context(), session, targetRole, req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Profile updated successfully",
	})
}

// bindProfileUpdate binds the role-specific update DTO. Form and JSON
// payloads are both accepted, matching the original clients.
func bindProfileUpdate(c *gin.Context, role models.AccountRole) (any, error) {
	switch role {
	case models.RoleAthlete:
		var req services.UpdateAthleteProfileRequest
		if err := c.ShouldBind(&req); err != nil {
			return nil, err
		}
		return &req, nil
	case models.RoleCoach:
		var req services.UpdateCoachProfileRequest
		if err := c.ShouldBind(&req); err != nil {
			return nil, err
		}
		return &req, nil
	default:
		var req services.UpdateSponsorProfileRequest
		if err := c.ShouldBind(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}
}

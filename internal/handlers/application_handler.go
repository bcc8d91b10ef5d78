package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sporture/talent-service/internal/services"
	"github.com/sporture/talent-service/internal/utils"
)

// ApplicationHandler serves the talent-application intake and the admin
// review queue.
type ApplicationHandler struct {
	BaseHandler
	applicationService services.ApplicationService
}

func NewApplicationHandler(applicationService services.ApplicationService, logger utils.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		BaseHandler:        NewBaseHandler(logger),
		applicationService: applicationService,
	}
}

// SubmitApplication accepts a talent submission. Anonymous submissions are
// allowed; an athlete session, when present, is linked to the record.
// @Summary Submit application
// @Tags applications
// @Accept json
// @Produce json
// @Param application body services.SubmitApplicationRequest true "Application data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /submit_application [post]
func (h *ApplicationHandler) SubmitApplication(c *gin.Context) {
	var req services.SubmitApplicationRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session := SessionFromContext(c)
	h.LogRequest(c, "Submitting application", "athlete_name", req.AthleteName, "sport", req.Sport)

	application, err := h.applicationService.Submit(c.Request.Context(), &req, session)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Application submitted successfully!",
		Data: gin.H{
			"id":     application.ID,
			"status": application.Status,
		},
	})
}

// GetPendingApplications lists the admin review queue.
// @Summary List pending applications
// @Tags applications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Router /get_pending_applications [get]
func (h *ApplicationHandler) GetPendingApplications(c *gin.Context) {
	h.LogRequest(c, "Listing pending applications")

	applications, err := h.applicationService.ListPending(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"applications": applications,
		"total":        len(applications),
	})
}

// UpdateApplicationStatus applies an admin status transition. Forwarded
// transitions fan out an event toward the named role table.
// @Summary Update application status
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param transition body services.UpdateApplicationStatusRequest true "New status"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /update_application_status/{id} [post]
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid application ID",
			Details: c.Param("id"),
		})
		return
	}

	var req services.UpdateApplicationStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating application status", "application_id", id, "status", req.Status)

	application, err := h.applicationService.UpdateStatus(c.Request.Context(), uint(id), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Application status updated",
		Data: gin.H{
			"id":     application.ID,
			"status": application.Status,
		},
	})
}

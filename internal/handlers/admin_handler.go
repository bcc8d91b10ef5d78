package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sporture/talent-service/internal/models"
	"github.com/sporture/talent-service/internal/services"
	"github.com/sporture/talent-service/internal/utils"
)

// AdminHandler serves the account administration surface.
type AdminHandler struct {
	BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  NewBaseHandler(logger),
		adminService: adminService,
	}
}

// GetUsers lists accounts of a role as {id, name, email} rows.
// @Summary List accounts
// @Tags admin
// @Produce json
// @Param type query string true "Role (athlete, coach, sponsor)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /get_users [get]
func (h *AdminHandler) GetUsers(c *gin.Context) {
	roleStr := c.Query("type")
	h.LogRequest(c, "Listing accounts", "role", roleStr)

	accounts, err := h.adminService.ListAccounts(c.Request.Context(), roleStr)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   accounts,
		"total":   len(accounts),
	})
}

// DeleteUser hard-deletes an account and its profile row in one transaction.
// @Summary Delete account
// @Tags admin
// @Produce json
// @Param role path string true "Role (athlete, coach, sponsor)"
// @Param id path int true "Account ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /delete_user/{role}/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid account ID",
			Details: c.Param("id"),
		})
		return
	}

	roleStr := c.Param("role")
	h.LogRequest(c, "Deleting account", "role", roleStr, "account_id", id)

	if err := h.adminService.DeleteAccount(c.Request.Context(), roleStr, uint(id)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "User deleted successfully",
	})
}

// ExportApplications streams the application queue as an .xlsx workbook.
// @Summary Export applications
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "Filter by status"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /export_applications [get]
func (h *AdminHandler) ExportApplications(c *gin.Context) {
	var statusFilter *models.ApplicationStatus
	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseApplicationStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Unknown application status",
				Details: raw,
			})
			return
		}
		statusFilter = &status
	}

	h.LogRequest(c, "Exporting applications")

	payload, err := h.adminService.ExportApplications(c.Request.Context(), statusFilter)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("applications_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}

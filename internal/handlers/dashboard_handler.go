package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adetops/edu-progress-tracker/internal/services"
	"github.com/Adetops/edu-progress-tracker/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service  services.DashboardService
	students services.StudentService
}

func NewDashboardHandler(service services.DashboardService, students services.StudentService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		students:    students,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// GetDashboardStats returns overall statistics for staff. Student callers
// get their own detail data instead of the system-wide view.
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard stats")

	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "unauthorized",
			"message": "authentication required",
		})
		return
	}

	if !user.Role.CanViewAllStudents() {
		if user.StudentID == nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "no student record linked to this account",
			})
			return
		}

		detail, err := h.students.GetDetail(c.Request.Context(), *user.StudentID)
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, detail)
		return
	}

	stats, err := h.service.GetDashboardStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adetops/edu-progress-tracker/internal/services"
	"github.com/Adetops/edu-progress-tracker/internal/utils"
)

type ProgressHandler struct {
	BaseHandler
	service services.ProgressService
}

func NewProgressHandler(service services.ProgressService, logger utils.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== PROGRESS ENDPOINTS =====

// GetStudentProgress returns per-course progress rows for a student
// @Router /progress/students/:id [get]
func (h *ProgressHandler) GetStudentProgress(c *gin.Context) {
	h.LogRequest(c, "Getting progress by course")

	studentID := c.Param("id")

	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "User not authenticated"})
		return
	}
	if !CanAccessStudent(user, studentID) {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Access to this student is not permitted"})
		return
	}

	progress, err := h.service.ProgressByCourse(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// GetCourseReport returns per-student progress rows for a course
// @Router /progress/courses/:id [get]
func (h *ProgressHandler) GetCourseReport(c *gin.Context) {
	h.LogRequest(c, "Getting progress by student")

	report, err := h.service.ProgressByStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

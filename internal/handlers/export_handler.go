package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adetops/edu-progress-tracker/internal/services"
	"github.com/Adetops/edu-progress-tracker/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	BaseHandler
	service services.ExportService
}

func NewExportHandler(service services.ExportService, logger utils.Logger) *ExportHandler {
	return &ExportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== EXPORT ENDPOINTS =====

// ExportStudentProgress streams a student's progress workbook
// @Router /exports/students/:id [get]
func (h *ExportHandler) ExportStudentProgress(c *gin.Context) {
	h.LogRequest(c, "Exporting student progress")

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

	f, err := h.service.ExportStudentProgress(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=student_%s.xlsx", studentID))
	c.Header("Content-Type", xlsxContentType)

	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("Failed to stream export", "error", err)
	}
}

// ExportCourseReport streams a course report workbook
// @Router /exports/courses/:id [get]
func (h *ExportHandler) ExportCourseReport(c *gin.Context) {
	h.LogRequest(c, "Exporting course report")

	courseID := c.Param("id")

	f, err := h.service.ExportCourseReport(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=course_%s.xlsx", courseID))
	c.Header("Content-Type", xlsxContentType)

	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("Failed to stream export", "error", err)
	}
}

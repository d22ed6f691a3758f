package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adetops/edu-progress-tracker/internal/repositories"
	"github.com/Adetops/edu-progress-tracker/internal/services"
	"github.com/Adetops/edu-progress-tracker/internal/utils"
)

type ActivityHandler struct {
	BaseHandler
	service services.ActivityService
}

func NewActivityHandler(service services.ActivityService, logger utils.Logger) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== ACTIVITY ENDPOINTS =====

// RecordActivity stores one completed unit of work
// @Router /activities [post]
func (h *ActivityHandler) RecordActivity(c *gin.Context) {
	h.LogRequest(c, "Recording activity")

	var req services.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	activity, err := h.service.Record(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// ListActivities returns activities filtered by student, course or type
// @Router /activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	h.LogRequest(c, "Listing activities")

	filters := repositories.ActivityFilters{
		Limit:  parseIntQuery(c, "size", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if studentID := c.Query("student_id"); studentID != "" {
		filters.StudentID = &studentID
	}
	if courseID := c.Query("course_id"); courseID != "" {
		filters.CourseID = &courseID
	}

	activities, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activities)
}

// GetActivity returns a single recorded activity
// @Router /activities/:id [get]
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	h.LogRequest(c, "Getting activity")

	activity, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

// DeleteActivity removes a recorded activity
// @Router /activities/:id [delete]
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	h.LogRequest(c, "Deleting activity")

	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

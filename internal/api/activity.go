package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/service"
)

type ActivityHandler struct {
	activities *service.ActivityService
	intake     *service.IntakeService
}

func NewActivityHandler(activities *service.ActivityService, intake *service.IntakeService) *ActivityHandler {
	return &ActivityHandler{activities: activities, intake: intake}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/exercise", h.AddExercise)
	router.GET("/activities", h.ListActivities)
	router.DELETE("/activities/:id", h.DeleteActivity)
}

func (h *ActivityHandler) AddExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Date == "" {
		req.Date = today()
	}
	preview, _ := strconv.ParseBool(c.Query("preview"))

	resolved, err := h.intake.AddExercise(c.Request.Context(), middleware.UserID(c), req.Date, req.Query, preview)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	status := http.StatusCreated
	if preview {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"exercises": resolved, "preview": preview})
}

func (h *ActivityHandler) ListActivities(c *gin.Context) {
	activities, err := h.activities.GetActivities(c.Request.Context(), middleware.UserID(c), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}

	if err := h.activities.DeleteActivity(c.Request.Context(), middleware.UserID(c), activityID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "activity deleted"})
}

package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/service"
)

type SummaryHandler struct {
	summaries *service.SummaryService
}

func NewSummaryHandler(summaries *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summaries: summaries}
}

func (h *SummaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/daily-summary", h.GetDailySummary)
	router.POST("/daily-summary/update", h.RecomputeDailySummary)
	router.GET("/history", h.GetHistory)
}

// GetDailySummary returns the stored summary for a date, recomputing it
// first when no row exists yet.
func (h *SummaryHandler) GetDailySummary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = today()
	}
	userID := middleware.UserID(c)

	summary, err := h.summaries.Get(c.Request.Context(), userID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if summary == nil {
		summary, err = h.summaries.Recompute(c.Request.Context(), userID, date)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, summary)
}

func (h *SummaryHandler) RecomputeDailySummary(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = today()
	}

	summary, err := h.summaries.Recompute(c.Request.Context(), middleware.UserID(c), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *SummaryHandler) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	history, err := h.summaries.History(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

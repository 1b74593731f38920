package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/service"
)

type AnalysisHandler struct {
	analysis        *service.AnalysisService
	recommendations *service.RecommendationService
}

func NewAnalysisHandler(analysis *service.AnalysisService, recommendations *service.RecommendationService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis, recommendations: recommendations}
}

func (h *AnalysisHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/analysis/weekly", h.GetWeeklyAnalysis)
	router.GET("/nutrition-recommendations", h.GetRecommendations)
}

func (h *AnalysisHandler) GetWeeklyAnalysis(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	endDate := c.Query("end_date")

	analysis, err := h.analysis.Analyze(c.Request.Context(), middleware.UserID(c), endDate, days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *AnalysisHandler) GetRecommendations(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	response, err := h.recommendations.GetRecommendations(c.Request.Context(), middleware.UserID(c), days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

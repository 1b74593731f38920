package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	user := router.Group("/user")
	{
		user.GET("/profile", h.GetProfile)
		user.PUT("/profile", h.UpdateProfile)
		user.GET("/goals", h.GetGoals)
	}
	router.POST("/bmr", h.ComputeBMR)
	router.POST("/tdee", h.ComputeTDEE)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var update service.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), middleware.UserID(c), update)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetGoals(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = today()
	}

	goals, err := h.profiles.GetGoals(c.Request.Context(), middleware.UserID(c), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *ProfileHandler) ComputeBMR(c *gin.Context) {
	var req BMRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bmr, err := service.BMR(req.WeightKg, req.HeightCm, req.Age, req.Sex)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bmr": bmr})
}

func (h *ProfileHandler) ComputeTDEE(c *gin.Context) {
	var req TDEERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bmr, err := service.BMR(req.WeightKg, req.HeightCm, req.Age, req.Sex)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	tdeeBase, err := service.TDEEBase(bmr, req.ActivityFactor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	tdee := service.GoalAdjust(tdeeBase, req.Goal)

	c.JSON(http.StatusOK, gin.H{"bmr": bmr, "tdee_base": tdeeBase, "tdee": tdee})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/models"
	"github.com/nutriflow/backend/internal/service"
)

type MealHandler struct {
	meals *service.MealService
}

func NewMealHandler(meals *service.MealService) *MealHandler {
	return &MealHandler{meals: meals}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/meals", h.CreateMeal)
	router.GET("/meals", h.ListMeals)
	router.GET("/meals/:id", h.GetMeal)
	router.PATCH("/meals/:id", h.UpdateMeal)
	router.DELETE("/meals/:id", h.DeleteMeal)
	router.POST("/meal-items", h.AddMealItem)
	router.DELETE("/meal-items/:id", h.DeleteMealItem)
}

func (h *MealHandler) CreateMeal(c *gin.Context) {
	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Date == "" {
		req.Date = today()
	}

	meal := models.Meal{
		UserID: middleware.UserID(c),
		Date:   req.Date,
		Type:   req.Type,
		Note:   req.Note,
	}
	for _, it := range req.Items {
		meal.Items = append(meal.Items, models.MealItem{
			Name:     it.Name,
			Brand:    it.Brand,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Calories: it.Calories,
			ProteinG: it.ProteinG,
			CarbsG:   it.CarbsG,
			FatG:     it.FatG,
			Barcode:  it.Barcode,
			Source:   it.Source,
		})
	}

	if err := h.meals.CreateMeal(c.Request.Context(), &meal); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (h *MealHandler) ListMeals(c *gin.Context) {
	meals, err := h.meals.GetMeals(c.Request.Context(), middleware.UserID(c), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	meal, err := h.meals.GetMeal(c.Request.Context(), middleware.UserID(c), mealID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) UpdateMeal(c *gin.Context) {
	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	var req UpdateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	meal, err := h.meals.UpdateMeal(c.Request.Context(), middleware.UserID(c), mealID, req.Type, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *MealHandler) DeleteMeal(c *gin.Context) {
	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	if err := h.meals.DeleteMeal(c.Request.Context(), middleware.UserID(c), mealID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

func (h *MealHandler) AddMealItem(c *gin.Context) {
	var req MealItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	mealID, err := uuid.Parse(req.MealID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	item := models.MealItem{
		Name:     req.Name,
		Brand:    req.Brand,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
		Barcode:  req.Barcode,
		Source:   req.Source,
	}
	if err := h.meals.AddMealItem(c.Request.Context(), middleware.UserID(c), mealID, &item); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MealHandler) DeleteMealItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal item id"})
		return
	}

	if err := h.meals.DeleteMealItem(c.Request.Context(), middleware.UserID(c), itemID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal item deleted"})
}

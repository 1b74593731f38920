package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/models"
	"github.com/nutriflow/backend/internal/service"
)

type FoodHandler struct {
	intake     *service.IntakeService
	normalizer *service.Normalizer
}

func NewFoodHandler(intake *service.IntakeService, normalizer *service.Normalizer) *FoodHandler {
	return &FoodHandler{intake: intake, normalizer: normalizer}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/ingredients", h.AddIngredients)
	router.POST("/barcode", h.AddBarcode)
	router.GET("/search", h.SearchProduct)
	router.GET("/product/:barcode", h.GetProduct)
	router.GET("/units", h.GetUnits)
	router.GET("/sports", h.GetSports)
}

func (h *FoodHandler) AddIngredients(c *gin.Context) {
	var req IngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Date == "" {
		req.Date = today()
	}
	if req.Type == "" {
		req.Type = models.MealSnack
	}

	items, err := h.intake.AddIngredients(c.Request.Context(), middleware.UserID(c), req.Date, req.Type, req.Query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": items})
}

func (h *FoodHandler) AddBarcode(c *gin.Context) {
	var req BarcodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Date == "" {
		req.Date = today()
	}
	if req.Type == "" {
		req.Type = models.MealSnack
	}
	if req.QuantityG == 0 {
		req.QuantityG = 100
	}

	item, err := h.intake.AddBarcode(c.Request.Context(), middleware.UserID(c), req.Date, req.Type, req.Barcode, req.QuantityG)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *FoodHandler) SearchProduct(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	product, err := h.intake.SearchProduct(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *FoodHandler) GetProduct(c *gin.Context) {
	product, err := h.intake.LookupBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *FoodHandler) GetUnits(c *gin.Context) {
	c.JSON(http.StatusOK, h.normalizer.Units())
}

func (h *FoodHandler) GetSports(c *gin.Context) {
	c.JSON(http.StatusOK, h.normalizer.Sports())
}

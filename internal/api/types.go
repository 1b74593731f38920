package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutriflow/backend/internal/service"
)

// today returns the default date for endpoints that omit one.
func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// respondServiceError maps service errors onto HTTP statuses. Unknown
// errors become opaque 500s so internals never leak to clients.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrMissingIdentifier):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrMealNotFound),
		errors.Is(err, service.ErrMealItemNotFound),
		errors.Is(err, service.ErrActivityNotFound),
		errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUpstreamUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "nutrition service unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// IngredientsRequest is the free-text meal entry payload.
type IngredientsRequest struct {
	Query string `json:"query" binding:"required"`
	Date  string `json:"date"`
	Type  string `json:"type"`
}

// BarcodeRequest adds a packaged product by barcode.
type BarcodeRequest struct {
	Barcode   string  `json:"barcode" binding:"required"`
	QuantityG float64 `json:"quantity_g"`
	Date      string  `json:"date"`
	Type      string  `json:"type"`
}

// ExerciseRequest is the free-text exercise entry payload.
type ExerciseRequest struct {
	Query string `json:"query" binding:"required"`
	Date  string `json:"date"`
}

// BMRRequest carries the raw inputs for the energy endpoints.
type BMRRequest struct {
	WeightKg float64 `json:"weight_kg" binding:"required"`
	HeightCm float64 `json:"height_cm" binding:"required"`
	Age      int     `json:"age" binding:"required"`
	Sex      string  `json:"sex" binding:"required"`
}

// TDEERequest extends BMRRequest with the activity factor and optional goal.
type TDEERequest struct {
	WeightKg       float64 `json:"weight_kg" binding:"required"`
	HeightCm       float64 `json:"height_cm" binding:"required"`
	Age            int     `json:"age" binding:"required"`
	Sex            string  `json:"sex" binding:"required"`
	ActivityFactor float64 `json:"activity_factor" binding:"required"`
	Goal           string  `json:"goal"`
}

// CreateMealRequest creates a meal, optionally with inline items.
type CreateMealRequest struct {
	Date  string            `json:"date"`
	Type  string            `json:"type" binding:"required"`
	Note  string            `json:"note"`
	Items []MealItemRequest `json:"items"`
}

// UpdateMealRequest patches a meal. Nil fields stay unchanged.
type UpdateMealRequest struct {
	Type *string `json:"type"`
	Note *string `json:"note"`
}

// MealItemRequest is one item payload, inline or standalone.
type MealItemRequest struct {
	MealID   string  `json:"meal_id"`
	Name     string  `json:"name" binding:"required"`
	Brand    string  `json:"brand"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	Barcode  string  `json:"barcode"`
	Source   string  `json:"source"`
}

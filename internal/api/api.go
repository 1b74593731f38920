package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nutriflow/backend/config"
	"github.com/nutriflow/backend/internal/middleware"
	"github.com/nutriflow/backend/internal/provider/nutritionix"
	"github.com/nutriflow/backend/internal/provider/openfoodfacts"
	"github.com/nutriflow/backend/internal/service"
)

// SetupAPI wires services to handlers and registers every route under
// /api/v1. redisClient may be nil, which disables product caching.
func SetupAPI(router *gin.Engine, db *gorm.DB, cfg *config.Config, redisClient *redis.Client) {
	v1 := router.Group("/api/v1")
	v1.Use(middleware.ResolveUser())
	{
		// Initialize providers
		nutritionixClient := &nutritionix.Client{
			AppID:  cfg.NutritionixAppID,
			APIKey: cfg.NutritionixAppKey,
		}
		offClient := &openfoodfacts.Client{}
		products := service.NewCachedProductLookup(offClient, redisClient)

		// Initialize services
		normalizer := service.NewNormalizer()
		if cfg.MappingPath != "" {
			_ = normalizer.Reload(cfg.MappingPath)
		}
		summaryService := service.NewSummaryService(db)
		mealService := service.NewMealService(db, summaryService)
		activityService := service.NewActivityService(db, summaryService)
		profileService := service.NewProfileService(db, summaryService)
		intakeService := service.NewIntakeService(db, nutritionixClient, nutritionixClient, products, normalizer, mealService, activityService, profileService)
		analysisService := service.NewAnalysisService(db)
		recommendationService := service.NewRecommendationService(analysisService, service.NewStaticSuggestions())

		// Initialize handlers
		mealHandler := NewMealHandler(mealService)
		activityHandler := NewActivityHandler(activityService, intakeService)
		foodHandler := NewFoodHandler(intakeService, normalizer)
		profileHandler := NewProfileHandler(profileService)
		summaryHandler := NewSummaryHandler(summaryService)
		analysisHandler := NewAnalysisHandler(analysisService, recommendationService)

		// Register routes
		mealHandler.RegisterRoutes(v1)
		activityHandler.RegisterRoutes(v1)
		foodHandler.RegisterRoutes(v1)
		profileHandler.RegisterRoutes(v1)
		summaryHandler.RegisterRoutes(v1)
		analysisHandler.RegisterRoutes(v1)
	}
}

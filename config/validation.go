package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable. Database
// credentials are mandatory everywhere except tests (which run on sqlite);
// Nutritionix credentials are only required in production, since every
// resolver path has a static fallback.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if !IsTest() {
		if cfg.DBUser == "" {
			errs = append(errs, ValidationError{"DB_USER", "is required"}.Error())
		}
		if cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "is required"}.Error())
		}
	}

	if IsProduction() {
		if cfg.NutritionixAppID == "" {
			errs = append(errs, ValidationError{"NUTRITIONIX_APP_ID", "is required in production"}.Error())
		}
		if cfg.NutritionixAppKey == "" {
			errs = append(errs, ValidationError{"NUTRITIONIX_APP_KEY", "is required in production"}.Error())
		}
	}

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "must not be empty"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

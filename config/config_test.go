package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "0.0.0.0", cfg.ServerHost)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "nutriflow", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Empty(t, cfg.RedisHost, "redis is opt-in")
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("NUTRITIONIX_APP_ID", "app-id")
	t.Setenv("NUTRITIONIX_APP_KEY", "app-key")
	t.Setenv("MAPPING_PATH", "/etc/nutriflow/units.csv")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "cache.internal", cfg.RedisHost)
	assert.Equal(t, "app-id", cfg.NutritionixAppID)
	assert.Equal(t, "app-key", cfg.NutritionixAppKey)
	assert.Equal(t, "/etc/nutriflow/units.csv", cfg.MappingPath)
}

func TestValidateConfigRequiresDBCredentials(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("CI", "")

	err := ValidateConfig(&Config{ServerPort: "8080"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestValidateConfigTestEnvironmentSkipsDB(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")

	err := ValidateConfig(&Config{ServerPort: "8080"})
	assert.NoError(t, err)
}

func TestValidateConfigProductionRequiresNutritionix(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CI", "")

	err := ValidateConfig(&Config{
		ServerPort: "8080",
		DBUser:     "app",
		DBPassword: "secret",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NUTRITIONIX_APP_ID")
	assert.Contains(t, err.Error(), "NUTRITIONIX_APP_KEY")
}

func TestValidateConfigEmptyPort(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")

	err := ValidateConfig(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SERVER_PORT")
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())
	assert.True(t, IsTest())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())
	assert.True(t, IsDevelopment())
}

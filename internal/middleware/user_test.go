package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveWith(t *testing.T, header string) (*httptest.ResponseRecorder, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var resolved uuid.UUID
	router := gin.New()
	router.Use(ResolveUser())
	router.GET("/", func(c *gin.Context) {
		resolved = UserID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("X-User-ID", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, resolved
}

func TestResolveUserFromHeader(t *testing.T) {
	id := uuid.New()
	w, resolved := resolveWith(t, id.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, resolved)
}

func TestResolveUserDefaultsWithoutHeader(t *testing.T) {
	w, resolved := resolveWith(t, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, defaultUserID, resolved)
}

func TestResolveUserRejectsMalformedHeader(t *testing.T) {
	w, _ := resolveWith(t, "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

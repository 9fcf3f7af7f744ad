package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edumind/elearn-backend/internal/config"
	"github.com/edumind/elearn-backend/internal/model"
	"github.com/edumind/elearn-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTFixture(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}
	authService := service.NewAuthService(cfg, nil)

	router := gin.New()
	router.GET("/me", RequireJWT(authService), func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	router.GET("/admin", RequireJWT(authService), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/super", RequireJWT(authService), RequireSuperadmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, authService
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireJWT(t *testing.T) {
	router, authService := newJWTFixture(t)

	token, err := authService.GenerateToken(&model.User{ID: 1, Role: model.RoleUser})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doRequest(router, "/me", token).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(router, "/me", "garbage").Code)
}

func TestRequireAdmin(t *testing.T) {
	router, authService := newJWTFixture(t)

	userToken, err := authService.GenerateToken(&model.User{ID: 1, Role: model.RoleUser})
	require.NoError(t, err)
	adminToken, err := authService.GenerateToken(&model.User{ID: 2, Role: model.RoleAdmin})
	require.NoError(t, err)
	superToken, err := authService.GenerateToken(&model.User{ID: 3, Role: model.RoleSuperadmin})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(router, "/admin", userToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "/admin", adminToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "/admin", superToken).Code)
}

func TestRequireSuperadmin(t *testing.T) {
	router, authService := newJWTFixture(t)

	adminToken, err := authService.GenerateToken(&model.User{ID: 2, Role: model.RoleAdmin})
	require.NoError(t, err)
	superToken, err := authService.GenerateToken(&model.User{ID: 3, Role: model.RoleSuperadmin})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(router, "/super", adminToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "/super", superToken).Code)
}

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.GET("/private", RequireAuth(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	})
	server.GET("/admin", RequireAuth(), RequireAdmin(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"success": true})
	})
	return server
}

func doAuthRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRequireAuthMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := authTestRouter()

	recorder := doAuthRequest(router, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := authTestRouter()

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 1,
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	recorder := doAuthRequest(router, "/private", "Bearer "+token)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := authTestRouter()

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 1,
		"role":    "user",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	recorder := doAuthRequest(router, "/private", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := authTestRouter()

	token := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	recorder := doAuthRequest(router, "/private", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAdminRejectsPlainUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := authTestRouter()

	userToken := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 1,
		"role":    "user",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	adminToken := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 2,
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	assert.Equal(t, http.StatusForbidden, doAuthRequest(router, "/admin", "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, doAuthRequest(router, "/admin", "Bearer "+adminToken).Code)
}

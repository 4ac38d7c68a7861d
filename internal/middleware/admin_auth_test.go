package middleware

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

func adminRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", AdminAuth(secret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func signToken(t *testing.T, secret, role string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(expiresIn).Unix(),
		"iat":  time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func requestWithToken(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminAuth_ValidToken(t *testing.T) {
	r := adminRouter("secret")
	w := requestWithToken(r, signToken(t, "secret", "admin", time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminAuth_MissingHeader(t *testing.T) {
	r := adminRouter("secret")
	w := requestWithToken(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_WrongSecret(t *testing.T) {
	r := adminRouter("secret")
	w := requestWithToken(r, signToken(t, "other-secret", "admin", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_ExpiredToken(t *testing.T) {
	r := adminRouter("secret")
	w := requestWithToken(r, signToken(t, "secret", "admin", -time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_WrongRole(t *testing.T) {
	r := adminRouter("secret")
	w := requestWithToken(r, signToken(t, "secret", "player", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_UnconfiguredSecretRejectsEverything(t *testing.T) {
	r := adminRouter("")
	w := requestWithToken(r, signToken(t, "", "admin", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_NonBearerScheme(t *testing.T) {
	r := adminRouter("secret")
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

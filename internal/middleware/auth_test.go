package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"granja/internal/auth"
)

func newTokens(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "granja-api", TTL: time.Hour})
	require.NoError(t, err)
	return svc
}

func identityRouter(tokens TokenValidator) *gin.Engine {
	r := gin.New()
	r.GET("/me", Authenticate(tokens), func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": id.UserID, "role": id.RoleID})
	})
	return r
}

func TestAuthenticateRejectsMissingAndMalformed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := identityRouter(newTokens(t))

	for _, header := range []string{"", "Token abc", "Bearer", "Bearer not-a-jwt"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Contains(t, w.Body.String(), `"code":"UNAUTHENTICATED"`)
	}
}

func TestAuthenticateAcceptsBearerAndCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := newTokens(t)
	r := identityRouter(tokens)

	token, err := tokens.Issue(auth.Identity{UserID: 5, RoleID: 3, Email: "op@granja.co"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":5,"role":3}`, w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSetAndClearTokenCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/in", func(c *gin.Context) { SetTokenCookie(c, "tok", time.Hour) })
	r.GET("/out", func(c *gin.Context) { ClearTokenCookie(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/in", nil))
	cookie := w.Result().Cookies()[0]
	assert.Equal(t, "access_token", cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/out", nil))
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
}

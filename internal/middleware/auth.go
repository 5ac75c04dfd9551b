package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"granja/internal/auth"
	"granja/pkg/apperror"
	"granja/pkg/response"
)

const (
	CtxIdentityKey = "identity"
	CtxUserIDKey   = "userID"
	CtxRoleIDKey   = "userRole"

	accessTokenCookie = "access_token"
)

// TokenValidator resolves a bearer token into claims.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// SetTokenCookie stores the access token as an HttpOnly cookie.
// Release builds serve the API cross-origin, so the cookie must be Secure and SameSite=None.
func SetTokenCookie(c *gin.Context, token string, ttl time.Duration) {
	sameSite, secure := cookiePolicy()
	c.SetSameSite(sameSite)
	c.SetCookie(accessTokenCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearTokenCookie removes the access_token cookie.
func ClearTokenCookie(c *gin.Context) {
	sameSite, secure := cookiePolicy()
	c.SetSameSite(sameSite)
	c.SetCookie(accessTokenCookie, "", -1, "/", "", secure, true)
}

func cookiePolicy() (http.SameSite, bool) {
	if gin.Mode() == gin.ReleaseMode {
		return http.SameSiteNoneMode, true
	}
	return http.SameSiteLaxMode, false
}

// Authenticate validates the access token from the cookie or the
// Authorization header and stores the caller identity on the context.
func Authenticate(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, cookieErr := c.Cookie(accessTokenCookie)
		if cookieErr != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				abort(c, apperror.ErrUnauthenticated.WithMessage("Authorization is missing"))
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				abort(c, apperror.ErrUnauthenticated.WithMessage("Invalid authorization format. Expected 'Bearer <token>'"))
				return
			}
			tokenString = parts[1]
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			abort(c, apperror.ErrUnauthenticated.WithMessage("Invalid token").WithInternal(err))
			return
		}

		id := claims.Identity()
		c.Set(CtxIdentityKey, id)
		c.Set(CtxUserIDKey, id.UserID)
		c.Set(CtxRoleIDKey, id.RoleID)
		c.Next()
	}
}

// CurrentIdentity returns the identity set by Authenticate.
func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func abort(c *gin.Context, err error) {
	status, body := response.FromError(err)
	c.AbortWithStatusJSON(status, body)
}

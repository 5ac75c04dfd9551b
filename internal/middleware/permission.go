package middleware

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"granja/internal/permission"
	"granja/pkg/apperror"
	"granja/pkg/logger"
)

// Authorizer decides whether a role may act on a module.
type Authorizer interface {
	Authorize(ctx context.Context, roleID uint, module permission.Module, action permission.Action) (bool, error)
}

// RequirePermission guards a statically routed endpoint. It panics at
// registration time when route has no entry in the route table.
func RequirePermission(gate Authorizer, route string) gin.HandlerFunc {
	guard, ok := permission.Lookup(route)
	if !ok {
		panic(fmt.Sprintf("middleware: no permission guard for route %q", route))
	}

	return func(c *gin.Context) {
		if !Allow(c, gate, guard) {
			return
		}
		c.Next()
	}
}

// Allow consults the gate for the authenticated caller. On deny or failure it
// aborts the request with the matching error response and returns false.
func Allow(c *gin.Context, gate Authorizer, guard permission.Guard) bool {
	id, ok := CurrentIdentity(c)
	if !ok {
		abort(c, apperror.ErrUnauthenticated)
		return false
	}

	allowed, err := gate.Authorize(c.Request.Context(), id.RoleID, guard.Module, guard.Action)
	if err != nil {
		logger.WithModule("permission").Error("authorization check failed",
			zap.Uint("role_id", id.RoleID),
			zap.String("module", guard.Module.String()),
			zap.String("action", string(guard.Action)),
			zap.Error(err),
		)
		abort(c, err)
		return false
	}
	if !allowed {
		abort(c, apperror.ErrUnauthorized)
		return false
	}
	return true
}

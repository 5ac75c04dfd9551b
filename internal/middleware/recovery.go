package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"granja/pkg/logger"
	"granja/pkg/response"
)

// Recovery converts panics into a 500 response and logs the error.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithModule("http").Error("panic",
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString(CtxRequestIDKey)),
					zap.Any("error", r),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					response.ErrorWithCode(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error"))
			}
		}()
		c.Next()
	}
}

// NotFound returns a JSON 404 for unknown routes.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "route "+c.Request.URL.Path+" not found"))
}

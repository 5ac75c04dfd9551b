package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"granja/internal/model"
	"granja/pkg/apperror"
	"granja/pkg/logger"
	"granja/pkg/patch"
	"granja/pkg/response"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom binding validations used by the
// request DTOs. Safe to call more than once.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("handler: unsupported validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("unidad_medida", func(fl validator.FieldLevel) bool {
			return model.IsValidUnit(fl.Field().String())
		}); err != nil {
			registerErr = fmt.Errorf("handler: register unidad_medida: %w", err)
		}
	})
	return registerErr
}

// respondError writes the envelope for err. Server-side failures are logged
// with their internal cause, which never reaches the client.
func respondError(c *gin.Context, err error) {
	status, body := response.FromError(err)
	if status >= http.StatusInternalServerError {
		logger.WithModule("http").Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	respondError(c, apperror.NewBadRequest("Invalid request payload: "+err.Error()).WithInternal(err))
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, apperror.NewBadRequest("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// bindPatch validates the body into req and returns exactly the keys the
// client supplied. Keys that req does not declare stay untyped and are
// rejected by the update builder.
func bindPatch(c *gin.Context, req interface{}) (patch.Fields, bool) {
	if err := c.ShouldBindBodyWith(req, binding.JSON); err != nil {
		badRequest(c, err)
		return nil, false
	}

	var body []byte
	if raw, ok := c.Get(gin.BodyBytesKey); ok {
		body, _ = raw.([]byte)
	}

	fields, err := patch.FromJSON(body)
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	return fields, true
}

func respondUpdate(c *gin.Context, err error, msg string) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, response.Message{Message: msg}))
}

func respondCreated(c *gin.Context, id uint, msg string) {
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, response.Message{Message: msg, ID: id}))
}

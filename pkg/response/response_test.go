package response

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"granja/pkg/apperror"
)

func TestFromError(t *testing.T) {
	status, body := FromError(fmt.Errorf("wrapped: %w", apperror.ErrNotFound.WithMessage("Finca no encontrada")))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, Response{Status: "error", StatusCode: 404, Error: "Finca no encontrada", Code: "NOT_FOUND"}, body)

	status, body = FromError(errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
	assert.NotContains(t, body.Error, "connection reset")
}

func TestSuccess(t *testing.T) {
	body := Success(http.StatusCreated, Message{Message: "ok", ID: 3})
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, 201, body.StatusCode)
	assert.Equal(t, Message{Message: "ok", ID: 3}, body.Data)
}

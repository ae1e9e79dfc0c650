package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/tenant-items-api/internal/api/dto"
	"github.com/kingrain94/tenant-items-api/internal/service"
)

const (
	detailNotFound     = "Not Found"
	detailTaskNotFound = "Task not found."
)

// writeError is the only place service errors become HTTP responses.
// Specific kinds are matched first; anything unrecognised is a 500 carrying
// the error text.
func writeError(c *gin.Context, err error, notFoundDetail string) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.Error{
			Code:   http.StatusBadRequest,
			Detail: map[string][]string{validationErr.Field: {validationErr.Message}},
		})
	case errors.Is(err, service.ErrMissingCredentials):
		c.JSON(http.StatusBadRequest, dto.Error{
			Code:   http.StatusBadRequest,
			Detail: "Schema name, username, and password are required.",
		})
	case errors.Is(err, service.ErrMissingRefresh):
		c.JSON(http.StatusBadRequest, dto.Error{
			Code:   http.StatusBadRequest,
			Detail: map[string][]string{"refresh": {"This field is required."}},
		})
	case errors.Is(err, dto.ErrInvalidItemID):
		c.JSON(http.StatusBadRequest, dto.Error{
			Code:   http.StatusBadRequest,
			Detail: map[string][]string{"item_id": {"A valid integer is required."}},
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.Error{Code: http.StatusUnauthorized, Detail: "Invalid credentials."})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.Error{Code: http.StatusUnauthorized, Detail: "Token is invalid or expired"})
	case errors.Is(err, service.ErrItemNotFound):
		c.JSON(http.StatusNotFound, dto.Error{Code: http.StatusNotFound, Detail: notFoundDetail})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.Error{Code: http.StatusInternalServerError, Detail: err.Error()})
	}
}

// bindJSON decodes the body into req and answers 400 when it cannot. An
// empty body leaves req zero-valued.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		if errors.Is(err, dto.ErrInvalidItemID) {
			writeError(c, err, detailNotFound)
			return false
		}
		c.JSON(http.StatusBadRequest, dto.Error{
			Code:   http.StatusBadRequest,
			Detail: "JSON parse error - " + err.Error(),
		})
		return false
	}
	return true
}

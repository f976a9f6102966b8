package response

import (
	"errors"
	"net/http"

	"busline/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a core error to its HTTP status code. A seat conflict is
// deliberately a 409 so clients can tell it apart from a 404 and re-query.
func RespondError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case apperrors.IsNotFound(err):
		code = http.StatusNotFound
	case apperrors.IsSeatUnavailable(err):
		code = http.StatusConflict
	case apperrors.IsInvalidState(err):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrUnauthenticated):
		code = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrUnauthorized):
		code = http.StatusForbidden
	}
	RespondJSON(c, "error", code, err.Error(), nil, nil)
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/alfrdzley/openmusic-api-v3/internal/shared/fail"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// FromError maps a domain error kind to an HTTP status. Unknown kinds are a
// 500 with a generic body; the real cause goes to the log, not the client.
func FromError(c *gin.Context, err error) {
	switch fail.KindOf(err) {
	case fail.KindNotFound:
		ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case fail.KindForbidden:
		ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case fail.KindConflict:
		ErrorResponse(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Err(err).
			Msg("request failed")
		ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
	}
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform API response body. Code is 0 on success and the
// HTTP status on failure.
type Envelope struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success sends a 200 response wrapping data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error sends an error response with the given status and message.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{
		Code:    code,
		Message: message,
	})
}

// BadRequest sends a 400 response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError sends a 500 response.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

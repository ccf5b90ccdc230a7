package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the only error envelope the API emits.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes data as the raw response body, without a wrapper.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Text writes a plain text body.
func Text(c *gin.Context, statusCode int, body string) {
	c.String(statusCode, body)
}

// Empty writes the status with no body at all.
func Empty(c *gin.Context, statusCode int) {
	c.Status(statusCode)
	c.Writer.WriteHeaderNow()
}

// Error writes {"error": message} and aborts the chain.
func Error(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Error: message})
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

func MethodNotAllowed(c *gin.Context) {
	c.Abort()
	Text(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}

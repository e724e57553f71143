package response

import (
	"github.com/gin-gonic/gin"
)

// messageBody is the wire shape for every non-2xx response and for
// mutation confirmations: {"message": "..."}.
type messageBody struct {
	Message string `json:"message"`
}

// Canonical messages shared by handlers and middleware. Conflict messages
// are produced by the course service and surfaced verbatim.
const (
	MsgUnauthorized   = "Unauthorized"
	MsgCourseNotFound = "Course not found"
	MsgCourseDeleted  = "Course deleted successfully"
	MsgServerError    = "Server error"
	MsgTooMany        = "Too many requests"
)

// Error sends an error response with the given status and message.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, messageBody{Message: message})
}

// AbortError aborts the middleware chain and sends an error response.
func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, messageBody{Message: message})
}

// Message sends a success response whose body is only a message.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, messageBody{Message: message})
}

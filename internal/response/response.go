package response

import (
	"github.com/gin-gonic/gin"
)

// JSON sends a successful response with the given status code and payload.
func JSON(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

// Error sends a flat error body: {"error": "..."}.
// Raw internal error text never belongs in msg; use the canonical messages
// from errors.go.
func Error(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, gin.H{"error": msg})
}

// ErrorWithDetails sends an error body with additional top-level fields, e.g.
// {"error": "All questions must be answered", "expected_questions": 2, ...}.
func ErrorWithDetails(c *gin.Context, statusCode int, msg string, details gin.H) {
	body := gin.H{"error": msg}
	for k, v := range details {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// AbortError aborts the middleware chain and sends an error response.
func AbortError(c *gin.Context, statusCode int, msg string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": msg})
}

package response

import "github.com/gin-gonic/gin"

// ErrorBody is the JSON envelope for error responses. Successful routes
// return their domain payloads directly.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error sends an error response with the given status code
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorBody{
		Code:    code,
		Message: message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

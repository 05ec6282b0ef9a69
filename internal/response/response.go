package response

import (
	"github.com/gin-gonic/gin"
)

// SuccessBody is the relay's success envelope.
type SuccessBody struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorBody is the relay's failure envelope. Error always carries the
// generic message for Code; upstream details never appear here.
type ErrorBody struct {
	Error     string  `json:"error"`
	Code      ErrCode `json:"code"`
	RequestID string  `json:"request_id,omitempty"`
}

// Success sends a successful JSON response with the given status code and message.
func Success(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessBody{
		Success:   true,
		Message:   message,
		RequestID: RequestID(c),
	})
}

// Fail sends an error response with an error code and no field-level details.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, ErrorBody{
		Error:     GetMessage(code),
		Code:      code,
		RequestID: RequestID(c),
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{
		Error:     GetMessage(code),
		Code:      code,
		RequestID: RequestID(c),
	})
}

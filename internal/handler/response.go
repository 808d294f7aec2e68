package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError writes a service error with its mapped HTTP status. Errors
// that do not carry a status code become 500s with a generic message.
func RespondError(c *gin.Context, err error) {
	c.Error(err)

	if sc, ok := err.(interface{ StatusCode() int }); ok {
		c.JSON(sc.StatusCode(), NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
}

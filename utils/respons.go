package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondValidationError returns field-level messages so the form can
// surface errors inline next to each input.
func RespondValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(400, JSONResponse{
		Status:  false,
		Message: "validation failed",
		Data:    gin.H{"fields": fields},
	})
}

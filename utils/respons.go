package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/pos-engine/apperr"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Code    string      `json:"code,omitempty"`
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

// RespondError recovers the error taxonomy into a stable code + message.
// Internal errors are logged with their cause and surfaced generically.
func RespondError(c *gin.Context, err error) {
	appErr := apperr.As(err)
	if appErr.Kind == apperr.KindInternal {
		ErrorLogger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, appErr.Unwrap())
	}
	c.JSON(apperr.HTTPStatus(appErr), JSONResponse{
		Status:  false,
		Code:    appErr.Code,
		Message: appErr.Message,
	})
}

package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/servicehub-backend/internal/http/response"
	"github.com/yungbote/servicehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

// Recovery turns a handler panic into the standard 500 envelope.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if log != nil {
			fields := append([]interface{}{
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"panic", fmt.Sprint(recovered),
			}, ctxutil.LogFields(c.Request.Context())...)
			log.Error("panic recovered", fields...)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorEnvelope{
			Error: response.APIError{Message: "internal server error", Code: "internal_error"},
		})
	})
}

package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/servicehub-backend/internal/platform/apierr"
	"github.com/yungbote/servicehub-backend/internal/platform/ctxutil"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

const genericMessage = "internal server error"

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondFromError maps a service error onto its status and code. Server
// side failures are logged in full and answered with a generic message.
func RespondFromError(c *gin.Context, log *logger.Logger, err error) {
	ae := apierr.FromError(err)
	if ae == nil {
		RespondError(c, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if ae.Internal() {
		if log != nil {
			fields := append([]interface{}{
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"code", ae.Code,
				"error", err,
			}, ctxutil.LogFields(c.Request.Context())...)
			log.Error("request failed", fields...)
		}
		c.JSON(ae.Status, ErrorEnvelope{Error: APIError{Message: genericMessage, Code: ae.Code}})
		return
	}
	RespondError(c, ae.Status, ae.Code, ae.Err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

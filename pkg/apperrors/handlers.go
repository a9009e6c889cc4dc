package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// GinErrorHandler translates errors at the request boundary.
// Error envelopes are a single sentence: {"error": "..."}.
type GinErrorHandler struct {
	Debug bool
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	message := appErr.Message
	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "domain", appErr.Domain, "error", appErr.Error())
		if !h.Debug {
			message = "internal server error"
		}
	}

	c.JSON(appErr.HTTPCode, gin.H{"error": message})
}

// HandleError is the helper handlers call directly.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}

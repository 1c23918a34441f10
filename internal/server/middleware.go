package server

import (
	"net/http"
	"time"

	"lot-bidding/internal/auth"
	"lot-bidding/utils"

	"github.com/gin-gonic/gin"
)

// RequestLoggerMiddleware logs incoming requests with timing. Health checks
// go to debug; server errors go to error.
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	status := c.Writer.Status()
	fields := map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  status,
		"latency": time.Since(start).String(),
	}
	if lotID := c.Param("lot_id"); lotID != "" {
		fields["lot_id"] = lotID
	}
	if userID := auth.UserID(c); userID != "" {
		fields["user_id"] = userID
	}

	switch {
	case c.FullPath() == "/healthz":
		utils.Debug("HTTP Request", fields)
	case status >= http.StatusInternalServerError:
		utils.Error("HTTP Request", fields)
	default:
		utils.Info("HTTP Request", fields)
	}
}

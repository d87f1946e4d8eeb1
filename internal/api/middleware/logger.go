package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/logging"
)

// RequestLogger logs all incoming requests with details
func RequestLogger() gin.HandlerFunc {
	log := logging.C("http")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"method":     method,
			"path":       path,
			"status":     status,
			"duration":   time.Since(start).String(),
			"request_id": GetRequestID(c),
		})

		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}

		for _, e := range c.Errors {
			entry.WithError(e.Err).Error("handler error")
		}
	}
}

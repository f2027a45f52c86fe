package web

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// requestID reuses a caller supplied X-Request-ID or assigns a new one, and stores it in
// the request context for logging.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info(c.Request.Context(), "%s %s %d %s %s",
			c.Request.Method, path, c.Writer.Status(), time.Since(start).Round(time.Microsecond), c.ClientIP())
	}
}

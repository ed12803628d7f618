package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-service/pkg/logger"
)

// RequestID reuses the caller's X-Request-ID or generates one, stores it in the
// request context and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(logger.RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header(logger.RequestIDHeader, id)
		c.Next()
	}
}

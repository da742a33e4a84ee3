package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Aashish23092/curriculum-ats/dto"
	"github.com/Aashish23092/curriculum-ats/logger"
)

const (
	// UserIDHeader is set by the upstream gateway after authentication.
	UserIDHeader    = "X-User-ID"
	RequestIDHeader = "X-Request-ID"

	userIDKey = "userID"
)

// RequestLogger tags every request with a request id, stores a scoped logger
// in the request context and writes one access log line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		reqLogger := logger.Logger.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLogger))

		c.Next()

		event := reqLogger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = reqLogger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Int("size", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request completed")
	}
}

// RequireUser rejects requests that carry no user id.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   errorCodes[http.StatusUnauthorized],
				Message: dto.ErrUserIDRequired.Error(),
				Code:    http.StatusUnauthorized,
			})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

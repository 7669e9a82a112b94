package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vsrin/en-app-analytics/internal/domain"
	"github.com/vsrin/en-app-analytics/internal/logger"
)

// RequestIDMiddleware attaches a unique id to each request. An incoming
// X-Request-ID is trusted and propagated; otherwise one is generated.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()
	}
}

// LoggerMiddleware logs one structured entry per request: method, path,
// status, duration, client IP, and the request id.
func LoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		method := c.Request.Method

		c.Next()

		fields := []logger.Field{
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("duration", time.Since(start)),
			logger.String("client_ip", c.ClientIP()),
			logger.String("request_id", c.GetString("request_id")),
		}
		if query != "" {
			fields = append(fields, logger.String("query", query))
		}
		if len(c.Errors) > 0 {
			messages := make([]string, len(c.Errors))
			for i, err := range c.Errors {
				messages[i] = err.Err.Error()
			}
			fields = append(fields, logger.Strings("errors", messages))
			log.Error("HTTP request with errors", fields...)
			return
		}

		log.Info("HTTP request", fields...)
	}
}

// RecoveryMiddleware catches panics, logs them, and returns the standard
// 500 envelope without leaking the panic value to the client.
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered",
					logger.Any("error", err),
					logger.String("path", c.Request.URL.Path),
					logger.String("method", c.Request.Method),
					logger.String("client_ip", c.ClientIP()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, domain.ErrorResponse{
					Error: "Internal server error",
				})
			}
		}()

		c.Next()
	}
}

// CORSMiddleware allows the dashboard frontend to call the API from another
// origin. The analytics API is read-only, so only GET and OPTIONS pass.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := resolveOrigin(origin, allowedOrigins)
		if allowed == "" {
			c.Next()
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			strings.Join([]string{"Authorization", "Content-Type", "X-Request-ID"}, ", "))

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func resolveOrigin(origin string, allowedOrigins []string) string {
	if origin == "" {
		return "*"
	}

	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if allowed == origin {
			return origin
		}
	}
	return ""
}

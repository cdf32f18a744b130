package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maxaizer/sr-vacancies/internal/logger"
	"github.com/maxaizer/sr-vacancies/internal/metrics"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strconv"
	"time"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsCounter.WithLabelValues(route, strconv.Itoa(status)).Inc()

		entry := log.WithFields(log.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			requestIDKey:  c.GetString(requestIDKey),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("error", c.Errors.Last().Error())
		}

		switch {
		case status >= http.StatusInternalServerError:
			entry.WithField(logger.ErrorTypeField, logger.ErrorTypeHTTP).Error("request failed with server error")
		case status >= http.StatusBadRequest:
			entry.Warn("request failed with client error")
		default:
			entry.Debug("request completed")
		}
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		log.WithFields(log.Fields{
			logger.ErrorTypeField: logger.ErrorTypeInternal,
			requestIDKey:          c.GetString(requestIDKey),
			"path":                c.Request.URL.Path,
		}).Errorf("panic recovered: %v", err)

		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Erro: messageInternal})
	})
}

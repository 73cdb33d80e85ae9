package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/pkg/apperror"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
	"github.com/khoahotran/portfolio-generator/pkg/metrics"
)

const (
	GinContextKeyClientID = "clientID"
	GinContextKeyTraceID  = "trace_id"

	ClientIDCookie = "pg_client"
	TraceIDHeader  = "X-Trace-ID"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// ErrorMiddleware renders the last error attached with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unexpected error", err)
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err,
				zap.String("path", c.Request.URL.Path),
				zap.String(GinContextKeyTraceID, c.GetString(GinContextKeyTraceID)),
			)
		}
		c.AbortWithStatusJSON(status, appErr.ToJSON())
	}
}

// traceID prefers the active span, then an incoming header, then a fresh id.
func traceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	if id := c.GetHeader(TraceIDHeader); id != "" {
		return id
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		id := traceID(c)

		c.Set(GinContextKeyTraceID, id)
		c.Header(TraceIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String(GinContextKeyTraceID, id),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if status >= http.StatusBadRequest {
			log.Warn("HTTP request", fields...)
			return
		}
		log.Info("HTTP request", fields...)
	}
}

// PrometheusMiddleware labels by route template so session ids do not blow up cardinality.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" || path == "/metrics" || path == "/api/health" {
			c.Next()
			return
		}
		method := c.Request.Method
		start := time.Now()

		metrics.HTTPInFlight.WithLabelValues(method, path).Inc()
		defer metrics.HTTPInFlight.WithLabelValues(method, path).Dec()

		c.Next()

		code := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())
		metrics.HTTPRequests.WithLabelValues(method, path, code).Inc()
	}
}

// ClientIDMiddleware gives every browser a stable anonymous id in the pg_client cookie.
func ClientIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(ClientIDCookie)
		id, parseErr := uuid.Parse(raw)
		if err != nil || parseErr != nil {
			id = uuid.New()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientIDCookie, id.String(), clientCookieMaxAge, "/", "", false, true)
		}
		c.Set(GinContextKeyClientID, id)
		c.Next()
	}
}

func GetClientIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeyClientID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid session id", err))
		return uuid.Nil, false
	}
	return id, true
}

package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ginLoggerKey = "logger"
	// ginRequestIDKey is where the request id middleware stores the id.
	ginRequestIDKey = "request_id"
)

// levelForStatus logs server errors at error, client errors at warn and
// everything else at info.
func levelForStatus(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// GinMiddleware logs each request once it completes. Handlers reach the
// request logger through GetGinLogger or FromContext on the request context.
func GinMiddleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		ctx, reqLog := WithRequestID(c.Request.Context(), base, c.GetString(ginRequestIDKey))
		reqLog = reqLog.With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Request = c.Request.WithContext(WithContext(ctx, reqLog))
		c.Set(ginLoggerKey, reqLog)

		c.Next()

		status := c.Writer.Status()
		ce := reqLog.Check(levelForStatus(status), "HTTP Request")
		if ce == nil {
			return
		}
		fields := make([]zap.Field, 0, 6)
		fields = append(fields,
			zap.Int("status", status),
			zap.Duration("latency", time.Since(began)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		)
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		if errs := c.Errors.Errors(); len(errs) > 0 {
			fields = append(fields, zap.Strings("errors", errs))
		}
		ce.Write(fields...)
	}
}

// Recovery turns panics into 500 responses and logs them with a stack
func Recovery(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			base.Error("Panic recovered",
				zap.String("request_id", c.GetString(ginRequestIDKey)),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Any("error", rec),
				zap.Stack("stacktrace"),
			)
			c.AbortWithStatus(http.StatusInternalServerError)
		}()
		c.Next()
	}
}

// GetGinLogger returns the request-scoped logger, or a no-op logger
func GetGinLogger(c *gin.Context) *zap.Logger {
	v, _ := c.Get(ginLoggerKey)
	if l, ok := v.(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

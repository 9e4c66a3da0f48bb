package router

import (
	"context"

	charmlog "github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"campusai/internal/db"
	"campusai/internal/logger"
)

// ScopedConnection acquires a dedicated database connection for each request
// and releases it once the handler chain returns, whatever the outcome.
func ScopedConnection(gdb *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			return db.Scope(req.Context(), gdb, func(ctx context.Context) error {
				c.SetRequest(req.WithContext(ctx))
				return next(c)
			})
		}
	}
}

// RequestLogger logs one line per request and puts a request-scoped logger
// into the request context.
func RequestLogger(log *charmlog.Logger) echo.MiddlewareFunc {
	logRequest := middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				log.Error("request", append(fields, "err", v.Error)...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withLogger := func(c echo.Context) error {
			reqID := c.Response().Header().Get(echo.HeaderXRequestID)
			req := c.Request()
			c.SetRequest(req.WithContext(logger.ContextWithLogger(req.Context(), log.With("request_id", reqID))))
			return next(c)
		}
		return logRequest(withLogger)
	}
}

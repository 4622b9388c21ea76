package middleware

import (
	"strconv"
	"time"

	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/anonto42/nano-tube/backend/pkg/metrics"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// RequestContext puts a logger tagged with the request id into the request context.
// It must run after the RequestID middleware.
func RequestContext(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			entry := log.WithField("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			c.SetRequest(req.WithContext(logger.Into(req.Context(), entry)))
			return next(c)
		}
	}
}

// RequestLogger writes one logrus line per request
func RequestLogger() echo.MiddlewareFunc {
	return eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			entry := logger.From(c.Request().Context()).WithFields(logrus.Fields{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency.String(),
				"remote_ip": v.RemoteIP,
			})
			switch {
			case v.Status >= 500:
				entry.WithError(v.Error).Error("request failed")
			case v.Error != nil:
				entry.WithError(v.Error).Warn("request rejected")
			default:
				entry.Info("request")
			}
			return nil
		},
	})
}

// Metrics records request latency by route template
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil && !c.Response().Committed {
				c.Error(err)
			}

			metrics.RequestDuration.
				WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(c.Response().Status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

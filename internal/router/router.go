package router

import (
	"time"

	"github.com/anonto42/nano-tube/backend/internal/handlers"
	"github.com/anonto42/nano-tube/backend/internal/middleware"
	"github.com/anonto42/nano-tube/backend/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log *logrus.Logger, timeout time.Duration) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestID())
	e.Use(middleware.RequestContext(log))
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger())
	if timeout > 0 {
		e.Use(eMiddleware.ContextTimeout(timeout))
	}
	log.Debug("global middleware configured")
}

// SetupRoutes wires every handler under /api/v1. auth guards the routes that need an actor.
func SetupRoutes(e *echo.Echo, svc *services.Services, auth echo.MiddlewareFunc, uploads *handlers.Uploads) {
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = handlers.ErrorHandler

	api := e.Group("/api/v1")
	api.GET("/healthcheck", handlers.HealthCheck)

	handlers.NewVideoHandler(svc.Videos, uploads).RegisterVideoRoutes(api, auth)
	handlers.NewCommentHandler(svc.Comments).RegisterCommentRoutes(api, auth)
	handlers.NewTweetHandler(svc.Tweets).RegisterTweetRoutes(api, auth)
	handlers.NewLikeHandler(svc.Likes).RegisterLikeRoutes(api, auth)
	handlers.NewSubscriptionHandler(svc.Subscriptions).RegisterSubscriptionRoutes(api, auth)
	handlers.NewPlaylistHandler(svc.Playlists).RegisterPlaylistRoutes(api, auth)
	handlers.NewDashboardHandler(svc.Dashboard).RegisterDashboardRoutes(api, auth)
}

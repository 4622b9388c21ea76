package handlers

import (
	"net/http"

	"github.com/anonto42/nano-tube/backend/internal/middleware"
	"github.com/anonto42/nano-tube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the authenticated channel's numbers and uploads
type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) RegisterDashboardRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/dashboard/stats", h.GetChannelStats, auth)
	g.GET("/dashboard/videos", h.GetChannelVideos, auth)
}

func (h *DashboardHandler) GetChannelStats(c echo.Context) error {
	stats, err := h.dashboard.GetChannelStats(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats, "Channel stats fetched successfully")
}

func (h *DashboardHandler) GetChannelVideos(c echo.Context) error {
	videos, err := h.dashboard.GetChannelVideos(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, videos, "Channel videos fetched successfully")
}

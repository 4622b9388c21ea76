package handlers

import (
	"net/http"

	"github.com/anonto42/nano-tube/backend/internal/middleware"
	"github.com/anonto42/nano-tube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SubscriptionHandler handles subscribe/unsubscribe HTTP requests
type SubscriptionHandler struct {
	subscriptions *services.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptions *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// RegisterSubscriptionRoutes registers subscription routes
func (h *SubscriptionHandler) RegisterSubscriptionRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/subscriptions/c/:channelId", h.ToggleSubscription, auth)
	g.GET("/subscriptions/c/:channelId", h.GetChannelSubscribers)
	g.GET("/subscriptions/u/:subscriberId", h.GetSubscribedChannels)
}

func (h *SubscriptionHandler) ToggleSubscription(c echo.Context) error {
	result, err := h.subscriptions.ToggleSubscription(c.Request().Context(), middleware.ActorID(c), c.Param("channelId"))
	if err != nil {
		return err
	}
	message := "Unsubscribed successfully"
	if result.IsSubscribed {
		message = "Subscribed successfully"
	}
	return respond(c, http.StatusOK, result, message)
}

func (h *SubscriptionHandler) GetChannelSubscribers(c echo.Context) error {
	subscribers, err := h.subscriptions.GetChannelSubscribers(c.Request().Context(), c.Param("channelId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

func (h *SubscriptionHandler) GetSubscribedChannels(c echo.Context) error {
	channels, err := h.subscriptions.GetSubscribedChannels(c.Request().Context(), c.Param("subscriberId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, channels, "Subscribed channels fetched successfully")
}

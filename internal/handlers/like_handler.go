package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/nano-tube/backend/internal/middleware"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like toggles on videos, comments and tweets
type LikeHandler struct {
	likes *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes *services.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// RegisterLikeRoutes registers like routes. All of them need an actor.
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/likes/toggle/v/:videoId", h.toggle("videoId", h.likes.ToggleVideoLike), auth)
	g.POST("/likes/toggle/c/:commentId", h.toggle("commentId", h.likes.ToggleCommentLike), auth)
	g.POST("/likes/toggle/t/:tweetId", h.toggle("tweetId", h.likes.ToggleTweetLike), auth)
	g.GET("/likes/videos", h.GetLikedVideos, auth)
}

type toggleFunc func(ctx context.Context, actorID, targetID string) (*models.ToggleLikeResult, error)

func (h *LikeHandler) toggle(param string, fn toggleFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		result, err := fn(c.Request().Context(), middleware.ActorID(c), c.Param(param))
		if err != nil {
			return err
		}
		message := "Like removed successfully"
		if result.IsLiked {
			message = "Like added successfully"
		}
		return respond(c, http.StatusOK, result, message)
	}
}

func (h *LikeHandler) GetLikedVideos(c echo.Context) error {
	videos, err := h.likes.GetLikedVideos(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, videos, "Liked videos fetched successfully")
}

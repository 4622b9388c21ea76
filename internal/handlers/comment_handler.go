package handlers

import (
	"net/http"

	"github.com/anonto42/nano-tube/backend/internal/middleware"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to video comments
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/comments/:videoId", h.GetVideoComments)
	g.POST("/comments/:videoId", h.AddComment, auth)
	g.PATCH("/comments/c/:commentId", h.UpdateComment, auth)
	g.DELETE("/comments/c/:commentId", h.DeleteComment, auth)
}

func (h *CommentHandler) GetVideoComments(c echo.Context) error {
	page, err := h.comments.ListVideoComments(c.Request().Context(), c.Param("videoId"), c.QueryParam("page"), c.QueryParam("limit"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, page, "Comments fetched successfully")
}

func (h *CommentHandler) AddComment(c echo.Context) error {
	var req models.CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.AddComment(c.Request().Context(), middleware.ActorID(c), c.Param("videoId"), req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, comment, "Comment added successfully")
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	var req models.CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.UpdateComment(c.Request().Context(), middleware.ActorID(c), c.Param("commentId"), req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, comment, "Comment updated successfully")
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	comment, err := h.comments.DeleteComment(c.Request().Context(), middleware.ActorID(c), c.Param("commentId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, comment, "Comment deleted successfully")
}

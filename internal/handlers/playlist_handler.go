package handlers

import (
	"net/http"

	"github.com/anonto42/nano-tube/backend/internal/middleware"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PlaylistHandler handles HTTP requests related to playlists
type PlaylistHandler struct {
	playlists *services.PlaylistService
}

// NewPlaylistHandler creates a new PlaylistHandler
func NewPlaylistHandler(playlists *services.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

// RegisterPlaylistRoutes registers playlist routes
func (h *PlaylistHandler) RegisterPlaylistRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/playlist", h.CreatePlaylist, auth)
	g.GET("/playlist/:playlistId", h.GetPlaylist)
	g.PATCH("/playlist/:playlistId", h.UpdatePlaylist, auth)
	g.DELETE("/playlist/:playlistId", h.DeletePlaylist, auth)
	g.PATCH("/playlist/add/:videoId/:playlistId", h.AddVideo, auth)
	g.PATCH("/playlist/remove/:videoId/:playlistId", h.RemoveVideo, auth)
	g.GET("/playlist/user/:userId", h.GetUserPlaylists)
}

func (h *PlaylistHandler) CreatePlaylist(c echo.Context) error {
	var req models.CreatePlaylistRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	playlist, err := h.playlists.CreatePlaylist(c.Request().Context(), middleware.ActorID(c), req.Name, req.Description)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, playlist, "Playlist created successfully")
}

func (h *PlaylistHandler) GetPlaylist(c echo.Context) error {
	playlist, err := h.playlists.GetPlaylistByID(c.Request().Context(), c.Param("playlistId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, playlist, "Playlist fetched successfully")
}

func (h *PlaylistHandler) GetUserPlaylists(c echo.Context) error {
	playlists, err := h.playlists.GetUserPlaylists(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, playlists, "Playlists fetched successfully")
}

func (h *PlaylistHandler) UpdatePlaylist(c echo.Context) error {
	var req models.UpdatePlaylistRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	playlist, err := h.playlists.UpdatePlaylist(c.Request().Context(), middleware.ActorID(c), c.Param("playlistId"), req.Name, req.Description)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, playlist, "Playlist updated successfully")
}

func (h *PlaylistHandler) DeletePlaylist(c echo.Context) error {
	playlist, err := h.playlists.DeletePlaylist(c.Request().Context(), middleware.ActorID(c), c.Param("playlistId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, playlist, "Playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideo(c echo.Context) error {
	playlist, err := h.playlists.AddVideo(c.Request().Context(), middleware.ActorID(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, playlist, "Video added to playlist successfully")
}

func (h *PlaylistHandler) RemoveVideo(c echo.Context) error {
	playlist, err := h.playlists.RemoveVideo(c.Request().Context(), middleware.ActorID(c), c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, playlist, "Video removed from playlist successfully")
}

package handlers

import (
	"net/http"

	"github.com/anonto42/nano-tube/backend/internal/middleware"
	"github.com/anonto42/nano-tube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// VideoHandler handles HTTP requests related to videos
type VideoHandler struct {
	videos  *services.VideoService
	uploads *Uploads
}

// NewVideoHandler creates a new VideoHandler
func NewVideoHandler(videos *services.VideoService, uploads *Uploads) *VideoHandler {
	return &VideoHandler{videos: videos, uploads: uploads}
}

// RegisterVideoRoutes registers video routes; auth guards the mutating ones
func (h *VideoHandler) RegisterVideoRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/videos", h.ListVideos)
	g.POST("/videos", h.PublishVideo, auth)
	g.GET("/videos/:videoId", h.GetVideo)
	g.PATCH("/videos/:videoId", h.UpdateVideo, auth)
	g.DELETE("/videos/:videoId", h.DeleteVideo, auth)
	g.PATCH("/videos/toggle/publish/:videoId", h.TogglePublishStatus, auth)
}

// ListVideos searches, sorts and pages videos
func (h *VideoHandler) ListVideos(c echo.Context) error {
	page, err := h.videos.ListVideos(c.Request().Context(), services.ListVideosQuery{
		Query:    c.QueryParam("query"),
		UserID:   c.QueryParam("userId"),
		SortBy:   c.QueryParam("sortBy"),
		SortType: c.QueryParam("sortType"),
		Page:     c.QueryParam("page"),
		Limit:    c.QueryParam("limit"),
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, page, "Videos fetched successfully")
}

func (h *VideoHandler) GetVideo(c echo.Context) error {
	video, err := h.videos.GetVideoByID(c.Request().Context(), c.Param("videoId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, video, "Video fetched successfully")
}

// PublishVideo takes a multipart form with videoFile and thumbnail files
func (h *VideoHandler) PublishVideo(c echo.Context) error {
	videoPath, err := h.uploads.save(c, "videoFile")
	if err != nil {
		return err
	}
	defer h.uploads.cleanup(c, videoPath)

	thumbPath, err := h.uploads.save(c, "thumbnail")
	if err != nil {
		return err
	}
	defer h.uploads.cleanup(c, thumbPath)

	video, err := h.videos.PublishVideo(c.Request().Context(), middleware.ActorID(c), services.PublishVideoInput{
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, video, "Video published successfully")
}

// UpdateVideo changes title and description; a thumbnail file replaces the current one
func (h *VideoHandler) UpdateVideo(c echo.Context) error {
	thumbPath, err := h.uploads.save(c, "thumbnail")
	if err != nil {
		return err
	}
	defer h.uploads.cleanup(c, thumbPath)

	video, err := h.videos.UpdateVideo(c.Request().Context(), middleware.ActorID(c), c.Param("videoId"), services.UpdateVideoInput{
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, video, "Video updated successfully")
}

func (h *VideoHandler) DeleteVideo(c echo.Context) error {
	video, err := h.videos.DeleteVideo(c.Request().Context(), middleware.ActorID(c), c.Param("videoId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, video, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublishStatus(c echo.Context) error {
	video, err := h.videos.TogglePublishStatus(c.Request().Context(), middleware.ActorID(c), c.Param("videoId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, video, "Publish status toggled successfully")
}

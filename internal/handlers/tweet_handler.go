package handlers

import (
	"net/http"

	"github.com/anonto42/nano-tube/backend/internal/middleware"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// TweetHandler handles HTTP requests related to tweets
type TweetHandler struct {
	tweets *services.TweetService
}

func NewTweetHandler(tweets *services.TweetService) *TweetHandler {
	return &TweetHandler{tweets: tweets}
}

func (h *TweetHandler) RegisterTweetRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/tweets", h.CreateTweet, auth)
	g.GET("/tweets/user/:userId", h.GetUserTweets)
	g.PATCH("/tweets/:tweetId", h.UpdateTweet, auth)
	g.DELETE("/tweets/:tweetId", h.DeleteTweet, auth)
}

func (h *TweetHandler) CreateTweet(c echo.Context) error {
	var req models.TweetRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	tweet, err := h.tweets.CreateTweet(c.Request().Context(), middleware.ActorID(c), req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, tweet, "Tweet created successfully")
}

func (h *TweetHandler) GetUserTweets(c echo.Context) error {
	tweets, err := h.tweets.GetUserTweets(c.Request().Context(), c.Param("userId"), c.QueryParam("sortBy"), c.QueryParam("sortType"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tweets, "Tweets fetched successfully")
}

func (h *TweetHandler) UpdateTweet(c echo.Context) error {
	var req models.TweetRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	tweet, err := h.tweets.UpdateTweet(c.Request().Context(), middleware.ActorID(c), c.Param("tweetId"), req.Content)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tweet, "Tweet updated successfully")
}

func (h *TweetHandler) DeleteTweet(c echo.Context) error {
	tweet, err := h.tweets.DeleteTweet(c.Request().Context(), middleware.ActorID(c), c.Param("tweetId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tweet, "Tweet deleted successfully")
}

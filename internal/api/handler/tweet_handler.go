package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/catconnect/cat-listing-api/internal/api/metrics"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

type TweetHandler struct {
	tweets ports.TweetService
	log    zerolog.Logger
}

func NewTweetHandler(tweets ports.TweetService, log zerolog.Logger) *TweetHandler {
	return &TweetHandler{tweets: tweets, log: log}
}

// Post relays text to the social feed. Any upstream failure is reported
// as a generic posting error.
//
// @Summary      Post a tweet
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      tweetRequest  true  "Tweet text in text or tweet"
// @Success      201   {object}  tweetResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /post-tweet [post]
func (h *TweetHandler) Post(c echo.Context, id Identity) error {
	var req tweetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error posting tweet"})
	}
	text := req.Text
	if text == "" {
		text = req.Tweet
	}

	tweetID, err := h.tweets.Post(c.Request().Context(), text)
	if err != nil {
		metrics.TweetsTotal.WithLabelValues("error").Inc()
		h.log.Error().Err(err).Str("uid", id.UID).Msg("post tweet failed")
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error posting tweet"})
	}

	metrics.TweetsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, tweetResponse{Message: "Tweet posted successfully", TweetID: tweetID})
}

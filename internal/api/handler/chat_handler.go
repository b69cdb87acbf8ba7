package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/catconnect/cat-listing-api/internal/api/metrics"
	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

// ChatFeed streams new messages of a listing to a websocket client until it
// disconnects.
type ChatFeed interface {
	Serve(catID string, conn *websocket.Conn)
}

// ChatHandler serves listing chat.
type ChatHandler struct {
	chat     ports.ChatService
	feed     ChatFeed
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewChatHandler builds the handler. feed may be nil, which disables the
// live endpoint.
func NewChatHandler(chat ports.ChatService, feed ChatFeed, allowedOrigins []string, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		chat: chat,
		feed: feed,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
		log: log,
	}
}

// Post appends a message to a listing's chat.
//
// @Summary      Post a chat message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body      postMessageRequest  true  "Message"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  errorResponse
// @Router       /chat [post]
func (h *ChatHandler) Post(c echo.Context) error {
	var req postMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error posting message: invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error posting message: " + err.Error()})
	}

	msg, err := h.chat.Post(c.Request().Context(), ports.PostMessageInput{
		CatID:     req.CatID,
		UserID:    req.Message.UserID,
		Text:      req.Message.Text,
		Timestamp: req.Message.Timestamp,
	})
	if err != nil {
		h.log.Error().Err(err).Str("cat_id", req.CatID).Msg("post message failed")
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error posting message: " + err.Error()})
	}

	metrics.MessagesPostedTotal.Inc()
	return c.JSON(http.StatusCreated, msg)
}

// List returns a listing's messages, oldest first.
//
// @Summary      List chat messages
// @Tags         chat
// @Produce      json
// @Param        catId  path      string  true  "Cat id"
// @Success      200    {array}   domain.Message
// @Failure      400    {object}  errorResponse
// @Router       /chat/{catId} [get]
func (h *ChatHandler) List(c echo.Context) error {
	msgs, err := h.chat.List(c.Request().Context(), c.Param("catId"))
	if err != nil {
		h.log.Error().Err(err).Str("cat_id", c.Param("catId")).Msg("list messages failed")
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "Error fetching messages: " + err.Error()})
	}
	if msgs == nil {
		msgs = []*domain.Message{}
	}
	return c.JSON(http.StatusOK, msgs)
}

// Delete removes a message if it belongs to the listing in the path.
//
// @Summary      Delete a chat message
// @Tags         chat
// @Produce      json
// @Param        catId      path      string  true  "Cat id"
// @Param        messageId  path      string  true  "Message id"
// @Success      200        {object}  messageResponse
// @Failure      404        {object}  errorResponse
// @Failure      500        {object}  errorResponse
// @Router       /chat/{catId}/{messageId} [delete]
func (h *ChatHandler) Delete(c echo.Context) error {
	catID, messageID := c.Param("catId"), c.Param("messageId")
	if err := h.chat.Delete(c.Request().Context(), catID, messageID); err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "Message not found"})
		}
		h.log.Error().Err(err).Str("cat_id", catID).Str("message_id", messageID).Msg("delete message failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error deleting message: " + err.Error()})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Message deleted successfully"})
}

// Stream upgrades to a websocket that receives every message posted to the
// listing from now on.
//
// @Summary      Live chat feed
// @Tags         chat
// @Param        catId  path  string  true  "Cat id"
// @Success      101    {string}  string  "Switching Protocols"
// @Failure      503    {object}  errorResponse
// @Router       /chat/{catId}/ws [get]
func (h *ChatHandler) Stream(c echo.Context) error {
	if h.feed == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "live chat is disabled"})
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the handshake error.
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	metrics.ChatSubscribers.Inc()
	defer metrics.ChatSubscribers.Dec()
	h.feed.Serve(c.Param("catId"), conn)
	return nil
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

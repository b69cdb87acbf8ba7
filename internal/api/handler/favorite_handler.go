package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/catconnect/cat-listing-api/internal/core/domain"
	"github.com/catconnect/cat-listing-api/internal/core/ports"
)

type FavoriteHandler struct {
	favorites ports.FavoriteService
	log       zerolog.Logger
}

func NewFavoriteHandler(favorites ports.FavoriteService, log zerolog.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, log: log}
}

// Add stores a listing payload as a favorite under the listing's id. The
// owner is taken from favouriteUid in the body, falling back to the caller.
//
// @Summary      Add a favorite
// @Tags         favorites
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.Cat  true  "Listing payload with id"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /add-favorite [post]
func (h *FavoriteHandler) Add(c echo.Context, id Identity) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	fav := &domain.Favorite{
		ID:           stringField(body, "id"),
		FavouriteUID: stringField(body, domain.FavoriteOwnerField),
		Data:         body,
	}
	if fav.FavouriteUID == "" {
		fav.FavouriteUID = id.UID
	}

	if err := h.favorites.Add(c.Request().Context(), fav); err != nil {
		if errors.Is(err, domain.ErrMissingFavoriteID) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		h.log.Error().Err(err).Str("favorite_id", fav.ID).Msg("add favorite failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error adding favorite: " + err.Error()})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Cat added to favorites"})
}

// List returns the favorites of userUid, or of the caller when omitted.
// userUid is not checked against the caller.
//
// @Summary      List favorites
// @Tags         favorites
// @Produce      json
// @Security     BearerAuth
// @Param        userUid  query     string  false  "Owner of the favorites"
// @Success      200      {array}   object
// @Failure      401      {object}  errorResponse
// @Failure      500      {object}  errorResponse
// @Router       /FavouriteCats [get]
func (h *FavoriteHandler) List(c echo.Context, id Identity) error {
	owner := c.QueryParam("userUid")
	if owner == "" {
		owner = id.UID
	}

	favs, err := h.favorites.List(c.Request().Context(), owner)
	if err != nil {
		h.log.Error().Err(err).Str("user_uid", owner).Msg("list favorites failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error fetching favorites: " + err.Error()})
	}
	if favs == nil {
		favs = []map[string]any{}
	}
	return c.JSON(http.StatusOK, favs)
}

// stringField reads a string-ish value from a decoded JSON object.
func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

package domain

import "errors"

// FavoriteOwnerField is the document key holding the owning user's id.
const FavoriteOwnerField = "favouriteUid"

// Favorite is a bookmarked listing stored under the listing's own id. Data
// keeps whatever listing payload the client sent.
type Favorite struct {
	ID           string         `json:"id"`
	FavouriteUID string         `json:"favouriteUid"`
	Data         map[string]any `json:"-"`
}

// Document flattens the favorite into the shape persisted and returned to clients.
func (f Favorite) Document() map[string]any {
	doc := make(map[string]any, len(f.Data)+2)
	for k, v := range f.Data {
		doc[k] = v
	}
	doc["id"] = f.ID
	if f.FavouriteUID != "" {
		doc[FavoriteOwnerField] = f.FavouriteUID
	}
	return doc
}

var ErrMissingFavoriteID = errors.New("favorite id is required")

package domain

import "errors"

var ErrMessageNotFound = errors.New("message not found")

// Message is a chat line attached to a listing. Timestamp is supplied by the
// client and only used for ordering.
type Message struct {
	ID        string `json:"id" bson:"_id"`
	CatID     string `json:"catId" bson:"catId"`
	UserID    string `json:"userId" bson:"userId"`
	Text      string `json:"text" bson:"text"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"`
}

var ErrEmptyMessage = errors.New("message text is required")

package domain

import (
	"errors"
	"time"
)

var (
	ErrCatNotFound   = errors.New("cat not found")
	ErrUploadFailed  = errors.New("image upload failed")
	ErrMissingImage  = errors.New("no image file uploaded")
	ErrNothingToSave = errors.New("no fields to update")
)

// ImagePrefix is the object-storage folder holding listing images.
const ImagePrefix = "cat-images"

// Cat is a listing record. ImageURL stays nil until the upload completes.
type Cat struct {
	ID          string    `json:"id" bson:"_id"`
	Breed       string    `json:"breed" bson:"breed"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Location    string    `json:"location" bson:"location"`
	UserUID     string    `json:"userUid" bson:"userUid"`
	ImageURL    *string   `json:"imageUrl" bson:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// CatUpdate carries the mutable listing fields. Nil fields are left untouched.
type CatUpdate struct {
	Breed       *string
	Name        *string
	Description *string
	Location    *string
}

// Empty reports whether the update would change nothing.
func (u CatUpdate) Empty() bool {
	return u.Breed == nil && u.Name == nil && u.Description == nil && u.Location == nil
}

// ImageKey derives the storage path for a listing image.
func ImageKey(catID, fileName string) string {
	return ImagePrefix + "/" + catID + "/" + fileName
}

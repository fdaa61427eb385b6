package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Slide is a promotional banner shown on the storefront.
type Slide struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Image     string             `bson:"image" json:"image"`
	Title     string             `bson:"title,omitempty" json:"title,omitempty"`
	Subtitle  string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateSlideRequest requires the banner image; text fields are optional.
type CreateSlideRequest struct {
	Image    string `json:"image" binding:"required"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// UpdateSlideRequest carries a partial field merge for an existing slide.
// Pointers distinguish an absent field from an explicit empty string, so
// title and subtitle can be cleared.
type UpdateSlideRequest struct {
	Image    *string `json:"image"`
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostCategory is the closed set of feed item kinds.
type PostCategory string

const (
	CategoryEvent          PostCategory = "event"
	CategoryContest        PostCategory = "contest"
	CategoryAchievement    PostCategory = "achievement"
	CategoryAnnouncement   PostCategory = "announcement"
	CategoryAlumniReferral PostCategory = "alumni_referral"
	CategoryProject        PostCategory = "project"
)

// PostCategories lists every accepted category in display order.
var PostCategories = []PostCategory{
	CategoryEvent,
	CategoryContest,
	CategoryAchievement,
	CategoryAnnouncement,
	CategoryAlumniReferral,
	CategoryProject,
}

// Valid reports whether c is one of PostCategories.
func (c PostCategory) Valid() bool {
	for _, known := range PostCategories {
		if c == known {
			return true
		}
	}
	return false
}

// MediaType describes the attached media, if any.
type MediaType string

const (
	MediaText  MediaType = "text"
	MediaPhoto MediaType = "photo"
	MediaVideo MediaType = "video"
)

// EventRequiredDetails must all be present in the details of an event post.
var EventRequiredDetails = []string{"event_name", "organized_by", "venue", "date", "time"}

// Post is a feed item in the content store. AuthorID is a weak reference into students.
type Post struct {
	ID            primitive.ObjectID     `json:"_id" bson:"_id,omitempty"`
	AuthorID      int64                  `json:"author_id" bson:"author_id"`
	Category      PostCategory           `json:"category" bson:"category"`
	Description   string                 `json:"description" bson:"description"`
	MediaType     MediaType              `json:"media_type" bson:"media_type"`
	MediaURL      *string                `json:"media_url,omitempty" bson:"media_url,omitempty"`
	MediaPublicID *string                `json:"media_public_id,omitempty" bson:"media_public_id,omitempty"`
	Details       map[string]interface{} `json:"details" bson:"details"`
	CreatedAt     time.Time              `json:"created_at" bson:"created_at"`
	UpdatedAt     *time.Time             `json:"updated_at,omitempty" bson:"updated_at,omitempty"`

	// Populated by the author join, never stored.
	Author *AuthorSummary `json:"author,omitempty" bson:"-"`
}

// HasMedia reports whether the post references an object in the object store.
func (p *Post) HasMedia() bool {
	return p.MediaURL != nil && *p.MediaURL != ""
}

package dto

import "github.com/yigit/collegesocial/internal/app/models"

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Category      models.PostCategory    `json:"category" binding:"required" example:"event"`
	MediaType     models.MediaType       `json:"media_type" example:"photo"`
	MediaURL      string                 `json:"media_url" example:"https://res.cloudinary.com/demo/image/upload/v1/posts/1/poster.png"`
	MediaPublicID string                 `json:"media_public_id" example:"posts/1/poster"`
	Description   string                 `json:"description" example:"Annual tech fest"`
	Details       map[string]interface{} `json:"details"`
}

// UpdatePostRequest is the body of PUT /api/posts/{id}.
type UpdatePostRequest CreatePostRequest

// CreatePostResponse is returned by POST /api/posts.
type CreatePostResponse struct {
	Success bool   `json:"success" example:"true"`
	PostID  string `json:"postId" example:"665f1c2e9b1d8a0012345678"`
}

// FeedResponse is returned by GET /api/posts.
type FeedResponse struct {
	Success bool          `json:"success" example:"true"`
	Posts   []models.Post `json:"posts"`
	HasMore bool          `json:"hasMore" example:"true"`
	Total   int64         `json:"total" example:"42"`
	Page    int           `json:"page" example:"1"`
	Limit   int           `json:"limit" example:"10"`
}

// PostsResponse is returned by the unpaginated post lists.
type PostsResponse struct {
	Success bool          `json:"success" example:"true"`
	Posts   []models.Post `json:"posts"`
}

// PostResponse wraps a single post.
type PostResponse struct {
	Success bool         `json:"success" example:"true"`
	Post    *models.Post `json:"post"`
}

// EventsResponse is returned by GET /api/events.
type EventsResponse struct {
	Success bool          `json:"success" example:"true"`
	Events  []models.Post `json:"events"`
}

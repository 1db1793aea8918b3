package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/app/services"
	"github.com/yigit/collegesocial/internal/middleware"
	"github.com/yigit/collegesocial/internal/pkg/helpers"
)

// PostService is what PostController needs from the post service.
type PostService interface {
	Feed(ctx context.Context, page helpers.Page) (*services.FeedPage, error)
	ByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
	Upcoming(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, rawID string) (*models.Post, error)
	Create(ctx context.Context, authorID int64, req dto.CreatePostRequest) (string, error)
	Update(ctx context.Context, authorID int64, rawID string, req dto.UpdatePostRequest) error
	Delete(ctx context.Context, authorID int64, rawID string) error
}

// PostController serves the feed, posts and the events board.
type PostController struct {
	posts    PostService
	pageSize int
	logger   zerolog.Logger
}

// NewPostController creates a new PostController. pageSize is the default feed limit.
func NewPostController(posts PostService, pageSize int, logger zerolog.Logger) *PostController {
	return &PostController{posts: posts, pageSize: pageSize, logger: logger}
}

// CreatePost handles post creation
// @Summary Create a post
// @Description Creates a feed post. Event posts require event_name, organized_by, venue, date and time in details.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Post"
// @Success 201 {object} dto.CreatePostResponse "Post created"
// @Failure 400 {object} dto.ErrorResponse "Missing description or event details"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts [post]
// @Security BearerAuth
func (c *PostController) CreatePost(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	id, err := c.posts.Create(ctx.Request.Context(), studentID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.CreatePostResponse{Success: true, PostID: id})
}

// GetFeed handles the paginated feed
// @Summary Get feed
// @Description Lists posts newest first with their author summary.
// @Tags posts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.FeedResponse "Feed page"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts [get]
// @Security BearerAuth
func (c *PostController) GetFeed(ctx *gin.Context) {
	page := helpers.ParsePageParams(ctx, c.pageSize)

	feed, err := c.posts.Feed(ctx.Request.Context(), page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.FeedResponse{
		Success: true,
		Posts:   feed.Posts,
		HasMore: feed.HasMore,
		Total:   feed.Total,
		Page:    feed.Page,
		Limit:   feed.Limit,
	})
}

// GetMyPosts handles the caller's own posts
// @Summary Get my posts
// @Tags posts
// @Produce json
// @Success 200 {object} dto.PostsResponse "Posts of the caller"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/user [get]
// @Security BearerAuth
func (c *PostController) GetMyPosts(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	posts, err := c.posts.ByAuthor(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.PostsResponse{Success: true, Posts: posts})
}

// GetPost handles single post retrieval
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.PostResponse "Post"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [get]
// @Security BearerAuth
func (c *PostController) GetPost(ctx *gin.Context) {
	post, err := c.posts.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.PostResponse{Success: true, Post: post})
}

// UpdatePost handles post updates
// @Summary Update a post
// @Description Only the author may update; anything else is reported as not found.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body dto.UpdatePostRequest true "Post"
// @Success 200 {object} dto.SuccessResponse "Post updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found or unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [put]
// @Security BearerAuth
func (c *PostController) UpdatePost(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.posts.Update(ctx.Request.Context(), studentID, ctx.Param("id"), req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Post updated successfully"))
}

// DeletePost handles post deletion
// @Summary Delete a post
// @Description Removes the post and its media. Only the author may delete.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} dto.SuccessResponse "Post deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Post not found or unauthorized"
// @Failure 502 {object} dto.ErrorResponse "Media could not be removed"
// @Router /posts/{id} [delete]
// @Security BearerAuth
func (c *PostController) DeletePost(ctx *gin.Context) {
	studentID, ok := middleware.RequireStudent(ctx)
	if !ok {
		return
	}

	if err := c.posts.Delete(ctx.Request.Context(), studentID, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Post deleted successfully"))
}

// GetEvents handles the events board
// @Summary Upcoming events
// @Description Event and contest posts dated today or later, soonest first.
// @Tags posts
// @Produce json
// @Success 200 {object} dto.EventsResponse "Upcoming events"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
// @Security BearerAuth
func (c *PostController) GetEvents(ctx *gin.Context) {
	events, err := c.posts.Upcoming(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.EventsResponse{Success: true, Events: events})
}

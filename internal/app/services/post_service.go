package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/app/models/dto"
	"github.com/yigit/collegesocial/internal/app/repositories"
	"github.com/yigit/collegesocial/internal/pkg/apperrors"
	"github.com/yigit/collegesocial/internal/pkg/filestorage"
	"github.com/yigit/collegesocial/internal/pkg/helpers"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedPage is one page of the global feed.
type FeedPage struct {
	Posts   []models.Post
	HasMore bool
	Total   int64
	Page    int
	Limit   int
}

// PostService implements the feed read paths and the author-guarded write paths.
type PostService struct {
	posts   repositories.PostStore
	authors *AuthorJoinService
	storage filestorage.ObjectStore
	now     func() time.Time
	logger  zerolog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	posts repositories.PostStore,
	authors *AuthorJoinService,
	storage filestorage.ObjectStore,
	logger zerolog.Logger,
) *PostService {
	return &PostService{
		posts:   posts,
		authors: authors,
		storage: storage,
		now:     time.Now,
		logger:  logger,
	}
}

// Feed returns one page of posts, newest first, with their authors.
func (s *PostService) Feed(ctx context.Context, page helpers.Page) (*FeedPage, error) {
	posts, total, err := s.posts.Feed(ctx, page.Skip, int64(page.Limit))
	if err != nil {
		s.logger.Error().Err(err).Int("page", page.Page).Msg("Failed to fetch feed")
		return nil, apperrors.StoreError("failed to retrieve feed", err)
	}

	posts, err = s.authors.Attach(ctx, posts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to join feed authors")
		return nil, apperrors.StoreError("failed to retrieve feed", err)
	}

	return &FeedPage{
		Posts:   posts,
		HasMore: helpers.HasMore(page.Skip, len(posts), total),
		Total:   total,
		Page:    page.Page,
		Limit:   page.Limit,
	}, nil
}

// ByAuthor returns every post of authorID with the author attached.
func (s *PostService) ByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	posts, err := s.posts.ByAuthor(ctx, authorID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", authorID).Msg("Failed to fetch author posts")
		return nil, apperrors.StoreError("failed to retrieve posts", err)
	}
	return s.attach(ctx, posts, "failed to retrieve posts")
}

// Upcoming returns events and contests dated today (UTC) or later.
func (s *PostService) Upcoming(ctx context.Context) ([]models.Post, error) {
	posts, err := s.posts.Upcoming(ctx, helpers.Today(s.now()))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to fetch upcoming events")
		return nil, apperrors.StoreError("failed to retrieve events", err)
	}
	return s.attach(ctx, posts, "failed to retrieve events")
}

// Get returns one post with its author.
func (s *PostService) Get(ctx context.Context, rawID string) (*models.Post, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, apperrors.NewNotFoundOrUnauthorizedError("Post not found")
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return nil, apperrors.NewNotFoundOrUnauthorizedError("Post not found")
		}
		s.logger.Error().Err(err).Str("postID", rawID).Msg("Failed to fetch post")
		return nil, apperrors.StoreError("failed to retrieve post", err)
	}

	joined, err := s.attach(ctx, []models.Post{*post}, "failed to retrieve post")
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

// Create validates and stores a new post and returns its id.
func (s *PostService) Create(ctx context.Context, authorID int64, req dto.CreatePostRequest) (string, error) {
	if err := validatePost(req.Category, req.Description, req.Details); err != nil {
		return "", err
	}

	mediaType, err := resolveMediaType(req.MediaType, req.MediaURL)
	if err != nil {
		return "", err
	}

	post := &models.Post{
		AuthorID:    authorID,
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		MediaType:   mediaType,
		Details:     req.Details,
		CreatedAt:   s.now().UTC(),
	}
	if post.Details == nil {
		post.Details = map[string]interface{}{}
	}
	if req.MediaURL != "" {
		url := req.MediaURL
		post.MediaURL = &url
		if req.MediaPublicID != "" {
			publicID := req.MediaPublicID
			post.MediaPublicID = &publicID
		}
	}

	if err := s.posts.Insert(ctx, post); err != nil {
		s.logger.Error().Err(err).Int64("studentID", authorID).Msg("Failed to create post")
		return "", apperrors.StoreError("failed to create post", err)
	}

	s.logger.Info().Int64("studentID", authorID).Str("postID", post.ID.Hex()).Str("category", string(post.Category)).Msg("Post created")
	return post.ID.Hex(), nil
}

// Update changes category, description and details of a post owned by authorID.
func (s *PostService) Update(ctx context.Context, authorID int64, rawID string, req dto.UpdatePostRequest) error {
	if err := validatePost(req.Category, req.Description, req.Details); err != nil {
		return err
	}

	id, err := s.owned(ctx, authorID, rawID)
	if err != nil {
		return err
	}

	details := req.Details
	if details == nil {
		details = map[string]interface{}{}
	}
	err = s.posts.Update(ctx, id, authorID, repositories.PostUpdate{
		Category:    req.Category,
		Description: strings.TrimSpace(req.Description),
		Details:     details,
		UpdatedAt:   s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.NewNotFoundOrUnauthorizedError("Post not found or unauthorized")
		}
		s.logger.Error().Err(err).Str("postID", rawID).Msg("Failed to update post")
		return apperrors.StoreError("failed to update post", err)
	}

	s.logger.Info().Int64("studentID", authorID).Str("postID", rawID).Msg("Post updated")
	return nil
}

// Delete removes a post owned by authorID, releasing its media first. A media
// deletion failure aborts before the document is touched.
func (s *PostService) Delete(ctx context.Context, authorID int64, rawID string) error {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return apperrors.NewNotFoundOrUnauthorizedError("Post not found or unauthorized")
	}

	post, err := s.posts.FindByIDAndAuthor(ctx, id, authorID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.NewNotFoundOrUnauthorizedError("Post not found or unauthorized")
		}
		return apperrors.StoreError("failed to delete post", err)
	}

	if post.HasMedia() {
		publicID := mediaPublicID(s.storage, post)
		if publicID != "" {
			if err := s.storage.Delete(ctx, publicID); err != nil {
				s.logger.Error().Err(err).Str("postID", rawID).Str("publicID", publicID).Msg("Failed to delete post media")
				return apperrors.CollaboratorError("failed to delete post media", err)
			}
		} else {
			s.logger.Warn().Str("postID", rawID).Str("mediaURL", *post.MediaURL).Msg("Post media has no resolvable public id")
		}
	}

	if err := s.posts.Delete(ctx, id, authorID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return apperrors.NewNotFoundOrUnauthorizedError("Post not found or unauthorized")
		}
		s.logger.Error().Err(err).Str("postID", rawID).Msg("Failed to delete post after media removal")
		return apperrors.StoreError("failed to delete post", err)
	}

	s.logger.Info().Int64("studentID", authorID).Str("postID", rawID).Msg("Post deleted")
	return nil
}

func (s *PostService) owned(ctx context.Context, authorID int64, rawID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return id, apperrors.NewNotFoundOrUnauthorizedError("Post not found or unauthorized")
	}
	if _, err := s.posts.FindByIDAndAuthor(ctx, id, authorID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return id, apperrors.NewNotFoundOrUnauthorizedError("Post not found or unauthorized")
		}
		return id, apperrors.StoreError("failed to look up post", err)
	}
	return id, nil
}

func (s *PostService) attach(ctx context.Context, posts []models.Post, op string) ([]models.Post, error) {
	joined, err := s.authors.Attach(ctx, posts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to join post authors")
		return nil, apperrors.StoreError(op, err)
	}
	return joined, nil
}

func mediaPublicID(storage filestorage.ObjectStore, p *models.Post) string {
	if p.MediaPublicID != nil && *p.MediaPublicID != "" {
		return *p.MediaPublicID
	}
	return storage.PublicIDFromURL(*p.MediaURL)
}

func validatePost(category models.PostCategory, description string, details map[string]interface{}) error {
	if !category.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("Invalid category %q", category)).WithField("category")
	}
	if strings.TrimSpace(description) == "" {
		return apperrors.NewValidationError("Description is required").WithField("description")
	}
	if category == models.CategoryEvent {
		if missing := missingDetails(details, models.EventRequiredDetails); len(missing) > 0 {
			return apperrors.NewValidationError("Missing required fields: " + strings.Join(missing, ", ")).
				WithField("details").
				WithDetails(map[string]interface{}{"missing": missing})
		}
	}
	return nil
}

// missingDetails treats absent, null and blank string values as missing.
func missingDetails(details map[string]interface{}, required []string) []string {
	var missing []string
	for _, field := range required {
		v, ok := details[field]
		if !ok || v == nil {
			missing = append(missing, field)
			continue
		}
		if str, isStr := v.(string); isStr && strings.TrimSpace(str) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

func resolveMediaType(mediaType models.MediaType, mediaURL string) (models.MediaType, error) {
	if mediaURL == "" {
		return models.MediaText, nil
	}
	switch mediaType {
	case models.MediaPhoto, models.MediaVideo:
		return mediaType, nil
	case "", models.MediaText:
		return "", apperrors.NewValidationError("media_type must be photo or video when media_url is set").WithField("media_type")
	default:
		return "", apperrors.NewValidationError(fmt.Sprintf("Invalid media_type %q", mediaType)).WithField("media_type")
	}
}

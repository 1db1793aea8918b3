package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// PostUpdate carries the fields an author may change.
type PostUpdate struct {
	Category    models.PostCategory
	Description string
	Details     map[string]interface{}
	UpdatedAt   time.Time
}

// PostRepository handles post documents in the content store.
type PostRepository struct {
	coll *mongo.Collection
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(m *db.MongoDB) *PostRepository {
	return &PostRepository{coll: m.Collection(db.CollectionPosts)}
}

// Feed returns one page of the global feed, newest first, and the total post count.
func (r *PostRepository) Feed(ctx context.Context, skip, limit int64) ([]models.Post, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, fmt.Errorf("error counting posts: %w", err)
	}

	opts := options.Find().SetSort(newestFirst).SetSkip(skip).SetLimit(limit)
	posts, err := r.find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ByAuthor returns every post of one author, newest first.
func (r *PostRepository) ByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	return r.find(ctx, bson.D{{Key: "author_id", Value: authorID}}, options.Find().SetSort(newestFirst))
}

// Upcoming returns events and contests dated today or later, soonest first.
// today is a YYYY-MM-DD string, which orders the same as the stored dates.
func (r *PostRepository) Upcoming(ctx context.Context, today string) ([]models.Post, error) {
	filter := bson.D{
		{Key: "category", Value: bson.D{{Key: "$in", Value: bson.A{models.CategoryEvent, models.CategoryContest}}}},
		{Key: "details.date", Value: bson.D{{Key: "$gte", Value: today}}},
	}
	sort := bson.D{{Key: "details.date", Value: 1}, {Key: "details.time", Value: 1}}
	return r.find(ctx, filter, options.Find().SetSort(sort))
}

// FindByID returns ErrPostNotFound when no document has this id.
func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

// FindByIDAndAuthor matches on both id and author, so a foreign post is reported as absent.
func (r *PostRepository) FindByIDAndAuthor(ctx context.Context, id primitive.ObjectID, authorID int64) (*models.Post, error) {
	return r.findOne(ctx, ownedBy(id, authorID))
}

// Insert stores p and sets its id.
func (r *PostRepository) Insert(ctx context.Context, p *models.Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("error inserting post: %w", err)
	}
	return nil
}

// Update applies u to the post only when authorID owns it.
func (r *PostRepository) Update(ctx context.Context, id primitive.ObjectID, authorID int64, u PostUpdate) error {
	set := bson.D{
		{Key: "category", Value: u.Category},
		{Key: "description", Value: u.Description},
		{Key: "details", Value: u.Details},
		{Key: "updated_at", Value: u.UpdatedAt},
	}
	res, err := r.coll.UpdateOne(ctx, ownedBy(id, authorID), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Delete removes the post only when authorID owns it.
func (r *PostRepository) Delete(ctx context.Context, id primitive.ObjectID, authorID int64) error {
	res, err := r.coll.DeleteOne(ctx, ownedBy(id, authorID))
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) find(ctx context.Context, filter bson.D, opts *options.FindOptions) ([]models.Post, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("error decoding posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) findOne(ctx context.Context, filter bson.D) (*models.Post, error) {
	var p models.Post
	if err := r.coll.FindOne(ctx, filter).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}
	return &p, nil
}

func ownedBy(id primitive.ObjectID, authorID int64) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "author_id", Value: authorID}}
}

package repositories

import (
	"context"
	"fmt"

	"github.com/yigit/collegesocial/internal/app/models"
	"github.com/yigit/collegesocial/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InterestRepository reads the interest catalog.
type InterestRepository struct {
	coll *mongo.Collection
}

// NewInterestRepository creates a new InterestRepository
func NewInterestRepository(m *db.MongoDB) *InterestRepository {
	return &InterestRepository{coll: m.Collection(db.CollectionInterests)}
}

// List returns the catalog ordered by category.
func (r *InterestRepository) List(ctx context.Context) ([]models.InterestCategory, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "category", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error querying interests: %w", err)
	}
	defer cursor.Close(ctx)

	catalog := []models.InterestCategory{}
	if err := cursor.All(ctx, &catalog); err != nil {
		return nil, fmt.Errorf("error decoding interests: %w", err)
	}
	return catalog, nil
}

// SeedIfEmpty inserts catalog when the collection holds no document and returns the
// number of inserted categories.
func (r *InterestRepository) SeedIfEmpty(ctx context.Context, catalog []models.InterestCategory) (int, error) {
	count, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("error counting interests: %w", err)
	}
	if count > 0 || len(catalog) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(catalog))
	for i := range catalog {
		docs[i] = catalog[i]
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("error seeding interests: %w", err)
	}
	return len(res.InsertedIDs), nil
}

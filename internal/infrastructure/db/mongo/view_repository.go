package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/propfinder/marketplace-api/internal/core/domain"
	"github.com/propfinder/marketplace-api/internal/core/ports"
)

const collectionViews = "property_views"

// ViewRepository implements ports.ViewRepository using MongoDB. View counters
// live denormalised on the properties collection; the audit trail lives in
// property_views.
type ViewRepository struct {
	db *mongo.Database
}

func NewViewRepository(db *mongo.Database) *ViewRepository {
	return &ViewRepository{db: db}
}

// IncrementViews atomically bumps the property's view counter.
func (r *ViewRepository) IncrementViews(ctx context.Context, propertyID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(propertyID)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	res, err := r.db.Collection(collectionProperties).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"views": 1}},
	)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// InsertView persists a view to the property_views audit collection.
func (r *ViewRepository) InsertView(ctx context.Context, view *domain.PropertyView) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"property_id": view.PropertyID,
		"viewed_at":   view.ViewedAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if view.ViewerID != "" {
		doc["viewer_id"] = view.ViewerID
	}
	if view.IPAddress != "" {
		doc["ip_address"] = view.IPAddress
	}
	if view.UserAgent != "" {
		doc["user_agent"] = view.UserAgent
	}
	if view.Referrer != "" {
		doc["referrer"] = view.Referrer
	}

	_, err := r.db.Collection(collectionViews).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert view: %w", err)
	}
	return nil
}

// SummaryByOwner aggregates view stats over the owner's properties, ordered
// by views descending.
func (r *ViewRepository) SummaryByOwner(ctx context.Context, ownerID string) ([]ports.PropertyViewStats, error) {
	return r.aggregate(ctx, bson.M{"owner_id": ownerID}, 0)
}

// GlobalSummary aggregates view stats over all properties, ordered by views
// descending, limited to the top results.
func (r *ViewRepository) GlobalSummary(ctx context.Context, limit int) ([]ports.PropertyViewStats, error) {
	return r.aggregate(ctx, bson.M{}, limit)
}

func (r *ViewRepository) aggregate(ctx context.Context, match bson.M, limit int) ([]ports.PropertyViewStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "views", Value: -1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "views", Value: 1},
		}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}

	cur, err := r.db.Collection(collectionProperties).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate views: %w", err)
	}
	defer cur.Close(ctx)

	var out []ports.PropertyViewStats
	for cur.Next(ctx) {
		var row struct {
			ID    primitive.ObjectID `bson:"_id"`
			Title string             `bson:"title"`
			Views int64              `bson:"views"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode view stats: %w", err)
		}
		out = append(out, ports.PropertyViewStats{
			PropertyID: row.ID.Hex(),
			Title:      row.Title,
			Views:      row.Views,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate view stats: %w", err)
	}
	return out, nil
}

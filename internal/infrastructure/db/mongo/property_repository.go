package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/propfinder/marketplace-api/internal/core/domain"
	"github.com/propfinder/marketplace-api/internal/core/ports"
)

const collectionProperties = "properties"

// PropertyRepository implements ports.PropertyRepository using MongoDB.
type PropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{coll: db.Collection(collectionProperties)}
}

type mongoProperty struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Currency    string             `bson:"currency"`
	Location    string             `bson:"location"`
	District    string             `bson:"district"`
	Images      []string           `bson:"images"`
	Bedrooms    int                `bson:"bedrooms"`
	Bathrooms   int                `bson:"bathrooms"`
	AreaSqm     float64            `bson:"area_sqm"`
	Amenities   []string           `bson:"amenities"`
	ListingType string             `bson:"listing_type"`
	Status      string             `bson:"status"`
	IsVerified  bool               `bson:"is_verified"`
	Views       int64              `bson:"views"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// Create inserts a new property document and writes the generated id back.
func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	mp := toMongoProperty(p)
	res, err := r.coll.InsertOne(ctx, mp)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}

	var mp mongoProperty
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return mp.toDomain(), nil
}

// listQuery builds the Mongo filter for List. The search term is treated as a
// literal substring, so regex metacharacters in user input cannot break or
// shape the server-side pattern.
func listQuery(filter ports.ListPropertiesFilter) bson.M {
	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.District != "" {
		query["district"] = filter.District
	}
	if filter.ListingType != "" {
		query["listing_type"] = filter.ListingType
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"location": pattern},
		}
	}
	return query
}

// List returns a page of properties matching filter and the total count.
func (r *PropertyRepository) List(ctx context.Context, filter ports.ListPropertiesFilter) ([]*domain.Property, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := listQuery(filter)

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Property
	for cur.Next(ctx) {
		var mp mongoProperty
		if err := cur.Decode(&mp); err != nil {
			return nil, 0, fmt.Errorf("decode property: %w", err)
		}
		out = append(out, mp.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate properties: %w", err)
	}
	return out, total, nil
}

func (r *PropertyRepository) UpdateStatus(ctx context.Context, id string, status domain.PropertyStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update property status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the properties collection.
func (r *PropertyRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "district", Value: 1}, {Key: "listing_type", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func toMongoProperty(p *domain.Property) mongoProperty {
	return mongoProperty{
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Location:    p.Location,
		District:    p.District,
		Images:      p.Images,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		AreaSqm:     p.AreaSqm,
		Amenities:   p.Amenities,
		ListingType: string(p.ListingType),
		Status:      string(p.Status),
		IsVerified:  p.IsVerified,
		Views:       p.Views,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func (mp *mongoProperty) toDomain() *domain.Property {
	return &domain.Property{
		ID:          mp.ID.Hex(),
		OwnerID:     mp.OwnerID,
		Title:       mp.Title,
		Description: mp.Description,
		Price:       mp.Price,
		Currency:    mp.Currency,
		Location:    mp.Location,
		District:    mp.District,
		Images:      mp.Images,
		Bedrooms:    mp.Bedrooms,
		Bathrooms:   mp.Bathrooms,
		AreaSqm:     mp.AreaSqm,
		Amenities:   mp.Amenities,
		ListingType: domain.ListingType(mp.ListingType),
		Status:      domain.PropertyStatus(mp.Status),
		IsVerified:  mp.IsVerified,
		Views:       mp.Views,
		CreatedAt:   mp.CreatedAt.UTC(),
		UpdatedAt:   mp.UpdatedAt.UTC(),
	}
}

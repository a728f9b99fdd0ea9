package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/propfinder/marketplace-api/internal/core/domain"
	"github.com/propfinder/marketplace-api/internal/core/ports"
)

const collectionDocuments = "verification_documents"

// DocumentRepository implements ports.DocumentRepository using MongoDB.
type DocumentRepository struct {
	coll *mongo.Collection
}

func NewDocumentRepository(db *mongo.Database) *DocumentRepository {
	return &DocumentRepository{coll: db.Collection(collectionDocuments)}
}

type mongoDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	DocumentType string             `bson:"document_type"`
	DocumentURL  string             `bson:"document_url"`
	DocumentName string             `bson:"document_name"`
	Status       string             `bson:"status"`
	AdminNotes   string             `bson:"admin_notes,omitempty"`
	SubmittedAt  time.Time          `bson:"submitted_at"`
	ReviewedAt   *time.Time         `bson:"reviewed_at,omitempty"`
	ReviewedBy   string             `bson:"reviewed_by,omitempty"`
}

// ListByUser returns all verification documents for a user, any status,
// ordered by submission time ascending.
func (r *DocumentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.VerificationDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer cur.Close(ctx)

	return decodeDocuments(ctx, cur)
}

func (r *DocumentRepository) FindByID(ctx context.Context, id string) (*domain.VerificationDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDocumentNotFound
	}

	var md mongoDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return md.toDomain(), nil
}

func (r *DocumentRepository) Create(ctx context.Context, doc *domain.VerificationDocument) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	md := mongoDocument{
		UserID:       doc.UserID,
		DocumentType: string(doc.DocumentType),
		DocumentURL:  doc.DocumentURL,
		DocumentName: doc.DocumentName,
		Status:       string(doc.Status),
		SubmittedAt:  doc.SubmittedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, md)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid.Hex()
	}
	return nil
}

// UpdateReview atomically applies a review outcome. The filter matches only
// pending documents so a completed review is never overwritten; a non-pending
// match reports domain.ErrInvalidTransition.
func (r *DocumentRepository) UpdateReview(ctx context.Context, id string, status domain.DocumentStatus, adminNotes, reviewedBy string) (*domain.VerificationDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDocumentNotFound
	}

	now := time.Now().UTC()
	filter := bson.M{"_id": oid, "status": string(domain.DocumentPending)}
	update := bson.M{"$set": bson.M{
		"status":      string(status),
		"admin_notes": adminNotes,
		"reviewed_at": now,
		"reviewed_by": reviewedBy,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var md mongoDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the document does not exist or it was already reviewed.
			if _, findErr := r.FindByID(ctx, id); findErr != nil {
				return nil, findErr
			}
			return nil, domain.ErrInvalidTransition
		}
		return nil, fmt.Errorf("update review: %w", err)
	}
	return md.toDomain(), nil
}

// List returns a page of documents matching filter and the total count.
func (r *DocumentRepository) List(ctx context.Context, filter ports.ListDocumentsFilter) ([]*domain.VerificationDocument, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count documents: %w", err)
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "submitted_at", Value: 1}}).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}
	defer cur.Close(ctx)

	docs, err := decodeDocuments(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

// EnsureIndexes creates necessary indexes on the documents collection. The
// compound user_id+status index serves the gate's hot read path.
func (r *DocumentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "submitted_at", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeDocuments(ctx context.Context, cur *mongo.Cursor) ([]*domain.VerificationDocument, error) {
	var out []*domain.VerificationDocument
	for cur.Next(ctx) {
		var md mongoDocument
		if err := cur.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		out = append(out, md.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}

func (md *mongoDocument) toDomain() *domain.VerificationDocument {
	doc := &domain.VerificationDocument{
		ID:           md.ID.Hex(),
		UserID:       md.UserID,
		DocumentType: domain.DocumentType(md.DocumentType),
		DocumentURL:  md.DocumentURL,
		DocumentName: md.DocumentName,
		Status:       domain.DocumentStatus(md.Status),
		AdminNotes:   md.AdminNotes,
		SubmittedAt:  md.SubmittedAt.UTC(),
		ReviewedBy:   md.ReviewedBy,
	}
	if md.ReviewedAt != nil {
		t := md.ReviewedAt.UTC()
		doc.ReviewedAt = &t
	}
	return doc
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"streamvault/internal/core/domain"
	"streamvault/internal/core/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStreamRepository struct {
	collection *mongo.Collection
}

func NewMongoStreamRepository(db *mongo.Database) ports.StreamRepository {
	return &MongoStreamRepository{
		collection: db.Collection(streamsCollection),
	}
}

// streamDocument is the bson shape of a stream record. The domain type
// stays store-agnostic; conversion happens at this boundary.
type streamDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Thumbnail   string             `bson:"thumbnail"`
	StreamURL   string             `bson:"streamUrl"`
	IsLive      bool               `bson:"isLive"`
	Tags        []string           `bson:"tags"`
	Category    string             `bson:"category"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d *streamDocument) toDomain() *domain.Stream {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return &domain.Stream{
		ID:          domain.StreamID(d.ID.Hex()),
		Title:       d.Title,
		Description: d.Description,
		Thumbnail:   d.Thumbnail,
		StreamURL:   d.StreamURL,
		IsLive:      d.IsLive,
		Tags:        tags,
		Category:    d.Category,
		CreatedAt:   d.CreatedAt,
	}
}

// parseStreamID converts the opaque id into an ObjectID. A malformed id is
// a distinct error from not-found.
func parseStreamID(id domain.StreamID) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidStreamID
	}
	return oid, nil
}

func (r *MongoStreamRepository) Create(ctx context.Context, stream *domain.Stream) error {
	doc := streamDocument{
		Title:       stream.Title,
		Description: stream.Description,
		Thumbnail:   stream.Thumbnail,
		StreamURL:   stream.StreamURL,
		IsLive:      stream.IsLive,
		Tags:        stream.Tags,
		Category:    stream.Category,
		CreatedAt:   stream.CreatedAt,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert stream: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	stream.ID = domain.StreamID(oid.Hex())
	return nil
}

func (r *MongoStreamRepository) GetByID(ctx context.Context, id domain.StreamID) (*domain.Stream, error) {
	oid, err := parseStreamID(id)
	if err != nil {
		return nil, err
	}

	var doc streamDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrStreamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stream: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *MongoStreamRepository) UpdateByID(ctx context.Context, id domain.StreamID, update domain.StreamUpdate) (*domain.Stream, error) {
	oid, err := parseStreamID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Thumbnail != nil {
		set["thumbnail"] = *update.Thumbnail
	}
	if update.StreamURL != nil {
		set["streamUrl"] = *update.StreamURL
	}
	if update.IsLive != nil {
		set["isLive"] = *update.IsLive
	}
	if update.Tags != nil {
		set["tags"] = *update.Tags
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}

	// Single $set, no revision predicate: concurrent writers race and the
	// last write wins, matching the store's own arbitration.
	var doc streamDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrStreamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update stream: %w", err)
	}

	return doc.toDomain(), nil
}

func (r *MongoStreamRepository) DeleteByID(ctx context.Context, id domain.StreamID) error {
	oid, err := parseStreamID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete stream: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrStreamNotFound
	}
	return nil
}

func (r *MongoStreamRepository) List(ctx context.Context) ([]*domain.Stream, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list streams: %w", err)
	}
	defer cursor.Close(ctx)

	streams := []*domain.Stream{}
	for cursor.Next(ctx) {
		var doc streamDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode stream: %w", err)
		}
		streams = append(streams, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error while listing streams: %w", err)
	}

	return streams, nil
}

package repositories

import (
	"context"

	"github.com/anonto42/community-engine/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ModerationLogRepository defines the interface for the moderation audit trail
type ModerationLogRepository interface {
	RecordDeactivation(ctx context.Context, event *models.ModerationEvent) error
	ListEvents(ctx context.Context, skip, limit int64) ([]models.ModerationEvent, int64, error)
}

// MongoModerationLogRepository implements ModerationLogRepository for MongoDB
type MongoModerationLogRepository struct {
	collection *mongo.Collection
}

// NewMongoModerationLogRepository creates a new MongoModerationLogRepository
func NewMongoModerationLogRepository(db *mongo.Database) *MongoModerationLogRepository {
	return &MongoModerationLogRepository{collection: db.Collection("moderation_events")}
}

// RecordDeactivation appends an automatic deactivation to the log
func (r *MongoModerationLogRepository) RecordDeactivation(ctx context.Context, event *models.ModerationEvent) error {
	event.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// ListEvents retrieves deactivations, newest first
func (r *MongoModerationLogRepository) ListEvents(ctx context.Context, skip, limit int64) ([]models.ModerationEvent, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "deactivated_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	events := []models.ModerationEvent{}
	if err = cursor.All(ctx, &events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

package analyticsRepo

import (
	"context"
	"log"
	"time"

	"clearcare/database"
	"clearcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// QueryLogRepository records what users asked for and how well the
// pipeline answered, for aggregate reporting only.
type QueryLogRepository interface {
	Record(ctx context.Context, record models.QueryRecord) error
	GetBySessionID(ctx context.Context, sessionID string) ([]models.QueryRecord, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type mongoQueryLogRepo struct {
	coll *mongo.Collection
}

// NewMongoQueryLogRepo returns a QueryLogRepository backed by MongoDB.
func NewMongoQueryLogRepo() QueryLogRepository {
	db := database.MongoClient.Database("clearcare")
	coll := db.Collection("query_log")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		log.Printf("failed to ensure query_log indexes: %v", err)
	}

	return &mongoQueryLogRepo{coll: coll}
}

package analyticsRepo

import (
	"context"
	"time"

	"clearcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Record inserts one query-log row.
func (r *mongoQueryLogRepo) Record(ctx context.Context, record models.QueryRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(ctx, record)
	return err
}

// GetBySessionID fetches all rows for one session, newest first.
func (r *mongoQueryLogRepo) GetBySessionID(ctx context.Context, sessionID string) ([]models.QueryRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.QueryRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CountSince returns how many estimates ran after the given time.
func (r *mongoQueryLogRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
}

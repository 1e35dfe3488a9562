package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

// GetSettings loads the singleton settings record.
func (r *MongoDBRepository) GetSettings(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	if err := r.collection(settingsCollection).FindOne(ctx, bson.M{"_id": settingsID}).Decode(&s); err != nil {
		return nil, translateError(err)
	}
	return &s, nil
}

// SaveSettings writes the whole settings record, creating it if needed.
func (r *MongoDBRepository) SaveSettings(ctx context.Context, s *models.Settings) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection(settingsCollection).ReplaceOne(ctx, bson.M{"_id": settingsID}, s, opts); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// RecordLastSync stamps the completion time of a reconciliation pass.
func (r *MongoDBRepository) RecordLastSync(ctx context.Context, at time.Time) error {
	update := bson.M{"$set": bson.M{"last_sync_time": at.UTC()}}
	res, err := r.collection(settingsCollection).UpdateOne(ctx, bson.M{"_id": settingsID}, update)
	if err != nil {
		return fmt.Errorf("failed to record last sync time: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

package repo

import (
	"context"
	"time"

	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LevelHistoryRepo stores finished levels.
type LevelHistoryRepo struct {
	collection *mongo.Collection
}

func NewLevelHistoryRepo(client *mongo.Client, dbName, collectionName string) *LevelHistoryRepo {
	return &LevelHistoryRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

func (h *LevelHistoryRepo) Record(ctx context.Context, r dmn.LevelRecord) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if _, err := h.collection.InsertOne(ctx, r); err != nil {
		return unexpected(err)
	}
	return nil
}

// ByPlayer returns up to limit records, newest first.
func (h *LevelHistoryRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]dmn.LevelRecord, error) {
	records := []dmn.LevelRecord{}
	if err := findRecent(ctx, h.collection, playerID, "completedAt", limit, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// findRecent decodes the newest documents of one player into out.
func findRecent(ctx context.Context, c *mongo.Collection, playerID uuid.UUID, sortKey string, limit int, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := c.Find(ctx, bson.M{"playerID": playerID}, opts)
	if err != nil {
		return unexpected(err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return unexpected(err)
	}
	return nil
}

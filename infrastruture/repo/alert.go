package repo

import (
	"context"
	"time"

	"github.com/beka-birhanu/mindful-maze/crisis"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// AlertRepo stores composed crisis alerts so responders can review them.
type AlertRepo struct {
	collection *mongo.Collection
}

func NewAlertRepo(client *mongo.Client, dbName, collectionName string) *AlertRepo {
	return &AlertRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

func (a *AlertRepo) Save(ctx context.Context, alert crisis.Alert) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if _, err := a.collection.InsertOne(ctx, alert); err != nil {
		return unexpected(err)
	}
	return nil
}

func (a *AlertRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]crisis.Alert, error) {
	alerts := []crisis.Alert{}
	if err := findRecent(ctx, a.collection, playerID, "createdAt", limit, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

package repo

import (
	"context"
	"testing"
	"time"

	"github.com/beka-birhanu/mindful-maze/crisis"
	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const dbName = "maze"

func toDoc(t *mtest.T, v interface{}) bson.D {
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func TestPlayerRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := dbName + ".players"

	mt.Run("ByUsername found", func(mt *mtest.T) {
		want := &dmn.Player{ID: uuid.New(), Username: "calm_walker", PasswordHash: "hash", BestScore: 40}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, toDoc(mt, want)))

		got, err := NewPlayerRepo(mt.Client, dbName, "players").ByUsername(context.Background(), "calm_walker")
		require.NoError(mt, err)
		assert.Equal(mt, want.ID, got.ID)
		assert.Equal(mt, want.Username, got.Username)
		assert.Equal(mt, 40, got.BestScore)
	})

	mt.Run("ByID not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewPlayerRepo(mt.Client, dbName, "players").ByID(context.Background(), uuid.New())
		assert.ErrorIs(mt, err, dmn.ErrPlayerNotFound)
	})

	mt.Run("Save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := NewPlayerRepo(mt.Client, dbName, "players").Save(context.Background(), &dmn.Player{ID: uuid.New(), Username: "focus"})
		assert.NoError(mt, err)
	})

	mt.Run("Save duplicate username", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := NewPlayerRepo(mt.Client, dbName, "players").Save(context.Background(), &dmn.Player{ID: uuid.New(), Username: "focus"})
		assert.ErrorIs(mt, err, dmn.ErrUsernameConflict)
	})

	mt.Run("RaiseBestScore", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := NewPlayerRepo(mt.Client, dbName, "players").RaiseBestScore(context.Background(), uuid.New(), 90)
		assert.NoError(mt, err)
	})
}

func TestLevelHistoryRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := dbName + ".levels"
	playerID := uuid.New()

	mt.Run("Record", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := NewLevelHistoryRepo(mt.Client, dbName, "levels").Record(context.Background(), dmn.LevelRecord{
			ID:          uuid.New(),
			PlayerID:    playerID,
			Level:       1,
			Difficulty:  maze.Easy,
			Bonus:       50,
			Score:       75,
			CompletedAt: time.Now(),
		})
		assert.NoError(mt, err)
	})

	mt.Run("ByPlayer", func(mt *mtest.T) {
		newer := dmn.LevelRecord{ID: uuid.New(), PlayerID: playerID, Level: 2, Difficulty: maze.Hard, Score: 200}
		older := dmn.LevelRecord{ID: uuid.New(), PlayerID: playerID, Level: 1, Difficulty: maze.Easy, Score: 60}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, toDoc(mt, newer), toDoc(mt, older)))

		records, err := NewLevelHistoryRepo(mt.Client, dbName, "levels").ByPlayer(context.Background(), playerID, 10)
		require.NoError(mt, err)
		require.Len(mt, records, 2)
		assert.Equal(mt, 2, records[0].Level)
		assert.Equal(mt, maze.Hard, records[0].Difficulty)
		assert.Equal(mt, newer.ID, records[0].ID)
	})

	mt.Run("ByPlayer empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		records, err := NewLevelHistoryRepo(mt.Client, dbName, "levels").ByPlayer(context.Background(), playerID, 10)
		require.NoError(mt, err)
		assert.NotNil(mt, records)
		assert.Empty(mt, records)
	})
}

func TestAlertRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := dbName + ".alerts"
	playerID := uuid.New()

	mt.Run("Save and list", func(mt *mtest.T) {
		alert := crisis.ComposeAlert(playerID, "sam", 1.5, 2.5)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, toDoc(mt, alert)),
		)

		r := NewAlertRepo(mt.Client, dbName, "alerts")
		require.NoError(mt, r.Save(context.Background(), alert))

		alerts, err := r.ByPlayer(context.Background(), playerID, 5)
		require.NoError(mt, err)
		require.Len(mt, alerts, 1)
		assert.Equal(mt, alert.ID, alerts[0].ID)
		assert.Equal(mt, alert.Message, alerts[0].Message)
	})
}

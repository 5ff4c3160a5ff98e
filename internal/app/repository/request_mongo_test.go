package repository

import (
	"context"
	"testing"
	"time"

	"crisiscorner/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func requestBSON(id primitive.ObjectID, status string, created time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "requestorName", Value: "Jane Doe"},
		{Key: "itemRequested", Value: "Blankets"},
		{Key: "createdDate", Value: created},
		{Key: "lastEditedDate", Value: created},
		{Key: "status", Value: status},
	}
}

func TestMongoStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		s := NewMongoStore(mt.Coll)

		r, err := s.Insert(ctx, &ds.Request{
			RequestorName:  " Jane Doe ",
			ItemRequested:  "Blankets",
			CreatedDate:    created,
			LastEditedDate: &created,
		})
		require.NoError(mt, err)
		assert.Len(mt, r.ID, 24)
		assert.Equal(mt, "Jane Doe", r.RequestorName)
		assert.Equal(mt, ds.StatusPending, r.Status)
	})

	mt.Run("insert rejects invalid document without a round trip", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)

		_, err := s.Insert(ctx, &ds.Request{RequestorName: "Jane Doe", ItemRequested: "x", CreatedDate: created})
		assert.ErrorIs(mt, err, ds.ErrValidation)
	})

	mt.Run("insert write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		s := NewMongoStore(mt.Coll)

		_, err := s.Insert(ctx, &ds.Request{RequestorName: "Jane Doe", ItemRequested: "Blankets", CreatedDate: created})
		var se *ds.StoreError
		assert.ErrorAs(mt, err, &se)
	})

	mt.Run("update by id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: requestBSON(id, "approved", created)},
		))
		s := NewMongoStore(mt.Coll)

		r, err := s.UpdateByID(ctx, id.Hex(), ds.StatusUpdate{Status: ds.StatusApproved, LastEditedDate: created})
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), r.ID)
		assert.Equal(mt, ds.StatusApproved, r.Status)
		require.NotNil(mt, r.LastEditedDate)
	})

	mt.Run("update by id not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		s := NewMongoStore(mt.Coll)

		_, err := s.UpdateByID(ctx, primitive.NewObjectID().Hex(), ds.StatusUpdate{Status: ds.StatusApproved, LastEditedDate: created})
		assert.ErrorIs(mt, err, ds.ErrNotFound)
	})

	mt.Run("update by malformed id is not found", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)

		_, err := s.UpdateByID(ctx, "not-an-object-id", ds.StatusUpdate{Status: ds.StatusApproved, LastEditedDate: created})
		assert.ErrorIs(mt, err, ds.ErrNotFound)
	})

	mt.Run("update by id rejects bad status", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)

		_, err := s.UpdateByID(ctx, primitive.NewObjectID().Hex(), ds.StatusUpdate{Status: "archived", LastEditedDate: created})
		assert.ErrorIs(mt, err, ds.ErrValidation)
	})

	mt.Run("update many partial match", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(2)},
			bson.E{Key: "nModified", Value: int32(2)},
		))
		s := NewMongoStore(mt.Coll)

		ids := []string{primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()}
		res, err := s.UpdateMany(ctx, ids, ds.StatusUpdate{Status: ds.StatusCompleted, LastEditedDate: created})
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), res.MatchedCount)
		assert.Equal(mt, int64(2), res.ModifiedCount)
	})

	mt.Run("update many zero matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(0)},
			bson.E{Key: "nModified", Value: int32(0)},
		))
		s := NewMongoStore(mt.Coll)

		_, err := s.UpdateMany(ctx, []string{primitive.NewObjectID().Hex()}, ds.StatusUpdate{Status: ds.StatusCompleted, LastEditedDate: created})
		assert.ErrorIs(mt, err, ds.ErrNotFound)
	})

	mt.Run("update many with only malformed ids", func(mt *mtest.T) {
		s := NewMongoStore(mt.Coll)

		_, err := s.UpdateMany(ctx, []string{"x", "y"}, ds.StatusUpdate{Status: ds.StatusCompleted, LastEditedDate: created})
		assert.ErrorIs(mt, err, ds.ErrNotFound)
	})

	mt.Run("delete many", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))
		s := NewMongoStore(mt.Coll)

		n, err := s.DeleteMany(ctx, []string{primitive.NewObjectID().Hex()})
		require.NoError(mt, err)
		assert.Equal(mt, int64(1), n)
	})

	mt.Run("delete many zero deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))
		s := NewMongoStore(mt.Coll)

		_, err := s.DeleteMany(ctx, []string{primitive.NewObjectID().Hex()})
		assert.ErrorIs(mt, err, ds.ErrNotFound)
	})

	mt.Run("find", func(mt *mtest.T) {
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			requestBSON(first, "pending", created.Add(time.Minute)),
			requestBSON(second, "pending", created),
		))
		s := NewMongoStore(mt.Coll)

		got, err := s.Find(ctx, ds.RequestFilter{Status: ds.StatusPending}, 0, 6)
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, first.Hex(), got[0].ID)
		assert.Equal(mt, second.Hex(), got[1].ID)
		assert.Equal(mt, ds.StatusPending, got[1].Status)
	})

	mt.Run("find command error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))
		s := NewMongoStore(mt.Coll)

		_, err := s.Find(ctx, ds.RequestFilter{}, 0, 6)
		var se *ds.StoreError
		assert.ErrorAs(mt, err, &se)
	})

	mt.Run("count", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(7)}},
		))
		s := NewMongoStore(mt.Coll)

		n, err := s.Count(ctx, ds.RequestFilter{Status: ds.StatusPending})
		require.NoError(mt, err)
		assert.Equal(mt, int64(7), n)
	})
}

func TestMongoFilter(t *testing.T) {
	assert.Equal(t, bson.M{}, mongoFilter(ds.RequestFilter{}))
	assert.Equal(t, bson.M{"status": "approved"}, mongoFilter(ds.RequestFilter{Status: ds.StatusApproved}))
}

func TestParseObjectIDs(t *testing.T) {
	valid := primitive.NewObjectID()
	got := parseObjectIDs([]string{"bad", valid.Hex(), ""})
	assert.Equal(t, []primitive.ObjectID{valid}, got)
}

func TestRequestSchema(t *testing.T) {
	schema := requestSchema()["$jsonSchema"].(bson.M)
	props := schema["properties"].(bson.M)

	assert.Equal(t, bson.M{"bsonType": "string", "minLength": 3, "maxLength": 30}, props["requestorName"])
	assert.Equal(t, bson.A{"pending", "completed", "approved", "rejected"}, props["status"].(bson.M)["enum"])
}

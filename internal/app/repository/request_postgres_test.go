package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"crisiscorner/internal/app/ds"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var requestColumns = []string{"id", "requestor_name", "item_requested", "created_date", "last_edited_date", "status"}

func newPostgresMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewPostgresStore(db), mock
}

func TestPostgresStore_Insert(t *testing.T) {
	s, mock := newPostgresMock(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO "requests"`).WillReturnResult(sqlmock.NewResult(0, 1))

	r, err := s.Insert(context.Background(), &ds.Request{
		RequestorName:  "Jane Doe",
		ItemRequested:  "Blankets",
		CreatedDate:    created,
		LastEditedDate: &created,
	})
	require.NoError(t, err)
	_, err = uuid.Parse(r.ID)
	assert.NoError(t, err)
	assert.Equal(t, ds.StatusPending, r.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateByID(t *testing.T) {
	s, mock := newPostgresMock(t)
	id := uuid.NewString()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	edited := created.Add(time.Hour)

	mock.ExpectExec(`UPDATE "requests" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "requests" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(requestColumns).
			AddRow(id, "Jane Doe", "Blankets", created, edited, "approved"))

	r, err := s.UpdateByID(context.Background(), id, ds.StatusUpdate{Status: ds.StatusApproved, LastEditedDate: edited})
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
	assert.Equal(t, ds.StatusApproved, r.Status)
	require.NotNil(t, r.LastEditedDate)
	assert.True(t, edited.Equal(*r.LastEditedDate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateByIDNotFound(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectExec(`UPDATE "requests" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.UpdateByID(context.Background(), uuid.NewString(), ds.StatusUpdate{Status: ds.StatusApproved, LastEditedDate: time.Now()})
	assert.ErrorIs(t, err, ds.ErrNotFound)

	_, err = s.UpdateByID(context.Background(), "not-a-uuid", ds.StatusUpdate{Status: ds.StatusApproved, LastEditedDate: time.Now()})
	assert.ErrorIs(t, err, ds.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateMany(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectExec(`UPDATE "requests" SET .* WHERE id IN`).WillReturnResult(sqlmock.NewResult(0, 2))

	res, err := s.UpdateMany(context.Background(),
		[]string{uuid.NewString(), "garbage", uuid.NewString(), uuid.NewString()},
		ds.StatusUpdate{Status: ds.StatusCompleted, LastEditedDate: time.Now()},
	)
	require.NoError(t, err)
	assert.Equal(t, ds.BatchUpdateResult{MatchedCount: 2, ModifiedCount: 2}, res)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateManyNoneMatched(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectExec(`UPDATE "requests" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.UpdateMany(context.Background(), []string{uuid.NewString()},
		ds.StatusUpdate{Status: ds.StatusCompleted, LastEditedDate: time.Now()})
	assert.ErrorIs(t, err, ds.ErrNotFound)

	_, err = s.UpdateMany(context.Background(), []string{"garbage"},
		ds.StatusUpdate{Status: ds.StatusCompleted, LastEditedDate: time.Now()})
	assert.ErrorIs(t, err, ds.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteMany(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectExec(`DELETE FROM "requests" WHERE id IN`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "requests"`).WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := s.DeleteMany(context.Background(), []string{uuid.NewString(), uuid.NewString(), uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	_, err = s.DeleteMany(context.Background(), []string{uuid.NewString()})
	assert.ErrorIs(t, err, ds.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindAndCount(t *testing.T) {
	s, mock := newPostgresMock(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first, second := uuid.NewString(), uuid.NewString()

	mock.ExpectQuery(`SELECT \* FROM "requests" WHERE status = \$1 ORDER BY created_date DESC`).
		WillReturnRows(sqlmock.NewRows(requestColumns).
			AddRow(first, "Jane Doe", "Blankets", created.Add(time.Minute), nil, "pending").
			AddRow(second, "John Roe", "Water", created, nil, "pending"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "requests" WHERE status = \$1`).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	got, err := s.Find(context.Background(), ds.RequestFilter{Status: ds.StatusPending}, 0, 6)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0].ID)
	assert.Nil(t, got[0].LastEditedDate)
	assert.Equal(t, "John Roe", got[1].RequestorName)

	n, err := s.Count(context.Background(), ds.RequestFilter{Status: ds.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_WrapsDriverErrors(t *testing.T) {
	s, mock := newPostgresMock(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "requests"`).WillReturnError(errors.New("connection refused"))

	_, err := s.Count(context.Background(), ds.RequestFilter{})
	var se *ds.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "count", se.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_UpdateManyDuplicateIDs(t *testing.T) {
	s, mock := newPostgresMock(t)
	id := uuid.NewString()

	// повторы схлопываются в один параметр IN
	mock.ExpectExec(`UPDATE "requests" SET .* WHERE id IN \(\$3\)$`).
		WithArgs(sqlmock.AnyArg(), "completed", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ids := []string{id, id, strings.ToUpper(id), "garbage"}
	res, err := s.UpdateMany(context.Background(), ids,
		ds.StatusUpdate{Status: ds.StatusCompleted, LastEditedDate: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, ds.BatchUpdateResult{MatchedCount: 1, ModifiedCount: 1}, res)
	assert.LessOrEqual(t, res.ModifiedCount, res.MatchedCount)
	assert.LessOrEqual(t, res.MatchedCount, int64(len(ids)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteManyDuplicateIDs(t *testing.T) {
	s, mock := newPostgresMock(t)
	id := uuid.NewString()

	mock.ExpectExec(`DELETE FROM "requests" WHERE id IN \(\$1\)$`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := s.DeleteMany(context.Background(), []string{id, id})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseUUIDs(t *testing.T) {
	id := uuid.NewString()

	assert.Equal(t, []string{id}, parseUUIDs([]string{id, "garbage", strings.ToUpper(id), id}))
	assert.Empty(t, parseUUIDs([]string{"", "garbage"}))
}

package service

//go:generate mockgen -source=service.go -destination=store_mock_test.go -package=service -mock_names=requestStore=MockRequestStore

import (
	"context"
	"time"

	"crisiscorner/internal/app/ds"
)

// requestStore операции хранилища, которые нужны сервисам заявок
type requestStore interface {
	Insert(ctx context.Context, r *ds.Request) (*ds.Request, error)
	UpdateByID(ctx context.Context, id string, upd ds.StatusUpdate) (*ds.Request, error)
	UpdateMany(ctx context.Context, ids []string, upd ds.StatusUpdate) (ds.BatchUpdateResult, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	Find(ctx context.Context, filter ds.RequestFilter, skip, limit int64) ([]ds.Request, error)
	Count(ctx context.Context, filter ds.RequestFilter) (int64, error)
}

// Clock источник текущего времени для отметок createdDate/lastEditedDate
type Clock func() time.Time

// stamp приводит время к точности хранилища (миллисекунды, UTC)
func stamp(now Clock) time.Time {
	return now().UTC().Truncate(time.Millisecond)
}

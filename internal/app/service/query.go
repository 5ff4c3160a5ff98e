package service

import (
	"context"
	"fmt"

	"crisiscorner/internal/app/ds"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// QueryService постраничные выборки и счётчики по статусам
type QueryService struct {
	log      *log.Entry
	store    requestStore
	pageSize int
}

func NewQueryService(logger *log.Logger, store requestStore, pageSize int) *QueryService {
	return &QueryService{
		log:      logger.WithField("component", "request-query"),
		store:    store,
		pageSize: pageSize,
	}
}

// PageSize размер страницы, общий для всех страниц
func (s *QueryService) PageSize() int {
	return s.pageSize
}

// List возвращает страницу заявок, новые первыми. Страница за пределами списка пуста, без ошибки.
func (s *QueryService) List(ctx context.Context, in ListInput) (*ds.RequestPage, error) {
	page, filter := in.normalize()

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		s.log.WithError(err).Error("count requests")
		return nil, fmt.Errorf("list requests: %w", err)
	}

	pagination := ds.NewPagination(page, s.pageSize, total)
	// за последней страницей: пустой список без обращения к хранилищу
	if page > pagination.TotalPages {
		return &ds.RequestPage{Records: []ds.Request{}, Pagination: pagination}, nil
	}

	skip := int64(page-1) * int64(s.pageSize)
	records, err := s.store.Find(ctx, filter, skip, int64(s.pageSize))
	if err != nil {
		s.log.WithError(err).Error("find requests")
		return nil, fmt.Errorf("list requests: %w", err)
	}
	if records == nil {
		records = []ds.Request{}
	}

	return &ds.RequestPage{
		Records:    records,
		Pagination: pagination,
	}, nil
}

// StatusCounts считает заявки по каждому статусу заново при каждом вызове
func (s *QueryService) StatusCounts(ctx context.Context) (ds.StatusCounts, error) {
	counts := make([]int64, len(ds.Statuses))

	g, gctx := errgroup.WithContext(ctx)
	for i, st := range ds.Statuses {
		g.Go(func() error {
			n, err := s.store.Count(gctx, ds.RequestFilter{Status: st})
			if err != nil {
				return fmt.Errorf("count %s: %w", st, err)
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.WithError(err).Error("status counts")
		return ds.StatusCounts{}, fmt.Errorf("status counts: %w", err)
	}

	var out ds.StatusCounts
	for i, st := range ds.Statuses {
		out.Set(st, counts[i])
	}
	return out, nil
}

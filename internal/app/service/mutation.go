package service

import (
	"context"
	"fmt"
	"time"

	"crisiscorner/internal/app/ds"

	log "github.com/sirupsen/logrus"
)

// MutationService создание, смена статуса и удаление заявок
type MutationService struct {
	log   *log.Entry
	store requestStore
	now   Clock
}

type MutationOption func(*MutationService)

// WithClock подменяет источник времени
func WithClock(c Clock) MutationOption {
	return func(s *MutationService) {
		s.now = c
	}
}

func NewMutationService(logger *log.Logger, store requestStore, opts ...MutationOption) *MutationService {
	s := &MutationService{
		log:   logger.WithField("component", "request-mutation"),
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create сохраняет новую заявку в статусе pending, createdDate == lastEditedDate
func (s *MutationService) Create(ctx context.Context, in CreateInput) (*ds.Request, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := stamp(s.now)
	r, err := s.store.Insert(ctx, &ds.Request{
		RequestorName:  in.RequestorName,
		ItemRequested:  in.ItemRequested,
		CreatedDate:    now,
		LastEditedDate: &now,
		Status:         ds.StatusPending,
	})
	if err != nil {
		return nil, s.fail("create request", err)
	}

	s.log.WithField("id", r.ID).Info("request created")
	return r, nil
}

// UpdateStatus меняет статус одной заявки и обновляет lastEditedDate
func (s *MutationService) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*ds.Request, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	r, err := s.store.UpdateByID(ctx, in.ID, ds.StatusUpdate{
		Status:         ds.Status(in.Status),
		LastEditedDate: stamp(s.now),
	})
	if err != nil {
		return nil, s.fail("update request status", err)
	}

	s.log.WithFields(log.Fields{"id": r.ID, "status": r.Status}).Info("request status updated")
	return r, nil
}

// BatchUpdateStatus меняет статус всех найденных заявок. Ненайденные id игнорируются.
func (s *MutationService) BatchUpdateStatus(ctx context.Context, in BatchUpdateInput) (ds.BatchUpdateResult, error) {
	if err := in.Validate(); err != nil {
		return ds.BatchUpdateResult{}, err
	}

	res, err := s.store.UpdateMany(ctx, in.IDs, ds.StatusUpdate{
		Status:         ds.Status(in.Status),
		LastEditedDate: stamp(s.now),
	})
	if err != nil {
		return ds.BatchUpdateResult{}, s.fail("batch update status", err)
	}

	s.log.WithFields(log.Fields{
		"ids":      len(in.IDs),
		"matched":  res.MatchedCount,
		"modified": res.ModifiedCount,
		"status":   in.Status,
	}).Info("requests status updated")
	return res, nil
}

// BatchDelete физически удаляет заявки
func (s *MutationService) BatchDelete(ctx context.Context, in BatchDeleteInput) (ds.BatchDeleteResult, error) {
	if err := in.Validate(); err != nil {
		return ds.BatchDeleteResult{}, err
	}

	n, err := s.store.DeleteMany(ctx, in.IDs)
	if err != nil {
		return ds.BatchDeleteResult{}, s.fail("batch delete", err)
	}

	s.log.WithFields(log.Fields{"ids": len(in.IDs), "deleted": n}).Info("requests deleted")
	return ds.BatchDeleteResult{DeletedCount: n}, nil
}

// fail логирует сбои хранилища. Ошибки клиента возвращаются как есть.
func (s *MutationService) fail(op string, err error) error {
	if ds.IsClientError(err) {
		return err
	}
	s.log.WithError(err).Error(op)
	return fmt.Errorf("%s: %w", op, err)
}

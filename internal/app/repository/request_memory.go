package repository

import (
	"context"
	"sort"
	"sync"

	"crisiscorner/internal/app/ds"

	"github.com/google/uuid"
)

// MemoryStore хранилище заявок в памяти процесса. Для тестов и локального запуска.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]ds.Request
	// порядок вставки, чтобы заявки с одинаковой датой шли стабильно
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]ds.Request)}
}

func (s *MemoryStore) Insert(_ context.Context, r *ds.Request) (*ds.Request, error) {
	valid, err := prepareInsert(r)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	valid.ID = uuid.NewString()
	s.records[valid.ID] = cloneRequest(*valid)
	s.order = append(s.order, valid.ID)

	out := cloneRequest(*valid)
	return &out, nil
}

func (s *MemoryStore) UpdateByID(_ context.Context, id string, upd ds.StatusUpdate) (*ds.Request, error) {
	if err := validateUpdate(upd); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id]
	if !ok {
		return nil, ds.NewNotFoundError(msgRequestNotFound)
	}
	applyUpdate(&r, upd)
	s.records[id] = r

	out := cloneRequest(r)
	return &out, nil
}

func (s *MemoryStore) UpdateMany(_ context.Context, ids []string, upd ds.StatusUpdate) (ds.BatchUpdateResult, error) {
	if err := validateUpdate(upd); err != nil {
		return ds.BatchUpdateResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var res ds.BatchUpdateResult
	for _, id := range uniqueIDs(ids) {
		r, ok := s.records[id]
		if !ok {
			continue
		}
		res.MatchedCount++
		res.ModifiedCount++
		applyUpdate(&r, upd)
		s.records[id] = r
	}

	if res.MatchedCount == 0 {
		return ds.BatchUpdateResult{}, ds.NewNotFoundError(msgNoneMatched)
	}
	return res, nil
}

func (s *MemoryStore) DeleteMany(_ context.Context, ids []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for _, id := range uniqueIDs(ids) {
		if _, ok := s.records[id]; !ok {
			continue
		}
		delete(s.records, id)
		deleted++
	}
	if deleted == 0 {
		return 0, ds.NewNotFoundError(msgNoneMatched)
	}

	kept := s.order[:0]
	for _, id := range s.order {
		if _, ok := s.records[id]; ok {
			kept = append(kept, id)
		}
	}
	s.order = kept

	return deleted, nil
}

func (s *MemoryStore) Find(_ context.Context, filter ds.RequestFilter, skip, limit int64) ([]ds.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.matching(filter)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedDate.After(matched[j].CreatedDate)
	})

	if skip < 0 {
		skip = 0
	}
	if skip >= int64(len(matched)) {
		return []ds.Request{}, nil
	}
	end := int64(len(matched))
	if limit > 0 && limit < end-skip {
		end = skip + limit
	}
	return matched[skip:end], nil
}

func (s *MemoryStore) Count(_ context.Context, filter ds.RequestFilter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.matching(filter))), nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Name() string { return "memory" }

func (s *MemoryStore) Migrate(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }

func (s *MemoryStore) matching(filter ds.RequestFilter) []ds.Request {
	out := make([]ds.Request, 0, len(s.order))
	for _, id := range s.order {
		r := s.records[id]
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, cloneRequest(r))
	}
	return out
}

func applyUpdate(r *ds.Request, upd ds.StatusUpdate) {
	r.Status = upd.Status
	t := upd.LastEditedDate
	r.LastEditedDate = &t
}

func cloneRequest(r ds.Request) ds.Request {
	if r.LastEditedDate != nil {
		t := *r.LastEditedDate
		r.LastEditedDate = &t
	}
	return r
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

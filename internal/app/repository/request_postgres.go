package repository

import (
	"context"
	"fmt"
	"time"

	"crisiscorner/internal/app/config"
	"crisiscorner/internal/app/ds"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Таблица заявок
type requestRow struct {
	ID             string     `gorm:"type:uuid;primaryKey"`
	RequestorName  string     `gorm:"type:varchar(30);not null"`
	ItemRequested  string     `gorm:"type:varchar(100);not null"`
	CreatedDate    time.Time  `gorm:"not null;index:idx_requests_status_created,priority:2,sort:desc"`
	LastEditedDate *time.Time `gorm:"type:timestamptz"`
	Status         string     `gorm:"type:varchar(20);not null;index:idx_requests_status_created,priority:1"`
}

func (requestRow) TableName() string {
	return "requests"
}

func (r requestRow) toDS() ds.Request {
	out := ds.Request{
		ID:            r.ID,
		RequestorName: r.RequestorName,
		ItemRequested: r.ItemRequested,
		CreatedDate:   r.CreatedDate.UTC(),
		Status:        ds.Status(r.Status),
	}
	if r.LastEditedDate != nil {
		t := r.LastEditedDate.UTC()
		out.LastEditedDate = &t
	}
	return out
}

// PostgresStore хранилище заявок в PostgreSQL через gorm
type PostgresStore struct {
	db *gorm.DB
}

func OpenPostgres(cfg config.StoreConfig) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	log.Info("connected to postgres")

	return NewPostgresStore(db), nil
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Insert(ctx context.Context, r *ds.Request) (*ds.Request, error) {
	valid, err := prepareInsert(r)
	if err != nil {
		return nil, err
	}

	row := requestRow{
		ID:             uuid.NewString(),
		RequestorName:  valid.RequestorName,
		ItemRequested:  valid.ItemRequested,
		CreatedDate:    valid.CreatedDate,
		LastEditedDate: valid.LastEditedDate,
		Status:         string(valid.Status),
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, ds.WrapStore("insert", err)
	}

	out := row.toDS()
	return &out, nil
}

func (s *PostgresStore) UpdateByID(ctx context.Context, id string, upd ds.StatusUpdate) (*ds.Request, error) {
	if err := validateUpdate(upd); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ds.NewNotFoundError(msgRequestNotFound)
	}

	res := s.db.WithContext(ctx).
		Model(&requestRow{}).
		Where("id = ?", id).
		Updates(statusColumns(upd))
	if res.Error != nil {
		return nil, ds.WrapStore("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ds.NewNotFoundError(msgRequestNotFound)
	}

	var row requestRow
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, ds.WrapStore("update", err)
	}

	out := row.toDS()
	return &out, nil
}

func (s *PostgresStore) UpdateMany(ctx context.Context, ids []string, upd ds.StatusUpdate) (ds.BatchUpdateResult, error) {
	if err := validateUpdate(upd); err != nil {
		return ds.BatchUpdateResult{}, err
	}

	valid := parseUUIDs(ids)
	if len(valid) == 0 {
		return ds.BatchUpdateResult{}, ds.NewNotFoundError(msgNoneMatched)
	}

	res := s.db.WithContext(ctx).
		Model(&requestRow{}).
		Where("id IN ?", valid).
		Updates(statusColumns(upd))
	if res.Error != nil {
		return ds.BatchUpdateResult{}, ds.WrapStore("update many", res.Error)
	}
	if res.RowsAffected == 0 {
		return ds.BatchUpdateResult{}, ds.NewNotFoundError(msgNoneMatched)
	}

	// lastEditedDate меняется всегда, поэтому каждая найденная строка изменена
	return ds.BatchUpdateResult{
		MatchedCount:  res.RowsAffected,
		ModifiedCount: res.RowsAffected,
	}, nil
}

func (s *PostgresStore) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	valid := parseUUIDs(ids)
	if len(valid) == 0 {
		return 0, ds.NewNotFoundError(msgNoneMatched)
	}

	res := s.db.WithContext(ctx).Where("id IN ?", valid).Delete(&requestRow{})
	if res.Error != nil {
		return 0, ds.WrapStore("delete many", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ds.NewNotFoundError(msgNoneMatched)
	}

	return res.RowsAffected, nil
}

func (s *PostgresStore) Find(ctx context.Context, filter ds.RequestFilter, skip, limit int64) ([]ds.Request, error) {
	var rows []requestRow
	err := s.filtered(ctx, filter).
		Order("created_date DESC").
		Offset(int(skip)).
		Limit(int(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, ds.WrapStore("find", err)
	}

	out := make([]ds.Request, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDS())
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context, filter ds.RequestFilter) (int64, error) {
	var n int64
	if err := s.filtered(ctx, filter).Count(&n).Error; err != nil {
		return 0, ds.WrapStore("count", err)
	}
	return n, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Name() string {
	return s.db.Migrator().CurrentDatabase()
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&requestRow{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close(_ context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresStore) filtered(ctx context.Context, filter ds.RequestFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&requestRow{})
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	return q
}

func statusColumns(upd ds.StatusUpdate) map[string]any {
	return map[string]any{
		"status":           string(upd.Status),
		"last_edited_date": upd.LastEditedDate,
	}
}

// parseUUIDs отбрасывает невалидные id и повторы, id приводятся к каноническому виду
func parseUUIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil {
			continue
		}
		out = append(out, u.String())
	}
	return uniqueIDs(out)
}

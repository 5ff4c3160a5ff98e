package repository

import (
	"context"
	"fmt"

	"crisiscorner/internal/app/config"
	"crisiscorner/internal/app/ds"

	log "github.com/sirupsen/logrus"
)

// Сообщения NotFound, которые уходят клиенту как есть
const (
	msgRequestNotFound = "Request not found"
	msgNoneMatched     = "No requests found with the provided ids"
)

// Store хранилище заявок. Единственный владелец данных: схема, индексы, подключение.
type Store interface {
	// Insert валидирует документ и сохраняет его, присваивая id
	Insert(ctx context.Context, r *ds.Request) (*ds.Request, error)
	// UpdateByID применяет изменение к одной заявке, NotFound если id нет
	UpdateByID(ctx context.Context, id string, upd ds.StatusUpdate) (*ds.Request, error)
	// UpdateMany применяет изменение ко всем найденным id, NotFound только если не нашлось ни одного
	UpdateMany(ctx context.Context, ids []string, upd ds.StatusUpdate) (ds.BatchUpdateResult, error)
	// DeleteMany физически удаляет заявки, NotFound если не удалено ни одной
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	// Find возвращает заявки по фильтру, отсортированные по createdDate по убыванию
	Find(ctx context.Context, filter ds.RequestFilter, skip, limit int64) ([]ds.Request, error)
	Count(ctx context.Context, filter ds.RequestFilter) (int64, error)

	Ping(ctx context.Context) error
	// Name имя базы данных для проверки подключения
	Name() string
	// Migrate создаёт схему и индекс (status, createdDate desc)
	Migrate(ctx context.Context) error
	Close(ctx context.Context) error
}

// New открывает хранилище выбранного драйвера. Подключение создаётся один раз на процесс.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		return OpenMongo(ctx, cfg)
	case config.DriverPostgres:
		return OpenPostgres(cfg)
	case config.DriverMemory:
		log.Warn("using in-memory request store, data is lost on restart")
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
}

func validateUpdate(upd ds.StatusUpdate) error {
	if !upd.Status.Valid() {
		return ds.NewValidationError("status", "Invalid status value")
	}
	return nil
}

func prepareInsert(r *ds.Request) (*ds.Request, error) {
	doc := *r
	doc.Normalize()
	if doc.Status == "" {
		doc.Status = ds.StatusPending
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

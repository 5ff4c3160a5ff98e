package handler

import (
	"context"
	"errors"
	"net/http"

	"crisiscorner/internal/app/ds"
	"crisiscorner/internal/app/dto"
	"crisiscorner/internal/app/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// requestQuerier выборки заявок
type requestQuerier interface {
	List(ctx context.Context, in service.ListInput) (*ds.RequestPage, error)
	StatusCounts(ctx context.Context) (ds.StatusCounts, error)
}

// requestMutator изменения заявок
type requestMutator interface {
	Create(ctx context.Context, in service.CreateInput) (*ds.Request, error)
	UpdateStatus(ctx context.Context, in service.UpdateStatusInput) (*ds.Request, error)
	BatchUpdateStatus(ctx context.Context, in service.BatchUpdateInput) (ds.BatchUpdateResult, error)
	BatchDelete(ctx context.Context, in service.BatchDeleteInput) (ds.BatchDeleteResult, error)
}

// storeProbe проверка подключения к хранилищу
type storeProbe interface {
	Ping(ctx context.Context) error
	Name() string
}

// mutationObserver учёт изменений в метриках
type mutationObserver interface {
	ObserveMutation(operation string, n int64)
}

type Handler struct {
	Query    requestQuerier
	Mutation requestMutator
	Store    storeProbe
	Metrics  mutationObserver
	log      *log.Entry
}

func NewHandler(logger *log.Logger, q requestQuerier, m requestMutator, store storeProbe, metrics mutationObserver) *Handler {
	return &Handler{
		Query:    q,
		Mutation: m,
		Store:    store,
		Metrics:  metrics,
		log:      logger.WithField("component", "handler"),
	}
}

const msgInternal = "Internal server error"

// Централизованная обработка ошибок: 400 валидация, 404 не найдено, остальное 500
func (h *Handler) writeError(c *gin.Context, err error) {
	var nf *ds.NotFoundError
	switch {
	case errors.Is(err, ds.ErrValidation):
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &nf):
		h.errorResponse(c, http.StatusNotFound, nf.Message)
	default:
		h.log.WithError(err).WithField("route", c.FullPath()).Error("request failed")
		h.errorResponse(c, http.StatusInternalServerError, msgInternal)
	}
}

func (h *Handler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

func (h *Handler) observe(operation string, n int64) {
	if h.Metrics != nil {
		h.Metrics.ObserveMutation(operation, n)
	}
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /ping [get]
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "pong"})
}

// TestDB проверяет подключение к базе данных
// @Summary Проверка подключения к БД
// @Description Пингует хранилище заявок и возвращает имя базы данных
// @Tags Health
// @Produce json
// @Success 200 {object} dto.TestDBResponse
// @Failure 500 {object} dto.TestDBResponse
// @Router /api/test-db [get]
func (h *Handler) TestDB(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		h.log.WithError(err).Error("database connection test failed")
		c.JSON(http.StatusInternalServerError, dto.TestDBResponse{
			Success: false,
			Message: "Database connection failed",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, dto.TestDBResponse{
		Success:    true,
		Message:    "Database connected successfully",
		Database:   h.Store.Name(),
		ReadyState: 1,
	})
}

package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"crisiscorner/internal/app/dto"
	"crisiscorner/internal/app/service"

	"github.com/gin-gonic/gin"
)

const (
	msgSuccess     = "Success"
	msgCreated     = "Created"
	msgInvalidBody = "Invalid request body"
)

// ============ ДОМЕН ЗАЯВКИ ============

// GetRequests получает страницу заявок
// @Summary Получение списка заявок
// @Description Возвращает страницу заявок, новые первыми. Неизвестный статус игнорируется.
// @Tags Requests
// @Produce json
// @Param page query int false "Номер страницы, с 1"
// @Param status query string false "Фильтр по статусу" Enums(pending, completed, approved, rejected)
// @Success 200 {object} dto.RequestListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/request [get]
func (h *Handler) GetRequests(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}

	result, err := h.Query.List(c.Request.Context(), service.ListInput{
		Page:   page,
		Status: c.Query("status"),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RequestListResponse{
		Message:    msgSuccess,
		Data:       dto.FromRequests(result.Records),
		Pagination: dto.FromPagination(result.Pagination),
	})
}

// CreateRequest создает новую заявку
// @Summary Создание заявки
// @Description Создает заявку в статусе pending
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body dto.CreateRequestRequest true "Данные заявки"
// @Success 201 {object} dto.RequestDataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/request [put]
func (h *Handler) CreateRequest(c *gin.Context) {
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	created, err := h.Mutation.Create(c.Request.Context(), service.CreateInput{
		RequestorName: req.RequestorName,
		ItemRequested: req.ItemRequested,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.observe("create", 1)

	c.JSON(http.StatusCreated, dto.RequestDataResponse{
		Message: msgCreated,
		Data:    dto.FromRequest(*created),
	})
}

// UpdateRequestStatus меняет статус одной заявки
// @Summary Изменение статуса заявки
// @Description Устанавливает статус и обновляет lastEditedDate
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body dto.UpdateStatusRequest true "id и новый статус"
// @Success 200 {object} dto.RequestDataResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/request [patch]
func (h *Handler) UpdateRequestStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	updated, err := h.Mutation.UpdateStatus(c.Request.Context(), service.UpdateStatusInput{
		ID:     req.ID,
		Status: req.Status,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.observe("update_status", 1)

	c.JSON(http.StatusOK, dto.RequestDataResponse{
		Message: msgSuccess,
		Data:    dto.FromRequest(*updated),
	})
}

// BatchUpdateRequests меняет статус набора заявок
// @Summary Пакетное изменение статуса
// @Description Ненайденные id игнорируются, 404 только если не найден ни один
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body dto.BatchUpdateRequest true "Список id и статус"
// @Success 200 {object} dto.BatchUpdateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/request/batch [patch]
func (h *Handler) BatchUpdateRequests(c *gin.Context) {
	var req dto.BatchUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := h.Mutation.BatchUpdateStatus(c.Request.Context(), service.BatchUpdateInput{
		IDs:    req.IDs,
		Status: req.Status,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.observe("batch_update_status", res.ModifiedCount)

	c.JSON(http.StatusOK, dto.BatchUpdateResponse{
		Message: fmt.Sprintf("Successfully updated %d requests", res.ModifiedCount),
		Data: dto.BatchUpdateData{
			MatchedCount:  res.MatchedCount,
			ModifiedCount: res.ModifiedCount,
		},
	})
}

// BatchDeleteRequests удаляет набор заявок
// @Summary Пакетное удаление заявок
// @Description Удаление физическое и необратимое
// @Tags Requests
// @Accept json
// @Produce json
// @Param request body dto.BatchDeleteRequest true "Список id"
// @Success 200 {object} dto.BatchDeleteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/request/batch [delete]
func (h *Handler) BatchDeleteRequests(c *gin.Context) {
	var req dto.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, msgInvalidBody)
		return
	}

	res, err := h.Mutation.BatchDelete(c.Request.Context(), service.BatchDeleteInput{IDs: req.IDs})
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.observe("batch_delete", res.DeletedCount)

	c.JSON(http.StatusOK, dto.BatchDeleteResponse{
		Message: fmt.Sprintf("Successfully deleted %d requests", res.DeletedCount),
		Data:    dto.BatchDeleteData{DeletedCount: res.DeletedCount},
	})
}

// GetStatusCounts возвращает количество заявок по статусам
// @Summary Счётчики по статусам
// @Description Количество заявок в каждом статусе и их сумма
// @Tags Requests
// @Produce json
// @Success 200 {object} dto.StatusCountsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/request/status-counts [get]
func (h *Handler) GetStatusCounts(c *gin.Context) {
	counts, err := h.Query.StatusCounts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusCountsResponse{Counts: dto.FromStatusCounts(counts)})
}

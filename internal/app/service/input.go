package service

import (
	"strings"
	"unicode/utf8"

	"crisiscorner/internal/app/ds"
)

// Сообщения валидации уходят клиенту без изменений
const (
	msgCreateMissing = "Missing required fields: requestorName and itemRequested"
	msgNameLength    = "Requestor name must be between 3-30 characters"
	msgItemLength    = "Item requested must be between 2-100 characters"
	msgUpdateMissing = "Missing required fields: id and status"
	msgInvalidStatus = "Invalid status value"
	msgInvalidIDs    = "Missing or invalid ids array"
	msgBatchStatus   = "Missing or invalid status value"
)

const (
	minNameLen = 3
	maxNameLen = 30
	minItemLen = 2
	maxItemLen = 100
)

// ListInput параметры выборки страницы
type ListInput struct {
	// Page номер страницы с 1. Значения меньше 1 считаются первой страницей.
	Page int
	// Status фильтр. Пустое или неизвестное значение означает "без фильтра".
	Status string
}

func (i ListInput) normalize() (int, ds.RequestFilter) {
	page := i.Page
	if page < 1 {
		page = 1
	}
	var filter ds.RequestFilter
	if st, ok := ds.ParseStatus(i.Status); ok {
		filter.Status = st
	}
	return page, filter
}

// CreateInput данные новой заявки
type CreateInput struct {
	RequestorName string
	ItemRequested string
}

// Validate проверяет и обрезает поля. Длина считается после обрезки пробелов.
func (i *CreateInput) Validate() error {
	i.RequestorName = strings.TrimSpace(i.RequestorName)
	i.ItemRequested = strings.TrimSpace(i.ItemRequested)

	if i.RequestorName == "" || i.ItemRequested == "" {
		return ds.NewValidationError("requestorName", msgCreateMissing)
	}

	var errs []ds.FieldError
	if n := utf8.RuneCountInString(i.RequestorName); n < minNameLen || n > maxNameLen {
		errs = append(errs, ds.FieldError{Field: "requestorName", Message: msgNameLength})
	}
	if n := utf8.RuneCountInString(i.ItemRequested); n < minItemLen || n > maxItemLen {
		errs = append(errs, ds.FieldError{Field: "itemRequested", Message: msgItemLength})
	}
	if len(errs) > 0 {
		return &ds.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateStatusInput смена статуса одной заявки
type UpdateStatusInput struct {
	ID     string
	Status string
}

func (i UpdateStatusInput) Validate() error {
	if i.ID == "" || i.Status == "" {
		return ds.NewValidationError("id", msgUpdateMissing)
	}
	if _, ok := ds.ParseStatus(i.Status); !ok {
		return ds.NewValidationError("status", msgInvalidStatus)
	}
	return nil
}

// BatchUpdateInput смена статуса набора заявок
type BatchUpdateInput struct {
	IDs    []string
	Status string
}

func (i BatchUpdateInput) Validate() error {
	if len(i.IDs) == 0 {
		return ds.NewValidationError("ids", msgInvalidIDs)
	}
	if _, ok := ds.ParseStatus(i.Status); !ok {
		return ds.NewValidationError("status", msgBatchStatus)
	}
	return nil
}

// BatchDeleteInput удаление набора заявок
type BatchDeleteInput struct {
	IDs []string
}

func (i BatchDeleteInput) Validate() error {
	if len(i.IDs) == 0 {
		return ds.NewValidationError("ids", msgInvalidIDs)
	}
	return nil
}

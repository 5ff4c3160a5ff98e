package ds

import (
	"time"
)

// Status статус заявки. Допустимы ровно четыре значения.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Statuses перечисляет статусы в порядке вкладок админки
var Statuses = []Status{StatusPending, StatusCompleted, StatusApproved, StatusRejected}

// Valid сообщает, входит ли статус в перечисление
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ParseStatus разбирает строку статуса. Для неизвестных значений ok == false.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, st.Valid()
}

// Request заявка на предмет помощи
type Request struct {
	ID             string     `json:"_id"`
	RequestorName  string     `json:"requestorName" validate:"required,min=3,max=30"`
	ItemRequested  string     `json:"itemRequested" validate:"required,min=2,max=100"`
	CreatedDate    time.Time  `json:"createdDate" validate:"required"`
	LastEditedDate *time.Time `json:"lastEditedDate,omitempty" validate:"omitempty,gtefield=CreatedDate"`
	Status         Status     `json:"status" validate:"required,oneof=pending completed approved rejected"`
}

// RequestFilter фильтр выборки. Пустой Status означает "без фильтра".
type RequestFilter struct {
	Status Status
}

// StatusUpdate изменение, которое применяется к одной или нескольким заявкам
type StatusUpdate struct {
	Status         Status
	LastEditedDate time.Time
}

// BatchUpdateResult результат пакетного обновления
type BatchUpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// BatchDeleteResult результат пакетного удаления
type BatchDeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// StatusCounts количество заявок по каждому статусу и их сумма
type StatusCounts struct {
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Total     int64 `json:"total"`
}

// Set записывает счётчик статуса и пересчитывает Total
func (c *StatusCounts) Set(s Status, n int64) {
	switch s {
	case StatusPending:
		c.Pending = n
	case StatusCompleted:
		c.Completed = n
	case StatusApproved:
		c.Approved = n
	case StatusRejected:
		c.Rejected = n
	}
	c.Total = c.Pending + c.Completed + c.Approved + c.Rejected
}

// Get возвращает счётчик статуса
func (c StatusCounts) Get(s Status) int64 {
	switch s {
	case StatusPending:
		return c.Pending
	case StatusCompleted:
		return c.Completed
	case StatusApproved:
		return c.Approved
	case StatusRejected:
		return c.Rejected
	}
	return 0
}

// Pagination метаданные страницы списка
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	PageSize    int   `json:"pageSize"`
}

// NewPagination считает totalPages = ceil(totalCount / pageSize)
func NewPagination(page, pageSize int, totalCount int64) Pagination {
	totalPages := 0
	if pageSize > 0 && totalCount > 0 {
		totalPages = int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		PageSize:    pageSize,
	}
}

// RequestPage одна страница списка заявок
type RequestPage struct {
	Records    []Request
	Pagination Pagination
}

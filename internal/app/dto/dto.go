package dto

import (
	"encoding/json"
	"time"

	"crisiscorner/internal/app/ds"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ============ Заявки (Requests) ============

type RequestResponse struct {
	ID             string     `json:"_id"`
	RequestorName  string     `json:"requestorName"`
	ItemRequested  string     `json:"itemRequested"`
	CreatedDate    time.Time  `json:"createdDate"`
	LastEditedDate *time.Time `json:"lastEditedDate,omitempty"`
	Status         string     `json:"status"` // pending, completed, approved, rejected
}

type PaginationResponse struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	PageSize    int   `json:"pageSize"`
}

type RequestListResponse struct {
	Message    string             `json:"message"`
	Data       []RequestResponse  `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

type RequestDataResponse struct {
	Message string          `json:"message"`
	Data    RequestResponse `json:"data"`
}

type CreateRequestRequest struct {
	RequestorName string `json:"requestorName"`
	ItemRequested string `json:"itemRequested"`
}

type UpdateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ============ Пакетные операции ============

// IDList список id. Значение, которое не является массивом строк, читается как пустой список.
type IDList []string

func (l *IDList) UnmarshalJSON(b []byte) error {
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		*l = nil
		return nil
	}
	*l = ids
	return nil
}

type BatchUpdateRequest struct {
	IDs    IDList `json:"ids"`
	Status string `json:"status"`
}

type BatchDeleteRequest struct {
	IDs IDList `json:"ids"`
}

type BatchUpdateData struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type BatchUpdateResponse struct {
	Message string          `json:"message"`
	Data    BatchUpdateData `json:"data"`
}

type BatchDeleteData struct {
	DeletedCount int64 `json:"deletedCount"`
}

type BatchDeleteResponse struct {
	Message string          `json:"message"`
	Data    BatchDeleteData `json:"data"`
}

// ============ Счётчики и проверка БД ============

type StatusCounts struct {
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Approved  int64 `json:"approved"`
	Rejected  int64 `json:"rejected"`
	Total     int64 `json:"total"`
}

type StatusCountsResponse struct {
	Counts StatusCounts `json:"counts"`
}

type TestDBResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Database   string `json:"database,omitempty"`
	ReadyState int    `json:"readyState,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ============ Преобразования ============

func FromRequest(r ds.Request) RequestResponse {
	return RequestResponse{
		ID:             r.ID,
		RequestorName:  r.RequestorName,
		ItemRequested:  r.ItemRequested,
		CreatedDate:    r.CreatedDate,
		LastEditedDate: r.LastEditedDate,
		Status:         string(r.Status),
	}
}

func FromRequests(rs []ds.Request) []RequestResponse {
	out := make([]RequestResponse, len(rs))
	for i, r := range rs {
		out[i] = FromRequest(r)
	}
	return out
}

func FromPagination(p ds.Pagination) PaginationResponse {
	return PaginationResponse(p)
}

func FromStatusCounts(c ds.StatusCounts) StatusCounts {
	return StatusCounts(c)
}

// ToRequest обратное преобразование для клиента консоли
func (r RequestResponse) ToRequest() ds.Request {
	return ds.Request{
		ID:             r.ID,
		RequestorName:  r.RequestorName,
		ItemRequested:  r.ItemRequested,
		CreatedDate:    r.CreatedDate,
		LastEditedDate: r.LastEditedDate,
		Status:         ds.Status(r.Status),
	}
}

package console

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"crisiscorner/internal/app/ds"
	"crisiscorner/internal/app/dto"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// APIError ответ API с кодом 4xx/5xx
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client HTTP клиент API заявок
type Client struct {
	http *resty.Client
}

type ClientOption func(*resty.Client)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(defaultTimeout)

	for _, opt := range opts {
		opt(c)
	}

	return &Client{http: c}
}

func (c *Client) List(ctx context.Context, page int, status ds.Status) (*ds.RequestPage, error) {
	params := map[string]string{"page": strconv.Itoa(page)}
	if status != "" {
		params["status"] = string(status)
	}

	var out dto.RequestListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&out).
		SetError(&dto.ErrorResponse{}).
		Get("/api/request")
	if err := check(resp, err, "list requests"); err != nil {
		return nil, err
	}

	records := make([]ds.Request, len(out.Data))
	for i, r := range out.Data {
		records[i] = r.ToRequest()
	}
	return &ds.RequestPage{
		Records:    records,
		Pagination: ds.Pagination(out.Pagination),
	}, nil
}

func (c *Client) StatusCounts(ctx context.Context) (ds.StatusCounts, error) {
	var out dto.StatusCountsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetError(&dto.ErrorResponse{}).
		Get("/api/request/status-counts")
	if err := check(resp, err, "status counts"); err != nil {
		return ds.StatusCounts{}, err
	}
	return ds.StatusCounts(out.Counts), nil
}

func (c *Client) Create(ctx context.Context, requestorName, itemRequested string) (*ds.Request, error) {
	var out dto.RequestDataResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.CreateRequestRequest{RequestorName: requestorName, ItemRequested: itemRequested}).
		SetResult(&out).
		SetError(&dto.ErrorResponse{}).
		Put("/api/request")
	if err := check(resp, err, "create request"); err != nil {
		return nil, err
	}
	r := out.Data.ToRequest()
	return &r, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status ds.Status) (*ds.Request, error) {
	var out dto.RequestDataResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.UpdateStatusRequest{ID: id, Status: string(status)}).
		SetResult(&out).
		SetError(&dto.ErrorResponse{}).
		Patch("/api/request")
	if err := check(resp, err, "update request status"); err != nil {
		return nil, err
	}
	r := out.Data.ToRequest()
	return &r, nil
}

func (c *Client) BatchUpdateStatus(ctx context.Context, ids []string, status ds.Status) (ds.BatchUpdateResult, error) {
	var out dto.BatchUpdateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.BatchUpdateRequest{IDs: ids, Status: string(status)}).
		SetResult(&out).
		SetError(&dto.ErrorResponse{}).
		Patch("/api/request/batch")
	if err := check(resp, err, "batch update status"); err != nil {
		return ds.BatchUpdateResult{}, err
	}
	return ds.BatchUpdateResult{
		MatchedCount:  out.Data.MatchedCount,
		ModifiedCount: out.Data.ModifiedCount,
	}, nil
}

func (c *Client) BatchDelete(ctx context.Context, ids []string) (ds.BatchDeleteResult, error) {
	var out dto.BatchDeleteResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(dto.BatchDeleteRequest{IDs: ids}).
		SetResult(&out).
		SetError(&dto.ErrorResponse{}).
		Delete("/api/request/batch")
	if err := check(resp, err, "batch delete"); err != nil {
		return ds.BatchDeleteResult{}, err
	}
	return ds.BatchDeleteResult{DeletedCount: out.Data.DeletedCount}, nil
}

func check(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !resp.IsError() {
		return nil
	}

	msg := resp.Status()
	if e, ok := resp.Error().(*dto.ErrorResponse); ok && e.Error != "" {
		msg = e.Error
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}

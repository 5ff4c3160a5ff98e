package console

import (
	"context"
	"slices"
	"sync"
	"time"

	"crisiscorner/internal/app/ds"

	"golang.org/x/sync/errgroup"
)

// requestAPI операции API, которыми управляет консоль
type requestAPI interface {
	List(ctx context.Context, page int, status ds.Status) (*ds.RequestPage, error)
	StatusCounts(ctx context.Context) (ds.StatusCounts, error)
	UpdateStatus(ctx context.Context, id string, status ds.Status) (*ds.Request, error)
	BatchUpdateStatus(ctx context.Context, ids []string, status ds.Status) (ds.BatchUpdateResult, error)
	BatchDelete(ctx context.Context, ids []string) (ds.BatchDeleteResult, error)
}

// State локальная проекция админки. Источник истины всегда API.
type State struct {
	Loading     bool
	Err         string
	CurrentPage int
	// ActiveStatus пустой означает вкладку "все"
	ActiveStatus ds.Status
	// Selected выбранные id в порядке выбора
	Selected   []string
	Counts     ds.StatusCounts
	Records    []ds.Request
	Pagination ds.Pagination
}

// IsSelected сообщает, выбрана ли заявка
func (s State) IsSelected(id string) bool {
	return slices.Contains(s.Selected, id)
}

// Controller состояние админки и переходы между состояниями.
// Запросы могут гоняться между собой: последний ответ перезаписывает состояние.
type Controller struct {
	api       requestAPI
	now       func() time.Time
	reconcile bool

	mu    sync.Mutex
	state State
}

type ControllerOption func(*Controller)

// WithReconcileOnStatusChange перезапрашивает список после смены статуса одной заявки
func WithReconcileOnStatusChange(v bool) ControllerOption {
	return func(c *Controller) {
		c.reconcile = v
	}
}

func WithControllerClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.now = now
	}
}

func NewController(api requestAPI, opts ...ControllerOption) *Controller {
	c := &Controller{
		api: api,
		now: time.Now,
		state: State{
			Loading:     true,
			CurrentPage: 1,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init загружает первую страницу без фильтра и счётчики
func (c *Controller) Init(ctx context.Context) error {
	c.mu.Lock()
	c.state.CurrentPage = 1
	c.state.ActiveStatus = ""
	c.state.Selected = nil
	c.mu.Unlock()

	return c.reconcileAll(ctx)
}

// Refresh перезапрашивает текущую страницу и счётчики
func (c *Controller) Refresh(ctx context.Context) error {
	return c.reconcileAll(ctx)
}

// SetFilter переключает вкладку: первая страница, выбор сброшен
func (c *Controller) SetFilter(ctx context.Context, status ds.Status) error {
	c.mu.Lock()
	c.state.ActiveStatus = status
	c.state.CurrentPage = 1
	c.state.Selected = nil
	c.mu.Unlock()

	return c.fetchListing(ctx)
}

// SetPage переходит на страницу под текущим фильтром, выбор сброшен
func (c *Controller) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	c.state.CurrentPage = page
	c.state.Selected = nil
	c.mu.Unlock()

	return c.fetchListing(ctx)
}

// ToggleSelect добавляет id в выбор или убирает из него
func (c *Controller) ToggleSelect(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := slices.Index(c.state.Selected, id); i >= 0 {
		c.state.Selected = slices.Delete(c.state.Selected, i, i+1)
		return
	}
	c.state.Selected = append(c.state.Selected, id)
}

// SelectAll выбирает все видимые заявки. Если они уже выбраны, снимает выбор.
func (c *Controller) SelectAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.state.Records) > 0 && c.allVisibleSelected() {
		c.state.Selected = nil
		return
	}

	selected := make([]string, 0, len(c.state.Records))
	for _, r := range c.state.Records {
		selected = append(selected, r.ID)
	}
	c.state.Selected = selected
}

func (c *Controller) allVisibleSelected() bool {
	for _, r := range c.state.Records {
		if !slices.Contains(c.state.Selected, r.ID) {
			return false
		}
	}
	return true
}

// ChangeStatus сразу меняет статус в локальной копии, затем отправляет изменение
// и обновляет счётчики. Локальная правка при ошибке не откатывается.
func (c *Controller) ChangeStatus(ctx context.Context, id string, status ds.Status) error {
	c.mu.Lock()
	now := c.now().UTC()
	for i := range c.state.Records {
		if c.state.Records[i].ID == id {
			c.state.Records[i].Status = status
			c.state.Records[i].LastEditedDate = &now
		}
	}
	c.mu.Unlock()

	if _, err := c.api.UpdateStatus(ctx, id, status); err != nil {
		c.setError(err)
		return err
	}

	if c.reconcile {
		return c.reconcileAll(ctx)
	}
	return c.fetchCounts(ctx)
}

// BatchUpdate меняет статус выбранных заявок. Без выбора ничего не делает.
func (c *Controller) BatchUpdate(ctx context.Context, status ds.Status) error {
	ids := c.selection()
	if len(ids) == 0 {
		return nil
	}

	if _, err := c.api.BatchUpdateStatus(ctx, ids, status); err != nil {
		c.setError(err)
		return err
	}

	c.clearSelection()
	return c.reconcileAll(ctx)
}

// BatchDelete удаляет выбранные заявки. Без выбора ничего не делает.
func (c *Controller) BatchDelete(ctx context.Context) error {
	ids := c.selection()
	if len(ids) == 0 {
		return nil
	}

	if _, err := c.api.BatchDelete(ctx, ids); err != nil {
		c.setError(err)
		return err
	}

	c.clearSelection()
	return c.reconcileAll(ctx)
}

func (c *Controller) DismissError() {
	c.mu.Lock()
	c.state.Err = ""
	c.mu.Unlock()
}

// Snapshot копия текущего состояния
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Selected = slices.Clone(c.state.Selected)
	s.Records = make([]ds.Request, len(c.state.Records))
	for i, r := range c.state.Records {
		if r.LastEditedDate != nil {
			t := *r.LastEditedDate
			r.LastEditedDate = &t
		}
		s.Records[i] = r
	}
	return s
}

func (c *Controller) reconcileAll(ctx context.Context) error {
	// без общего контекста: сбой одного запроса не отменяет второй
	var g errgroup.Group
	g.Go(func() error { return c.fetchListing(ctx) })
	g.Go(func() error { return c.fetchCounts(ctx) })
	return g.Wait()
}

func (c *Controller) fetchListing(ctx context.Context) error {
	c.mu.Lock()
	page, status := c.state.CurrentPage, c.state.ActiveStatus
	c.state.Loading = true
	c.mu.Unlock()

	res, err := c.api.List(ctx, page, status)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = false
	if err != nil {
		c.state.Err = err.Error()
		return err
	}
	c.state.Records = res.Records
	c.state.Pagination = res.Pagination
	return nil
}

func (c *Controller) fetchCounts(ctx context.Context) error {
	counts, err := c.api.StatusCounts(ctx)
	if err != nil {
		c.setError(err)
		return err
	}

	c.mu.Lock()
	c.state.Counts = counts
	c.mu.Unlock()
	return nil
}

func (c *Controller) setError(err error) {
	c.mu.Lock()
	c.state.Err = err.Error()
	c.mu.Unlock()
}

func (c *Controller) selection() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.Selected)
}

func (c *Controller) clearSelection() {
	c.mu.Lock()
	c.state.Selected = nil
	c.mu.Unlock()
}

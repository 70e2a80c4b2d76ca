// Package controller owns the state of the users screen and runs every
// operation on it: the list fetch cycle, the create/edit dialog, status
// toggles and deletes.
//
// Each operation is a short cycle: a trigger updates local state, a single
// backend call runs without the lock held, and its result is applied back.
// Nothing is mutated optimistically; the table only changes when a fetch
// after a confirmed success brings the new page.
package controller

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/usersadmin/internal/client/client"
	"github.com/dmitrijs2005/usersadmin/internal/client/dialog"
	"github.com/dmitrijs2005/usersadmin/internal/client/models"
	"github.com/dmitrijs2005/usersadmin/internal/client/query"
	"github.com/dmitrijs2005/usersadmin/internal/client/table"
	"github.com/dmitrijs2005/usersadmin/internal/common"
	"github.com/dmitrijs2005/usersadmin/internal/logging"
)

// Controller holds the list query, the cached page and the dialog of the
// users screen. It is safe for concurrent use.
type Controller struct {
	client    client.Client
	notifier  Notifier
	confirmer Confirmer
	journal   Recorder
	log       logging.Logger
	dialog    *dialog.Dialog

	mu     sync.Mutex
	query  models.ListQuery
	users  []models.User
	total  int
	loaded bool
	// seq is the number of the latest dispatched fetch. Only its response
	// may be applied.
	seq uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithJournal records every confirmed mutating action and its outcome.
func WithJournal(r Recorder) Option {
	return func(c *Controller) { c.journal = r }
}

// WithPageSize sets the initial page size; unsupported sizes are ignored.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if models.IsPageSize(n) {
			c.query.Pagination.PageSize = n
		}
	}
}

// New returns a Controller that talks to cl and reports through n and cf.
// Nothing is fetched until Load.
func New(cl client.Client, n Notifier, cf Confirmer, opts ...Option) *Controller {
	c := &Controller{
		client:    cl,
		notifier:  n,
		confirmer: cf,
		log:       logging.Nop{},
		query:     models.DefaultListQuery(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "controller")
	c.dialog = dialog.New(c.submitForm)
	return c
}

// Load runs the first fetch.
func (c *Controller) Load(ctx context.Context) error {
	return c.fetch(ctx)
}

// Refresh re-runs the fetch cycle with the current query.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.fetch(ctx)
}

// fetch runs one fetch cycle. A failure is notified and returned; the cached
// page is left as it was. A response that is no longer the latest is dropped
// without touching state or notifying.
func (c *Controller) fetch(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	params := query.Build(c.query)
	c.mu.Unlock()

	c.log.Debug(ctx, "fetching users", "seq", seq, "params", params.Encode())
	page, err := c.client.ListUsers(ctx, params)

	c.mu.Lock()
	if seq != c.seq {
		latest := c.seq
		c.mu.Unlock()
		c.log.Debug(ctx, "discarding stale list response", "seq", seq, "latest", latest, "failed", err != nil)
		return nil
	}
	if err != nil {
		c.mu.Unlock()
		c.log.Warn(ctx, "list users failed", "seq", seq, "error", err)
		c.notifier.Notify("could not load users: "+describe(err), SeverityError)
		return err
	}
	if len(page.Data) == 0 && page.Total > 0 {
		// The page emptied under us, e.g. its last row was deleted.
		if last := c.query.Pagination.PageCount(page.Total); c.query.Pagination.Page > last {
			c.query.Pagination.Page = last
			c.mu.Unlock()
			c.log.Debug(ctx, "page out of range, stepping back", "seq", seq, "page", last)
			return c.fetch(ctx)
		}
	}
	c.users = page.Data
	c.total = page.Total
	c.loaded = true
	c.mu.Unlock()

	c.log.Debug(ctx, "users fetched", "seq", seq, "rows", len(page.Data), "total", page.Total)
	return nil
}

// update applies fn to a copy of the query and fetches once if the result
// differs from the current query. An identical result fetches nothing.
func (c *Controller) update(ctx context.Context, fn func(q *models.ListQuery)) error {
	c.mu.Lock()
	next := c.query
	fn(&next)
	next = query.Normalize(next)
	if next == c.query {
		c.mu.Unlock()
		return nil
	}
	c.query = next
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SetSearch changes the free-text search and returns to page 1.
func (c *Controller) SetSearch(ctx context.Context, s string) error {
	s = strings.TrimSpace(s)
	return c.update(ctx, func(q *models.ListQuery) {
		if q.Search != s {
			q.Search = s
			q.Pagination.Page = models.DefaultPage
		}
	})
}

// SetStatusFilter changes the status filter and returns to page 1.
func (c *Controller) SetStatusFilter(ctx context.Context, f models.StatusFilter) error {
	if _, ok := models.ParseStatusFilter(string(f)); !ok {
		return fmt.Errorf("%w: status filter %q", common.ErrInvalidArgument, f)
	}
	return c.update(ctx, func(q *models.ListQuery) {
		if q.Status != f {
			q.Status = f
			q.Pagination.Page = models.DefaultPage
		}
	})
}

// SetPagination moves to p. A page size change always lands on page 1.
func (c *Controller) SetPagination(ctx context.Context, p models.Pagination) error {
	if p.Page < 1 {
		return fmt.Errorf("%w: page %d", common.ErrInvalidArgument, p.Page)
	}
	if !models.IsPageSize(p.PageSize) {
		return fmt.Errorf("%w: page size %d", common.ErrInvalidArgument, p.PageSize)
	}
	return c.update(ctx, func(q *models.ListQuery) {
		if q.Pagination.PageSize != p.PageSize {
			p.Page = models.DefaultPage
		}
		q.Pagination = p
	})
}

// SetSort selects the single sort column; the zero Sort clears it.
func (c *Controller) SetSort(ctx context.Context, s models.Sort) error {
	if s.Active() {
		if !models.IsSortable(s.Field) {
			return fmt.Errorf("%w: %q is not sortable", common.ErrInvalidArgument, s.Field)
		}
		if s.Direction != models.SortDesc {
			s.Direction = models.SortAsc
		}
	} else {
		s = models.Sort{}
	}
	return c.update(ctx, func(q *models.ListQuery) { q.Sort = s })
}

// Query returns the current list query.
func (c *Controller) Query() models.ListQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Users returns a copy of the cached page.
func (c *Controller) Users() []models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.users)
}

// Total is the row count reported by the last applied fetch.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Loaded reports whether any fetch has succeeded yet.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Dialog returns the create/edit dialog driven by c.
func (c *Controller) Dialog() *dialog.Dialog {
	return c.dialog
}

// View is the table snapshot of the current state.
func (c *Controller) View() table.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return table.View{
		Rows:       slices.Clone(c.users),
		Total:      c.total,
		Pagination: c.query.Pagination,
		Sort:       c.query.Sort,
	}
}

// Presenter builds a table presenter over the current view that reports
// its actions back to c.
func (c *Controller) Presenter(opts ...table.Option) *table.Presenter {
	return table.New(c.View(), c, opts...)
}

func (c *Controller) cached(id int64) (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range c.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

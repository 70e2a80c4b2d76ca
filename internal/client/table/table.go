// Package table renders one page of user records and turns row, pagination
// and sort interactions into calls on an Actions implementation.
//
// A Presenter is built from a View snapshot and holds no state of its own.
// It never prompts, never talks to the network and never applies a change
// locally: the new page, page size or sort is reported upward and shows up
// only once the owner re-renders with a fresh View.
package table

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/usersadmin/internal/client/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	ErrRowNotFound     = errors.New("no such user on this page")
	ErrInvalidPage     = errors.New("page out of range")
	ErrInvalidPageSize = errors.New("unsupported page size")
	ErrNotSortable     = errors.New("column is not sortable")
)

// View is the data a Presenter shows.
type View struct {
	Rows       []models.User
	Total      int
	Pagination models.Pagination
	Sort       models.Sort
}

// Actions receives every interaction the table reports upward.
type Actions interface {
	Edit(ctx context.Context, u models.User) error
	ToggleStatus(ctx context.Context, id int64, current models.Status) error
	Delete(ctx context.Context, id int64) error
	ChangePagination(ctx context.Context, p models.Pagination) error
	ChangeSort(ctx context.Context, s models.Sort) error
}

type Presenter struct {
	view    View
	actions Actions
	lang    language.Tag
	color   bool
	loc     *time.Location
}

type Option func(*Presenter)

// WithLanguage selects number formatting and label casing.
func WithLanguage(tag language.Tag) Option {
	return func(p *Presenter) { p.lang = tag }
}

// WithColor enables ANSI colouring of the status column.
func WithColor(on bool) Option {
	return func(p *Presenter) { p.color = on }
}

// WithLocation sets the zone creation dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(p *Presenter) { p.loc = loc }
}

func New(view View, actions Actions, opts ...Option) *Presenter {
	p := &Presenter{view: view, actions: actions, lang: language.English, loc: time.Local}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Row returns the record with id if it is on the current page.
func (p *Presenter) Row(id int64) (models.User, bool) {
	for _, u := range p.view.Rows {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// Edit reports the edit action for the row with id.
func (p *Presenter) Edit(ctx context.Context, id int64) error {
	u, ok := p.Row(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}
	return p.actions.Edit(ctx, u)
}

// ToggleStatus reports a toggle for the row with id, with its current status.
func (p *Presenter) ToggleStatus(ctx context.Context, id int64) error {
	u, ok := p.Row(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}
	return p.actions.ToggleStatus(ctx, u.ID, u.Status)
}

// Delete reports the delete action for the row with id.
func (p *Presenter) Delete(ctx context.Context, id int64) error {
	if _, ok := p.Row(id); !ok {
		return fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}
	return p.actions.Delete(ctx, id)
}

// PageCount is the number of pages the current total spans.
func (p *Presenter) PageCount() int {
	return p.view.Pagination.PageCount(p.view.Total)
}

// GoToPage reports a move to the 1-based page. Moving to the current page
// reports nothing.
func (p *Presenter) GoToPage(ctx context.Context, page int) error {
	if page < 1 || page > p.PageCount() {
		return fmt.Errorf("%w: %d of %d", ErrInvalidPage, page, p.PageCount())
	}
	if page == p.view.Pagination.Page {
		return nil
	}
	next := p.view.Pagination
	next.Page = page
	return p.actions.ChangePagination(ctx, next)
}

func (p *Presenter) NextPage(ctx context.Context) error {
	return p.GoToPage(ctx, p.view.Pagination.Page+1)
}

func (p *Presenter) PrevPage(ctx context.Context) error {
	return p.GoToPage(ctx, p.view.Pagination.Page-1)
}

// SetPageSize reports a new page size, which always returns to page 1.
func (p *Presenter) SetPageSize(ctx context.Context, size int) error {
	if !models.IsPageSize(size) {
		return fmt.Errorf("%w: %d (choose one of %v)", ErrInvalidPageSize, size, models.PageSizes)
	}
	if size == p.view.Pagination.PageSize {
		return nil
	}
	return p.actions.ChangePagination(ctx, models.Pagination{Page: models.DefaultPage, PageSize: size})
}

// SortBy reports a sort on field. With an explicit direction that sort is
// requested; with an empty one it behaves like clicking the column header:
// unsorted -> asc -> desc -> unsorted.
func (p *Presenter) SortBy(ctx context.Context, field string, dir models.SortDirection) error {
	if !models.IsSortable(field) {
		return fmt.Errorf("%w: %q", ErrNotSortable, field)
	}

	cur := p.view.Sort
	var next models.Sort
	switch {
	case dir == models.SortAsc || dir == models.SortDesc:
		next = models.Sort{Field: field, Direction: dir}
	case cur.Field != field:
		next = models.Sort{Field: field, Direction: models.SortAsc}
	case cur.Direction == models.SortAsc:
		next = models.Sort{Field: field, Direction: models.SortDesc}
	default:
		next = models.Sort{}
	}

	if next == cur {
		return nil
	}
	return p.actions.ChangeSort(ctx, next)
}

// ClearSort reports that no column is sorted any more.
func (p *Presenter) ClearSort(ctx context.Context) error {
	if !p.view.Sort.Active() {
		return nil
	}
	return p.actions.ChangeSort(ctx, models.Sort{})
}

// StatusLabel is the human label of a status.
func StatusLabel(s models.Status, tag language.Tag) string {
	return cases.Title(tag).String(string(s))
}

// ToggleLabel names the action the toggle icon performs for a row in state s.
func ToggleLabel(s models.Status) string {
	if s == models.StatusActive {
		return "deactivate"
	}
	return "activate"
}

const (
	ansiGreen   = "\x1b[32m"
	ansiRed     = "\x1b[31m"
	ansiDefault = "\x1b[39m"
	ansiReset   = "\x1b[0m"
)

// colorize wraps s in escapes of identical length for every colour so the
// tabwriter keeps the column aligned.
func (p *Presenter) colorize(s, code string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

func (p *Presenter) statusCell(s models.Status) string {
	code := ansiRed
	if s == models.StatusActive {
		code = ansiGreen
	}
	return p.colorize(StatusLabel(s, p.lang), code)
}

func (p *Presenter) header(title, field string) string {
	if p.view.Sort.Field != field {
		return title
	}
	if p.view.Sort.Direction == models.SortDesc {
		return title + " v"
	}
	return title + " ^"
}

func (p *Presenter) formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(p.loc).Format("2006-01-02 15:04")
}

// Render writes the page as an aligned table followed by a paging footer.
func (p *Presenter) Render(w io.Writer) error {
	printer := message.NewPrinter(p.lang)

	if len(p.view.Rows) == 0 {
		if _, err := fmt.Fprintln(w, "No users found."); err != nil {
			return err
		}
		return p.renderFooter(w, printer)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		p.header("ID", "id"),
		p.header("USERNAME", "username"),
		p.colorize(p.header("STATUS", "status"), ansiDefault),
		p.header("CREATED", "createdAt"),
		"ACTIONS",
	)
	for _, u := range p.view.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			strconv.FormatInt(u.ID, 10),
			u.Username,
			p.statusCell(u.Status),
			p.formatDate(u.CreatedAt.Time),
			strings.Join([]string{"edit", ToggleLabel(u.Status), "delete"}, " | "),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return p.renderFooter(w, printer)
}

func (p *Presenter) renderFooter(w io.Writer, printer *message.Printer) error {
	pg := p.view.Pagination
	start, end := 0, 0
	if n := len(p.view.Rows); n > 0 {
		start = (pg.Page-1)*pg.PageSize + 1
		end = start + n - 1
	}
	sizes := make([]string, len(models.PageSizes))
	for i, s := range models.PageSizes {
		sizes[i] = strconv.Itoa(s)
	}

	_, err := printer.Fprintf(w, "%d-%d of %d  page %d/%d  size %d (%s)\n",
		start, end, p.view.Total, pg.Page, p.PageCount(), pg.PageSize, strings.Join(sizes, "/"))
	return err
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/usersadmin/internal/client/journal"
	"github.com/dmitrijs2005/usersadmin/internal/client/models"
	"github.com/dmitrijs2005/usersadmin/internal/client/table"
	"github.com/dmitrijs2005/usersadmin/internal/common"
)

var errUsage = errors.New("usage")

func usage(text string) error {
	return fmt.Errorf("%w: %s", errUsage, text)
}

// report prints errors the operator has not seen yet. Backend failures were
// already shown by the notifier and are only logged.
func (a *App) report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, errUsage),
		errors.Is(err, common.ErrInvalidArgument),
		errors.Is(err, table.ErrRowNotFound),
		errors.Is(err, table.ErrInvalidPage),
		errors.Is(err, table.ErrInvalidPageSize),
		errors.Is(err, table.ErrNotSortable):
		fmt.Fprintln(a.out, "error:", err)
	default:
		a.log.Debug(ctx, "command failed", "error", err)
	}
	return err
}

// afterChange re-renders the table once a state change went through.
func (a *App) afterChange(ctx context.Context, err error) error {
	if err != nil {
		return a.report(ctx, err)
	}
	return a.List(ctx, nil)
}

func parseID(args []string, cmd string) (int64, error) {
	if len(args) != 1 {
		return 0, usage(cmd + " <id>")
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, usage(cmd + " <id>: id must be a positive number")
	}
	return id, nil
}

// List prints the filter strip and the current page.
func (a *App) List(ctx context.Context, _ []string) error {
	q := a.ctrl.Query()
	strip := []string{"status: " + string(q.Status)}
	if q.Search != "" {
		strip = append(strip, fmt.Sprintf("search: %q", q.Search))
	}
	if q.Sort.Active() {
		strip = append(strip, fmt.Sprintf("sort: %s %s", q.Sort.Field, q.Sort.Direction))
	}
	fmt.Fprintln(a.out, strings.Join(strip, "  "))

	return a.report(ctx, a.presenter().Render(a.out))
}

func (a *App) Refresh(ctx context.Context, _ []string) error {
	return a.afterChange(ctx, a.ctrl.Refresh(ctx))
}

func (a *App) Search(ctx context.Context, args []string) error {
	return a.afterChange(ctx, a.ctrl.SetSearch(ctx, strings.Join(args, " ")))
}

func (a *App) Status(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.report(ctx, usage("status active|inactive|all"))
	}
	f, ok := models.ParseStatusFilter(strings.ToLower(args[0]))
	if !ok {
		return a.report(ctx, usage("status active|inactive|all"))
	}
	return a.afterChange(ctx, a.ctrl.SetStatusFilter(ctx, f))
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.report(ctx, usage("page <n>"))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return a.report(ctx, usage("page <n>: n must be a number"))
	}
	return a.afterChange(ctx, a.presenter().GoToPage(ctx, n))
}

func (a *App) Next(ctx context.Context, _ []string) error {
	return a.afterChange(ctx, a.presenter().NextPage(ctx))
}

func (a *App) Prev(ctx context.Context, _ []string) error {
	return a.afterChange(ctx, a.presenter().PrevPage(ctx))
}

func (a *App) Size(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.report(ctx, usage("size 5|10|20"))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return a.report(ctx, usage("size 5|10|20"))
	}
	return a.afterChange(ctx, a.presenter().SetPageSize(ctx, n))
}

func (a *App) Sort(ctx context.Context, args []string) error {
	switch {
	case len(args) == 1 && strings.EqualFold(args[0], "off"):
		return a.afterChange(ctx, a.presenter().ClearSort(ctx))
	case len(args) == 1:
		return a.afterChange(ctx, a.presenter().SortBy(ctx, args[0], ""))
	case len(args) == 2:
		dir := models.SortDirection(strings.ToLower(args[1]))
		if dir != models.SortAsc && dir != models.SortDesc {
			return a.report(ctx, usage("sort <field> [asc|desc]"))
		}
		return a.afterChange(ctx, a.presenter().SortBy(ctx, args[0], dir))
	}
	return a.report(ctx, usage("sort <field> [asc|desc] | sort off"))
}

func (a *App) New(ctx context.Context, _ []string) error {
	a.ctrl.OpenCreate()
	return a.runDialog(ctx)
}

func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit")
	if err != nil {
		return a.report(ctx, err)
	}
	if err := a.presenter().Edit(ctx, id); err != nil {
		return a.report(ctx, err)
	}
	return a.runDialog(ctx)
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	id, err := parseID(args, "toggle")
	if err != nil {
		return a.report(ctx, err)
	}
	return a.afterChange(ctx, a.presenter().ToggleStatus(ctx, id))
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete")
	if err != nil {
		return a.report(ctx, err)
	}
	return a.afterChange(ctx, a.presenter().Delete(ctx, id))
}

// History prints the newest journal entries, or clears the journal.
func (a *App) History(ctx context.Context, args []string) error {
	if a.journal == nil {
		fmt.Fprintln(a.out, "the action journal is disabled")
		return nil
	}

	limit := journal.DefaultRecent
	if len(args) == 1 {
		if strings.EqualFold(args[0], "clear") {
			if err := a.journal.Clear(ctx); err != nil {
				return a.report(ctx, err)
			}
			fmt.Fprintln(a.out, "journal cleared")
			return nil
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return a.report(ctx, usage("history [n|clear]"))
		}
		limit = n
	}

	entries, err := a.journal.Recent(ctx, limit)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No actions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tACTION\tUSER\tOUTCOME\tDETAIL")
	for _, e := range entries {
		user := "-"
		switch {
		case e.UserID != 0 && e.Username != "":
			user = fmt.Sprintf("%s (#%d)", e.Username, e.UserID)
		case e.UserID != 0:
			user = fmt.Sprintf("#%d", e.UserID)
		case e.Username != "":
			user = e.Username
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Action, user, e.Outcome, e.Detail)
	}
	return tw.Flush()
}

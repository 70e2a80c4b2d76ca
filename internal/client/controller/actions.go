package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/usersadmin/internal/client/client"
	"github.com/dmitrijs2005/usersadmin/internal/client/dialog"
	"github.com/dmitrijs2005/usersadmin/internal/client/journal"
	"github.com/dmitrijs2005/usersadmin/internal/client/models"
	"github.com/dmitrijs2005/usersadmin/internal/client/validation"
	"github.com/dmitrijs2005/usersadmin/internal/common"
)

// MsgRejected is attached to the username field when the backend rejected a
// submission without naming a field.
const MsgRejected = "the server rejected this user"

// OpenCreate opens the dialog for a new user.
func (c *Controller) OpenCreate() {
	c.dialog.Open(nil)
}

// OpenEdit opens the dialog for u.
func (c *Controller) OpenEdit(u models.User) {
	c.dialog.Open(&u)
}

// CloseDialog closes the dialog; a submission still in flight is ignored.
func (c *Controller) CloseDialog() {
	c.dialog.Close()
}

// SubmitDialog submits fields through the dialog. On success the dialog is
// closed and the list is fetched again. A validation or backend failure
// leaves the dialog open with field errors; the error is returned as well.
func (c *Controller) SubmitDialog(ctx context.Context, fields models.FormFields) error {
	if err := c.dialog.Submit(ctx, fields); err != nil {
		return err
	}
	_ = c.fetch(ctx)
	return nil
}

// submitForm is the dialog's SubmitFunc.
func (c *Controller) submitForm(ctx context.Context, _ dialog.SubmissionState, fields models.FormFields) (dialog.SubmissionState, error) {
	target := c.dialog.Target()
	mode := models.ModeCreate
	if target != nil {
		mode = models.ModeEdit
	}

	payload, ferrs := validation.Validate(mode, fields)
	if len(ferrs) > 0 {
		c.notifier.Notify("please correct the highlighted fields", SeverityWarning)
		return dialog.SubmissionState{Values: fields, Errors: ferrs}, fmt.Errorf("%w: %d field(s)", common.ErrValidation, len(ferrs))
	}

	var (
		user   models.User
		err    error
		action journal.Action
		id     int64
	)
	if mode == models.ModeCreate {
		action = journal.ActionCreate
		user, err = c.client.CreateUser(ctx, payload.CreateRequest())
	} else {
		action, id = journal.ActionUpdate, target.ID
		user, err = c.client.UpdateUser(ctx, id, payload.UpdateRequest())
	}

	if err != nil {
		c.log.Warn(ctx, "user submission failed", "action", action, "id", id, "error", err)
		c.record(ctx, action, id, payload.Username, err)
		c.notifier.Notify(fmt.Sprintf("could not %s user %s: %s", action, payload.Username, describe(err)), SeverityError)
		return FailureState(fields, err), err
	}

	if user.ID != 0 {
		id = user.ID
	}
	c.log.Info(ctx, "user saved", "action", action, "id", id)
	c.record(ctx, action, id, payload.Username, nil)
	verb := "created"
	if mode == models.ModeEdit {
		verb = "updated"
	}
	c.notifier.Notify(fmt.Sprintf("user %s %s", payload.Username, verb), SeveritySuccess)
	return dialog.SubmissionState{}, nil
}

// FailureState maps a failed submission onto the dialog. Backend field errors
// for form fields win; any other rejection of the payload becomes one message
// on username. Transport and server failures produce no field errors. The
// submitted values are always kept.
func FailureState(fields models.FormFields, err error) dialog.SubmissionState {
	st := dialog.SubmissionState{Values: fields}

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsValidation() {
		return st
	}

	errs := models.FieldErrors{}
	var stray string
	for field, msg := range apiErr.Fields {
		switch field {
		case models.FieldUsername, models.FieldPassword, models.FieldConfirmPassword:
			errs[field] = msg
		default:
			if stray == "" {
				stray = msg
			}
		}
	}
	if len(errs) == 0 {
		switch {
		case stray != "":
			errs[models.FieldUsername] = stray
		case apiErr.Message != "":
			errs[models.FieldUsername] = apiErr.Message
		default:
			errs[models.FieldUsername] = MsgRejected
		}
	}
	st.Errors = errs
	return st
}

// Delete asks for confirmation and deletes the user with id. A declined
// confirmation does nothing at all.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	name := c.label(id)
	ok, err := c.confirmer.Confirm(ctx, fmt.Sprintf("Delete %s? This cannot be undone.", name))
	if err != nil {
		return err
	}
	if !ok {
		c.log.Debug(ctx, "delete declined", "id", id)
		return nil
	}

	username := c.username(id)
	if err := c.client.DeleteUser(ctx, id); err != nil {
		c.log.Warn(ctx, "delete failed", "id", id, "error", err)
		c.record(ctx, journal.ActionDelete, id, username, err)
		c.notifier.Notify(fmt.Sprintf("could not delete %s: %s", name, describe(err)), SeverityError)
		return err
	}

	c.log.Info(ctx, "user deleted", "id", id)
	c.record(ctx, journal.ActionDelete, id, username, nil)
	c.notifier.Notify(name+" deleted", SeveritySuccess)
	_ = c.fetch(ctx)
	return nil
}

// ToggleStatus asks for confirmation naming the resulting state and moves
// the user with id from current to the other status.
func (c *Controller) ToggleStatus(ctx context.Context, id int64, current models.Status) error {
	if !current.Valid() {
		return fmt.Errorf("%w: status %q", common.ErrInvalidArgument, current)
	}
	next := current.Toggle()
	verb, prompt := "activate", "Activate"
	if next == models.StatusInactive {
		verb, prompt = "deactivate", "Deactivate"
	}

	name := c.label(id)
	ok, err := c.confirmer.Confirm(ctx, fmt.Sprintf("%s %s?", prompt, name))
	if err != nil {
		return err
	}
	if !ok {
		c.log.Debug(ctx, "status change declined", "id", id)
		return nil
	}

	username := c.username(id)
	if _, err := c.client.SetStatus(ctx, id, next); err != nil {
		c.log.Warn(ctx, "status change failed", "id", id, "status", next, "error", err)
		c.record(ctx, journal.ActionStatus, id, username, err)
		c.notifier.Notify(fmt.Sprintf("could not %s %s: %s", verb, name, describe(err)), SeverityError)
		return err
	}

	c.log.Info(ctx, "user status changed", "id", id, "status", next)
	c.record(ctx, journal.ActionStatus, id, username, nil, "status="+string(next))
	c.notifier.Notify(fmt.Sprintf("%s is now %s", name, next), SeveritySuccess)
	_ = c.fetch(ctx)
	return nil
}

// Edit, ChangePagination and ChangeSort complete table.Actions.

func (c *Controller) Edit(_ context.Context, u models.User) error {
	c.OpenEdit(u)
	return nil
}

func (c *Controller) ChangePagination(ctx context.Context, p models.Pagination) error {
	return c.SetPagination(ctx, p)
}

func (c *Controller) ChangeSort(ctx context.Context, s models.Sort) error {
	return c.SetSort(ctx, s)
}

func (c *Controller) username(id int64) string {
	u, _ := c.cached(id)
	return u.Username
}

func (c *Controller) label(id int64) string {
	if u, ok := c.cached(id); ok && u.Username != "" {
		return fmt.Sprintf("user %s (#%d)", u.Username, id)
	}
	return fmt.Sprintf("user #%d", id)
}

func (c *Controller) record(ctx context.Context, action journal.Action, id int64, username string, failure error, detail ...string) {
	if c.journal == nil {
		return
	}
	e := journal.Entry{Action: action, UserID: id, Username: username, Outcome: journal.OutcomeOK}
	if failure != nil {
		e.Outcome = journal.OutcomeFailed
		e.Detail = failure.Error()
	} else if len(detail) > 0 {
		e.Detail = detail[0]
	}
	if err := c.journal.Append(ctx, e); err != nil {
		c.log.Warn(ctx, "journal append failed", "action", action, "error", err)
	}
}

// describe turns an error into the short text shown in a notification.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrTokenExpired):
		return "the API token has expired"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "the request timed out"
	case errors.Is(err, client.ErrUnavailable):
		return "the server is unreachable"
	case errors.Is(err, client.ErrUnauthorized):
		return "not authorized"
	case errors.Is(err, client.ErrNotFound):
		return "the user no longer exists"
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	}
	return err.Error()
}

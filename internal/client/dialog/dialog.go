// Package dialog implements the create/edit user form as a small state
// machine: Idle -> Submitting -> Idle (closed, on success) or Resolved (open,
// with errors and the last values restored, on failure).
//
// Rendering is left to the caller; the dialog only tracks which record it
// targets, what was last submitted and whether a submission is in flight.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/usersadmin/internal/client/models"
)

var (
	ErrSubmitting = errors.New("a submission is already in flight")
	ErrClosed     = errors.New("dialog is not open")
)

// SubmitFunc performs one submission attempt. A nil error means success;
// otherwise the returned state carries the field errors and values to show.
type SubmitFunc func(ctx context.Context, prev SubmissionState, fields models.FormFields) (SubmissionState, error)

type Dialog struct {
	mu     sync.Mutex
	m      model
	submit SubmitFunc
}

func New(submit SubmitFunc) *Dialog {
	return &Dialog{submit: submit}
}

func (d *Dialog) dispatch(in msg) {
	d.m = reduce(d.m, in)
}

// Open shows the dialog for target, or for a new record when target is nil.
// State is kept when the same target is reopened and reset otherwise.
func (d *Dialog) Open(target *models.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatch(openedMsg{target: target})
}

// Close hides the dialog. A submission still in flight is left to finish but
// its result is no longer applied.
func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatch(closedMsg{})
}

// Submit runs one attempt with fields. It returns ErrClosed or ErrSubmitting
// without calling the SubmitFunc when the dialog cannot accept input;
// otherwise it returns whatever the SubmitFunc returned.
func (d *Dialog) Submit(ctx context.Context, fields models.FormFields) error {
	d.mu.Lock()
	if !d.m.open {
		d.mu.Unlock()
		return ErrClosed
	}
	if d.m.phase == Submitting {
		d.mu.Unlock()
		return ErrSubmitting
	}
	prev := d.m.state.clone()
	d.dispatch(submitRequestedMsg{fields: fields})
	gen := d.m.gen
	d.mu.Unlock()

	next, err := d.submit(ctx, prev, fields)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		if next.Values == (models.FormFields{}) {
			next.Values = fields
		}
		d.dispatch(submitFailedMsg{gen: gen, state: next})
		return err
	}
	d.dispatch(submitSucceededMsg{gen: gen})
	return nil
}

func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.m.open
}

func (d *Dialog) Phase() Phase {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.m.phase
}

// Disabled reports whether inputs must not accept changes.
func (d *Dialog) Disabled() bool {
	return d.Phase() == Submitting
}

// State returns a copy of the current submission state.
func (d *Dialog) State() SubmissionState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.m.state.clone()
}

// Target returns a copy of the record being edited, nil in create mode.
func (d *Dialog) Target() *models.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.m.target == nil {
		return nil
	}
	t := *d.m.target
	return &t
}

func (d *Dialog) Mode() models.Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.m.target == nil {
		return models.ModeCreate
	}
	return models.ModeEdit
}

func (d *Dialog) Title() string {
	if t := d.Target(); t != nil {
		return fmt.Sprintf("Edit user #%d", t.ID)
	}
	return "Create user"
}

func (d *Dialog) SubmitLabel() string {
	switch {
	case d.Phase() == Submitting:
		return "Saving..."
	case d.Mode() == models.ModeEdit:
		return "Save"
	default:
		return "Create"
	}
}

// PasswordHint explains the password field for the current mode.
func (d *Dialog) PasswordHint() string {
	if d.Mode() == models.ModeEdit {
		return "leave blank to keep the current password"
	}
	return "required"
}

// TogglePasswordVisible flips masking of the password input. Masking has no
// effect on validation or submission.
func (d *Dialog) TogglePasswordVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.m.showPassword = !d.m.showPassword
	return d.m.showPassword
}

func (d *Dialog) ToggleConfirmVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.m.showConfirm = !d.m.showConfirm
	return d.m.showConfirm
}

func (d *Dialog) PasswordVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.m.showPassword
}

func (d *Dialog) ConfirmVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.m.showConfirm
}

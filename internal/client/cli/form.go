package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/usersadmin/internal/client/models"
)

// Words understood at the dialog prompts.
const (
	cmdCancel = ":cancel"
	cmdShow   = ":show"
)

// fieldOrder is the order field errors are printed in.
var fieldOrder = map[string]int{
	models.FieldUsername:        0,
	models.FieldPassword:        1,
	models.FieldConfirmPassword: 2,
}

// runDialog drives the open dialog until it closes: it collects the fields,
// submits them, and on failure shows the errors and offers another attempt
// with the last values pre-filled.
func (a *App) runDialog(ctx context.Context) error {
	d := a.ctrl.Dialog()

	for d.IsOpen() {
		st := d.State()
		fmt.Fprintf(a.out, "%s (type %s to abort, %s at a password prompt to toggle masking)\n",
			d.Title(), cmdCancel, cmdShow)
		a.printFieldErrors(st.Errors)

		fields, ok, err := a.readFields(st.Values.Username)
		if err != nil {
			a.ctrl.CloseDialog()
			return a.report(ctx, err)
		}
		if !ok {
			a.ctrl.CloseDialog()
			fmt.Fprintln(a.out, "cancelled")
			return nil
		}

		err = a.ctrl.SubmitDialog(ctx, fields)
		if err == nil {
			return a.List(ctx, nil)
		}
		if ctx.Err() != nil {
			a.ctrl.CloseDialog()
			return err
		}
		a.log.Debug(ctx, "submission failed", "error", err)

		again, cerr := Confirm(a.reader, "Try again?", a.out)
		if cerr != nil || !again {
			a.ctrl.CloseDialog()
			return err
		}
	}
	return nil
}

// readFields prompts for the three form fields. ok is false when the
// operator cancelled.
func (a *App) readFields(current string) (models.FormFields, bool, error) {
	d := a.ctrl.Dialog()

	prompt := "Username"
	if current != "" {
		prompt = fmt.Sprintf("Username [%s]", current)
	}
	username, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return models.FormFields{}, false, err
	}
	if username == cmdCancel {
		return models.FormFields{}, false, nil
	}
	if username == "" {
		username = current
	}

	password, ok, err := a.readSecret("Password ("+d.PasswordHint()+")", d.PasswordVisible, d.TogglePasswordVisible)
	if err != nil || !ok {
		return models.FormFields{}, ok, err
	}
	confirm, ok, err := a.readSecret("Confirm password", d.ConfirmVisible, d.ToggleConfirmVisible)
	if err != nil || !ok {
		return models.FormFields{}, ok, err
	}

	return models.FormFields{Username: username, Password: password, ConfirmPassword: confirm}, true, nil
}

// readSecret reads one password field, masked unless visible() says
// otherwise. Typing :show flips the mask and asks again. Both modes return
// the same bytes for the same input.
func (a *App) readSecret(prompt string, visible func() bool, toggle func() bool) (string, bool, error) {
	for {
		var value string
		if visible() {
			v, err := GetVisibleSecret(a.reader, prompt, a.out)
			if err != nil {
				return "", false, err
			}
			value = v
		} else {
			b, err := GetPassword(a.reader, prompt, a.out)
			if err != nil {
				return "", false, err
			}
			value = string(b)
		}

		switch strings.TrimSpace(value) {
		case cmdCancel:
			return "", false, nil
		case cmdShow:
			if toggle() {
				fmt.Fprintln(a.out, "input is now visible")
			} else {
				fmt.Fprintln(a.out, "input is now masked")
			}
			continue
		}
		return value, true, nil
	}
}

func (a *App) printFieldErrors(errs models.FieldErrors) {
	if len(errs) == 0 {
		return
	}
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		oi, iok := fieldOrder[names[i]]
		oj, jok := fieldOrder[names[j]]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s: %s\n", name, errs[name])
	}
}
